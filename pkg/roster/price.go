package roster

import "log"

// PriceSource looks up current prices for player names. Names absent from
// the result simply had no match.
type PriceSource interface {
	LookupPrices(names []string) (map[string]int, error)
}

// ResolvePrices backfills prices for filled slots that lack one. A lookup
// failure leaves every affected slot unchanged; it never aborts the pipeline.
func ResolvePrices(slots []Slot, src PriceSource) []Slot {
	if src == nil {
		return slots
	}
	var names []string
	for _, s := range slots {
		if s.Player != nil && s.Player.Price == nil {
			names = append(names, s.Player.Name)
		}
	}
	if len(names) == 0 {
		return slots
	}
	prices, err := src.LookupPrices(names)
	if err != nil {
		log.Printf("price lookup failed, keeping %d slots unpriced: %v", len(names), err)
		return slots
	}
	out := make([]Slot, len(slots))
	copy(out, slots)
	for i := range out {
		p := out[i].Player
		if p == nil || p.Price != nil {
			continue
		}
		if price, ok := prices[p.Name]; ok {
			pc := *p
			pc.Price = &price
			out[i].Player = &pc
		}
	}
	return out
}
