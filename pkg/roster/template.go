package roster

// PositionCode is one of the seven NRL fantasy position groups plus the two
// bench groups.
type PositionCode string

const (
	Hooker      PositionCode = "HOK"
	Middle      PositionCode = "MID"
	Edge        PositionCode = "EDG"
	Half        PositionCode = "HLF"
	Centre      PositionCode = "CTR"
	OutsideBack PositionCode = "WFB"
	Interchange PositionCode = "INT"
	Emergency   PositionCode = "EMG"
)

// TeamSize is the fixed number of slots in a complete team list.
const TeamSize = 21

// StartingSize is the number of on-field slots; slots at and beyond this
// index belong to the bench (interchange + emergency).
const StartingSize = 13

// TemplateEntry pairs a position code with how many consecutive slots it owns.
type TemplateEntry struct {
	Position PositionCode
	Count    int
}

// Template is the fixed slot schedule. The counts sum to TeamSize and the
// order matches the on-screen layout of the source application, which is why
// slot ordinal alone determines a slot's position.
var Template = []TemplateEntry{
	{Hooker, 1},
	{Middle, 3},
	{Edge, 2},
	{Half, 2},
	{Centre, 2},
	{OutsideBack, 3},
	{Interchange, 4},
	{Emergency, 4},
}

// slotPositions is Template expanded to one position per slot index.
var slotPositions = expandTemplate()

func expandTemplate() [TeamSize]PositionCode {
	var out [TeamSize]PositionCode
	i := 0
	for _, e := range Template {
		for n := 0; n < e.Count; n++ {
			out[i] = e.Position
			i++
		}
	}
	if i != TeamSize {
		panic("roster: template counts do not sum to team size")
	}
	return out
}

// PositionAt returns the templated position for a slot index.
func PositionAt(index int) PositionCode {
	return slotPositions[index]
}

// emptySlots returns a fresh all-empty roster in template order.
func emptySlots() []Slot {
	out := make([]Slot, TeamSize)
	for i := range out {
		out[i] = Slot{Index: i, Position: slotPositions[i]}
	}
	return out
}
