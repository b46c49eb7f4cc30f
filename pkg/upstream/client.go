// Package upstream talks to the stats backend that owns player data: the
// validation list, current prices, and trade recommendations.
package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"teamsheet/pkg/roster"
)

// Client is a thin typed wrapper over the stats backend's JSON endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchValidationList returns the authoritative player universe used to
// accept or reject OCR candidates.
func (c *Client) FetchValidationList() ([]roster.ValidationEntry, error) {
	var out []roster.ValidationEntry
	if err := c.getJSON("/get_player_validation_list", &out); err != nil {
		return nil, fmt.Errorf("fetch validation list: %w", err)
	}
	return out, nil
}

// LookupPrices asks the backend for current prices by player name. Names the
// backend does not know are simply absent from the result.
func (c *Client) LookupPrices(names []string) (map[string]int, error) {
	players := make([]map[string]string, len(names))
	for i, n := range names {
		players[i] = map[string]string{"name": n}
	}
	var resp struct {
		Players []struct {
			Name  string `json:"name"`
			Price int    `json:"price"`
		} `json:"players"`
	}
	if err := c.postJSON("/lookup_player_prices", map[string]any{"team_players": players}, &resp); err != nil {
		return nil, fmt.Errorf("lookup prices: %w", err)
	}
	out := make(map[string]int, len(resp.Players))
	for _, p := range resp.Players {
		if p.Price > 0 {
			out[p.Name] = p.Price
		}
	}
	return out, nil
}

// RosterPlayer is the shape the trade/analysis endpoints consume. Empty
// slots are filtered out before sending.
type RosterPlayer struct {
	Name      string   `json:"name"`
	Positions []string `json:"positions"`
	Price     int      `json:"price"`
}

// CalculateTeamTrades forwards the extracted team and relays the backend's
// recommendation payload untouched; its algorithm is not ours.
func (c *Client) CalculateTeamTrades(players []RosterPlayer) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.postJSON("/calculate_team_trades", map[string]any{"team_players": players}, &out); err != nil {
		return nil, fmt.Errorf("calculate team trades: %w", err)
	}
	return out, nil
}

// FilledPlayers converts a slotted roster to the wire shape, dropping empty
// slots and defaulting unknown prices to zero.
func FilledPlayers(slots []roster.Slot) []RosterPlayer {
	var out []RosterPlayer
	for _, s := range slots {
		if s.Player == nil {
			continue
		}
		positions := make([]string, len(s.Player.Positions))
		for i, p := range s.Player.Positions {
			positions[i] = string(p)
		}
		price := 0
		if s.Player.Price != nil {
			price = *s.Player.Price
		}
		out = append(out, RosterPlayer{Name: s.Player.Name, Positions: positions, Price: price})
	}
	return out
}

func (c *Client) getJSON(path string, out any) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) postJSON(path string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(buf))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
