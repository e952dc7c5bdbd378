package models

import "time"

// Item represents a single piece of equipment in the gear score index
type Item struct {
	ID       string   `json:"id"`
	Level    *int     `json:"ilvl"` // nil for legendary-only items
	SlotType SlotType `json:"type"`
	Score    float64  `json:"gs"`             // 0 means no computed score
	Name     string   `json:"name,omitempty"` // empty when no name cache is loaded
}

// HasLevel reports whether the item sits on the item level axis
func (i Item) HasLevel() bool {
	return i.Level != nil
}

// ItemName is a cached display name for an item id
type ItemName struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"` // where the name was fetched or imported from
	UpdatedAt time.Time `json:"updated_at"`
}
