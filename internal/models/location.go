package models

// Location represents a single named map point: its normalized address label and its geographic coordinates.
type Location struct {
	ID        int64   `json:"id"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
