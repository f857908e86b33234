package entity

import "time"

// Block is a building block of an apartment complex
type Block struct {
	ID          string    `json:"id"`
	ApartmentID string    `json:"apartment_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Flat belongs to exactly one Block
type Flat struct {
	ID         string    `json:"id"`
	BlockID    string    `json:"block_id"`
	FlatNumber string    `json:"flat_number"`
	CreatedAt  time.Time `json:"created_at"`
}
