package models

import "time"

// Purchase represents one row of the purchases table.
type Purchase struct {
	ID         int
	Timestamp  *time.Time // nil when the source row has no timestamp
	CategoryID int
	UserID     int
	Item       string
	Quantity   int
	Price      float64
}

// TotalSpent is the amount spent on this purchase.
func (p Purchase) TotalSpent() float64 {
	return float64(p.Quantity) * p.Price
}

// APIRecord is a single record in the outbound payload.
type APIRecord struct {
	UserID     int     `json:"user_id"`
	ItemName   string  `json:"item_name"`
	TotalSpent float64 `json:"total_spent"`
	Timestamp  *string `json:"timestamp"`
}

// APIBatch is the payload delivered for one category: all records sharing
// one category_id, in the order they were appended during transformation.
type APIBatch struct {
	CategoryID int         `json:"category_id"`
	Data       []APIRecord `json:"data"`
}
