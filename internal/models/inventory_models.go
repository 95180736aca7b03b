package models

import "time"

// Derived stock bands, never persisted.
const (
	StockLow      = "low"
	StockMedium   = "medium"
	StockAdequate = "adequate"
)

// Product is an inventory item.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" binding:"required"`
	CategoryID  int64     `json:"category_id" db:"category_id" binding:"required"`
	Quantity    int       `json:"quantity" db:"quantity"`
	MinQuantity int       `json:"min_quantity" db:"min_quantity" binding:"required,gt=0"`
	Unit        string    `json:"unit" db:"unit" binding:"required"`
	Price       float64   `json:"price" db:"price" binding:"required,gt=0"`
	Supplier    string    `json:"supplier" db:"supplier" binding:"required"`
	LastRestock string    `json:"last_restock" db:"last_restock"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Category *Category `json:"category,omitempty"`
	Status   string    `json:"status,omitempty" db:"-"`
}

// StockStatus derives the status band from the quantity on hand relative to
// the minimum threshold.
func (p *Product) StockStatus() string {
	switch {
	case p.Quantity <= p.MinQuantity:
		return StockLow
	case p.Quantity <= p.MinQuantity*2:
		return StockMedium
	default:
		return StockAdequate
	}
}
