package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalogue product.
type Product struct {
	ID           string          `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Image        string          `json:"image" db:"image"`
	Brand        string          `json:"brand" db:"brand"`
	Category     string          `json:"category" db:"category"`
	Description  string          `json:"description" db:"description"`
	Price        decimal.Decimal `json:"price" db:"price"`
	CountInStock int             `json:"countInStock" db:"count_in_stock"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
}
