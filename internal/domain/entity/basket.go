package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Basket es una plantilla de donación (cesta): nombre + pares producto/cantidad.
type Basket struct {
	ID          string
	Name        string
	Description string
	Deleted     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BasketItem línea de la cesta. La unidad se toma del producto en el momento de donar.
type BasketItem struct {
	ID        string
	BasketID  string
	Position  int
	ProductID string
	Quantity  decimal.Decimal
}
