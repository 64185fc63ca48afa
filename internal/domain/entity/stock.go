package entity

import "github.com/shopspring/decimal"

// ProductStock es la vista mínima de un producto que necesita el Ledger (fila bloqueada).
type ProductStock struct {
	ProductID   string
	Quantity    decimal.Decimal
	UnitMeasure string
}
