package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del almacén de donaciones.
// CurrentStock solo lo modifica el Ledger (application/stock); el resto son metadatos.
// Nunca se borra físicamente: Deleted marca el retiro.
type Product struct {
	ID           string
	Name         string
	CurrentStock decimal.Decimal
	MinimumStock decimal.Decimal
	UnitPrice    decimal.Decimal // precio de referencia
	UnitMeasure  string
	CategoryID   string
	SectorID     string
	Deleted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BelowMinimum indica si el stock actual está por debajo del mínimo configurado.
func (p *Product) BelowMinimum() bool {
	return p.CurrentStock.LessThan(p.MinimumStock)
}
