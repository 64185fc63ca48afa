package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de lanzamiento observados. La clasificación entrada/salida no vive aquí:
// la define stock.KindClassifier a partir de la configuración.
const (
	LaunchTypeDonation = "Doação"
	LaunchTypePurchase = "Compra"
	LaunchTypeEntry    = "Entrada"
	LaunchTypeExit     = "Saída"
)

// Launch es la cabecera de un documento de movimiento de stock (entrada o salida).
type Launch struct {
	ID            string
	Type          string
	Status        string
	EmissionDate  *time.Time
	ReceptionDate *time.Time
	ProviderID    string
	UnitID        string // unidad beneficiaria
	NoteNumber    string
	Notes         string
	TotalValue    decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LaunchItem es una línea del lanzamiento. ProductID vacío = referencia ausente.
type LaunchItem struct {
	ID         string
	LaunchID   string
	Position   int
	ProductID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Validity   *time.Time
	SectorID   string
	CategoryID string
	UnitID     string
}

// Subtotal devuelve quantity × unitPrice.
func (i LaunchItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}
