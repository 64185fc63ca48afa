package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores fijos de una salida generada por donación de cesta.
const (
	ExitTypeDonation = "Doação"
	ExitStatusDone   = "Concluído"
)

// Exit es la cabecera de una salida (Saída) por donación.
type Exit struct {
	ID          string
	Type        string
	Status      string
	Date        time.Time
	Beneficiary string
	Destination string
	Notes       string
	BasketID    string
	CreatedAt   time.Time
}

// ExitItem línea de la salida; UnitMeasure queda desnormalizada al momento de la donación.
type ExitItem struct {
	ID          string
	ExitID      string
	Position    int
	ProductID   string
	Quantity    decimal.Decimal
	UnitMeasure string
}
