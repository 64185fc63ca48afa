package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen del ajuste de stock.
const (
	SourceLaunch = "launch"
	SourceExit   = "exit"
)

// Operación registrada en el diario.
const (
	OperationApply  = "apply"
	OperationRevert = "revert"
)

// StockMovement es una fila del diario de stock: un ajuste aplicado por el Ledger.
// Delta es con signo (positivo entrada, negativo salida).
type StockMovement struct {
	ID            string
	ProductID     string
	Delta         decimal.Decimal
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	SourceType    string // launch, exit
	SourceID      string
	Operation     string // apply, revert
	CreatedBy     string
	CreatedAt     time.Time
}
