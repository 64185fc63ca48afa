package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
)

// StockMovementRepository persiste el diario de ajustes del Ledger.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
	// SumByProduct devuelve la suma de deltas y la cantidad de filas del producto.
	SumByProduct(ctx context.Context, productID string) (decimal.Decimal, int, error)
}
