package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
)

// StockRepository es el único puerto que escribe products.current_stock.
// Solo lo usa el Ledger, siempre dentro de una transacción.
type StockRepository interface {
	// LockProducts bloquea (SELECT FOR UPDATE) las filas indicadas en orden de id.
	// IDs inexistentes se ignoran.
	LockProducts(ctx context.Context, productIDs []string) error
	// GetForUpdate devuelve (nil, nil) si el producto no existe.
	GetForUpdate(ctx context.Context, productID string) (*entity.ProductStock, error)
	SetQuantity(ctx context.Context, productID string, quantity decimal.Decimal) error
}
