package stock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
)

// Reconciliation compara el stock actual con el saldo del diario.
type Reconciliation struct {
	ProductID      string
	CurrentStock   decimal.Decimal
	JournalBalance decimal.Decimal
	Drift          decimal.Decimal // CurrentStock - JournalBalance
	Movements      int
	Consistent     bool
}

// Reconciler consultas de solo lectura sobre el diario de stock.
type Reconciler struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
}

// NewReconciler construye el caso de uso.
func NewReconciler(products repository.ProductRepository, movements repository.StockMovementRepository) *Reconciler {
	return &Reconciler{products: products, movements: movements}
}

// Reconcile verifica stock_actual == Σ deltas del diario. Los productos inician en 0,
// así que cualquier diferencia es una escritura que no pasó por el Ledger.
func (uc *Reconciler) Reconcile(ctx context.Context, productID string) (*Reconciliation, error) {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	balance, count, err := uc.movements.SumByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	drift := p.CurrentStock.Sub(balance)
	return &Reconciliation{
		ProductID:      productID,
		CurrentStock:   p.CurrentStock,
		JournalBalance: balance,
		Drift:          drift,
		Movements:      count,
		Consistent:     drift.IsZero(),
	}, nil
}

// ListMovements devuelve el diario del producto, más reciente primero.
func (uc *Reconciler) ListMovements(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movements.ListByProduct(ctx, productID, limit, offset)
}
