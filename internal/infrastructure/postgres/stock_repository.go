package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL. Debe usarse con una tx:
// los bloqueos FOR UPDATE se liberan al Commit/Rollback.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// LockProducts bloquea las filas en orden de id (mismo orden en toda transacción: sin deadlocks).
func (r *StockRepo) LockProducts(ctx context.Context, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}
	rows, err := r.q.Query(ctx, `SELECT id FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE`, productIDs)
	if err != nil {
		return wrap("lock products", err)
	}
	defer rows.Close()
	for rows.Next() {
	}
	return wrap("lock products", rows.Err())
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID string) (*entity.ProductStock, error) {
	query := `SELECT id, current_stock, unit_measure FROM products WHERE id = $1 FOR UPDATE`
	var s entity.ProductStock
	err := r.q.QueryRow(ctx, query, productID).Scan(&s.ProductID, &s.Quantity, &s.UnitMeasure)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get stock for update", err)
	}
	return &s, nil
}

// SetQuantity escribe el nuevo stock calculado por el Ledger.
func (r *StockRepo) SetQuantity(ctx context.Context, productID string, quantity decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET current_stock = $2, updated_at = now() WHERE id = $1`, productID, quantity)
	if err != nil {
		return wrap("set stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
