package postgres

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo diario de stock sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta una fila del diario (inmutable).
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (id, product_id, delta, previous_stock, new_stock, source_type, source_id, operation, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.ProductID, m.Delta, m.PreviousStock, m.NewStock, m.SourceType, m.SourceID, m.Operation,
		nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	return wrap("insert stock movement", err)
}

// ListByProduct más reciente primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, delta, previous_stock, new_stock, source_type, source_id, operation,
			COALESCE(created_by, ''), created_at
		FROM stock_movements WHERE product_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		productID, limitOrAll(limit), offset,
	)
	if err != nil {
		return nil, wrap("list stock movements", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Delta, &m.PreviousStock, &m.NewStock, &m.SourceType,
			&m.SourceID, &m.Operation, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, wrap("scan stock movement", err)
		}
		list = append(list, &m)
	}
	return list, wrap("list stock movements", rows.Err())
}

// SumByProduct saldo con signo del diario y cantidad de filas.
func (r *StockMovementRepo) SumByProduct(ctx context.Context, productID string) (decimal.Decimal, int, error) {
	var sum decimal.Decimal
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(delta), 0), COUNT(*) FROM stock_movements WHERE product_id = $1`,
		productID,
	).Scan(&sum, &count)
	if err != nil {
		return decimal.Zero, 0, wrap("sum stock movements", err)
	}
	return sum, count, nil
}
