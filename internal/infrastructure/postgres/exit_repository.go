package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
)

var _ repository.ExitRepository = (*ExitRepo)(nil)

const exitColumns = `id, type, status, exit_date, COALESCE(beneficiary, ''), COALESCE(destination, ''),
	COALESCE(notes, ''), COALESCE(basket_id, ''), created_at`

// ExitRepo salidas por donación sobre PostgreSQL.
type ExitRepo struct {
	q Querier
}

// NewExitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExitRepository(q Querier) *ExitRepo {
	return &ExitRepo{q: q}
}

func (r *ExitRepo) Create(ctx context.Context, e *entity.Exit) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO exits (id, type, status, exit_date, beneficiary, destination, notes, basket_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.Type, e.Status, e.Date, nullIfEmpty(e.Beneficiary), nullIfEmpty(e.Destination),
		nullIfEmpty(e.Notes), nullIfEmpty(e.BasketID), e.CreatedAt,
	)
	return wrap("insert exit", err)
}

func (r *ExitRepo) GetByID(ctx context.Context, id string) (*entity.Exit, error) {
	e, err := scanExit(r.q.QueryRow(ctx, `SELECT `+exitColumns+` FROM exits WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get exit", err)
	}
	return e, nil
}

func (r *ExitRepo) List(ctx context.Context, limit, offset int) ([]*entity.Exit, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+exitColumns+` FROM exits ORDER BY exit_date DESC, id DESC LIMIT $1 OFFSET $2`,
		limitOrAll(limit), offset,
	)
	if err != nil {
		return nil, wrap("list exits", err)
	}
	defer rows.Close()
	var list []*entity.Exit
	for rows.Next() {
		e, err := scanExit(rows)
		if err != nil {
			return nil, wrap("scan exit", err)
		}
		list = append(list, e)
	}
	return list, wrap("list exits", rows.Err())
}

func (r *ExitRepo) CreateItems(ctx context.Context, exitID string, items []entity.ExitItem) error {
	b := &pgx.Batch{}
	for _, it := range items {
		b.Queue(`INSERT INTO exit_items (id, exit_id, position, product_id, quantity, unit_measure) VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, exitID, it.Position, it.ProductID, it.Quantity, it.UnitMeasure)
	}
	return execBatch(ctx, r.q, "insert exit items", b)
}

func (r *ExitRepo) ListItems(ctx context.Context, exitID string) ([]entity.ExitItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, exit_id, position, product_id, quantity, unit_measure FROM exit_items WHERE exit_id = $1 ORDER BY position`,
		exitID,
	)
	if err != nil {
		return nil, wrap("list exit items", err)
	}
	defer rows.Close()
	var items []entity.ExitItem
	for rows.Next() {
		var it entity.ExitItem
		if err := rows.Scan(&it.ID, &it.ExitID, &it.Position, &it.ProductID, &it.Quantity, &it.UnitMeasure); err != nil {
			return nil, wrap("scan exit item", err)
		}
		items = append(items, it)
	}
	return items, wrap("list exit items", rows.Err())
}

func scanExit(row pgx.Row) (*entity.Exit, error) {
	var e entity.Exit
	err := row.Scan(&e.ID, &e.Type, &e.Status, &e.Date, &e.Beneficiary, &e.Destination, &e.Notes, &e.BasketID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
