package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
)

var _ repository.BasketRepository = (*BasketRepo)(nil)

const basketColumns = `id, name, COALESCE(description, ''), deletado, created_at, updated_at`

// BasketRepo cestas e ítems sobre PostgreSQL.
type BasketRepo struct {
	q Querier
}

// NewBasketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBasketRepository(q Querier) *BasketRepo {
	return &BasketRepo{q: q}
}

func (r *BasketRepo) Create(ctx context.Context, b *entity.Basket) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO baskets (id, name, description, deletado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.Name, nullIfEmpty(b.Description), b.Deleted, b.CreatedAt, b.UpdatedAt,
	)
	return wrap("insert basket", err)
}

// GetByID devuelve la cesta aunque esté eliminada; el caso de uso decide.
func (r *BasketRepo) GetByID(ctx context.Context, id string) (*entity.Basket, error) {
	b, err := scanBasket(r.q.QueryRow(ctx, `SELECT `+basketColumns+` FROM baskets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get basket", err)
	}
	return b, nil
}

func (r *BasketRepo) Update(ctx context.Context, b *entity.Basket) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE baskets SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		b.ID, b.Name, nullIfEmpty(b.Description), b.UpdatedAt,
	)
	if err != nil {
		return wrap("update basket", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BasketRepo) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE baskets SET deletado = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return wrap("soft delete basket", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BasketRepo) List(ctx context.Context, limit, offset int) ([]*entity.Basket, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+basketColumns+` FROM baskets WHERE deletado = FALSE ORDER BY lower(name), id LIMIT $1 OFFSET $2`,
		limitOrAll(limit), offset,
	)
	if err != nil {
		return nil, wrap("list baskets", err)
	}
	defer rows.Close()
	var list []*entity.Basket
	for rows.Next() {
		b, err := scanBasket(rows)
		if err != nil {
			return nil, wrap("scan basket", err)
		}
		list = append(list, b)
	}
	return list, wrap("list baskets", rows.Err())
}

func (r *BasketRepo) CreateItems(ctx context.Context, basketID string, items []entity.BasketItem) error {
	b := &pgx.Batch{}
	for _, it := range items {
		b.Queue(`INSERT INTO basket_items (id, basket_id, position, product_id, quantity) VALUES ($1, $2, $3, $4, $5)`,
			it.ID, basketID, it.Position, it.ProductID, it.Quantity)
	}
	return execBatch(ctx, r.q, "insert basket items", b)
}

func (r *BasketRepo) ListItems(ctx context.Context, basketID string) ([]entity.BasketItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, basket_id, position, product_id, quantity FROM basket_items WHERE basket_id = $1 ORDER BY position`,
		basketID,
	)
	if err != nil {
		return nil, wrap("list basket items", err)
	}
	defer rows.Close()
	var items []entity.BasketItem
	for rows.Next() {
		var it entity.BasketItem
		if err := rows.Scan(&it.ID, &it.BasketID, &it.Position, &it.ProductID, &it.Quantity); err != nil {
			return nil, wrap("scan basket item", err)
		}
		items = append(items, it)
	}
	return items, wrap("list basket items", rows.Err())
}

func (r *BasketRepo) DeleteItems(ctx context.Context, basketID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM basket_items WHERE basket_id = $1`, basketID)
	return wrap("delete basket items", err)
}

func scanBasket(row pgx.Row) (*entity.Basket, error) {
	var b entity.Basket
	if err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Deleted, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
