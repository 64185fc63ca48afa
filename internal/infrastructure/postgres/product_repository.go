package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, current_stock, minimum_stock, unit_price, unit_measure,
	COALESCE(category_id, ''), COALESCE(sector_id, ''), deletado, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con el stock recibido (0 desde el caso de uso).
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, current_stock, minimum_stock, unit_price, unit_measure, category_id, sector_id, deletado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.CurrentStock, product.MinimumStock, product.UnitPrice,
		product.UnitMeasure, nullIfEmpty(product.CategoryID), nullIfEmpty(product.SectorID),
		product.Deleted, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, incluidos los retirados.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get product", err)
	}
	return p, nil
}

// Update actualiza metadatos. current_stock no se toca: es exclusivo de StockRepo.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, minimum_stock = $3, unit_price = $4, unit_measure = $5,
			category_id = $6, sector_id = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.MinimumStock, product.UnitPrice, product.UnitMeasure,
		nullIfEmpty(product.CategoryID), nullIfEmpty(product.SectorID), product.UpdatedAt,
	)
	if err != nil {
		return wrap("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca deletado = true.
func (r *ProductRepo) SoftDelete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET deletado = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return wrap("soft delete product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos activos por nombre con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE deletado = FALSE ORDER BY lower(name), id LIMIT $1 OFFSET $2`
	return r.list(ctx, "list products", query, limit, offset)
}

// ListBelowMinimum productos activos con current_stock < minimum_stock, mayor déficit primero.
func (r *ProductRepo) ListBelowMinimum(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE deletado = FALSE AND current_stock < minimum_stock
		ORDER BY (minimum_stock - current_stock) DESC, id`
	return r.list(ctx, "list products below minimum", query)
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrap("scan product", err)
		}
		list = append(list, p)
	}
	return list, wrap(op, rows.Err())
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.CurrentStock, &p.MinimumStock, &p.UnitPrice, &p.UnitMeasure,
		&p.CategoryID, &p.SectorID, &p.Deleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
