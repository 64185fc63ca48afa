package repository

import (
	"context"

	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para los metadatos de Product.
// No expone escritura de stock: eso es exclusivo de StockRepository (vía Ledger).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// ListBelowMinimum devuelve productos activos con stock actual < stock mínimo, mayor déficit primero.
	ListBelowMinimum(ctx context.Context) ([]*entity.Product, error)
}
