package repository

import (
	"context"

	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
)

// BasketRepository persiste cestas (plantillas) y sus ítems.
type BasketRepository interface {
	Create(ctx context.Context, basket *entity.Basket) error
	GetByID(ctx context.Context, id string) (*entity.Basket, error)
	Update(ctx context.Context, basket *entity.Basket) error
	SoftDelete(ctx context.Context, id string) error
	// List excluye las cestas marcadas como eliminadas.
	List(ctx context.Context, limit, offset int) ([]*entity.Basket, error)

	CreateItems(ctx context.Context, basketID string, items []entity.BasketItem) error
	ListItems(ctx context.Context, basketID string) ([]entity.BasketItem, error)
	DeleteItems(ctx context.Context, basketID string) error
}
