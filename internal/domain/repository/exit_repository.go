package repository

import (
	"context"

	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
)

// ExitRepository persiste salidas por donación y sus ítems.
type ExitRepository interface {
	Create(ctx context.Context, exit *entity.Exit) error
	GetByID(ctx context.Context, id string) (*entity.Exit, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Exit, error)

	CreateItems(ctx context.Context, exitID string, items []entity.ExitItem) error
	ListItems(ctx context.Context, exitID string) ([]entity.ExitItem, error)
}
