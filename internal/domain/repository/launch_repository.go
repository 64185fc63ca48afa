package repository

import (
	"context"

	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
)

// LaunchFilter filtros opcionales del listado de lanzamientos.
type LaunchFilter struct {
	Type string
}

// LaunchRepository persiste cabeceras de lanzamiento y sus ítems.
// Los ítems no tienen ciclo de vida propio: se borran e insertan en bloque.
type LaunchRepository interface {
	Create(ctx context.Context, launch *entity.Launch) error
	GetByID(ctx context.Context, id string) (*entity.Launch, error)
	Update(ctx context.Context, launch *entity.Launch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter LaunchFilter, limit, offset int) ([]*entity.Launch, error)

	CreateItems(ctx context.Context, launchID string, items []entity.LaunchItem) error
	ListItems(ctx context.Context, launchID string) ([]entity.LaunchItem, error)
	DeleteItems(ctx context.Context, launchID string) error
}
