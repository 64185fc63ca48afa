package stock

import (
	"context"

	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
// El repositorio de stock no es accesible fuera de este paquete: solo el Ledger escribe stock.
type Repos struct {
	Products  repository.ProductRepository
	Launches  repository.LaunchRepository
	Baskets   repository.BasketRepository
	Exits     repository.ExitRepository
	Movements repository.StockMovementRepository

	stock repository.StockRepository
}

// NewRepos ata el repositorio de stock al conjunto. Lo usan las implementaciones de TxRunner.
func NewRepos(stockRepo repository.StockRepository, r Repos) Repos {
	r.stock = stockRepo
	return r
}

// TxRunner ejecuta una función dentro de una transacción del almacén, pasando repositorios atados a ella.
// Commit si fn devuelve nil; Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
