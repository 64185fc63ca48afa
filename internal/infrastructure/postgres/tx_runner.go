package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Doacoes-api/internal/application/stock"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos stock.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrap("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Repos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrap("commit transaction", err)
	}
	return nil
}

// Repos construye todos los repositorios sobre q (pool para lecturas, tx dentro de Run).
func Repos(q Querier) stock.Repos {
	return stock.NewRepos(NewStockRepository(q), stock.Repos{
		Products:  NewProductRepository(q),
		Launches:  NewLaunchRepository(q),
		Baskets:   NewBasketRepository(q),
		Exits:     NewExitRepository(q),
		Movements: NewStockMovementRepository(q),
	})
}
