package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
)

var (
	_ repository.ExitRepository          = (*ExitRepo)(nil)
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
)

// ExitRepo salidas por donación en memoria.
type ExitRepo struct {
	s  *Store
	tx bool
}

func (r *ExitRepo) Create(ctx context.Context, e *entity.Exit) error {
	return r.s.do(r.tx, "exit.create", func(st *state) error {
		if _, ok := st.exits[e.ID]; ok {
			return domain.NewDependencyError("exit.create", errDuplicate(e.ID))
		}
		st.exits[e.ID] = *e
		return nil
	})
}

func (r *ExitRepo) GetByID(ctx context.Context, id string) (*entity.Exit, error) {
	var out *entity.Exit
	err := r.s.do(r.tx, "exit.get", func(st *state) error {
		if e, ok := st.exits[id]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *ExitRepo) List(ctx context.Context, limit, offset int) ([]*entity.Exit, error) {
	var out []*entity.Exit
	err := r.s.do(r.tx, "exit.list", func(st *state) error {
		all := make([]*entity.Exit, 0, len(st.exits))
		for _, e := range st.exits {
			e := e
			all = append(all, &e)
		}
		sort.Slice(all, func(i, j int) bool {
			if !all[i].Date.Equal(all[j].Date) {
				return all[i].Date.After(all[j].Date)
			}
			return all[i].ID > all[j].ID
		})
		lo, hi := page(len(all), limit, offset)
		out = all[lo:hi]
		return nil
	})
	return out, err
}

func (r *ExitRepo) CreateItems(ctx context.Context, exitID string, items []entity.ExitItem) error {
	return r.s.do(r.tx, "exit.create_items", func(st *state) error {
		if _, ok := st.exits[exitID]; !ok {
			return domain.NewDependencyError("exit.create_items", errMissingParent("exit", exitID))
		}
		for _, it := range items {
			it.ExitID = exitID
			st.exitItems[exitID] = append(st.exitItems[exitID], it)
		}
		return nil
	})
}

func (r *ExitRepo) ListItems(ctx context.Context, exitID string) ([]entity.ExitItem, error) {
	var out []entity.ExitItem
	err := r.s.do(r.tx, "exit.list_items", func(st *state) error {
		out = append(out, st.exitItems[exitID]...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
		return nil
	})
	return out, err
}

// MovementRepo diario de stock en memoria (orden de inserción).
type MovementRepo struct {
	s  *Store
	tx bool
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.s.do(r.tx, "movement.create", func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

// ListByProduct devuelve los movimientos del producto, más reciente primero.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.s.do(r.tx, "movement.list", func(st *state) error {
		all := make([]*entity.StockMovement, 0)
		for i := len(st.movements) - 1; i >= 0; i-- {
			if st.movements[i].ProductID == productID {
				m := st.movements[i]
				all = append(all, &m)
			}
		}
		sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
		lo, hi := page(len(all), limit, offset)
		out = all[lo:hi]
		return nil
	})
	return out, err
}

func (r *MovementRepo) SumByProduct(ctx context.Context, productID string) (decimal.Decimal, int, error) {
	sum := decimal.Zero
	count := 0
	err := r.s.do(r.tx, "movement.sum", func(st *state) error {
		for _, m := range st.movements {
			if m.ProductID == productID {
				sum = sum.Add(m.Delta)
				count++
			}
		}
		return nil
	})
	return sum, count, err
}
