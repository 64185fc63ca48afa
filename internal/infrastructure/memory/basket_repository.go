package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
)

var _ repository.BasketRepository = (*BasketRepo)(nil)

// BasketRepo cestas en memoria.
type BasketRepo struct {
	s  *Store
	tx bool
}

func (r *BasketRepo) Create(ctx context.Context, b *entity.Basket) error {
	return r.s.do(r.tx, "basket.create", func(st *state) error {
		if _, ok := st.baskets[b.ID]; ok {
			return domain.NewDependencyError("basket.create", errDuplicate(b.ID))
		}
		st.baskets[b.ID] = *b
		return nil
	})
}

// GetByID devuelve la cesta aunque esté marcada como eliminada; el llamador decide.
func (r *BasketRepo) GetByID(ctx context.Context, id string) (*entity.Basket, error) {
	var out *entity.Basket
	err := r.s.do(r.tx, "basket.get", func(st *state) error {
		if b, ok := st.baskets[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BasketRepo) Update(ctx context.Context, b *entity.Basket) error {
	return r.s.do(r.tx, "basket.update", func(st *state) error {
		cur, ok := st.baskets[b.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := *b
		next.CreatedAt = cur.CreatedAt
		st.baskets[b.ID] = next
		return nil
	})
}

func (r *BasketRepo) SoftDelete(ctx context.Context, id string) error {
	return r.s.do(r.tx, "basket.soft_delete", func(st *state) error {
		b, ok := st.baskets[id]
		if !ok {
			return domain.ErrNotFound
		}
		b.Deleted = true
		b.UpdatedAt = time.Now()
		st.baskets[id] = b
		return nil
	})
}

func (r *BasketRepo) List(ctx context.Context, limit, offset int) ([]*entity.Basket, error) {
	var out []*entity.Basket
	err := r.s.do(r.tx, "basket.list", func(st *state) error {
		all := make([]*entity.Basket, 0, len(st.baskets))
		for _, b := range st.baskets {
			if b.Deleted {
				continue
			}
			b := b
			all = append(all, &b)
		}
		sort.Slice(all, func(i, j int) bool {
			return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
		})
		lo, hi := page(len(all), limit, offset)
		out = all[lo:hi]
		return nil
	})
	return out, err
}

func (r *BasketRepo) CreateItems(ctx context.Context, basketID string, items []entity.BasketItem) error {
	return r.s.do(r.tx, "basket.create_items", func(st *state) error {
		if _, ok := st.baskets[basketID]; !ok {
			return domain.NewDependencyError("basket.create_items", errMissingParent("basket", basketID))
		}
		for _, it := range items {
			it.BasketID = basketID
			st.basketItems[basketID] = append(st.basketItems[basketID], it)
		}
		return nil
	})
}

func (r *BasketRepo) ListItems(ctx context.Context, basketID string) ([]entity.BasketItem, error) {
	var out []entity.BasketItem
	err := r.s.do(r.tx, "basket.list_items", func(st *state) error {
		out = append(out, st.basketItems[basketID]...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
		return nil
	})
	return out, err
}

func (r *BasketRepo) DeleteItems(ctx context.Context, basketID string) error {
	return r.s.do(r.tx, "basket.delete_items", func(st *state) error {
		delete(st.basketItems, basketID)
		return nil
	})
}
