package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.StockRepository   = (*StockRepo)(nil)
)

// ProductRepo metadatos de producto en memoria.
type ProductRepo struct {
	s  *Store
	tx bool
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.s.do(r.tx, "product.create", func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.do(r.tx, "product.get", func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// Update escribe solo metadatos; CurrentStock se conserva.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.s.do(r.tx, "product.update", func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := *p
		next.CurrentStock = cur.CurrentStock
		next.CreatedAt = cur.CreatedAt
		st.products[p.ID] = next
		return nil
	})
}

func (r *ProductRepo) SoftDelete(ctx context.Context, id string) error {
	return r.s.do(r.tx, "product.soft_delete", func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Deleted = true
		p.UpdatedAt = time.Now()
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.s.do(r.tx, "product.list", func(st *state) error {
		all := activeProducts(st)
		sort.Slice(all, func(i, j int) bool {
			return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
		})
		lo, hi := page(len(all), limit, offset)
		out = all[lo:hi]
		return nil
	})
	return out, err
}

func (r *ProductRepo) ListBelowMinimum(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.s.do(r.tx, "product.list_below_minimum", func(st *state) error {
		for _, p := range activeProducts(st) {
			if p.BelowMinimum() {
				out = append(out, p)
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			di := out[i].MinimumStock.Sub(out[i].CurrentStock)
			dj := out[j].MinimumStock.Sub(out[j].CurrentStock)
			if !di.Equal(dj) {
				return di.GreaterThan(dj)
			}
			return out[i].ID < out[j].ID
		})
		return nil
	})
	return out, err
}

func activeProducts(st *state) []*entity.Product {
	out := make([]*entity.Product, 0, len(st.products))
	for _, p := range st.products {
		if p.Deleted {
			continue
		}
		p := p
		out = append(out, &p)
	}
	return out
}

// StockRepo escritura de current_stock en memoria. El bloqueo lo da el mutex del Store.
type StockRepo struct {
	s  *Store
	tx bool
}

func (r *StockRepo) LockProducts(ctx context.Context, productIDs []string) error {
	return r.s.do(r.tx, "stock.lock", func(*state) error { return nil })
}

func (r *StockRepo) GetForUpdate(ctx context.Context, productID string) (*entity.ProductStock, error) {
	var out *entity.ProductStock
	err := r.s.do(r.tx, "stock.get_for_update", func(st *state) error {
		if p, ok := st.products[productID]; ok {
			out = &entity.ProductStock{ProductID: p.ID, Quantity: p.CurrentStock, UnitMeasure: p.UnitMeasure}
		}
		return nil
	})
	return out, err
}

func (r *StockRepo) SetQuantity(ctx context.Context, productID string, quantity decimal.Decimal) error {
	return r.s.do(r.tx, "stock.set_quantity", func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		p.CurrentStock = quantity
		p.UpdatedAt = time.Now()
		st.products[productID] = p
		return nil
	})
}
