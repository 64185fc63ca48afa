package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Doacoes-api/internal/application/dto"
	"github.com/jhoicas/Doacoes-api/internal/application/launch"
	"github.com/jhoicas/Doacoes-api/internal/application/stock"
	"github.com/jhoicas/Doacoes-api/internal/application/usecase"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/inventory"
	"github.com/jhoicas/Doacoes-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newProductUseCase(store *memory.Store) *usecase.ProductUseCase {
	r := store.Repos()
	return usecase.NewProductUseCase(r.Products, stock.NewReconciler(r.Products, r.Movements))
}

func TestProduct_CreateIniciaEnCero(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUseCase(store)
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{ID: "arroz-5kg", Name: " Arroz ", UnitMeasure: "kg", MinimumStock: d("4")})
	require.NoError(t, err)
	assert.Equal(t, "arroz-5kg", p.ID)
	assert.Equal(t, "Arroz", p.Name)
	assert.True(t, p.CurrentStock.IsZero())
	assert.True(t, p.BelowMinimum)

	_, err = uc.Create(ctx, dto.CreateProductRequest{ID: "arroz-5kg", Name: "Otro"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: ""})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	gen, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Leite"})
	require.NoError(t, err)
	assert.NotEmpty(t, gen.ID)
}

func TestProduct_UpdateNoTocaStock(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUseCase(store)
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Leite"})
	require.NoError(t, err)

	lc := launch.NewUseCase(store, store.Repos().Launches,
		stock.NewLedger(stock.LedgerConfig{AllowNegative: true}, nil, nil),
		inventory.NewKindClassifier(inventory.DefaultIncomingKinds()), nil, nil)
	_, err = lc.Create(ctx, "", dto.LaunchRequest{Type: "Doação", Items: []dto.LaunchItemRequest{{ProductID: p.ID, Quantity: d("6")}}})
	require.NoError(t, err)

	upd, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: "Leite integral", UnitMeasure: "l", MinimumStock: d("10")})
	require.NoError(t, err)
	assert.Equal(t, "Leite integral", upd.Name)
	assert.True(t, upd.CurrentStock.Equal(d("6")))

	low, err := uc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low.Items, 1)
	assert.Equal(t, p.ID, low.Items[0].ID)

	rec, err := uc.Reconciliation(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)

	movs, err := uc.Movements(ctx, p.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs.Items, 1)
	assert.True(t, movs.Items[0].Delta.Equal(d("6")))
}

func TestProduct_SoftDelete(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUseCase(store)
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Açúcar"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, p.ID))

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	assert.True(t, errors.Is(uc.Delete(ctx, p.ID), domain.ErrNotFound))
	_, err = uc.GetByID(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
