package basket_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Doacoes-api/internal/application/basket"
	"github.com/jhoicas/Doacoes-api/internal/application/dto"
	"github.com/jhoicas/Doacoes-api/internal/application/stock"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*basket.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	for _, p := range []entity.Product{
		{ID: "p1", Name: "Arroz", CurrentStock: d("10"), UnitMeasure: "kg"},
		{ID: "p2", Name: "Óleo", CurrentStock: d("3"), UnitMeasure: "l"},
		{ID: "p3", Name: "Feijão", CurrentStock: d("8"), UnitMeasure: "kg"},
	} {
		p := p
		require.NoError(t, store.Repos().Products.Create(ctx, &p))
	}
	ledger := stock.NewLedger(stock.LedgerConfig{AllowNegative: true}, nil, nil)
	return basket.NewUseCase(store, store.Repos().Baskets, ledger, nil, nil), store
}

func stockOf(t *testing.T, store *memory.Store, id string) decimal.Decimal {
	t.Helper()
	p, err := store.Repos().Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.CurrentStock
}

func basketReq(name string, items ...dto.BasketItemRequest) dto.BasketRequest {
	return dto.BasketRequest{Name: name, Items: items}
}

func bi(productID, qty string) dto.BasketItemRequest {
	return dto.BasketItemRequest{ProductID: productID, Quantity: d(qty)}
}

func TestDonate_ExpandeCesta(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	b, err := uc.Create(ctx, basketReq("Cesta básica", bi("p1", "2"), bi("p2", "1")))
	require.NoError(t, err)

	res, err := uc.Donate(ctx, "u1", b.ID, dto.DonateBasketRequest{Beneficiary: "Família Silva", Notes: "entrega"})
	require.NoError(t, err)
	assert.Empty(t, res.Skipped)

	assert.Equal(t, entity.ExitTypeDonation, res.Exit.Type)
	assert.Equal(t, entity.ExitStatusDone, res.Exit.Status)
	assert.Equal(t, "Cesta: Cesta básica | entrega", res.Exit.Notes)
	assert.Equal(t, b.ID, res.Exit.BasketID)
	require.Len(t, res.Exit.Items, 2)
	assert.Equal(t, "p1", res.Exit.Items[0].ProductID)
	assert.True(t, res.Exit.Items[0].Quantity.Equal(d("2")))
	assert.Equal(t, "kg", res.Exit.Items[0].UnitMeasure)
	assert.Equal(t, "p2", res.Exit.Items[1].ProductID)
	assert.Equal(t, "l", res.Exit.Items[1].UnitMeasure)

	assert.True(t, stockOf(t, store, "p1").Equal(d("8")))
	assert.True(t, stockOf(t, store, "p2").Equal(d("2")))
	assert.True(t, stockOf(t, store, "p3").Equal(d("8")))

	saved, err := store.Repos().Exits.ListItems(ctx, res.ID)
	require.NoError(t, err)
	assert.Len(t, saved, 2)
}

func TestDonate_UnidadDesnormalizada(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	b, err := uc.Create(ctx, basketReq("Kit", bi("p1", "1")))
	require.NoError(t, err)
	res, err := uc.Donate(ctx, "", b.ID, dto.DonateBasketRequest{})
	require.NoError(t, err)

	p, err := store.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	p.UnitMeasure = "saco"
	require.NoError(t, store.Repos().Products.Update(ctx, p))

	items, err := store.Repos().Exits.ListItems(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "kg", items[0].UnitMeasure)
}

func TestDonate_FechaPorDefectoYExplicita(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	b, err := uc.Create(ctx, basketReq("Kit", bi("p3", "1")))
	require.NoError(t, err)

	before := time.Now()
	res, err := uc.Donate(ctx, "", b.ID, dto.DonateBasketRequest{})
	require.NoError(t, err)
	assert.False(t, res.Exit.Date.Before(before))

	fixed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	res, err = uc.Donate(ctx, "", b.ID, dto.DonateBasketRequest{Date: &dto.Date{Time: fixed}})
	require.NoError(t, err)
	assert.True(t, res.Exit.Date.Equal(fixed))
}

func TestDonate_NoEncontrada(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	_, err := uc.Donate(ctx, "", "no-existe", dto.DonateBasketRequest{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	b, err := uc.Create(ctx, basketReq("Kit", bi("p1", "1")))
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, b.ID))

	_, err = uc.Donate(ctx, "", b.ID, dto.DonateBasketRequest{})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "cesta eliminada")
	assert.True(t, stockOf(t, store, "p1").Equal(d("10")))
}

func TestDonate_CestaVacia(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	b, err := uc.Create(ctx, basketReq("Vacía"))
	require.NoError(t, err)

	_, err = uc.Donate(ctx, "", b.ID, dto.DonateBasketRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	exits, err := store.Repos().Exits.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, exits)
}

func TestDonate_ProductoInexistenteSeOmite(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	b, err := uc.Create(ctx, basketReq("Kit", bi("p1", "1"), bi("retirado", "5")))
	require.NoError(t, err)

	res, err := uc.Donate(ctx, "", b.ID, dto.DonateBasketRequest{})
	require.NoError(t, err)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "retirado", res.Skipped[0].ProductID)
	assert.Len(t, res.Exit.Items, 2)
	assert.True(t, stockOf(t, store, "p1").Equal(d("9")))
}

func TestDonate_FallaHaceRollback(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	b, err := uc.Create(ctx, basketReq("Kit", bi("p1", "1")))
	require.NoError(t, err)

	store.FailOn("movement.create", errors.New("disco lleno"))
	_, err = uc.Donate(ctx, "", b.ID, dto.DonateBasketRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDependency))

	store.FailOn("movement.create", nil)
	exits, err := store.Repos().Exits.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, exits)
	assert.True(t, stockOf(t, store, "p1").Equal(d("10")))
}

func TestBasket_CRUD(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, basketReq(""))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	b, err := uc.Create(ctx, basketReq("Higiene", bi("p1", "1"), bi("p2", "2")))
	require.NoError(t, err)

	upd, err := uc.Update(ctx, b.ID, basketReq("Higiene plus", bi("p3", "4")))
	require.NoError(t, err)
	assert.Equal(t, "Higiene plus", upd.Name)

	got, err := uc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p3", got.Items[0].ProductID)
	assert.True(t, stockOf(t, store, "p3").Equal(d("8")), "editar una cesta no toca stock")

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, uc.Delete(ctx, b.ID))
	_, err = uc.GetByID(ctx, b.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	list, err = uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	_, err = uc.Update(ctx, b.ID, basketReq("x"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(uc.Delete(ctx, b.ID), domain.ErrNotFound))
}
