package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Doacoes-api/internal/application/stock"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/inventory"
	"github.com/jhoicas/Doacoes-api/internal/infrastructure/memory"
	"github.com/jhoicas/Doacoes-api/pkg/metrics"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStore(t *testing.T, stocks map[string]string) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	for id, qty := range stocks {
		require.NoError(t, store.Repos().Products.Create(context.Background(), &entity.Product{ID: id, Name: id, CurrentStock: d(qty)}))
	}
	return store
}

func stockOf(t *testing.T, store *memory.Store, id string) decimal.Decimal {
	t.Helper()
	p, err := store.Repos().Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func TestLedger_ApplyYRevertSonInversos(t *testing.T) {
	store := newStore(t, map[string]string{"p1": "10"})
	ledger := stock.NewLedger(stock.LedgerConfig{AllowNegative: true}, nil, nil)
	ctx := context.Background()
	mv := stock.Movement{ProductID: "p1", Effect: inventory.DecreaseBy(d("4")), SourceType: entity.SourceExit, SourceID: "e1", Actor: "u1"}

	err := store.Run(ctx, func(r stock.Repos) error {
		out, err := ledger.Apply(ctx, r, mv)
		require.NoError(t, err)
		assert.True(t, out.Applied)
		assert.True(t, out.PreviousStock.Equal(d("10")))
		assert.True(t, out.NewStock.Equal(d("6")))

		out, err = ledger.Revert(ctx, r, mv)
		require.NoError(t, err)
		assert.Equal(t, entity.OperationRevert, out.Operation)
		assert.Equal(t, inventory.Increase, out.Effect.Direction)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, stockOf(t, store, "p1").Equal(d("10")))

	movs, err := store.Repos().Movements.ListByProduct(ctx, "p1", 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	sum, n, err := store.Repos().Movements.SumByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, sum.IsZero())
	for _, m := range movs {
		assert.Equal(t, "u1", m.CreatedBy)
		assert.Equal(t, "e1", m.SourceID)
	}
}

func TestLedger_OmisionesNoSonError(t *testing.T) {
	store := newStore(t, map[string]string{"p1": "0"})
	reg := prometheus.NewRegistry()
	m := metrics.NewStockMetrics(reg)
	ledger := stock.NewLedger(stock.LedgerConfig{AllowNegative: true}, m, nil)
	ctx := context.Background()

	var skips []stock.Skip
	err := store.Run(ctx, func(r stock.Repos) error {
		var err error
		skips, err = ledger.ApplyAll(ctx, r, []stock.Movement{
			{ProductID: "", Effect: inventory.IncreaseBy(d("1"))},
			{ProductID: "p1", Effect: inventory.IncreaseBy(d("2"))},
			{ProductID: "nope", Effect: inventory.IncreaseBy(d("3"))},
		})
		return err
	})
	require.NoError(t, err)

	require.Len(t, skips, 2)
	assert.Equal(t, stock.Skip{Index: 0, Operation: entity.OperationApply, Reason: stock.SkipNoProductReference}, skips[0])
	assert.Equal(t, stock.Skip{Index: 2, ProductID: "nope", Operation: entity.OperationApply, Reason: stock.SkipProductNotFound}, skips[1])
	assert.True(t, stockOf(t, store, "p1").Equal(d("2")))

	assert.Equal(t, 2, mustGatherCount(t, reg, "stock_adjustments_total"))
}

func TestLedger_NegativoConfigurable(t *testing.T) {
	ctx := context.Background()
	mv := stock.Movement{ProductID: "p1", Effect: inventory.DecreaseBy(d("3"))}

	store := newStore(t, map[string]string{"p1": "1"})
	strict := stock.NewLedger(stock.LedgerConfig{AllowNegative: false}, nil, nil)
	err := store.Run(ctx, func(r stock.Repos) error {
		_, err := strict.Apply(ctx, r, mv)
		return err
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, stockOf(t, store, "p1").Equal(d("1")))

	lenient := stock.NewLedger(stock.LedgerConfig{AllowNegative: true}, nil, nil)
	err = store.Run(ctx, func(r stock.Repos) error {
		_, err := lenient.Apply(ctx, r, mv)
		return err
	})
	require.NoError(t, err)
	assert.True(t, stockOf(t, store, "p1").Equal(d("-2")))
}

func TestLedger_ReposSinStock(t *testing.T) {
	ledger := stock.NewLedger(stock.LedgerConfig{}, nil, nil)
	_, err := ledger.Apply(context.Background(), stock.Repos{}, stock.Movement{ProductID: "p1"})
	assert.Error(t, err)
	assert.Error(t, ledger.Lock(context.Background(), stock.Repos{}))
}

func TestLedger_Lock(t *testing.T) {
	store := newStore(t, map[string]string{"a": "0", "b": "0"})
	ledger := stock.NewLedger(stock.LedgerConfig{}, nil, nil)
	ctx := context.Background()

	err := store.Run(ctx, func(r stock.Repos) error {
		return ledger.Lock(ctx, r,
			[]stock.Movement{{ProductID: "b"}, {ProductID: ""}},
			[]stock.Movement{{ProductID: "a"}, {ProductID: "b"}},
		)
	})
	assert.NoError(t, err)
}

func TestReconciler(t *testing.T) {
	store := newStore(t, map[string]string{"p1": "0", "p2": "7"})
	ledger := stock.NewLedger(stock.LedgerConfig{AllowNegative: true}, nil, nil)
	ctx := context.Background()

	require.NoError(t, store.Run(ctx, func(r stock.Repos) error {
		_, err := ledger.ApplyAll(ctx, r, []stock.Movement{
			{ProductID: "p1", Effect: inventory.IncreaseBy(d("5")), SourceType: entity.SourceLaunch, SourceID: "l1"},
			{ProductID: "p1", Effect: inventory.DecreaseBy(d("2")), SourceType: entity.SourceExit, SourceID: "e1"},
		})
		return err
	}))

	rec := stock.NewReconciler(store.Repos().Products, store.Repos().Movements)

	ok, err := rec.Reconcile(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok.Consistent)
	assert.True(t, ok.JournalBalance.Equal(d("3")))
	assert.Equal(t, 2, ok.Movements)

	// p2 se creó con stock 7 sin pasar por el ledger.
	drift, err := rec.Reconcile(ctx, "p2")
	require.NoError(t, err)
	assert.False(t, drift.Consistent)
	assert.True(t, drift.Drift.Equal(d("7")))

	_, err = rec.Reconcile(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	movs, err := rec.ListMovements(ctx, "p1", 1, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func mustGatherCount(t *testing.T, reg *prometheus.Registry, name string) int {
	t.Helper()
	n, err := testutil.GatherAndCount(reg, name)
	require.NoError(t, err)
	return n
}
