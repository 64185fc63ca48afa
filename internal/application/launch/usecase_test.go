package launch_test

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
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/inventory"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
	"github.com/jhoicas/Doacoes-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	uc    *launch.UseCase
	store *memory.Store
}

func setup(t *testing.T, allowNegative bool, stocks map[string]string) fixture {
	t.Helper()
	store := memory.NewStore()
	for id, qty := range stocks {
		require.NoError(t, store.Repos().Products.Create(context.Background(), &entity.Product{
			ID: id, Name: "Produto " + id, CurrentStock: d(qty), UnitMeasure: "un",
		}))
	}
	ledger := stock.NewLedger(stock.LedgerConfig{AllowNegative: allowNegative}, nil, nil)
	classifier := inventory.NewKindClassifier(inventory.DefaultIncomingKinds())
	uc := launch.NewUseCase(store, store.Repos().Launches, ledger, classifier, nil, nil)
	return fixture{uc: uc, store: store}
}

func (f fixture) stockOf(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	p, err := f.store.Repos().Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func request(kind string, items ...dto.LaunchItemRequest) dto.LaunchRequest {
	return dto.LaunchRequest{Type: kind, Items: items}
}

func item(productID, qty, price string) dto.LaunchItemRequest {
	return dto.LaunchItemRequest{ProductID: productID, Quantity: d(qty), UnitPrice: d(price)}
}

func TestCreate_ConservaStock(t *testing.T) {
	f := setup(t, true, map[string]string{"p1": "1", "p2": "0", "p3": "9"})
	ctx := context.Background()

	res, err := f.uc.Create(ctx, "u1", request("Doação", item("p1", "3", "0"), item("p2", "5", "2")))
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Empty(t, res.Skipped)

	assert.True(t, f.stockOf(t, "p1").Equal(d("4")))
	assert.True(t, f.stockOf(t, "p2").Equal(d("5")))
	assert.True(t, f.stockOf(t, "p3").Equal(d("9")), "producto no referenciado no cambia")
}

func TestCreate_TipoSalidaDisminuye(t *testing.T) {
	f := setup(t, true, map[string]string{"p1": "2"})

	_, err := f.uc.Create(context.Background(), "", request("Saída", item("p1", "5", "0")))
	require.NoError(t, err)
	assert.True(t, f.stockOf(t, "p1").Equal(d("-3")), "sin piso por defecto")
}

func TestUpdate_RevierteYReaplica(t *testing.T) {
	f := setup(t, true, map[string]string{"p1": "7"})
	ctx := context.Background()

	res, err := f.uc.Create(ctx, "", request("Entrada", item("p1", "10", "1")))
	require.NoError(t, err)
	afterCreate := f.stockOf(t, "p1")
	require.True(t, afterCreate.Equal(d("17")))

	_, err = f.uc.Update(ctx, "", res.ID, request("Entrada", item("p1", "4", "1")))
	require.NoError(t, err)

	got := f.stockOf(t, "p1")
	assert.True(t, got.Equal(afterCreate.Sub(d("6"))), "got %s", got)
	assert.True(t, got.Equal(d("11")), "pre-create + 4")
}

func TestUpdate_CambioDeTipo(t *testing.T) {
	f := setup(t, true, map[string]string{"p1": "20"})
	ctx := context.Background()

	res, err := f.uc.Create(ctx, "", request("Doação", item("p1", "5", "0")))
	require.NoError(t, err)
	afterCreate := f.stockOf(t, "p1")

	_, err = f.uc.Update(ctx, "", res.ID, request("Saída", item("p1", "5", "0")))
	require.NoError(t, err)

	assert.True(t, f.stockOf(t, "p1").Equal(afterCreate.Sub(d("10"))))
}

func TestUpdate_ReemplazaLineas(t *testing.T) {
	f := setup(t, true, map[string]string{"p1": "0", "p2": "0"})
	ctx := context.Background()

	res, err := f.uc.Create(ctx, "", request("Compra", item("p1", "3", "1"), item("p2", "2", "1")))
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, "", res.ID, request("Compra", item("p2", "1", "1")))
	require.NoError(t, err)

	assert.True(t, f.stockOf(t, "p1").IsZero(), "p1 removido del documento")
	assert.True(t, f.stockOf(t, "p2").Equal(d("1")))

	got, err := f.uc.GetByID(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p2", got.Items[0].ProductID)
}

func TestCreate_OmiteProductoInexistente(t *testing.T) {
	f := setup(t, true, map[string]string{"p1": "0", "p2": "0"})

	res, err := f.uc.Create(context.Background(), "", request("Doação",
		item("p1", "2", "0"),
		item("fantasma", "3", "0"),
		item("", "1", "0"),
		item("p2", "4", "0"),
	))
	require.NoError(t, err)

	assert.True(t, f.stockOf(t, "p1").Equal(d("2")))
	assert.True(t, f.stockOf(t, "p2").Equal(d("4")))
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, 1, res.Skipped[0].Index)
	assert.Equal(t, string(stock.SkipProductNotFound), res.Skipped[0].Reason)
	assert.Equal(t, 2, res.Skipped[1].Index)
	assert.Equal(t, string(stock.SkipNoProductReference), res.Skipped[1].Reason)
}

func TestUpdate_LineaSinProductoSeOmiteEnAmbasFases(t *testing.T) {
	f := setup(t, true, map[string]string{"p1": "0"})
	ctx := context.Background()

	res, err := f.uc.Create(ctx, "", request("Doação", item("", "3", "0"), item("p1", "1", "0")))
	require.NoError(t, err)

	upd, err := f.uc.Update(ctx, "", res.ID, request("Doação", item("", "3", "0")))
	require.NoError(t, err)

	assert.True(t, f.stockOf(t, "p1").IsZero())
	require.Len(t, upd.Skipped, 2)
	assert.Equal(t, "revert", upd.Skipped[0].Operation)
	assert.Equal(t, "apply", upd.Skipped[1].Operation)
}

func TestCreate_ItemsVaciosNoEscribe(t *testing.T) {
	f := setup(t, true, map[string]string{"p1": "5"})
	ctx := context.Background()

	_, err := f.uc.Create(ctx, "", request("Doação"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	in := request("Doação")
	in.Items = []dto.LaunchItemRequest{}
	_, err = f.uc.Create(ctx, "", in)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "items", ve.Field)

	list, err := f.store.Repos().Launches.List(ctx, repository.LaunchFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.True(t, f.stockOf(t, "p1").Equal(d("5")))
	_, n, err := f.store.Repos().Movements.SumByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreate_TipoObligatorio(t *testing.T) {
	f := setup(t, true, nil)
	_, err := f.uc.Create(context.Background(), "", request("", item("p1", "1", "0")))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestTotal_RecalculadoEnCadaEscritura(t *testing.T) {
	f := setup(t, true, map[string]string{"p1": "0", "p2": "0"})
	ctx := context.Background()

	res, err := f.uc.Create(ctx, "", request("Compra", item("p1", "2", "10.50"), item("p2", "3", "1")))
	require.NoError(t, err)
	got, err := f.uc.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalValue.Equal(d("24")), "total %s", got.TotalValue)
	assert.Equal(t, "increase", got.Direction)
	assert.Equal(t, launch.DefaultStatus, got.Status)

	_, err = f.uc.Update(ctx, "", res.ID, request("Compra", item("p1", "1", "7")))
	require.NoError(t, err)
	got, err = f.uc.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalValue.Equal(d("7")), "total %s", got.TotalValue)
}

func TestUpdate_NoEncontrado(t *testing.T) {
	f := setup(t, true, map[string]string{"p1": "1"})

	_, err := f.uc.Update(context.Background(), "", "no-existe", request("Doação", item("p1", "1", "0")))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, f.stockOf(t, "p1").Equal(d("1")))
}

func TestDelete_RevierteStock(t *testing.T) {
	f := setup(t, true, map[string]string{"p1": "3"})
	ctx := context.Background()

	res, err := f.uc.Create(ctx, "u1", request("Compra", item("p1", "4", "1")))
	require.NoError(t, err)
	require.True(t, f.stockOf(t, "p1").Equal(d("7")))

	_, err = f.uc.Delete(ctx, "u1", res.ID)
	require.NoError(t, err)
	assert.True(t, f.stockOf(t, "p1").Equal(d("3")))

	_, err = f.uc.GetByID(ctx, res.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.uc.Delete(ctx, "u1", res.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "solo se revierte una vez")

	movs, err := f.store.Repos().Movements.ListByProduct(ctx, "p1", 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	ops := []string{movs[0].Operation, movs[1].Operation}
	assert.ElementsMatch(t, []string{entity.OperationApply, entity.OperationRevert}, ops)
}

func TestCreate_FallaDeLineasHaceRollback(t *testing.T) {
	f := setup(t, true, map[string]string{"p1": "0"})
	ctx := context.Background()
	f.store.FailOn("launch.create_items", errors.New("conexión cerrada"))

	_, err := f.uc.Create(ctx, "", request("Doação", item("p1", "2", "0")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDependency))

	list, err := f.store.Repos().Launches.List(ctx, repository.LaunchFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list, "sin cabecera huérfana")
	assert.True(t, f.stockOf(t, "p1").IsZero())
}

func TestUpdate_FallaEnAplicacionHaceRollback(t *testing.T) {
	f := setup(t, true, map[string]string{"p1": "0"})
	ctx := context.Background()

	res, err := f.uc.Create(ctx, "", request("Doação", item("p1", "5", "2")))
	require.NoError(t, err)

	f.store.FailOn("launch.create_items", errors.New("timeout"))
	_, err = f.uc.Update(ctx, "", res.ID, request("Doação", item("p1", "1", "2")))
	require.Error(t, err)

	assert.True(t, f.stockOf(t, "p1").Equal(d("5")), "la fase de reversión no queda aplicada")
	got, err := f.uc.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalValue.Equal(d("10")))
	assert.Len(t, got.Items, 1)
}

func TestCreate_StockNegativoRechazado(t *testing.T) {
	f := setup(t, false, map[string]string{"p1": "2", "p2": "10"})
	ctx := context.Background()

	_, err := f.uc.Create(ctx, "", request("Saída", item("p2", "1", "0"), item("p1", "5", "0")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.True(t, f.stockOf(t, "p1").Equal(d("2")))
	assert.True(t, f.stockOf(t, "p2").Equal(d("10")), "el ajuste previo también se deshace")
}

func TestList_FiltraPorTipo(t *testing.T) {
	f := setup(t, true, map[string]string{"p1": "0"})
	ctx := context.Background()

	_, err := f.uc.Create(ctx, "", request("Doação", item("p1", "1", "0")))
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, "", request("Saída", item("p1", "1", "0")))
	require.NoError(t, err)

	all, err := f.uc.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, 20, all.Page.Limit)

	exits, err := f.uc.List(ctx, "saída", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, exits.Items, 1)
	assert.Equal(t, "decrease", exits.Items[0].Direction)
}
