package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEffect_InvertIsInverse(t *testing.T) {
	start := d("7")
	for _, e := range []inventory.Effect{
		inventory.IncreaseBy(d("3")),
		inventory.DecreaseBy(d("12.5")),
	} {
		after := e.ApplyTo(start)
		back := e.Invert().ApplyTo(after)
		assert.True(t, back.Equal(start), "aplicar y revertir %v debe volver a %s, obtuvo %s", e, start, back)
		assert.Equal(t, e, e.Invert().Invert())
	}
}

func TestEffect_DecreaseSinPiso(t *testing.T) {
	got := inventory.DecreaseBy(d("5")).ApplyTo(d("2"))
	assert.True(t, got.Equal(d("-3")), "no se aplica clamp: %s", got)
}

func TestEffect_Delta(t *testing.T) {
	assert.True(t, inventory.IncreaseBy(d("4")).Delta().Equal(d("4")))
	assert.True(t, inventory.DecreaseBy(d("4")).Delta().Equal(d("-4")))
}

func TestKindClassifier(t *testing.T) {
	c := inventory.NewKindClassifier(inventory.DefaultIncomingKinds())

	assert.Equal(t, inventory.Increase, c.Direction("Doação"))
	assert.Equal(t, inventory.Increase, c.Direction("Compra"))
	assert.Equal(t, inventory.Increase, c.Direction(" entrada "))
	assert.Equal(t, inventory.Decrease, c.Direction("Saída"))
	assert.Equal(t, inventory.Decrease, c.Direction("Perda"))
	assert.Equal(t, inventory.Decrease, c.Direction(""))

	custom := inventory.NewKindClassifier([]string{"Devolução", " "})
	assert.True(t, custom.IsIncoming("devolução"))
	assert.False(t, custom.IsIncoming("Doação"))

	assert.True(t, inventory.SameKind(" SAÍDA", "saída"))
	assert.False(t, inventory.SameKind("Compra", "Doação"))
}

func TestLaunchTotal(t *testing.T) {
	items := []entity.LaunchItem{
		{Quantity: d("2"), UnitPrice: d("10.50")},
		{Quantity: d("3"), UnitPrice: d("1")},
		{Quantity: d("1.5"), UnitPrice: d("0")},
	}
	assert.True(t, inventory.LaunchTotal(items).Equal(d("24")))
	assert.True(t, inventory.LaunchTotal(nil).IsZero())
}
