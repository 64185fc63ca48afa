package inventory

import (
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LaunchTotal = Σ(cantidad × precio unitario). Se recalcula completo en cada escritura de cabecera.
func LaunchTotal(items []entity.LaunchItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
