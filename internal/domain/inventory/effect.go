// Package inventory contiene la aritmética pura del stock: efectos de un movimiento,
// clasificación de tipos de lanzamiento y totales de documentos.
package inventory

import "github.com/shopspring/decimal"

// Direction sentido de un efecto sobre el stock.
type Direction int

const (
	Increase Direction = iota + 1
	Decrease
)

func (d Direction) String() string {
	switch d {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	}
	return "unknown"
}

// Opposite devuelve el sentido contrario.
func (d Direction) Opposite() Direction {
	if d == Increase {
		return Decrease
	}
	return Increase
}

// Effect es el efecto de una línea sobre el stock de un producto.
// Revertir un efecto es aplicar Invert(); ambos caminos pasan por ApplyTo.
type Effect struct {
	Direction Direction
	Quantity  decimal.Decimal
}

// IncreaseBy construye un efecto de entrada.
func IncreaseBy(q decimal.Decimal) Effect { return Effect{Direction: Increase, Quantity: q} }

// DecreaseBy construye un efecto de salida.
func DecreaseBy(q decimal.Decimal) Effect { return Effect{Direction: Decrease, Quantity: q} }

// Invert devuelve el inverso algebraico: misma cantidad, sentido contrario.
func (e Effect) Invert() Effect {
	return Effect{Direction: e.Direction.Opposite(), Quantity: e.Quantity}
}

// Delta devuelve la variación con signo que produce el efecto.
func (e Effect) Delta() decimal.Decimal {
	if e.Direction == Decrease {
		return e.Quantity.Neg()
	}
	return e.Quantity
}

// ApplyTo calcula el nuevo stock. No hay piso ni techo: una salida puede dejar stock negativo.
func (e Effect) ApplyTo(current decimal.Decimal) decimal.Decimal {
	return current.Add(e.Delta())
}
