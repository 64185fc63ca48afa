package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultIncomingKinds tipos de lanzamiento que suman stock si no se configura otra cosa.
func DefaultIncomingKinds() []string {
	return []string{"Doação", "Compra", "Entrada"}
}

// KindClassifier decide si un tipo de lanzamiento es de entrada (Increase) o salida (Decrease).
// Todo tipo no listado como entrada se considera salida.
type KindClassifier struct {
	incoming map[string]struct{}
}

// NewKindClassifier construye el clasificador. La comparación ignora mayúsculas y espacios.
func NewKindClassifier(incoming []string) KindClassifier {
	set := make(map[string]struct{}, len(incoming))
	for _, k := range incoming {
		if key := normalizeKind(k); key != "" {
			set[key] = struct{}{}
		}
	}
	return KindClassifier{incoming: set}
}

// IsIncoming indica si kind suma stock.
func (c KindClassifier) IsIncoming(kind string) bool {
	_, ok := c.incoming[normalizeKind(kind)]
	return ok
}

// Direction devuelve el sentido que aplica kind.
func (c KindClassifier) Direction(kind string) Direction {
	if c.IsIncoming(kind) {
		return Increase
	}
	return Decrease
}

// EffectFor construye el efecto de una línea de cantidad q en un documento de tipo kind.
func (c KindClassifier) EffectFor(kind string, q decimal.Decimal) Effect {
	return Effect{Direction: c.Direction(kind), Quantity: q}
}

func normalizeKind(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

// SameKind compara dos tipos de lanzamiento con la misma normalización del clasificador.
func SameKind(a, b string) bool {
	return normalizeKind(a) == normalizeKind(b)
}
