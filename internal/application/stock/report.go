package stock

import "github.com/jhoicas/Doacoes-api/internal/application/dto"

// SkippedDTO convierte las omisiones del ledger al formato de respuesta. Nunca devuelve nil.
func SkippedDTO(skips []Skip) []dto.SkippedItem {
	out := make([]dto.SkippedItem, 0, len(skips))
	for _, s := range skips {
		out = append(out, dto.SkippedItem{
			Index:     s.Index,
			ProductID: s.ProductID,
			Operation: s.Operation,
			Reason:    string(s.Reason),
		})
	}
	return out
}
