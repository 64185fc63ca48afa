package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExitItemResponse línea de salida con la unidad vigente al donar.
type ExitItemResponse struct {
	ID          string          `json:"id"`
	Position    int             `json:"position"`
	ProductID   string          `json:"productId"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitMeasure string          `json:"unitMeasure"`
}

// ExitResponse salida (Saída) por donación.
type ExitResponse struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	Status      string             `json:"status"`
	Date        time.Time          `json:"date"`
	Beneficiary string             `json:"beneficiary,omitempty"`
	Destination string             `json:"destination,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	BasketID    string             `json:"basketId,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	Items       []ExitItemResponse `json:"items,omitempty"`
}

// ExitListResponse lista paginada de salidas.
type ExitListResponse struct {
	Items []ExitResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// DonationResult respuesta de una donación: la salida creada y las líneas omitidas.
type DonationResult struct {
	DocumentResult
	Exit ExitResponse `json:"exit"`
}
