package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LaunchItemRequest línea de un lanzamiento. ProductID vacío se acepta y el ledger la omite.
type LaunchItemRequest struct {
	ProductID string          `json:"productId" validate:"max=64"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gte=0"`
	Validity  *Date           `json:"validity,omitempty"`
	Sector    string          `json:"sector,omitempty"`
	Category  string          `json:"category,omitempty"`
	Unit      string          `json:"unit,omitempty"`
}

// LaunchRequest body para POST /api/launches y PUT /api/launches/:id.
type LaunchRequest struct {
	Type          string              `json:"type" validate:"required,max=60"`
	Status        string              `json:"status" validate:"max=60"`
	EmissionDate  *Date               `json:"emissionDate,omitempty"`
	ReceptionDate *Date               `json:"receptionDate,omitempty"`
	Provider      string              `json:"provider,omitempty"`
	Unit          string              `json:"unit,omitempty"`
	NoteNumber    string              `json:"noteNumber,omitempty" validate:"max=60"`
	Notes         string              `json:"notes,omitempty" validate:"max=2000"`
	Items         []LaunchItemRequest `json:"items" validate:"required,min=1,dive"`
}

// LaunchItemResponse línea persistida.
type LaunchItemResponse struct {
	ID        string          `json:"id"`
	Position  int             `json:"position"`
	ProductID string          `json:"productId,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Validity  *time.Time      `json:"validity,omitempty"`
	Sector    string          `json:"sector,omitempty"`
	Category  string          `json:"category,omitempty"`
	Unit      string          `json:"unit,omitempty"`
}

// LaunchResponse cabecera con sus líneas.
type LaunchResponse struct {
	ID            string               `json:"id"`
	Type          string               `json:"type"`
	Direction     string               `json:"direction"`
	Status        string               `json:"status"`
	EmissionDate  *time.Time           `json:"emissionDate,omitempty"`
	ReceptionDate *time.Time           `json:"receptionDate,omitempty"`
	Provider      string               `json:"provider,omitempty"`
	Unit          string               `json:"unit,omitempty"`
	NoteNumber    string               `json:"noteNumber,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	TotalValue    decimal.Decimal      `json:"totalValue"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
	Items         []LaunchItemResponse `json:"items,omitempty"`
}

// LaunchListResponse lista paginada de cabeceras.
type LaunchListResponse struct {
	Items []LaunchResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
