package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BasketItemRequest par producto/cantidad de una cesta.
type BasketItemRequest struct {
	ProductID string          `json:"productId" validate:"required,max=64"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
}

// BasketRequest body para crear o reemplazar una cesta.
type BasketRequest struct {
	Name        string              `json:"name" validate:"required,max=200"`
	Description string              `json:"description,omitempty" validate:"max=2000"`
	Items       []BasketItemRequest `json:"items" validate:"dive"`
}

// DonateBasketRequest body para POST /api/baskets/:id/donate. Date por defecto: ahora.
type DonateBasketRequest struct {
	Beneficiary string `json:"beneficiary,omitempty" validate:"max=200"`
	Destination string `json:"destination,omitempty" validate:"max=200"`
	Notes       string `json:"notes,omitempty" validate:"max=2000"`
	Date        *Date  `json:"date,omitempty"`
}

// BasketItemResponse línea de cesta.
type BasketItemResponse struct {
	ID        string          `json:"id"`
	Position  int             `json:"position"`
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// BasketResponse cesta con sus líneas.
type BasketResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Items       []BasketItemResponse `json:"items,omitempty"`
}

// BasketListResponse lista paginada de cestas.
type BasketListResponse struct {
	Items []BasketResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
