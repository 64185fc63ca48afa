package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock inicia en 0.
// ID es opcional; si viene vacío se genera un UUID.
type CreateProductRequest struct {
	ID           string          `json:"id,omitempty" validate:"max=64"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	UnitMeasure  string          `json:"unitMeasure" validate:"max=20"`
	MinimumStock decimal.Decimal `json:"minimumStock" validate:"gte=0"`
	UnitPrice    decimal.Decimal `json:"unitPrice" validate:"gte=0"`
	Category     string          `json:"category,omitempty"`
	Sector       string          `json:"sector,omitempty"`
}

// UpdateProductRequest reemplaza los metadatos (sin stock).
type UpdateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	UnitMeasure  string          `json:"unitMeasure" validate:"max=20"`
	MinimumStock decimal.Decimal `json:"minimumStock" validate:"gte=0"`
	UnitPrice    decimal.Decimal `json:"unitPrice" validate:"gte=0"`
	Category     string          `json:"category,omitempty"`
	Sector       string          `json:"sector,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinimumStock decimal.Decimal `json:"minimumStock"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	UnitMeasure  string          `json:"unitMeasure"`
	Category     string          `json:"category,omitempty"`
	Sector       string          `json:"sector,omitempty"`
	BelowMinimum bool            `json:"belowMinimum"`
	Deleted      bool            `json:"deleted,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// StockMovementResponse fila del diario de stock.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	Delta         decimal.Decimal `json:"delta"`
	PreviousStock decimal.Decimal `json:"previousStock"`
	NewStock      decimal.Decimal `json:"newStock"`
	SourceType    string          `json:"sourceType"`
	SourceID      string          `json:"sourceId"`
	Operation     string          `json:"operation"`
	CreatedBy     string          `json:"createdBy,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// StockMovementListResponse diario paginado.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ReconciliationResponse resultado de comparar stock actual contra el diario.
type ReconciliationResponse struct {
	ProductID      string          `json:"productId"`
	CurrentStock   decimal.Decimal `json:"currentStock"`
	JournalBalance decimal.Decimal `json:"journalBalance"`
	Drift          decimal.Decimal `json:"drift"`
	Movements      int             `json:"movements"`
	Consistent     bool            `json:"consistent"`
}
