package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Doacoes-api/internal/application/dto"
	"github.com/jhoicas/Doacoes-api/internal/application/stock"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
	"github.com/jhoicas/Doacoes-api/pkg/validation"
)

// ProductUseCase casos de uso de metadatos de producto. El stock solo cambia vía lanzamientos y donaciones.
type ProductUseCase struct {
	repo       repository.ProductRepository
	reconciler *stock.Reconciler
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, reconciler *stock.Reconciler) *ProductUseCase {
	return &ProductUseCase{repo: repo, reconciler: reconciler}
}

// Create crea un nuevo producto. El stock inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.New().String()
	} else {
		existing, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:           id,
		Name:         strings.TrimSpace(in.Name),
		CurrentStock: decimal.Zero,
		MinimumStock: in.MinimumStock,
		UnitPrice:    in.UnitPrice,
		UnitMeasure:  in.UnitMeasure,
		CategoryID:   in.Category,
		SectorID:     in.Sector,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID (incluye retirados).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update reemplaza los metadatos. No permite modificar el stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Deleted {
		return nil, domain.ErrNotFound
	}
	product.Name = strings.TrimSpace(in.Name)
	product.UnitMeasure = in.UnitMeasure
	product.MinimumStock = in.MinimumStock
	product.UnitPrice = in.UnitPrice
	product.CategoryID = in.Category
	product.SectorID = in.Sector
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos activos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductList(list, page), nil
}

// LowStock productos activos por debajo del stock mínimo, mayor déficit primero.
func (uc *ProductUseCase) LowStock(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	return toProductList(list, dto.PageRequest{Limit: len(list)}), nil
}

// Delete marca el producto como retirado (deletado). Nunca se borra físicamente.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil || product.Deleted {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(ctx, id)
}

// Movements diario de stock del producto.
func (uc *ProductUseCase) Movements(ctx context.Context, id string, page dto.PageRequest) (*dto.StockMovementListResponse, error) {
	page.DefaultPage()
	list, err := uc.reconciler.ListMovements(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.StockMovementListResponse{
		Items: make([]dto.StockMovementResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, m := range list {
		out.Items = append(out.Items, dto.StockMovementResponse{
			ID:            m.ID,
			Delta:         m.Delta,
			PreviousStock: m.PreviousStock,
			NewStock:      m.NewStock,
			SourceType:    m.SourceType,
			SourceID:      m.SourceID,
			Operation:     m.Operation,
			CreatedBy:     m.CreatedBy,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}

// Reconciliation compara el stock actual con el saldo del diario.
func (uc *ProductUseCase) Reconciliation(ctx context.Context, id string) (*dto.ReconciliationResponse, error) {
	rec, err := uc.reconciler.Reconcile(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ReconciliationResponse{
		ProductID:      rec.ProductID,
		CurrentStock:   rec.CurrentStock,
		JournalBalance: rec.JournalBalance,
		Drift:          rec.Drift,
		Movements:      rec.Movements,
		Consistent:     rec.Consistent,
	}, nil
}

func toProductList(list []*entity.Product, page dto.PageRequest) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		CurrentStock: p.CurrentStock,
		MinimumStock: p.MinimumStock,
		UnitPrice:    p.UnitPrice,
		UnitMeasure:  p.UnitMeasure,
		Category:     p.CategoryID,
		Sector:       p.SectorID,
		BelowMinimum: p.BelowMinimum(),
		Deleted:      p.Deleted,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
