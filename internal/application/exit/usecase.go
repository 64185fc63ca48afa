// Package exit consulta las salidas por donación y genera su comprobante.
package exit

import (
	"context"

	"github.com/jhoicas/Doacoes-api/internal/application/dto"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
)

// ReceiptLine línea del comprobante con el nombre del producto resuelto.
type ReceiptLine struct {
	ProductID   string
	ProductName string
	Item        entity.ExitItem
}

// ReceiptGenerator puerto para generar el comprobante PDF de una donación.
type ReceiptGenerator interface {
	GenerateDonationReceipt(exit *entity.Exit, lines []ReceiptLine) ([]byte, error)
}

// UseCase lectura de salidas.
type UseCase struct {
	exitRepo    repository.ExitRepository
	productRepo repository.ProductRepository
	receipts    ReceiptGenerator
}

// NewUseCase construye el caso de uso. receipts puede ser nil si no se expone el comprobante.
func NewUseCase(exitRepo repository.ExitRepository, productRepo repository.ProductRepository, receipts ReceiptGenerator) *UseCase {
	return &UseCase{exitRepo: exitRepo, productRepo: productRepo, receipts: receipts}
}

// GetByID devuelve la salida con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ExitResponse, error) {
	e, items, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToResponse(e, items)
	return &out, nil
}

// List salidas paginadas, más recientes primero.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ExitListResponse, error) {
	page.DefaultPage()
	list, err := uc.exitRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ExitListResponse{
		Items: make([]dto.ExitResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, e := range list {
		out.Items = append(out.Items, ToResponse(e, nil))
	}
	return out, nil
}

// Receipt genera el PDF de la donación. Los productos eliminados o inexistentes se imprimen por id.
func (uc *UseCase) Receipt(ctx context.Context, id string) ([]byte, error) {
	if uc.receipts == nil {
		return nil, domain.NewDependencyError("exit.receipt", errNoGenerator)
	}
	e, items, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	lines := make([]ReceiptLine, 0, len(items))
	for _, it := range items {
		name := it.ProductID
		p, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			name = p.Name
		}
		lines = append(lines, ReceiptLine{ProductID: it.ProductID, ProductName: name, Item: it})
	}
	return uc.receipts.GenerateDonationReceipt(e, lines)
}

func (uc *UseCase) load(ctx context.Context, id string) (*entity.Exit, []entity.ExitItem, error) {
	e, err := uc.exitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if e == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.exitRepo.ListItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return e, items, nil
}

// ToResponse convierte la salida y sus líneas (opcionales) al DTO.
func ToResponse(e *entity.Exit, items []entity.ExitItem) dto.ExitResponse {
	out := dto.ExitResponse{
		ID:          e.ID,
		Type:        e.Type,
		Status:      e.Status,
		Date:        e.Date,
		Beneficiary: e.Beneficiary,
		Destination: e.Destination,
		Notes:       e.Notes,
		BasketID:    e.BasketID,
		CreatedAt:   e.CreatedAt,
	}
	if items != nil {
		out.Items = make([]dto.ExitItemResponse, 0, len(items))
		for _, it := range items {
			out.Items = append(out.Items, dto.ExitItemResponse{
				ID:          it.ID,
				Position:    it.Position,
				ProductID:   it.ProductID,
				Quantity:    it.Quantity,
				UnitMeasure: it.UnitMeasure,
			})
		}
	}
	return out
}
