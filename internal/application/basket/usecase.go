// Package basket administra las cestas (plantillas de donación) y su donación como salida de stock.
package basket

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Doacoes-api/internal/application/dto"
	"github.com/jhoicas/Doacoes-api/internal/application/exit"
	"github.com/jhoicas/Doacoes-api/internal/application/stock"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/inventory"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
	"github.com/jhoicas/Doacoes-api/pkg/logger"
	"github.com/jhoicas/Doacoes-api/pkg/metrics"
	"github.com/jhoicas/Doacoes-api/pkg/validation"
)

// UseCase cestas y donaciones.
type UseCase struct {
	txRunner   stock.TxRunner
	basketRepo repository.BasketRepository
	ledger     *stock.Ledger
	metrics    *metrics.StockMetrics
	log        *logger.Logger
	now        func() time.Time
}

// NewUseCase construye el caso de uso. basketRepo se usa para lecturas fuera de transacción.
func NewUseCase(txRunner stock.TxRunner, basketRepo repository.BasketRepository, ledger *stock.Ledger, m *metrics.StockMetrics, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{txRunner: txRunner, basketRepo: basketRepo, ledger: ledger, metrics: m, log: log, now: time.Now}
}

// Create crea la cesta con sus ítems. Una cesta puede definirse sin ítems.
func (uc *UseCase) Create(ctx context.Context, in dto.BasketRequest) (*dto.BasketResponse, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	now := uc.now()
	b := &entity.Basket{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	items := newItems(b.ID, in.Items)
	err := uc.txRunner.Run(ctx, func(r stock.Repos) error {
		if err := r.Baskets.Create(ctx, b); err != nil {
			return err
		}
		return r.Baskets.CreateItems(ctx, b.ID, items)
	})
	if err != nil {
		return nil, err
	}
	out := toResponse(b, items)
	return &out, nil
}

// Update sobrescribe la cabecera y reemplaza todos los ítems. No toca stock.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.BasketRequest) (*dto.BasketResponse, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	items := newItems(id, in.Items)
	var b *entity.Basket
	err := uc.txRunner.Run(ctx, func(r stock.Repos) error {
		cur, err := activeBasket(ctx, r.Baskets, id)
		if err != nil {
			return err
		}
		b = &entity.Basket{
			ID:          id,
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			CreatedAt:   cur.CreatedAt,
			UpdatedAt:   uc.now(),
		}
		if err := r.Baskets.Update(ctx, b); err != nil {
			return err
		}
		if err := r.Baskets.DeleteItems(ctx, id); err != nil {
			return err
		}
		return r.Baskets.CreateItems(ctx, id, items)
	})
	if err != nil {
		return nil, err
	}
	out := toResponse(b, items)
	return &out, nil
}

// Delete marca la cesta como eliminada (deletado). Las salidas ya generadas no cambian.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r stock.Repos) error {
		if _, err := activeBasket(ctx, r.Baskets, id); err != nil {
			return err
		}
		return r.Baskets.SoftDelete(ctx, id)
	})
}

// GetByID devuelve una cesta activa con sus ítems.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.BasketResponse, error) {
	b, err := activeBasket(ctx, uc.basketRepo, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.basketRepo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toResponse(b, items)
	return &out, nil
}

// List cestas activas, por nombre.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.BasketListResponse, error) {
	page.DefaultPage()
	list, err := uc.basketRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.BasketListResponse{
		Items: make([]dto.BasketResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, b := range list {
		out.Items = append(out.Items, toResponse(b, nil))
	}
	return out, nil
}

// Donate expande la cesta en una salida "Doação" y descuenta cada ítem del stock.
// La unidad de cada línea se copia del producto en este momento.
func (uc *UseCase) Donate(ctx context.Context, actor, basketID string, in dto.DonateBasketRequest) (res *dto.DonationResult, err error) {
	defer func(started time.Time) { uc.metrics.ObserveDocument("basket_donate", started, err) }(time.Now())

	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	now := uc.now()
	date := now
	if in.Date != nil && !in.Date.IsZero() {
		date = in.Date.Time
	}

	var (
		header    *entity.Exit
		exitItems []entity.ExitItem
		skips     []stock.Skip
	)
	err = uc.txRunner.Run(ctx, func(r stock.Repos) error {
		b, err := activeBasket(ctx, r.Baskets, basketID)
		if err != nil {
			return err
		}
		items, err := r.Baskets.ListItems(ctx, basketID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.NewValidationError("items", "la cesta no tiene ítems")
		}

		header = &entity.Exit{
			ID:          uuid.New().String(),
			Type:        entity.ExitTypeDonation,
			Status:      entity.ExitStatusDone,
			Date:        date,
			Beneficiary: strings.TrimSpace(in.Beneficiary),
			Destination: strings.TrimSpace(in.Destination),
			Notes:       donationNotes(b.Name, in.Notes),
			BasketID:    b.ID,
			CreatedAt:   now,
		}

		movs := make([]stock.Movement, 0, len(items))
		for _, it := range items {
			movs = append(movs, stock.Movement{
				ProductID:  it.ProductID,
				Effect:     inventory.DecreaseBy(it.Quantity),
				SourceType: entity.SourceExit,
				SourceID:   header.ID,
				Actor:      actor,
			})
		}
		if err := uc.ledger.Lock(ctx, r, movs); err != nil {
			return err
		}

		exitItems = make([]entity.ExitItem, 0, len(items))
		for i, it := range items {
			unit := ""
			p, err := r.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if p != nil {
				unit = p.UnitMeasure
			}
			exitItems = append(exitItems, entity.ExitItem{
				ID:          uuid.New().String(),
				ExitID:      header.ID,
				Position:    i,
				ProductID:   it.ProductID,
				Quantity:    it.Quantity,
				UnitMeasure: unit,
			})
		}

		if err := r.Exits.Create(ctx, header); err != nil {
			return err
		}
		if err := r.Exits.CreateItems(ctx, header.ID, exitItems); err != nil {
			return err
		}
		skips, err = uc.ledger.ApplyAll(ctx, r, movs)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("basket_id", basketID).
		Str("exit_id", header.ID).
		Int("items", len(exitItems)).
		Int("skipped", len(skips)).
		Msg("cesta donada")
	return &dto.DonationResult{
		DocumentResult: dto.DocumentResult{ID: header.ID, Skipped: stock.SkippedDTO(skips)},
		Exit:           exit.ToResponse(header, exitItems),
	}, nil
}

// donationNotes deja el nombre de la cesta en las observaciones de la salida.
func donationNotes(basketName, notes string) string {
	out := "Cesta: " + basketName
	if n := strings.TrimSpace(notes); n != "" {
		out += " | " + n
	}
	return out
}

func activeBasket(ctx context.Context, repo repository.BasketRepository, id string) (*entity.Basket, error) {
	b, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil || b.Deleted {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func newItems(basketID string, in []dto.BasketItemRequest) []entity.BasketItem {
	items := make([]entity.BasketItem, 0, len(in))
	for i, it := range in {
		items = append(items, entity.BasketItem{
			ID:        uuid.New().String(),
			BasketID:  basketID,
			Position:  i,
			ProductID: strings.TrimSpace(it.ProductID),
			Quantity:  it.Quantity,
		})
	}
	return items
}

func toResponse(b *entity.Basket, items []entity.BasketItem) dto.BasketResponse {
	out := dto.BasketResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if items != nil {
		out.Items = make([]dto.BasketItemResponse, 0, len(items))
		for _, it := range items {
			out.Items = append(out.Items, dto.BasketItemResponse{
				ID:        it.ID,
				Position:  it.Position,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			})
		}
	}
	return out
}
