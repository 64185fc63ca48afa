// Package launch orquesta los lanzamientos de stock (entradas y salidas): cabecera, líneas
// y los ajustes del Ledger, todo en una transacción por operación.
package launch

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Doacoes-api/internal/application/dto"
	"github.com/jhoicas/Doacoes-api/internal/application/stock"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/inventory"
	"github.com/jhoicas/Doacoes-api/internal/domain/repository"
	"github.com/jhoicas/Doacoes-api/pkg/logger"
	"github.com/jhoicas/Doacoes-api/pkg/metrics"
	"github.com/jhoicas/Doacoes-api/pkg/validation"
)

// DefaultStatus estado asignado cuando el request no trae uno.
const DefaultStatus = "Concluído"

// UseCase casos de uso de lanzamientos.
type UseCase struct {
	txRunner   stock.TxRunner
	launchRepo repository.LaunchRepository
	ledger     *stock.Ledger
	classifier inventory.KindClassifier
	metrics    *metrics.StockMetrics
	log        *logger.Logger
	now        func() time.Time
}

// NewUseCase construye el caso de uso. launchRepo se usa solo para lecturas fuera de transacción.
func NewUseCase(
	txRunner stock.TxRunner,
	launchRepo repository.LaunchRepository,
	ledger *stock.Ledger,
	classifier inventory.KindClassifier,
	m *metrics.StockMetrics,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner:   txRunner,
		launchRepo: launchRepo,
		ledger:     ledger,
		classifier: classifier,
		metrics:    m,
		log:        log,
		now:        time.Now,
	}
}

// Create valida, persiste cabecera y líneas y aplica cada línea al stock según el tipo.
// Ninguna escritura ocurre si la validación falla.
func (uc *UseCase) Create(ctx context.Context, actor string, in dto.LaunchRequest) (res *dto.DocumentResult, err error) {
	defer func(started time.Time) { uc.metrics.ObserveDocument("launch_create", started, err) }(time.Now())

	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	now := uc.now()
	header := newHeader(uuid.New().String(), in, now)
	items := newItems(header.ID, in.Items)
	header.TotalValue = inventory.LaunchTotal(items)
	movs := uc.movements(header.Type, header.ID, items, actor)

	var skips []stock.Skip
	err = uc.txRunner.Run(ctx, func(r stock.Repos) error {
		if err := uc.ledger.Lock(ctx, r, movs); err != nil {
			return err
		}
		if err := r.Launches.Create(ctx, header); err != nil {
			return err
		}
		if err := r.Launches.CreateItems(ctx, header.ID, items); err != nil {
			return err
		}
		var err error
		skips, err = uc.ledger.ApplyAll(ctx, r, movs)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("launch_id", header.ID).
		Str("type", header.Type).
		Str("direction", uc.classifier.Direction(header.Type).String()).
		Int("items", len(items)).
		Int("skipped", len(skips)).
		Msg("lanzamiento creado")
	return &dto.DocumentResult{ID: header.ID, Skipped: stock.SkippedDTO(skips)}, nil
}

// Update reemplaza el lanzamiento: revierte todas las líneas viejas con el tipo viejo,
// sobrescribe la cabecera (total recalculado), reemplaza las líneas y aplica las nuevas con el tipo nuevo.
func (uc *UseCase) Update(ctx context.Context, actor, id string, in dto.LaunchRequest) (res *dto.DocumentResult, err error) {
	defer func(started time.Time) { uc.metrics.ObserveDocument("launch_update", started, err) }(time.Now())

	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	newItemsList := newItems(id, in.Items)
	var skips []stock.Skip
	var oldType string
	err = uc.txRunner.Run(ctx, func(r stock.Repos) error {
		old, err := r.Launches.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		oldType = old.Type
		oldItems, err := r.Launches.ListItems(ctx, id)
		if err != nil {
			return err
		}

		oldMovs := uc.movements(old.Type, id, oldItems, actor)
		newMovs := uc.movements(in.Type, id, newItemsList, actor)
		if err := uc.ledger.Lock(ctx, r, oldMovs, newMovs); err != nil {
			return err
		}

		reverted, err := uc.ledger.RevertAll(ctx, r, oldMovs)
		if err != nil {
			return err
		}

		header := newHeader(id, in, uc.now())
		header.CreatedAt = old.CreatedAt
		header.TotalValue = inventory.LaunchTotal(newItemsList)
		if err := r.Launches.Update(ctx, header); err != nil {
			return err
		}
		if err := r.Launches.DeleteItems(ctx, id); err != nil {
			return err
		}
		if err := r.Launches.CreateItems(ctx, id, newItemsList); err != nil {
			return err
		}

		applied, err := uc.ledger.ApplyAll(ctx, r, newMovs)
		if err != nil {
			return err
		}
		skips = append(reverted, applied...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("launch_id", id).
		Str("old_type", oldType).
		Str("type", in.Type).
		Int("items", len(newItemsList)).
		Int("skipped", len(skips)).
		Msg("lanzamiento actualizado")
	return &dto.DocumentResult{ID: id, Skipped: stock.SkippedDTO(skips)}, nil
}

// Delete revierte todas las líneas con el tipo de la cabecera y borra el documento.
func (uc *UseCase) Delete(ctx context.Context, actor, id string) (res *dto.DocumentResult, err error) {
	defer func(started time.Time) { uc.metrics.ObserveDocument("launch_delete", started, err) }(time.Now())

	var skips []stock.Skip
	err = uc.txRunner.Run(ctx, func(r stock.Repos) error {
		old, err := r.Launches.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		items, err := r.Launches.ListItems(ctx, id)
		if err != nil {
			return err
		}
		movs := uc.movements(old.Type, id, items, actor)
		if err := uc.ledger.Lock(ctx, r, movs); err != nil {
			return err
		}
		skips, err = uc.ledger.RevertAll(ctx, r, movs)
		if err != nil {
			return err
		}
		if err := r.Launches.DeleteItems(ctx, id); err != nil {
			return err
		}
		return r.Launches.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("launch_id", id).Int("skipped", len(skips)).Msg("lanzamiento eliminado")
	return &dto.DocumentResult{ID: id, Skipped: stock.SkippedDTO(skips)}, nil
}

// GetByID devuelve cabecera y líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.LaunchResponse, error) {
	l, err := uc.launchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.launchRepo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	out := uc.toResponse(l)
	out.Items = make([]dto.LaunchItemResponse, 0, len(items))
	for _, it := range items {
		out.Items = append(out.Items, toItemResponse(it))
	}
	return &out, nil
}

// List devuelve cabeceras paginadas, más recientes primero. kind vacío = todos.
func (uc *UseCase) List(ctx context.Context, kind string, page dto.PageRequest) (*dto.LaunchListResponse, error) {
	page.DefaultPage()
	list, err := uc.launchRepo.List(ctx, repository.LaunchFilter{Type: strings.TrimSpace(kind)}, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.LaunchListResponse{
		Items: make([]dto.LaunchResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, l := range list {
		out.Items = append(out.Items, uc.toResponse(l))
	}
	return out, nil
}

// movements traduce las líneas a ajustes del ledger con el sentido del tipo kind.
func (uc *UseCase) movements(kind, launchID string, items []entity.LaunchItem, actor string) []stock.Movement {
	out := make([]stock.Movement, 0, len(items))
	for _, it := range items {
		out = append(out, stock.Movement{
			ProductID:  it.ProductID,
			Effect:     uc.classifier.EffectFor(kind, it.Quantity),
			SourceType: entity.SourceLaunch,
			SourceID:   launchID,
			Actor:      actor,
		})
	}
	return out
}

func newHeader(id string, in dto.LaunchRequest, now time.Time) *entity.Launch {
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = DefaultStatus
	}
	return &entity.Launch{
		ID:            id,
		Type:          strings.TrimSpace(in.Type),
		Status:        status,
		EmissionDate:  in.EmissionDate.Ptr(),
		ReceptionDate: in.ReceptionDate.Ptr(),
		ProviderID:    in.Provider,
		UnitID:        in.Unit,
		NoteNumber:    in.NoteNumber,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func newItems(launchID string, in []dto.LaunchItemRequest) []entity.LaunchItem {
	items := make([]entity.LaunchItem, 0, len(in))
	for i, it := range in {
		items = append(items, entity.LaunchItem{
			ID:         uuid.New().String(),
			LaunchID:   launchID,
			Position:   i,
			ProductID:  strings.TrimSpace(it.ProductID),
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Validity:   it.Validity.Ptr(),
			SectorID:   it.Sector,
			CategoryID: it.Category,
			UnitID:     it.Unit,
		})
	}
	return items
}

func (uc *UseCase) toResponse(l *entity.Launch) dto.LaunchResponse {
	return dto.LaunchResponse{
		ID:            l.ID,
		Type:          l.Type,
		Direction:     uc.classifier.Direction(l.Type).String(),
		Status:        l.Status,
		EmissionDate:  l.EmissionDate,
		ReceptionDate: l.ReceptionDate,
		Provider:      l.ProviderID,
		Unit:          l.UnitID,
		NoteNumber:    l.NoteNumber,
		Notes:         l.Notes,
		TotalValue:    l.TotalValue,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func toItemResponse(it entity.LaunchItem) dto.LaunchItemResponse {
	return dto.LaunchItemResponse{
		ID:        it.ID,
		Position:  it.Position,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		Subtotal:  it.Subtotal(),
		Validity:  it.Validity,
		Sector:    it.SectorID,
		Category:  it.CategoryID,
		Unit:      it.UnitID,
	}
}
