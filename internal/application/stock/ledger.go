// Package stock contiene el Ledger: único componente que modifica el stock actual de un producto.
package stock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Doacoes-api/internal/domain"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
	"github.com/jhoicas/Doacoes-api/internal/domain/inventory"
	"github.com/jhoicas/Doacoes-api/pkg/logger"
	"github.com/jhoicas/Doacoes-api/pkg/metrics"
)

// SkipReason motivo por el que una línea no afectó el stock.
type SkipReason string

const (
	SkipNoProductReference SkipReason = "no_product_reference"
	SkipProductNotFound    SkipReason = "product_not_found"
)

// Movement es el ajuste que una línea de documento pide al Ledger.
type Movement struct {
	ProductID  string
	Effect     inventory.Effect
	SourceType string // entity.SourceLaunch, entity.SourceExit
	SourceID   string
	Actor      string
}

// Outcome resultado de un ajuste: aplicado o saltado (con motivo).
type Outcome struct {
	ProductID     string
	Operation     string
	Effect        inventory.Effect
	Applied       bool
	Reason        SkipReason
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
}

// Skip línea omitida dentro de un documento, reportada al llamador.
type Skip struct {
	Index     int // posición de la línea en el documento
	ProductID string
	Operation string
	Reason    SkipReason
}

// LedgerConfig reglas del Ledger.
type LedgerConfig struct {
	AllowNegative bool
}

// Ledger aplica y revierte efectos de stock: una lectura (bloqueada) y una escritura por ajuste,
// más la fila del diario. Debe usarse con Repos de una transacción abierta.
type Ledger struct {
	cfg     LedgerConfig
	metrics *metrics.StockMetrics
	log     *logger.Logger
	now     func() time.Time
}

// NewLedger construye el Ledger. metrics y log pueden ser nil.
func NewLedger(cfg LedgerConfig, m *metrics.StockMetrics, log *logger.Logger) *Ledger {
	if log == nil {
		log = logger.Nop()
	}
	return &Ledger{cfg: cfg, metrics: m, log: log, now: time.Now}
}

// Apply aplica el efecto del movimiento.
func (l *Ledger) Apply(ctx context.Context, r Repos, mv Movement) (Outcome, error) {
	return l.adjust(ctx, r, mv, mv.Effect, entity.OperationApply)
}

// Revert aplica el inverso algebraico del efecto del movimiento.
func (l *Ledger) Revert(ctx context.Context, r Repos, mv Movement) (Outcome, error) {
	return l.adjust(ctx, r, mv, mv.Effect.Invert(), entity.OperationRevert)
}

// ApplyAll aplica los movimientos en orden y devuelve las líneas omitidas.
// Se detiene en el primer error; el rollback queda a cargo de la transacción.
func (l *Ledger) ApplyAll(ctx context.Context, r Repos, mvs []Movement) ([]Skip, error) {
	return l.batch(ctx, r, mvs, l.Apply)
}

// RevertAll revierte los movimientos en orden y devuelve las líneas omitidas.
func (l *Ledger) RevertAll(ctx context.Context, r Repos, mvs []Movement) ([]Skip, error) {
	return l.batch(ctx, r, mvs, l.Revert)
}

// Lock bloquea por adelantado, en orden de id, todas las filas de producto que tocará el documento.
// El orden fijo evita interbloqueos entre documentos concurrentes que comparten productos.
func (l *Ledger) Lock(ctx context.Context, r Repos, mvs ...[]Movement) error {
	if r.stock == nil {
		return errors.New("ledger: repos sin repositorio de stock")
	}
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, group := range mvs {
		for _, mv := range group {
			if mv.ProductID == "" {
				continue
			}
			if _, ok := seen[mv.ProductID]; ok {
				continue
			}
			seen[mv.ProductID] = struct{}{}
			ids = append(ids, mv.ProductID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Strings(ids)
	return r.stock.LockProducts(ctx, ids)
}

func (l *Ledger) batch(
	ctx context.Context, r Repos, mvs []Movement,
	op func(context.Context, Repos, Movement) (Outcome, error),
) ([]Skip, error) {
	var skips []Skip
	for i, mv := range mvs {
		out, err := op(ctx, r, mv)
		if err != nil {
			return skips, err
		}
		if !out.Applied {
			skips = append(skips, Skip{Index: i, ProductID: mv.ProductID, Operation: out.Operation, Reason: out.Reason})
		}
	}
	return skips, nil
}

func (l *Ledger) adjust(ctx context.Context, r Repos, mv Movement, effect inventory.Effect, operation string) (Outcome, error) {
	out := Outcome{ProductID: mv.ProductID, Operation: operation, Effect: effect}
	if r.stock == nil {
		return out, errors.New("ledger: repos sin repositorio de stock")
	}

	if mv.ProductID == "" {
		return l.skip(out, SkipNoProductReference, mv), nil
	}
	current, err := r.stock.GetForUpdate(ctx, mv.ProductID)
	if err != nil {
		return out, err
	}
	if current == nil {
		return l.skip(out, SkipProductNotFound, mv), nil
	}

	newQty := effect.ApplyTo(current.Quantity)
	if !l.cfg.AllowNegative && newQty.IsNegative() {
		return out, fmt.Errorf("%w: producto %s quedaría en %s", domain.ErrInsufficientStock, mv.ProductID, newQty.String())
	}
	if err := r.stock.SetQuantity(ctx, mv.ProductID, newQty); err != nil {
		return out, err
	}

	if r.Movements != nil {
		entry := &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     mv.ProductID,
			Delta:         effect.Delta(),
			PreviousStock: current.Quantity,
			NewStock:      newQty,
			SourceType:    mv.SourceType,
			SourceID:      mv.SourceID,
			Operation:     operation,
			CreatedBy:     mv.Actor,
			CreatedAt:     l.now(),
		}
		if err := r.Movements.Create(ctx, entry); err != nil {
			return out, err
		}
	}

	out.Applied = true
	out.PreviousStock = current.Quantity
	out.NewStock = newQty
	l.metrics.IncAdjustment(effect.Direction.String(), "applied")
	return out, nil
}

func (l *Ledger) skip(out Outcome, reason SkipReason, mv Movement) Outcome {
	out.Reason = reason
	l.metrics.IncAdjustment(out.Effect.Direction.String(), "skipped")
	l.log.Warn().
		Str("product_id", mv.ProductID).
		Str("source_type", mv.SourceType).
		Str("source_id", mv.SourceID).
		Str("operation", out.Operation).
		Str("reason", string(reason)).
		Msg("ajuste de stock omitido")
	return out
}
