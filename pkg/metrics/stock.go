// Package metrics expone contadores Prometheus del motor de stock.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StockMetrics registra ajustes del Ledger y operaciones de documentos.
// Un *StockMetrics nil es válido y no registra nada.
type StockMetrics struct {
	adjustments *prometheus.CounterVec
	documents   *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewStockMetrics registra las métricas en reg. Con reg nil devuelve un recolector vacío.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		return &StockMetrics{}
	}
	adjustments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_adjustments_total",
		Help: "Ajustes de stock procesados por el ledger.",
	}, []string{"direction", "outcome"})
	documents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_documents_total",
		Help: "Operaciones sobre documentos de stock (lanzamientos, donaciones).",
	}, []string{"operation", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stock_document_duration_seconds",
		Help:    "Duración de las operaciones sobre documentos de stock.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	reg.MustRegister(adjustments, documents, duration)
	return &StockMetrics{
		adjustments: adjustments,
		documents:   documents,
		duration:    duration,
	}
}

// IncAdjustment cuenta un ajuste con su sentido y resultado (applied, skipped).
func (m *StockMetrics) IncAdjustment(direction, outcome string) {
	if m == nil || m.adjustments == nil {
		return
	}
	m.adjustments.WithLabelValues(direction, outcome).Inc()
}

// ObserveDocument registra el resultado y la duración de una operación.
func (m *StockMetrics) ObserveDocument(operation string, started time.Time, err error) {
	if m == nil || m.documents == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.documents.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
