package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStockMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStockMetrics(reg)

	m.IncAdjustment("increase", "applied")
	m.IncAdjustment("increase", "applied")
	m.IncAdjustment("decrease", "skipped")
	m.ObserveDocument("launch_create", time.Now(), nil)
	m.ObserveDocument("launch_create", time.Now(), errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.adjustments.WithLabelValues("increase", "applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.adjustments.WithLabelValues("decrease", "skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documents.WithLabelValues("launch_create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documents.WithLabelValues("launch_create", "error")))
}

func TestStockMetrics_NilSafe(t *testing.T) {
	var m *StockMetrics
	assert.NotPanics(t, func() {
		m.IncAdjustment("increase", "applied")
		m.ObserveDocument("x", time.Now(), nil)
	})
	assert.NotPanics(t, func() {
		NewStockMetrics(nil).IncAdjustment("decrease", "applied")
	})
}
