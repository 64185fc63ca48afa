package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

const dateOnly = "2006-01-02"

// Date fecha de request: acepta RFC 3339 o YYYY-MM-DD. Se serializa en RFC 3339.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha inválida: %w", err)
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// ParseDate interpreta s como RFC 3339 o como fecha simple (UTC).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: use RFC 3339 o YYYY-MM-DD", s)
	}
	return t, nil
}

// Ptr devuelve la fecha como *time.Time (nil si d es nil).
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// DocumentResult respuesta de operaciones que mueven stock: id del documento
// y líneas que el ledger omitió.
type DocumentResult struct {
	ID      string        `json:"id"`
	Skipped []SkippedItem `json:"skipped"`
}

// SkippedItem línea omitida por el ledger (producto ausente o inexistente).
type SkippedItem struct {
	Index     int    `json:"index"`
	ProductID string `json:"productId,omitempty"`
	Operation string `json:"operation"`
	Reason    string `json:"reason"`
}
