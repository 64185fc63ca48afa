package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrDuplicate         = errors.New("registro duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrDependency        = errors.New("almacén de datos no disponible")
)

// ValidationError describe un campo rechazado. errors.Is(err, ErrInvalidInput) es true.
// Details lleva todos los campos rechazados cuando hay más de uno.
type ValidationError struct {
	Field   string
	Reason  string
	Details map[string]string
}

// NewValidationError construye un error de validación para field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "entrada inválida: " + e.Reason
	}
	return fmt.Sprintf("entrada inválida: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// DependencyError envuelve un fallo del almacén de registros (red, constraint, etc.).
// No se reintenta; se propaga tal cual al llamador.
type DependencyError struct {
	Op  string
	Err error
}

// NewDependencyError envuelve err indicando la operación que falló.
func NewDependencyError(op string, err error) *DependencyError {
	return &DependencyError{Op: op, Err: err}
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap permite errors.Is tanto contra ErrDependency como contra la causa.
func (e *DependencyError) Unwrap() []error { return []error{ErrDependency, e.Err} }
