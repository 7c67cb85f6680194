// Package apierror provides standardized error response structures for the API
// plus the sentinel errors of the data layer. All errors returned to clients go
// through this package to ensure consistency and to prevent leaking internal
// details (stack traces, driver errors, etc.).
package apierror

import "errors"

// Sentinel errors of the core. Callers branch with errors.Is; the HTTP layer
// maps them to status codes without exposing what fired underneath.
var (
	// ErrValidacion — structurally invalid caller input (empty required
	// field, no updatable fields after schema intersection).
	ErrValidacion = errors.New("datos de entrada invalidos")

	// ErrCodigoDuplicado — uniqueness violation on the product code.
	ErrCodigoDuplicado = errors.New("el codigo de producto ya existe")

	// ErrAlmacenNoDisponible — the store could not be opened, the data
	// directory could not be created, or a lock wait timed out.
	ErrAlmacenNoDisponible = errors.New("almacen de datos no disponible")
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
