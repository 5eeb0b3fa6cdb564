package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrIntegrity         = errors.New("inconsistencia de datos")
)

// Kind clasifica un error de dominio para que la capa HTTP elija el status.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindIntegrity  Kind = "INTEGRITY"
	KindInternal   Kind = "INTERNAL"
)

var kindSentinels = map[Kind]error{
	KindValidation: ErrInvalidInput,
	KindNotFound:   ErrNotFound,
	KindConflict:   ErrConflict,
	KindIntegrity:  ErrIntegrity,
}

// Error es un error de dominio con tipo y mensaje legible.
// Err es la causa (normalmente uno de los sentinels de arriba).
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is permite errors.Is(err, domain.ErrConflict) aunque la causa sea ErrInsufficientStock.
func (e *Error) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && target == s
}

func newError(kind Kind, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// Validationf entrada mal formada o fuera de rango.
func Validationf(format string, args ...any) error {
	return newError(KindValidation, ErrInvalidInput, format, args...)
}

// NotFoundf producto, bodega, línea de stock o alerta inexistente.
func NotFoundf(format string, args ...any) error {
	return newError(KindNotFound, ErrNotFound, format, args...)
}

// Conflictf la operación choca con el estado actual.
func Conflictf(format string, args ...any) error {
	return newError(KindConflict, ErrConflict, format, args...)
}

// InsufficientStockf conflicto específico: la cantidad pedida supera la disponible.
func InsufficientStockf(format string, args ...any) error {
	return newError(KindConflict, ErrInsufficientStock, format, args...)
}

// Integrityf señala una inconsistencia lógica o de datos, no un error normal del usuario.
func Integrityf(format string, args ...any) error {
	return newError(KindIntegrity, ErrIntegrity, format, args...)
}

// KindOf devuelve el tipo de un error de dominio; KindInternal para cualquier otro error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
