package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// NonFieldErrors clave usada para errores de validación que no pertenecen a un campo.
const NonFieldErrors = "non_field_errors"

// FieldError mensaje de validación asociado a un campo. Message es la clave del catálogo
// de traducciones (texto en inglés); Args se aplican al formatear.
type FieldError struct {
	Field   string
	Message string
	Args    []any
}

// ValidationError agrupa errores de validación por campo (respuesta 400).
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError crea un error con un único mensaje.
func NewValidationError(field, message string, args ...any) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message, args...)
	return v
}

// Add agrega un mensaje para el campo.
func (e *ValidationError) Add(field, message string, args ...any) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message, Args: args})
}

// HasErrors informa si hay al menos un mensaje.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Errors) > 0
}

// OrNil devuelve nil cuando no hay mensajes, para usar como `return verr.OrNil()`.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Fields agrupa los mensajes por campo usando render para formatear (traducción).
func (e *ValidationError) Fields(render func(message string, args ...any) string) map[string][]string {
	out := make(map[string][]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = append(out[fe.Field], render(fe.Message, fe.Args...))
	}
	return out
}

func (e *ValidationError) Error() string {
	fields := e.Fields(func(m string, args ...any) string { return fmt.Sprintf(m, args...) })
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(fields[k], " "))
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ForbiddenError denegación con motivo legible para el cliente.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return "acceso denegado: " + e.Reason }

// Is permite errors.Is(err, ErrForbidden).
func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// NotFoundError recurso no encontrado con mensaje genérico para el cliente.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string { return "no encontrado: " + e.Detail }

// Is permite errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
