// Package validation traduce las etiquetas `validate` de los DTO a domain.ValidationError
// usando go-playground/validator.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/farm-api/internal/domain"
)

// Mensajes (claves del catálogo i18n).
const (
	MsgRequired   = "This field is required."
	MsgEmail      = "Enter a valid email address."
	MsgMinLength  = "Ensure this field has at least %d characters."
	MsgMaxLength  = "Ensure this field has no more than %d characters."
	MsgChoice     = "\"%s\" is not a valid choice."
	MsgDateFormat = "Date has wrong format. Use YYYY-MM-DD."
	MsgInvalid    = "Invalid value."
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Nombre del campo = etiqueta json, para que las claves del error coincidan con el payload.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Struct valida s. Devuelve *domain.ValidationError con un mensaje por campo fallido.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}
	out := &domain.ValidationError{}
	for _, fe := range verrs {
		msg, args := message(fe)
		out.Add(fe.Field(), msg, args...)
	}
	return out
}

func message(fe validator.FieldError) (string, []any) {
	switch fe.Tag() {
	case "required":
		return MsgRequired, nil
	case "email":
		return MsgEmail, nil
	case "min":
		if n, err := strconv.Atoi(fe.Param()); err == nil {
			return MsgMinLength, []any{n}
		}
	case "max":
		if n, err := strconv.Atoi(fe.Param()); err == nil {
			return MsgMaxLength, []any{n}
		}
	case "oneof":
		return MsgChoice, []any{fmt.Sprint(fe.Value())}
	case "datetime":
		return MsgDateFormat, nil
	}
	return MsgInvalid, nil
}
