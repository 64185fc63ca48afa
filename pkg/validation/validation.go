// Package validation valida structs de entrada con go-playground/validator
// y traduce las fallas a domain.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Doacoes-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	// gt/gte/lt sobre decimal.Decimal se evalúan con su valor float64.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Struct valida s. Devuelve nil o un *domain.ValidationError cuyo Field es el primer campo rechazado.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return domain.NewValidationError("", err.Error())
	}
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		details[fieldPath(fe)] = message(fe)
	}
	ve := domain.NewValidationError(fieldPath(errs[0]), message(errs[0]))
	ve.Details = details
	return ve
}

// fieldPath quita el nombre del struct raíz: "LaunchRequest.items[0].quantity" -> "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("debe tener al menos %s elemento(s)", fe.Param())
		}
		return fmt.Sprintf("debe tener al menos %s", fe.Param())
	case "max":
		return fmt.Sprintf("debe tener como máximo %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	}
	return "no es válido"
}
