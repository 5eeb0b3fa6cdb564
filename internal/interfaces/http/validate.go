package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

var validate = newValidator()

// newValidator reporta los campos con su nombre json/query en lugar del nombre Go.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// bindBody parsea el JSON del body y aplica las etiquetas validate.
func bindBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Validationf("cuerpo inválido")
	}
	return validateStruct(out)
}

// bindQuery parsea la query string; defaults se aplica antes de validar.
func bindQuery(c *fiber.Ctx, out any, defaults func()) error {
	if err := c.QueryParser(out); err != nil {
		return domain.Validationf("parámetros inválidos")
	}
	if defaults != nil {
		defaults()
	}
	return validateStruct(out)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Validationf("datos inválidos")
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return domain.Validationf("campos inválidos: %s", strings.Join(fields, ", "))
}
