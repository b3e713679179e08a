package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/eproc-api/internal/application/dto"
	"github.com/jhoicas/eproc-api/pkg/brdoc"
)

// Validator envuelve go-playground/validator con las reglas brasileñas registradas
// (cep, cnae, ncm) y nombres de campo tomados del tag json.
type Validator struct {
	v *validator.Validate
}

// NewValidator construye el validador.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("cep", digitsLen(8))
	_ = v.RegisterValidation("cnae", digitsLen(7))
	_ = v.RegisterValidation("ncm", digitsLen(8))
	return &Validator{v: v}
}

// digitsLen acepta el valor con o sin máscara si tiene exactamente n dígitos
// y ninguna letra.
func digitsLen(n int) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, r := range s {
			if (r < '0' || r > '9') && !strings.ContainsRune(".-/ ", r) {
				return false
			}
		}
		return len(brdoc.OnlyDigits(s)) == n
	}
}

// Struct valida s según sus tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Validate devuelve los campos inválidos, o nil si s es válido.
func (val *Validator) Validate(s interface{}) []dto.FieldError {
	return fieldErrors(val.v.Struct(s))
}

func fieldErrors(err error) []dto.FieldError {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []dto.FieldError{{Field: "", Rule: err.Error()}}
	}
	out := make([]dto.FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, dto.FieldError{Field: jsonPath(fe.Namespace()), Rule: fe.Tag()})
	}
	return out
}

// jsonPath CreateSupplierRequest.address.postal_code -> address.postal_code
func jsonPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
