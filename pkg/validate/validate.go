package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validador compartido; validator es thread-safe y cachea metadata de structs.
var v = validator.New(validator.WithRequiredStructEnabled())

// Struct valida un DTO con tags `validate`. Devuelve un error legible con los
// campos que fallaron, apto para exponer en la respuesta HTTP.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	ok := false
	if verrs, ok = err.(validator.ValidationErrors); !ok {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("campos inválidos: %s", strings.Join(fields, ", "))
}
