package screen

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/romeroalan26/posfacturard-console/internal/apierror"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// validateForm runs the struct's validate tags before a mutating call leaves
// the screen, mirroring what native form inputs enforce. A rejection becomes
// a *apierror.ValidationError so presentation treats local and server
// validation alike.
func validateForm(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		// Non-struct input; validator reports *InvalidValidationError.
		return err
	}
	fields := make(map[string]string)
	for _, fe := range ves {
		fields[fe.Field()] = fe.Tag()
	}
	return apierror.NewValidation(fields)
}
