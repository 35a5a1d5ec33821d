package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/gstinvoice/internal/invoice/domain"
)

var validatorsOnce sync.Once

// registerValidators adds exact decimal checks to gin's validator: dnum
// bounds digits and decimal places, dgte, dgt and dlte compare a decimal
// field against the tag parameter.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return scientific(d)
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("dnum", func(fl validator.FieldLevel) bool {
			value, err := decimal.NewFromString(fl.Field().String())
			return err == nil && invoicedomain.CheckNumericRange(value) == nil
		})
		_ = v.RegisterValidation("dgte", decimalRule(func(cmp int) bool { return cmp >= 0 }))
		_ = v.RegisterValidation("dgt", decimalRule(func(cmp int) bool { return cmp > 0 }))
		_ = v.RegisterValidation("dlte", decimalRule(func(cmp int) bool { return cmp <= 0 }))
	})
}

// scientific renders d as "<coefficient>e<exponent>" so validation never
// expands a huge exponent into digits.
func scientific(d decimal.Decimal) string {
	return d.Coefficient().String() + "e" + strconv.FormatInt(int64(d.Exponent()), 10)
}

func decimalRule(accept func(cmp int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil || invoicedomain.CheckNumericRange(value) != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return accept(value.Cmp(bound))
	}
}

// bindJSON decodes the request body into dst and translates failures into
// the API error taxonomy. Any decode failure other than malformed JSON comes
// from a numeric field, since every other field is free-form text.
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := &ValidationErrors{}
		for _, fe := range verrs {
			out.Errors = append(out.Errors, ValidationError{
				Field:   fieldPath(fe.Namespace()),
				Code:    ruleCode(fe.Tag()),
				Message: ruleMessage(fe.Tag(), fe.Param()),
			})
		}
		return out
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &syntaxErr):
		return ErrInvalidRequest
	case errors.As(err, &typeErr):
		if typeErr.Type == reflect.TypeOf(decimal.Decimal{}) {
			return fmt.Errorf("%w: %s", invoicedomain.ErrInvalidNumericField, typeErr.Field)
		}
		return newValidationError(typeErr.Field, "invalid_type", "invalid value type")
	default:
		return fmt.Errorf("%w: %v", invoicedomain.ErrInvalidNumericField, err)
	}
}

// fieldPath drops the root struct name from a validator namespace, e.g.
// "generateInvoiceRequest.items[0].rate" -> "items[0].rate".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func ruleCode(tag string) string {
	switch tag {
	case "dgte":
		return "min"
	case "dgt":
		return "positive"
	case "dlte":
		return "max"
	case "dnum":
		return "out_of_range"
	default:
		return tag
	}
}

func ruleMessage(tag, param string) string {
	switch tag {
	case "dgte":
		return "must be greater than or equal to " + param
	case "dgt":
		return "must be greater than " + param
	case "dlte":
		return "must be less than or equal to " + param
	case "dnum":
		return fmt.Sprintf("must have at most %d integer digits and %d decimal places",
			invoicedomain.MaxIntegerDigits, invoicedomain.MaxFractionDigits)
	default:
		return "invalid value"
	}
}
