package tron

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"tron-wallet-core/pkg/address"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()

		// 错误信息中使用 JSON 字段名
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		if err := v.RegisterValidation("tronaddr", func(fl validator.FieldLevel) bool {
			_, err := address.Decode(fl.Field().String())
			return err == nil
		}); err != nil {
			panic(fmt.Sprintf("failed to register tronaddr validation: %v", err))
		}

		validate = v
	})
	return validate
}

// errorMsg 将校验错误转换为可读信息
func errorMsg(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.TrimPrefix(e.Namespace(), "SignTxRequest.")
		param := e.Param()

		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "tronaddr":
			msgs = append(msgs, fmt.Sprintf("%s is not a valid TRON address", field))
		case "len":
			msgs = append(msgs, fmt.Sprintf("%s must be %s bytes", field, param))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s needs at least %s entries", field, param))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s exceeds %s", field, param))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", field, param))
		case "gte", "lte":
			msgs = append(msgs, fmt.Sprintf("%s is out of range", field))
		case "unique":
			msgs = append(msgs, fmt.Sprintf("%s has duplicate %s", field, param))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", field, e.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
