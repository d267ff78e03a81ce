package controller

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterBindingTagNames makes gin binding errors report JSON field names.
func RegisterBindingTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
}

// bindingFields converts a ShouldBindJSON error into field messages. Errors that cannot be
// attributed to a field yield nil.
func bindingFields(err error) map[string]string {
	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		fields := make(map[string]string, len(valErrs))
		for _, fe := range valErrs {
			switch fe.Tag() {
			case "required":
				fields[fe.Field()] = fieldRequired
			case "uuid":
				fields[fe.Field()] = "Must be a valid UUID."
			default:
				fields[fe.Field()] = "Invalid value."
			}
		}
		return fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string]string{typeErr.Field: "Invalid value type."}
	}
	return nil
}
