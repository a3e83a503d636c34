package httpx

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FieldErrors flattens validator errors into a field → message map for
// 400 response bodies. Non-validator errors produce a single "body" entry.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Error()
	}
	return fields
}
