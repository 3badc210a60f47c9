package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

// DecodeJSON parses the request body into dst and, when a validator is
// provided, applies struct validation. Failures come back as AppError values
// carrying a 400 status so handlers can pass them straight to their error
// writer.
func DecodeJSON(r *http.Request, validate *validator.Validate, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return NewAppError("BAD_REQUEST", "invalid payload", http.StatusBadRequest, err)
	}
	if validate == nil {
		return nil
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fe.Field())
			}
			return &AppError{
				Code:       "VALIDATION",
				Message:    "invalid fields: " + strings.Join(fields, ", "),
				HTTPStatus: http.StatusBadRequest,
				Err:        err,
				Details:    map[string]any{"fields": fields},
			}
		}
		return NewAppError("VALIDATION", "invalid payload", http.StatusBadRequest, err)
	}
	return nil
}
