package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/foodgram/backend/errs"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate reads the JSON body into dst and runs its validation
// tags. Failures come back as structured 400s naming the offending field.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.NewBadRequestError("malformed request body")
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return errs.NewValidationError(
				jsonFieldName(first),
				fmt.Sprintf("failed %q validation", first.Tag()),
			)
		}
		return errs.NewBadRequestError("invalid request body")
	}
	return nil
}

func jsonFieldName(fieldErr validator.FieldError) string {
	// validator reports Go field names; the API talks in snake_case
	parts := strings.Split(fieldErr.Namespace(), ".")
	return toSnake(parts[len(parts)-1])
}

func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
