package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/guindo/fireplan-api/internal/models"
	apperrors "github.com/guindo/fireplan-api/pkg/errors"
)

// MaxFieldLength is the rune limit applied to every free-text answer
const MaxFieldLength = 2000

// stripped are removed from every answer before it reaches a prompt
const stripped = "<>{}"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so clients can map errors to inputs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldError describes one rejected profile field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned by Normalize when the sanitized profile breaks a rule.
// It wraps errors.ErrInvalidInput.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("invalid profile: %s", strings.Join(msgs, "; "))
}

func (e *Error) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// Normalize returns a sanitized copy of p, or an *Error when the copy fails
// validation. Every string field is trimmed, cut to MaxFieldLength runes and
// stripped of angle and curly brackets, in that order.
func Normalize(p models.UserProfile) (models.UserProfile, error) {
	sanitizeStrings(reflect.ValueOf(&p).Elem())

	if err := validate.Struct(p); err != nil {
		return models.UserProfile{}, toError(err)
	}
	return p, nil
}

// SanitizeString applies the per-field cleanup rules to a single value
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > MaxFieldLength {
		s = string(r[:MaxFieldLength])
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(stripped, r) {
			return -1
		}
		return r
	}, s)
}

func sanitizeStrings(v reflect.Value) {
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(SanitizeString(f.String()))
		}
	}
}

func toError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("profile validation: %w", err)
	}

	out := &Error{Fields: make([]FieldError, 0, len(validationErrors))}
	for _, fe := range validationErrors {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fe.Field() + " must be at least " + fe.Param() + " characters"
		}
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fe.Field() + " must not exceed " + fe.Param() + " characters"
		}
		return fe.Field() + " must be at most " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
