package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
}

// Issue is one validation problem, shaped for API clients.
type Issue struct {
	Code    string   `json:"code"`
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// Validate returns nil when v passes its struct tags.
func Validate(v interface{}) []Issue {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Code: "custom", Path: []string{}, Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Code:    codeFor(fe),
			Path:    []string{fe.Field()},
			Message: messageFor(fe),
		})
	}
	return issues
}

// FromBindError converts a JSON binding error into issues. Validation errors
// raised during binding are delegated to the same formatting as Validate.
func FromBindError(err error) []Issue {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		issues := make([]Issue, 0, len(verrs))
		for _, fe := range verrs {
			issues = append(issues, Issue{Code: codeFor(fe), Path: []string{fe.Field()}, Message: messageFor(fe)})
		}
		return issues
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []Issue{{
			Code:    "invalid_type",
			Path:    []string{typeErr.Field},
			Message: fmt.Sprintf("Expected %s, received %s", typeErr.Type.Kind(), typeErr.Value),
		}}
	}

	if errors.Is(err, io.EOF) {
		return []Issue{{Code: "invalid_type", Path: []string{}, Message: "Request body is required"}}
	}
	return []Issue{{Code: "invalid_json", Path: []string{}, Message: err.Error()}}
}

func codeFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "invalid_type"
	case "notblank", "min":
		return "too_small"
	case "max":
		return "too_big"
	default:
		return "custom"
	}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "notblank":
		return "Must not be empty"
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("Failed on the %q rule", fe.Tag())
	}
}
