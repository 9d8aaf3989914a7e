package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mamadbah2/leafline/internal/domain/models"
)

// FieldError names one offending input field and the constraint it broke.
type FieldError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

// ValidationError is returned when a request fails boundary validation.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" ("+f.Constraint+")")
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func invalidField(field, constraint string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Constraint: constraint}}}
}

// bindJSON decodes the request body into dst and validates it. A field with
// the wrong JSON type does not stop decoding, so its type error is reported
// together with every constraint the rest of the body breaks.
func bindJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return invalidField("body", "required")
	}

	var out ValidationError
	typed := map[string]bool{}

	err := json.NewDecoder(c.Request.Body).Decode(dst)
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return invalidField("body", "type")
		}
		typed[field] = true
		out.Fields = append(out.Fields, FieldError{Field: field, Constraint: "type"})
	default:
		return bindingError(err)
	}

	if err := binding.Validator.ValidateStruct(dst); err != nil {
		verr := bindingError(err)
		for _, f := range verr.Fields {
			if !typed[f.Field] {
				out.Fields = append(out.Fields, f)
			}
		}
	}

	if len(out.Fields) > 0 {
		return &out
	}
	return nil
}

// bindingError translates a decode or validator failure into a ValidationError.
func bindingError(err error) *ValidationError {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
		for _, fe := range verrs {
			out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Constraint: fe.Tag()})
		}
		return out
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return invalidField(field, "type")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return invalidField("body", "json")
	case errors.Is(err, io.EOF):
		return invalidField("body", "required")
	default:
		return invalidField("body", "invalid")
	}
}

// respondError writes the status and body matching err's kind. subject names
// the resource in not-found messages.
func respondError(c *gin.Context, logger *zap.Logger, subject string, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s not found", subject)})
	case errors.Is(err, models.ErrMachineRunning):
		c.JSON(http.StatusBadRequest, gin.H{"error": "machine could not be started"})
	case errors.Is(err, models.ErrMachineIdle):
		c.JSON(http.StatusBadRequest, gin.H{"error": "machine could not be stopped"})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state transition"})
	case errors.Is(err, models.ErrConflict):
		logger.Warn("write conflict", zap.String("resource", subject), zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("%s conflicts with existing data", subject)})
	default:
		logger.Error("request failed", zap.String("resource", subject), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// ConfigureValidator makes gin's validator report fields by their JSON names
// and check models.Nullable patch fields against their inner value.
func ConfigureValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(nullableValue,
		models.Nullable[string]{},
		models.Nullable[int64]{},
		models.Nullable[float64]{},
		models.Nullable[time.Time]{},
	)
}

func nullableValue(field reflect.Value) any {
	if n, ok := field.Interface().(interface{ Validatable() any }); ok {
		return n.Validatable()
	}
	return nil
}
