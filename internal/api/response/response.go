// Package response defines the JSON envelopes every API endpoint returns.
package response

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
)

// requestIDKey matches the key set by middleware.RequestID.
const requestIDKey = "request_id"

// SuccessResponse represents a successful API response.
type SuccessResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty" example:"webhook URL saved"`
} // @name SuccessResponse

// ErrorResponse represents an error API response.
type ErrorResponse struct {
	Error   string      `json:"error" example:"validation failed"`
	Details interface{} `json:"details,omitempty"`
	TraceID string      `json:"trace_id,omitempty" example:"2f1c7a0e-4a53-4d3e-9a43-3f0d2b8f6c11"`
} // @name ErrorResponse

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string `json:"field" example:"min_relevance"`
	Message string `json:"message" example:"Must be less than or equal to 80"`
} // @name FieldError

// Success sends a successful response with data.
func Success(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, SuccessResponse{
		Data:    data,
		Message: message,
	})
}

// OK sends a 200 OK response.
func OK(c *gin.Context, data interface{}) {
	Success(c, http.StatusOK, data, "")
}

// Error sends an error response carrying the request's trace ID.
func Error(c *gin.Context, statusCode int, err string, details interface{}) {
	c.JSON(statusCode, ErrorResponse{
		Error:   err,
		Details: details,
		TraceID: GetRequestID(c),
	})
}

// BadRequest sends a 400 Bad Request response.
func BadRequest(c *gin.Context, err string, details interface{}) {
	Error(c, http.StatusBadRequest, err, details)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, err string) {
	Error(c, http.StatusNotFound, err, nil)
}

// Conflict sends a 409 Conflict response.
func Conflict(c *gin.Context, err string, details interface{}) {
	Error(c, http.StatusConflict, err, details)
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(c *gin.Context, err string) {
	Error(c, http.StatusInternalServerError, err, nil)
}

// ValidationErrors sends a 400 Bad Request with field validation errors.
func ValidationErrors(c *gin.Context, errors []ValidationError) {
	BadRequest(c, "validation failed", errors)
}

// SchemaErrors converts JSON schema failures into field errors.
func SchemaErrors(result *gojsonschema.Result) []ValidationError {
	out := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		out = append(out, ValidationError{Field: desc.Field(), Message: desc.Description()})
	}
	return out
}

// BindingErrors converts a gin binding failure into field errors. Errors that
// did not come from the validator, such as a non-numeric page, yield one entry
// with no field.
func BindingErrors(err error) []ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ValidationError{{Message: err.Error()}}
	}
	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{Field: snakeCase(fe.Field()), Message: bindingMessage(fe)})
	}
	return out
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// GetRequestID retrieves the request ID from context, minting one when the
// middleware did not run.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok && id != "" {
			return id
		}
	}
	id := uuid.New().String()
	c.Set(requestIDKey, id)
	return id
}
