package utils

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// CustomError carries an HTTP status alongside the message so handlers can
// forward one typed value to the centralized responder.
type CustomError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *CustomError) Error() string {
	return e.Message
}

// NewCustomError builds a CustomError with a specific status code.
func NewCustomError(statusCode int, message string) *CustomError {
	return &CustomError{StatusCode: statusCode, Message: message}
}

func NewNotFoundError(message string) *CustomError {
	return NewCustomError(http.StatusNotFound, message)
}

func NewNotAuthorizedError(message string) *CustomError {
	return NewCustomError(http.StatusUnauthorized, message)
}

func NewForbiddenError(message string) *CustomError {
	return NewCustomError(http.StatusForbidden, message)
}

// FromBindingError converts a gin binding failure into a single 400 error
// whose message joins every failing field as "<reason>: <field>".
func FromBindingError(err error) *CustomError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fe.Tag()+": "+snakeCase(fe.Field()))
		}
		return NewCustomError(http.StatusBadRequest, strings.Join(parts, ", "))
	}
	return NewCustomError(http.StatusBadRequest, err.Error())
}

// snakeCase maps a struct field name to its wire name (CatName -> cat_name).
func snakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
