package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error types
var (
	ErrBadRequest       = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized     = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden        = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound         = New(http.StatusNotFound, "Not found", nil)
	ErrConflict         = New(http.StatusConflict, "Conflict", nil)
	ErrInternalServer   = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrTooManyRequests  = New(http.StatusTooManyRequests, "Too many requests", nil)
)

// Authentication error types. Session resolution failures degrade to an
// anonymous identity on public routes; these surface only on protected ones.
var (
	ErrNotAuthenticated   = New(http.StatusUnauthorized, "You must be signed in to do that", nil)
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid email or password", nil)
	ErrTokenExpired       = New(http.StatusUnauthorized, "Token expired", nil)
	ErrInvalidToken       = New(http.StatusUnauthorized, "Invalid token", nil)
)

// Validation error types, surfaced before any remote call is attempted
var (
	ErrValidation   = New(http.StatusBadRequest, "Validation error", nil)
	ErrInvalidInput = New(http.StatusBadRequest, "Invalid input", nil)
)

// Remote dependency error types. Reads are recoverable via the bundled
// sample dataset; writes surface to the user and leave prior state unchanged.
var (
	ErrRemoteRead  = New(http.StatusServiceUnavailable, "Failed to fetch data", nil)
	ErrRemoteWrite = New(http.StatusInternalServerError, "Failed to save data", nil)
)

// Business logic error types
var (
	ErrEmptyCart           = New(http.StatusBadRequest, "Your cart is empty", nil)
	ErrCheckoutInFlight    = New(http.StatusConflict, "A checkout is already in progress", nil)
	ErrNotEligibleToReview = New(http.StatusForbidden, "You can only review developers you have purchased from", nil)
)

// WithMessage returns a copy of the error carrying a more specific message.
func (e *Error) WithMessage(message string) *Error {
	return &Error{Code: e.Code, Message: message, Err: e.Err}
}

// Wrap returns a copy of the error carrying err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Err: err}
}

// HandleError writes an application error to a plain http.ResponseWriter
func HandleError(w http.ResponseWriter, err error) {
	var appErr *Error
	if e, ok := err.(*Error); ok {
		appErr = e
	} else {
		appErr = ErrInternalServer.Wrap(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	w.Write([]byte(appErr.JSON()))
}

// ErrorMiddleware maps errors attached to the gin context to JSON responses
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *Error
			if e, ok := err.(*Error); ok {
				appErr = e
			} else {
				appErr = ErrInternalServer.Wrap(err)
			}

			c.JSON(appErr.Code, appErr)
			c.Abort()
		}
	}
}
