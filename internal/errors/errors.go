package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSweetNotFound is returned when a sweet does not exist or the id is malformed.
	ErrSweetNotFound = errors.New("Sweet not found")
	// ErrOutOfStock is returned when purchasing a sweet with zero stock.
	ErrOutOfStock = errors.New("Sweet is out of stock")
	// ErrInvalidCredentials is returned for unknown email or wrong password alike.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("User already exists")
	// ErrTokenExpired is returned when a token is past its validity window.
	ErrTokenExpired = errors.New("Token has expired")
	// ErrTokenInvalid is returned when a token cannot be parsed or verified.
	ErrTokenInvalid = errors.New("Token is not valid")
)

// InsufficientStockError is returned when a purchase requests more units than
// are available. The message reports the live available quantity.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock. Only %d available", e.Available)
}

// ValidationError is returned when request input fails a domain-level check.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError with the given message.
func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ErrorDetail carries the client-facing message and a machine-readable code.
type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorResponse represents the standardized error body: {"error": {"message": ...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// NewErrorResponse builds the uniform error body.
func NewErrorResponse(message, code string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Message: message, Code: code}}
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return NewErrorResponse(e.Message, e.Code)
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var insufficient *InsufficientStockError
	if errors.As(err, &insufficient) {
		return NewHTTPError(http.StatusBadRequest, insufficient.Error(), "INSUFFICIENT_STOCK")
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return NewHTTPError(http.StatusBadRequest, validation.Message, "VALIDATION_ERROR")
	}

	switch {
	case errors.Is(err, ErrSweetNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SWEET_NOT_FOUND")
	case errors.Is(err, ErrOutOfStock):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OUT_OF_STOCK")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrTokenInvalid):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_INVALID")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Server error", "INTERNAL_ERROR")
	}
}
