package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error and decides its HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindDuplicateEmail
	KindInvalidCredentials
	KindUnauthenticated
	KindInvalidToken
	KindNotFound
	KindInsufficientInventory
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindDuplicateEmail:
		return "DuplicateEmail"
	case KindInvalidCredentials:
		return "InvalidCredentials"
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindInvalidToken:
		return "InvalidToken"
	case KindNotFound:
		return "NotFound"
	case KindInsufficientInventory:
		return "InsufficientInventory"
	default:
		return "Internal"
	}
}

// StatusCode maps the kind to the HTTP status sent to clients.
func (k Kind) StatusCode() int {
	switch k {
	case KindInvalidInput, KindDuplicateEmail, KindInvalidCredentials, KindInsufficientInventory:
		return http.StatusBadRequest
	case KindUnauthenticated, KindInvalidToken:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error represents an application error.
// Message is safe to show to clients; Err is the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
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

// StatusCode returns the HTTP status for the error.
func (e *Error) StatusCode() int {
	return e.Kind.StatusCode()
}

// New creates a new Error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new Error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// InvalidInput reports a malformed or missing request field.
func InvalidInput(message string) *Error {
	return New(KindInvalidInput, message)
}

// Internal wraps an unexpected failure. message is what clients see.
func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// KindOf returns the kind of the first *Error in err's chain,
// or KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Common error values. Compare with errors.Is.
var (
	ErrDuplicateEmail        = New(KindDuplicateEmail, "Email already registered")
	ErrInvalidCredentials    = New(KindInvalidCredentials, "Invalid email or password")
	ErrUnauthenticated       = New(KindUnauthenticated, "No token provided")
	ErrInvalidToken          = New(KindInvalidToken, "Invalid token")
	ErrProductNotFound       = New(KindNotFound, "Product not found")
	ErrInsufficientInventory = New(KindInsufficientInventory, "Insufficient inventory")
)
