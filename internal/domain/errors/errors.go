package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrSelfPurchase       = errors.New("cannot buy your own prompt")
	ErrInvalidTokenID     = errors.New("invalid prompt token id")
	ErrProviderFailed     = errors.New("wallet provider rejected the transaction")
	ErrPartialFailure     = errors.New("on-chain step succeeded but persistence failed")
	ErrGatewayUnavailable = errors.New("ai gateway unreachable")
)

// AppError represents an application error with an HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
	// Fields carries per-field validation messages when the error is a
	// form validation failure.
	Fields map[string]string `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "application error"
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "NOT_FOUND", message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "BAD_REQUEST", message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", message, ErrUnauthorized)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, "CONFLICT", message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "INTERNAL", "internal server error", err)
}

// Validation builds a 400 carrying a per-field error map.
func Validation(message string, fields map[string]string) *AppError {
	e := BadRequest(message)
	e.Code = "VALIDATION"
	e.Fields = fields
	return e
}

// WalletNotConnected signals that no signing identity is available; the
// workflow must surface this before any side effect.
func WalletNotConnected() *AppError {
	return NewAppError(http.StatusUnauthorized, "WALLET_NOT_CONNECTED", "connect wallet before proceeding", ErrWalletNotConnected)
}

// Provider wraps an error from the wallet provider or contract, surfacing
// the underlying message verbatim.
func Provider(err error) *AppError {
	msg := "transaction failed"
	if err != nil {
		msg = err.Error()
	}
	return NewAppError(http.StatusBadGateway, "PROVIDER", msg, ErrProviderFailed)
}

// PartialFailure reports that the on-chain step completed but the database
// write did not. The message must tell the user the chain state already
// changed so they do not resubmit.
func PartialFailure(txHash string, err error) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    "PARTIAL_FAILURE",
		Message: "your transaction " + txHash + " was confirmed on-chain, but saving the prompt failed; do not submit again, contact support with the transaction hash",
		Err:     errors.Join(ErrPartialFailure, err),
	}
}

// SelfPurchase rejects a buyer whose address matches the prompt owner.
func SelfPurchase() *AppError {
	return NewAppError(http.StatusBadRequest, "SELF_PURCHASE", "You cannot buy your own prompt", ErrSelfPurchase)
}
