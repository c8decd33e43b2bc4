package apperror

import (
	"fmt"
	"net/http"
)

// Kind is the closed set of error categories the gateway produces.
// Every call site can switch over Kind exhaustively.
type Kind string

const (
	KindValidation Kind = "VALIDATION" // malformed input, caught before any network call
	KindAuth       Kind = "AUTH"       // provider token exchange failed
	KindEncryption Kind = "ENCRYPTION" // vault or signing material failure
	KindNetwork    Kind = "NETWORK"    // transport failure talking to the provider
	KindAPI        Kind = "API"        // provider-level rejection, carries provider code
	KindNotFound   Kind = "NOT_FOUND"
	KindInternal   Kind = "INTERNAL"
)

// AppError is a structured error that maps to HTTP responses and carries
// correlation context. Secret material must never appear in any field.
type AppError struct {
	Kind         Kind   `json:"kind"`
	Message      string `json:"message"`
	Operation    string `json:"operation,omitempty"` // operation kind, e.g. "stk_push"
	MerchantID   string `json:"merchant_id,omitempty"`
	ProviderTxID string `json:"provider_tx_id,omitempty"`
	ProviderCode string `json:"provider_code,omitempty"` // verbatim provider error code
	HTTPStatus   int    `json:"-"`
	Err          error  `json:"-"` // wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithContext attaches correlation fields for logging and client responses.
func (e *AppError) WithContext(operation, merchantID, providerTxID string) *AppError {
	e.Operation = operation
	e.MerchantID = merchantID
	e.ProviderTxID = providerTxID
	return e
}

// Validation reports input rejected before any network call. Never retried.
func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

// Auth reports a failed provider token exchange. The calling operation must
// stop before sending any signed request.
func Auth(message string, err error) *AppError {
	return &AppError{Kind: KindAuth, Message: message, HTTPStatus: http.StatusBadGateway, Err: err}
}

// Encryption reports a vault or signing failure. Fatal for the operation;
// the process keeps running and no plaintext fallback is ever substituted.
func Encryption(message string, err error) *AppError {
	return &AppError{Kind: KindEncryption, Message: message, HTTPStatus: http.StatusInternalServerError, Err: err}
}

// Network reports a transport failure to the provider. Retryable by the
// caller; write-style operations rely on the store's idempotent create.
func Network(err error) *AppError {
	return &AppError{Kind: KindNetwork, Message: "provider unreachable", HTTPStatus: http.StatusBadGateway, Err: err}
}

// API reports a provider-level rejection with the provider's code and
// description verbatim. Not retried automatically.
func API(code, description string) *AppError {
	return &AppError{
		Kind:         KindAPI,
		Message:      description,
		ProviderCode: code,
		HTTPStatus:   http.StatusUnprocessableEntity,
	}
}

// InvalidToken reports a missing or invalid merchant API token.
func InvalidToken() *AppError {
	return &AppError{Kind: KindAuth, Message: "invalid or missing API token", HTTPStatus: http.StatusUnauthorized}
}

// RateLimited reports a caller exceeding its request budget for the window.
func RateLimited() *AppError {
	return &AppError{Kind: KindValidation, Message: "rate limit exceeded", HTTPStatus: http.StatusTooManyRequests}
}

// NotFound reports a missing entity.
func NotFound(entity string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", entity), HTTPStatus: http.StatusNotFound}
}

// Internal wraps an unexpected internal error.
func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal server error", HTTPStatus: http.StatusInternalServerError, Err: err}
}

// IsKind reports whether err is an *AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Kind == kind
}
