package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := Validation("amount must be positive")
	assert.Equal(t, "[VALIDATION] amount must be positive", e.Error())

	wrapped := Network(fmt.Errorf("dial tcp: connection refused"))
	assert.Contains(t, wrapped.Error(), "[NETWORK]")
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("cipher: message authentication failed")
	e := Encryption("decrypt credential", inner)
	assert.ErrorIs(t, e, inner)
}

func TestAPI_CarriesProviderCode(t *testing.T) {
	e := API("404.001.03", "Invalid Access Token")
	assert.Equal(t, KindAPI, e.Kind)
	assert.Equal(t, "404.001.03", e.ProviderCode)
	assert.Equal(t, "Invalid Access Token", e.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, e.HTTPStatus)
}

func TestWithContext(t *testing.T) {
	e := Auth("token exchange rejected", nil).WithContext("b2c", "m-1", "AG_123")
	assert.Equal(t, "b2c", e.Operation)
	assert.Equal(t, "m-1", e.MerchantID)
	assert.Equal(t, "AG_123", e.ProviderTxID)
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		KindValidation: http.StatusBadRequest,
		KindAuth:       http.StatusBadGateway,
		KindEncryption: http.StatusInternalServerError,
		KindNetwork:    http.StatusBadGateway,
		KindAPI:        http.StatusUnprocessableEntity,
		KindNotFound:   http.StatusNotFound,
		KindInternal:   http.StatusInternalServerError,
	}
	for kind, want := range cases {
		var e *AppError
		switch kind {
		case KindValidation:
			e = Validation("x")
		case KindAuth:
			e = Auth("x", nil)
		case KindEncryption:
			e = Encryption("x", nil)
		case KindNetwork:
			e = Network(errors.New("x"))
		case KindAPI:
			e = API("1", "x")
		case KindNotFound:
			e = NotFound("merchant")
		case KindInternal:
			e = Internal(errors.New("x"))
		}
		assert.Equal(t, want, e.HTTPStatus, string(kind))
	}
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(Validation("x"), KindValidation))
	assert.False(t, IsKind(Validation("x"), KindNetwork))
	assert.False(t, IsKind(errors.New("plain"), KindValidation))
}
