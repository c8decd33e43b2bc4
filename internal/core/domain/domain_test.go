package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTransactionStatus_IsTerminal(t *testing.T) {
	assert.False(t, TransactionStatusPending.IsTerminal())
	assert.True(t, TransactionStatusSuccess.IsTerminal())
	assert.True(t, TransactionStatusFailed.IsTerminal())
	assert.True(t, TransactionStatusCancelled.IsTerminal())
}

func TestMetadata_Merge(t *testing.T) {
	m := Metadata{"CheckoutRequestID": "ws_CO_1", "Amount": 100}
	merged := m.Merge(Metadata{"MpesaReceiptNumber": "QK12XYZ", "Amount": 100})

	assert.Equal(t, "ws_CO_1", merged["CheckoutRequestID"])
	assert.Equal(t, "QK12XYZ", merged["MpesaReceiptNumber"])

	// Merging into a nil map allocates.
	var nilMeta Metadata
	merged = nilMeta.Merge(Metadata{"k": "v"})
	assert.Equal(t, "v", merged["k"])
}

func TestEventID_Deterministic(t *testing.T) {
	txID := uuid.New()

	a := EventID(txID, TransactionStatusSuccess)
	b := EventID(txID, TransactionStatusSuccess)
	c := EventID(txID, TransactionStatusFailed)

	assert.Equal(t, a, b, "same outcome must derive the same event id")
	assert.NotEqual(t, a, c, "different outcomes must derive distinct event ids")
	assert.Contains(t, a, "evt_")
}

func TestWebhook_SubscribedTo(t *testing.T) {
	w := Webhook{EventKinds: []OperationKind{OpSTKPush, OpB2C}}
	assert.True(t, w.SubscribedTo(OpSTKPush))
	assert.False(t, w.SubscribedTo(OpReversal))
}

func TestEnvironment_Valid(t *testing.T) {
	assert.True(t, EnvironmentSandbox.Valid())
	assert.True(t, EnvironmentProduction.Valid())
	assert.False(t, Environment("staging").Valid())
}
