package domain

import (
	"time"

	"github.com/google/uuid"
)

// OperationKind identifies which provider operation a transaction records.
type OperationKind string

const (
	OpSTKPush           OperationKind = "stk_push"
	OpSTKQuery          OperationKind = "stk_query"
	OpB2C               OperationKind = "b2c"
	OpB2B               OperationKind = "b2b"
	OpC2B               OperationKind = "c2b"
	OpQRCode            OperationKind = "qr_code"
	OpTransactionStatus OperationKind = "transaction_status"
	OpReversal          OperationKind = "reversal"
)

// TransactionStatus is the lifecycle state of a transaction. PENDING moves to
// exactly one terminal state; terminal states are final.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusSuccess   TransactionStatus = "SUCCESS"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// IsTerminal reports whether s is a final state.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusSuccess || s == TransactionStatusFailed || s == TransactionStatusCancelled
}

// Metadata is the opaque provider blob attached to a transaction. Outcome
// updates merge into it, they never replace it.
type Metadata map[string]any

// Merge applies patch on top of m, returning the merged map. Keys in patch
// win; keys absent from patch are untouched.
func (m Metadata) Merge(patch Metadata) Metadata {
	if m == nil {
		m = Metadata{}
	}
	for k, v := range patch {
		m[k] = v
	}
	return m
}

// Transaction represents one provider operation instance. The provider
// transaction id is globally unique and correlates asynchronous callbacks.
type Transaction struct {
	ID           uuid.UUID         `json:"id"`
	MerchantID   uuid.UUID         `json:"merchant_id"`
	ProviderTxID string            `json:"provider_tx_id"`
	Operation    OperationKind     `json:"operation"`
	Amount       int64             `json:"amount"` // whole KES
	Status       TransactionStatus `json:"status"`
	PhoneNumber  *string           `json:"phone_number,omitempty"`
	AccountRef   *string           `json:"account_ref,omitempty"`
	Description  *string           `json:"description,omitempty"`
	Metadata     Metadata          `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// IsTerminal reports whether the transaction reached a final state.
func (t *Transaction) IsTerminal() bool {
	return t.Status.IsTerminal()
}
