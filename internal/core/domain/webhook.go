package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Webhook is a merchant-scoped delivery target. The shared secret is stored
// encrypted and used to sign outbound payloads.
type Webhook struct {
	ID         uuid.UUID       `json:"id"`
	MerchantID uuid.UUID       `json:"merchant_id"`
	URL        string          `json:"url"`
	SecretEnc  string          `json:"-"`
	EventKinds []OperationKind `json:"event_kinds"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// SubscribedTo reports whether the webhook wants events for kind.
func (w *Webhook) SubscribedTo(kind OperationKind) bool {
	for _, k := range w.EventKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// DeliveryStatus is the lifecycle of one webhook delivery.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusFailed    DeliveryStatus = "FAILED" // attempts exhausted, kept for audit
)

// WebhookDelivery is one attempted delivery of one event to one webhook.
// The (webhook id, event id) pair is unique: redelivering the same outcome
// retries this row, it never creates a second one. Rows are never deleted.
type WebhookDelivery struct {
	ID             uuid.UUID      `json:"id"`
	WebhookID      uuid.UUID      `json:"webhook_id"`
	TransactionID  *uuid.UUID     `json:"transaction_id,omitempty"`
	EventID        string         `json:"event_id"`
	Payload        string         `json:"payload"` // JSON snapshot sent on every attempt
	Status         DeliveryStatus `json:"status"`
	LastHTTPStatus *int           `json:"last_http_status,omitempty"`
	LastBody       *string        `json:"last_body,omitempty"` // truncated response body
	Attempts       int            `json:"attempts"`
	LastAttemptAt  *time.Time     `json:"last_attempt_at,omitempty"`
	NextRetryAt    *time.Time     `json:"next_retry_at,omitempty"`
	DeliveredAt    *time.Time     `json:"delivered_at,omitempty"` // set at most once, on 2xx
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// EventID derives a deterministic event id from a transaction id and the
// resulting status, so redelivering the same outcome never produces a second
// distinct event.
func EventID(transactionID uuid.UUID, status TransactionStatus) string {
	sum := sha256.Sum256([]byte(transactionID.String() + ":" + string(status)))
	return "evt_" + hex.EncodeToString(sum[:16])
}

// Event is the JSON envelope POSTed to merchant webhooks.
type Event struct {
	EventID       string        `json:"eventId"`
	TransactionID string        `json:"transactionId"`
	Type          OperationKind `json:"type"`
	Status        string        `json:"status"`
	Amount        int64         `json:"amount"`
	OccurredAt    string        `json:"occurredAt"` // RFC 3339 UTC
}
