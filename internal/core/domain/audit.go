package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionCredentialStore  AuditAction = "CREDENTIAL_STORE"
	AuditActionCredentialReveal AuditAction = "CREDENTIAL_REVEAL"
	AuditActionKeyRotation      AuditAction = "KEY_ROTATION"
	AuditActionWebhookChange    AuditAction = "WEBHOOK_CHANGE"
)

// AuditLog records a single audited action. Details never contain decrypted
// secret material, only who/when/what.
type AuditLog struct {
	ID         uuid.UUID   `json:"id"`
	MerchantID *uuid.UUID  `json:"merchant_id,omitempty"`
	Action     AuditAction `json:"action"`
	Actor      string      `json:"actor"`             // caller identity, e.g. operation kind or "system"
	Details    string      `json:"details,omitempty"` // JSON string
	CreatedAt  time.Time   `json:"created_at"`
}
