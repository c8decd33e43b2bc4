package domain

import (
	"time"

	"github.com/google/uuid"
)

// CredentialSet is the decrypted form of a merchant's provider credentials.
// It exists only in memory for the duration of a signed operation and must
// never be logged or serialized.
type CredentialSet struct {
	ConsumerKey       string
	ConsumerSecret    string
	Passkey           string // Lipa-Na-M-Pesa online passkey, optional
	InitiatorName     string // optional, payout-class operations
	InitiatorPassword string // optional, payout-class operations
	SandboxCertPEM    string // optional certificate material
	ProductionCertPEM string // optional certificate material
}

// Credential is the at-rest form: one active set per merchant, secret fields
// encrypted. Re-issuing replaces the whole record, never a partial overwrite.
type Credential struct {
	MerchantID           uuid.UUID `json:"merchant_id"`
	ConsumerKeyEnc       string    `json:"-"`
	ConsumerSecretEnc    string    `json:"-"`
	PasskeyEnc           string    `json:"-"`
	InitiatorNameEnc     string    `json:"-"`
	InitiatorPasswordEnc string    `json:"-"`
	SandboxCertEnc       string    `json:"-"`
	ProductionCertEnc    string    `json:"-"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
