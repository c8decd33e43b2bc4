package domain

import (
	"time"

	"github.com/google/uuid"
)

// Environment selects which provider endpoint and certificate a merchant uses.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

// Valid reports whether e is a known environment tag.
func (e Environment) Valid() bool {
	return e == EnvironmentSandbox || e == EnvironmentProduction
}

// MerchantStatus represents the state of a merchant account.
type MerchantStatus string

const (
	MerchantStatusActive    MerchantStatus = "ACTIVE"
	MerchantStatusSuspended MerchantStatus = "SUSPENDED"
)

// Merchant represents an onboarded business. Identity is immutable after
// creation; credentials, webhooks and transactions reference it by id.
type Merchant struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Environment Environment    `json:"environment"`
	ShortCode   string         `json:"short_code"` // provider business short-code
	Status      MerchantStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// IsActive returns true if the merchant account is active.
func (m *Merchant) IsActive() bool {
	return m.Status == MerchantStatusActive
}
