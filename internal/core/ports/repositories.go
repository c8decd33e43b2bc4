package ports

import (
	"context"
	"time"

	"daraja-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MerchantRepository defines persistence operations for merchants.
type MerchantRepository interface {
	Create(ctx context.Context, merchant *domain.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error)
	// GetByShortCode resolves the merchant owning a provider short-code,
	// used to attribute incoming C2B confirmations.
	GetByShortCode(ctx context.Context, shortCode string) (*domain.Merchant, error)
	Update(ctx context.Context, merchant *domain.Merchant) error
}

// CredentialRepository defines persistence for encrypted credential records.
// Upsert replaces the whole record; there is no partial credential update.
type CredentialRepository interface {
	Upsert(ctx context.Context, cred *domain.Credential) error
	Get(ctx context.Context, merchantID uuid.UUID) (*domain.Credential, error)
	ListAll(ctx context.Context) ([]domain.Credential, error)
	// UpdateEncrypted rewrites the ciphertext columns inside a key-rotation
	// transaction.
	UpdateEncrypted(ctx context.Context, tx pgx.Tx, cred *domain.Credential) error
}

// TransactionRepository defines persistence operations for transactions.
type TransactionRepository interface {
	// Create inserts the transaction unless a row with the same provider
	// transaction id already exists. Returns true when a row was inserted.
	Create(ctx context.Context, t *domain.Transaction) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByProviderTxID(ctx context.Context, providerTxID string) (*domain.Transaction, error)
	// UpdateOutcome merge-patches status and metadata, guarded so only a
	// PENDING row is moved. Returns true when a row transitioned.
	UpdateOutcome(ctx context.Context, providerTxID string, status domain.TransactionStatus, patch domain.Metadata) (bool, error)
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
}

// TransactionListParams holds filter + pagination for listing transactions.
type TransactionListParams struct {
	MerchantID uuid.UUID
	Status     *domain.TransactionStatus
	Operation  *domain.OperationKind
	Page       int
	PageSize   int
}

// WebhookRepository defines persistence for merchant webhook endpoints.
type WebhookRepository interface {
	Create(ctx context.Context, w *domain.Webhook) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Webhook, error)
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]domain.Webhook, error)
	ListActiveByMerchant(ctx context.Context, merchantID uuid.UUID) ([]domain.Webhook, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// WebhookDeliveryRepository defines persistence for the delivery audit trail.
// Rows are never deleted.
type WebhookDeliveryRepository interface {
	// CreateIfAbsent inserts the delivery unless the (webhook id, event id)
	// pair already exists. Returns true when a row was inserted.
	CreateIfAbsent(ctx context.Context, d *domain.WebhookDelivery) (bool, error)
	Update(ctx context.Context, d *domain.WebhookDelivery) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookDelivery, error)
	// ListDue returns PENDING deliveries whose next attempt time has passed.
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.WebhookDelivery, error)
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]domain.WebhookDelivery, error)
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
