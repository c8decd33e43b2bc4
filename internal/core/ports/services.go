package ports

import (
	"context"
	"time"

	"daraja-gateway/internal/core/domain"

	"github.com/google/uuid"
)

// EncryptionService handles symmetric encryption of at-rest secrets.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService signs outbound webhook payloads with HMAC-SHA256.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// CredentialVault protects per-merchant provider credentials at rest.
// Reveal decrypts for the duration of one signed call and records an audit
// entry; plaintext never reaches any other interface.
type CredentialVault interface {
	Store(ctx context.Context, merchantID uuid.UUID, set domain.CredentialSet) error
	Reveal(ctx context.Context, merchantID uuid.UUID, actor string) (*domain.CredentialSet, error)
	// RotateEncryptionKey re-encrypts every stored credential under a key
	// derived from newPassphrase, with no window where any record is
	// unencrypted on disk.
	RotateEncryptionKey(ctx context.Context, newPassphrase string) error
}

// TokenProvider yields a valid provider bearer token for a merchant,
// refreshing before expiry with at most one in-flight fetch per merchant.
type TokenProvider interface {
	GetToken(ctx context.Context, merchant *domain.Merchant) (string, error)
	// Invalidate drops any cached token for the merchant, forcing a fresh
	// exchange on the next call. Used after credential re-issue.
	Invalidate(merchantID uuid.UUID)
}

// --- Provider client ---

// STKPushRequest initiates a charge prompt on the subscriber's device.
// PhoneNumber must already be in strict MSISDN form.
type STKPushRequest struct {
	PhoneNumber string
	Amount      int64
	AccountRef  string
	Description string
}

// STKPushResult is the provider's synchronous accept for an STK push.
type STKPushResult struct {
	MerchantRequestID string
	CheckoutRequestID string
	ResponseCode      string
	CustomerMessage   string
}

// STKQueryResult reports the current state of an earlier STK push.
type STKQueryResult struct {
	CheckoutRequestID string
	ResultCode        string
	ResultDesc        string
}

// PayoutRequest funds a subscriber (B2C) from the merchant short-code.
type PayoutRequest struct {
	PhoneNumber string // permissive MSISDN form
	Amount      int64
	CommandID   string // BusinessPayment, SalaryPayment, PromotionPayment
	Remarks     string
	Occasion    string
}

// B2BRequest moves funds between two business short-codes.
type B2BRequest struct {
	ReceiverShortCode string
	Amount            int64
	AccountRef        string
	Remarks           string
}

// C2BSimulateRequest simulates an incoming customer payment (sandbox only).
type C2BSimulateRequest struct {
	PhoneNumber string // permissive MSISDN form
	Amount      int64
	BillRef     string
}

// RegisterURLRequest registers the confirmation/validation callback pair.
type RegisterURLRequest struct {
	ConfirmationURL string
	ValidationURL   string
	ResponseType    string // Completed or Cancelled
}

// ReversalRequest reverses a completed provider transaction.
type ReversalRequest struct {
	ProviderReceipt string // the M-Pesa receipt to reverse
	Amount          int64
	Remarks         string
	Occasion        string
}

// TransactionStatusRequest queries the state of a provider transaction.
type TransactionStatusRequest struct {
	ProviderReceipt string
	Remarks         string
}

// QRRequest generates a dynamic payment QR code.
type QRRequest struct {
	RefNo  string
	Amount int64
	Size   string
}

// QRResult carries the generated QR payload.
type QRResult struct {
	RequestID string
	QRCode    string // base64 image data
}

// AsyncResult is the provider's acknowledgment for operations whose terminal
// outcome arrives later via callback.
type AsyncResult struct {
	ConversationID           string
	OriginatorConversationID string
	ResponseCode             string
	ResponseDescription      string
}

// C2BResult is the provider's synchronous response for C2B operations.
type C2BResult struct {
	ConversationID           string
	OriginatorConversationID string
	ResponseDescription      string
}

// ProviderClient issues the Daraja operations over HTTPS and maps provider
// responses into the internal result types. Implementations must not mutate
// any state before a definitive response.
type ProviderClient interface {
	STKPush(ctx context.Context, m *domain.Merchant, req STKPushRequest) (*STKPushResult, error)
	STKQuery(ctx context.Context, m *domain.Merchant, checkoutRequestID string) (*STKQueryResult, error)
	B2C(ctx context.Context, m *domain.Merchant, req PayoutRequest) (*AsyncResult, error)
	B2B(ctx context.Context, m *domain.Merchant, req B2BRequest) (*AsyncResult, error)
	C2BSimulate(ctx context.Context, m *domain.Merchant, req C2BSimulateRequest) (*C2BResult, error)
	C2BRegisterURL(ctx context.Context, m *domain.Merchant, req RegisterURLRequest) (*C2BResult, error)
	Reversal(ctx context.Context, m *domain.Merchant, req ReversalRequest) (*AsyncResult, error)
	TransactionStatus(ctx context.Context, m *domain.Merchant, req TransactionStatusRequest) (*AsyncResult, error)
	QRGenerate(ctx context.Context, m *domain.Merchant, req QRRequest) (*QRResult, error)
}

// --- Core services ---

// TransactionStore provides idempotent create and serialized outcome
// application keyed by provider transaction id.
type TransactionStore interface {
	// Create returns the stored transaction and whether a new row was
	// created. A duplicate provider tx id returns the existing row unchanged.
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, bool, error)
	// ApplyOutcome moves a PENDING transaction to a terminal status and
	// merge-patches metadata. Applying an outcome to an already-terminal
	// transaction is a logged no-op: changed is false and the stored row is
	// returned untouched.
	ApplyOutcome(ctx context.Context, providerTxID string, status domain.TransactionStatus, patch domain.Metadata) (*domain.Transaction, bool, error)
	GetByProviderTxID(ctx context.Context, providerTxID string) (*domain.Transaction, error)
}

// WebhookDispatcher fans a transaction state change out to every active,
// subscribed webhook of the merchant. Delivery retries run independently of
// the triggering request's lifetime.
type WebhookDispatcher interface {
	Dispatch(ctx context.Context, t *domain.Transaction) error
	// ProcessDue re-attempts pending deliveries whose retry time has passed.
	ProcessDue(ctx context.Context) error
}

// --- Gateway operations (inbound API) ---

// ChargeRequest holds validated input for initiating a charge.
type ChargeRequest struct {
	MerchantID  uuid.UUID
	PhoneNumber string // raw, normalized inside the operation
	Amount      int64
	AccountRef  string
	Description string
}

// PayoutOperationRequest holds input for initiating a payout.
type PayoutOperationRequest struct {
	MerchantID        uuid.UUID
	Kind              domain.OperationKind // b2c or b2b
	PhoneNumber       string               // b2c target
	ReceiverShortCode string               // b2b target
	Amount            int64
	AccountRef        string
	Remarks           string
}

// SimulateRequest holds input for simulating an incoming payment.
type SimulateRequest struct {
	MerchantID  uuid.UUID
	PhoneNumber string
	Amount      int64
	BillRef     string
}

// ReverseRequest holds input for reversing a transaction.
type ReverseRequest struct {
	MerchantID      uuid.UUID
	ProviderReceipt string
	Amount          int64
	Remarks         string
}

// GatewayService is the inbound operation API consumed by merchant-facing
// callers. Each operation returns a Transaction snapshot or an
// apperror.AppError of one of the closed kinds.
type GatewayService interface {
	InitiateCharge(ctx context.Context, req ChargeRequest) (*domain.Transaction, error)
	QueryChargeStatus(ctx context.Context, merchantID uuid.UUID, checkoutRequestID string) (*domain.Transaction, error)
	InitiatePayout(ctx context.Context, req PayoutOperationRequest) (*domain.Transaction, error)
	SimulateIncomingPayment(ctx context.Context, req SimulateRequest) (*domain.Transaction, error)
	RegisterCallbackURL(ctx context.Context, merchantID uuid.UUID, confirmationURL, validationURL string) error
	ReverseTransaction(ctx context.Context, req ReverseRequest) (*domain.Transaction, error)
	QueryTransactionStatus(ctx context.Context, merchantID uuid.UUID, providerReceipt string) (*domain.Transaction, error)
	GenerateQR(ctx context.Context, merchantID uuid.UUID, req QRRequest) (*domain.Transaction, *QRResult, error)
	// ApplyProviderOutcome correlates an asynchronous provider callback to
	// its transaction and applies the terminal outcome, fanning out webhooks
	// when the state changed.
	ApplyProviderOutcome(ctx context.Context, providerTxID string, status domain.TransactionStatus, patch domain.Metadata) error
	// RecordIncomingPayment records a confirmed C2B payment against the
	// merchant owning shortCode, keyed by the provider receipt so duplicate
	// confirmations collapse into one transaction.
	RecordIncomingPayment(ctx context.Context, req IncomingPaymentRequest) (*domain.Transaction, error)
}

// IncomingPaymentRequest is a confirmed C2B payment reported by the provider.
type IncomingPaymentRequest struct {
	ShortCode       string
	ProviderReceipt string
	Amount          int64
	PhoneNumber     string
	BillRef         string
}

// --- Merchant management ---

// OnboardRequest creates a merchant.
type OnboardRequest struct {
	Name        string
	Environment domain.Environment
	ShortCode   string
}

// OnboardResponse carries the API token shown once at onboarding.
type OnboardResponse struct {
	Merchant *domain.Merchant
	APIToken string
	TokenExp time.Time
}

// WebhookCreateRequest registers a delivery target for a merchant.
type WebhookCreateRequest struct {
	MerchantID uuid.UUID
	URL        string
	Secret     string
	EventKinds []domain.OperationKind
}

// MerchantService handles onboarding and merchant-owned configuration.
type MerchantService interface {
	Onboard(ctx context.Context, req OnboardRequest) (*OnboardResponse, error)
	Get(ctx context.Context, merchantID uuid.UUID) (*domain.Merchant, error)
	StoreCredentials(ctx context.Context, merchantID uuid.UUID, set domain.CredentialSet) error
	CreateWebhook(ctx context.Context, req WebhookCreateRequest) (*domain.Webhook, error)
	SetWebhookActive(ctx context.Context, merchantID, webhookID uuid.UUID, active bool) error
	ListWebhooks(ctx context.Context, merchantID uuid.UUID) ([]domain.Webhook, error)
	ListDeliveries(ctx context.Context, merchantID, transactionID uuid.UUID) ([]domain.WebhookDelivery, error)
	ListTransactions(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
}

// TokenService issues and validates merchant API tokens (JWT).
type TokenService interface {
	Generate(merchantID uuid.UUID) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	MerchantID uuid.UUID
}

// CallbackDedup guards against duplicate provider callback delivery.
type CallbackDedup interface {
	// CheckAndSet atomically records key, returning true if it was unseen.
	CheckAndSet(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
