package dto

// ChargeRequest is the request body for initiating an STK push charge.
type ChargeRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	AccountRef  string `json:"account_ref" binding:"required,max=12"`
	Description string `json:"description,omitempty" binding:"max=13"`
}

// PayoutRequest is the request body for B2C and B2B payouts.
type PayoutRequest struct {
	Kind              string `json:"kind" binding:"required,oneof=b2c b2b"`
	PhoneNumber       string `json:"phone_number,omitempty"`
	ReceiverShortCode string `json:"receiver_short_code,omitempty"`
	Amount            int64  `json:"amount" binding:"required,gt=0"`
	AccountRef        string `json:"account_ref,omitempty" binding:"max=12"`
	Remarks           string `json:"remarks,omitempty" binding:"max=100"`
}

// SimulateRequest is the request body for sandbox C2B simulation.
type SimulateRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	BillRef     string `json:"bill_ref,omitempty" binding:"max=20"`
}

// RegisterURLsRequest is the request body for C2B callback URL registration.
type RegisterURLsRequest struct {
	ConfirmationURL string `json:"confirmation_url" binding:"required,safe_url"`
	ValidationURL   string `json:"validation_url,omitempty" binding:"safe_url"`
}

// ReverseRequest is the request body for reversing a completed transaction.
type ReverseRequest struct {
	ProviderReceipt string `json:"provider_receipt" binding:"required"`
	Amount          int64  `json:"amount" binding:"required,gt=0"`
	Remarks         string `json:"remarks,omitempty" binding:"max=100"`
}

// StatusQueryRequest is the request body for querying a transaction by receipt.
type StatusQueryRequest struct {
	ProviderReceipt string `json:"provider_receipt" binding:"required"`
}

// QRGenerateRequest is the request body for dynamic QR generation.
type QRGenerateRequest struct {
	RefNo  string `json:"ref_no" binding:"required,max=12"`
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Size   string `json:"size,omitempty"`
}

// OnboardRequest is the request body for merchant onboarding.
type OnboardRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Environment string `json:"environment" binding:"required,oneof=sandbox production"`
	ShortCode   string `json:"short_code" binding:"required,numeric,max=10"`
}

// CredentialsRequest is the request body for storing provider credentials.
// Fields are write-only: no endpoint ever returns them.
type CredentialsRequest struct {
	ConsumerKey       string `json:"consumer_key" binding:"required"`
	ConsumerSecret    string `json:"consumer_secret" binding:"required"`
	Passkey           string `json:"passkey,omitempty"`
	InitiatorName     string `json:"initiator_name,omitempty"`
	InitiatorPassword string `json:"initiator_password,omitempty"`
	SandboxCertPEM    string `json:"sandbox_cert_pem,omitempty"`
	ProductionCertPEM string `json:"production_cert_pem,omitempty"`
}

// WebhookCreateRequest is the request body for registering a webhook.
type WebhookCreateRequest struct {
	URL        string   `json:"url" binding:"required,safe_url"`
	Secret     string   `json:"secret" binding:"required,min=8"`
	EventKinds []string `json:"event_kinds" binding:"required,min=1"`
}

// WebhookActiveRequest toggles a webhook.
type WebhookActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// OnboardResponse is the response for successful onboarding. The API token
// appears here exactly once.
type OnboardResponse struct {
	MerchantID  string `json:"merchant_id"`
	Name        string `json:"name"`
	Environment string `json:"environment"`
	ShortCode   string `json:"short_code"`
	APIToken    string `json:"api_token"`
	TokenExpiry int64  `json:"token_expiry"` // Unix timestamp
}

// MerchantResponse is the merchant profile.
type MerchantResponse struct {
	MerchantID  string `json:"merchant_id"`
	Name        string `json:"name"`
	Environment string `json:"environment"`
	ShortCode   string `json:"short_code"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// TransactionResponse is the response body for transaction results.
type TransactionResponse struct {
	ID           string         `json:"id"`
	ProviderTxID string         `json:"provider_tx_id"`
	Operation    string         `json:"operation"`
	Amount       int64          `json:"amount"`
	Status       string         `json:"status"`
	PhoneNumber  *string        `json:"phone_number,omitempty"`
	AccountRef   *string        `json:"account_ref,omitempty"`
	Description  *string        `json:"description,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

// TransactionListResponse wraps a paginated transaction list.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// QRGenerateResponse carries the generated QR payload.
type QRGenerateResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	RequestID   string              `json:"request_id"`
	QRCode      string              `json:"qr_code"` // base64 image data
}

// WebhookResponse is a webhook endpoint, secret excluded.
type WebhookResponse struct {
	ID         string   `json:"id"`
	URL        string   `json:"url"`
	EventKinds []string `json:"event_kinds"`
	Active     bool     `json:"active"`
	CreatedAt  string   `json:"created_at"`
}

// DeliveryResponse is one row of the webhook delivery audit trail.
type DeliveryResponse struct {
	ID             string  `json:"id"`
	WebhookID      string  `json:"webhook_id"`
	EventID        string  `json:"event_id"`
	Status         string  `json:"status"`
	Attempts       int     `json:"attempts"`
	LastHTTPStatus *int    `json:"last_http_status,omitempty"`
	NextRetryAt    *string `json:"next_retry_at,omitempty"`
	DeliveredAt    *string `json:"delivered_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
