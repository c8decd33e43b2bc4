package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"daraja-gateway/internal/core/domain"
	"daraja-gateway/internal/core/ports"
	"daraja-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MerchantServiceImpl implements ports.MerchantService.
type MerchantServiceImpl struct {
	merchantRepo ports.MerchantRepository
	webhookRepo  ports.WebhookRepository
	deliveryRepo ports.WebhookDeliveryRepository
	txRepo       ports.TransactionRepository
	auditRepo    ports.AuditRepository
	vault        ports.CredentialVault
	providerToks ports.TokenProvider
	tokenSvc     ports.TokenService
	encSvc       ports.EncryptionService
	log          zerolog.Logger
}

// NewMerchantService creates a new MerchantServiceImpl.
func NewMerchantService(
	merchantRepo ports.MerchantRepository,
	webhookRepo ports.WebhookRepository,
	deliveryRepo ports.WebhookDeliveryRepository,
	txRepo ports.TransactionRepository,
	auditRepo ports.AuditRepository,
	vault ports.CredentialVault,
	providerToks ports.TokenProvider,
	tokenSvc ports.TokenService,
	encSvc ports.EncryptionService,
	log zerolog.Logger,
) *MerchantServiceImpl {
	return &MerchantServiceImpl{
		merchantRepo: merchantRepo,
		webhookRepo:  webhookRepo,
		deliveryRepo: deliveryRepo,
		txRepo:       txRepo,
		auditRepo:    auditRepo,
		vault:        vault,
		providerToks: providerToks,
		tokenSvc:     tokenSvc,
		encSvc:       encSvc,
		log:          log,
	}
}

var _ ports.MerchantService = (*MerchantServiceImpl)(nil)

// Onboard creates a merchant and mints its API token. The token is returned
// exactly once; only its claims are ever derivable afterwards.
func (s *MerchantServiceImpl) Onboard(ctx context.Context, req ports.OnboardRequest) (*ports.OnboardResponse, error) {
	if req.Name == "" {
		return nil, apperror.Validation("merchant name is required")
	}
	if !req.Environment.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown environment %q", req.Environment))
	}
	if req.ShortCode == "" {
		return nil, apperror.Validation("short code is required")
	}

	now := time.Now().UTC()
	merchant := &domain.Merchant{
		ID:          uuid.New(),
		Name:        req.Name,
		Environment: req.Environment,
		ShortCode:   req.ShortCode,
		Status:      domain.MerchantStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, apperror.Internal(fmt.Errorf("create merchant: %w", err))
	}

	token, expiresAt, err := s.tokenSvc.Generate(merchant.ID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("mint API token: %w", err))
	}

	s.log.Info().
		Str("merchant_id", merchant.ID.String()).
		Str("environment", string(merchant.Environment)).
		Msg("merchant onboarded")

	return &ports.OnboardResponse{
		Merchant: merchant,
		APIToken: token,
		TokenExp: expiresAt,
	}, nil
}

// Get fetches a merchant by id.
func (s *MerchantServiceImpl) Get(ctx context.Context, merchantID uuid.UUID) (*domain.Merchant, error) {
	m, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("load merchant: %w", err))
	}
	if m == nil {
		return nil, apperror.NotFound("merchant")
	}
	return m, nil
}

// StoreCredentials stores the merchant's provider credential set in the
// vault, replacing any previous set.
func (s *MerchantServiceImpl) StoreCredentials(ctx context.Context, merchantID uuid.UUID, set domain.CredentialSet) error {
	if _, err := s.Get(ctx, merchantID); err != nil {
		return err
	}
	if err := s.vault.Store(ctx, merchantID, set); err != nil {
		return err
	}
	// A bearer token minted under the replaced key pair may already be
	// revoked provider-side; force a fresh exchange on the next call.
	s.providerToks.Invalidate(merchantID)
	return nil
}

// CreateWebhook registers a delivery target. The shared secret is stored
// encrypted and never returned.
func (s *MerchantServiceImpl) CreateWebhook(ctx context.Context, req ports.WebhookCreateRequest) (*domain.Webhook, error) {
	if _, err := s.Get(ctx, req.MerchantID); err != nil {
		return nil, err
	}
	u, err := url.Parse(req.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apperror.Validation("webhook URL must be an absolute http(s) URL")
	}
	if req.Secret == "" {
		return nil, apperror.Validation("webhook secret is required")
	}
	if len(req.EventKinds) == 0 {
		return nil, apperror.Validation("at least one event kind is required")
	}
	for _, k := range req.EventKinds {
		if !validOperationKind(k) {
			return nil, apperror.Validation(fmt.Sprintf("unknown event kind %q", k))
		}
	}

	secretEnc, err := s.encSvc.Encrypt(req.Secret)
	if err != nil {
		return nil, apperror.Encryption("encrypting webhook secret", err)
	}

	now := time.Now().UTC()
	w := &domain.Webhook{
		ID:         uuid.New(),
		MerchantID: req.MerchantID,
		URL:        req.URL,
		SecretEnc:  secretEnc,
		EventKinds: req.EventKinds,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.webhookRepo.Create(ctx, w); err != nil {
		return nil, apperror.Internal(fmt.Errorf("create webhook: %w", err))
	}

	s.audit(ctx, req.MerchantID, map[string]any{"webhook_id": w.ID.String(), "change": "created"})
	return w, nil
}

// SetWebhookActive enables or disables a webhook owned by the merchant.
func (s *MerchantServiceImpl) SetWebhookActive(ctx context.Context, merchantID, webhookID uuid.UUID, active bool) error {
	w, err := s.webhookRepo.GetByID(ctx, webhookID)
	if err != nil {
		return apperror.Internal(fmt.Errorf("load webhook: %w", err))
	}
	if w == nil || w.MerchantID != merchantID {
		return apperror.NotFound("webhook")
	}
	if err := s.webhookRepo.SetActive(ctx, webhookID, active); err != nil {
		return apperror.Internal(fmt.Errorf("set webhook active: %w", err))
	}

	change := "disabled"
	if active {
		change = "enabled"
	}
	s.audit(ctx, merchantID, map[string]any{"webhook_id": webhookID.String(), "change": change})
	return nil
}

// ListWebhooks lists the merchant's webhooks, secrets excluded.
func (s *MerchantServiceImpl) ListWebhooks(ctx context.Context, merchantID uuid.UUID) ([]domain.Webhook, error) {
	webhooks, err := s.webhookRepo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list webhooks: %w", err))
	}
	return webhooks, nil
}

// ListDeliveries returns the delivery audit trail for one of the merchant's
// transactions.
func (s *MerchantServiceImpl) ListDeliveries(ctx context.Context, merchantID, transactionID uuid.UUID) ([]domain.WebhookDelivery, error) {
	txn, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("load transaction: %w", err))
	}
	if txn == nil || txn.MerchantID != merchantID {
		return nil, apperror.NotFound("transaction")
	}

	deliveries, err := s.deliveryRepo.ListByTransaction(ctx, transactionID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list deliveries: %w", err))
	}
	return deliveries, nil
}

// ListTransactions lists the merchant's transactions with filters and
// pagination.
func (s *MerchantServiceImpl) ListTransactions(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 || params.PageSize > 100 {
		params.PageSize = 20
	}
	txns, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.Internal(fmt.Errorf("list transactions: %w", err))
	}
	return txns, total, nil
}

func (s *MerchantServiceImpl) audit(ctx context.Context, merchantID uuid.UUID, details map[string]any) {
	b, err := json.Marshal(details)
	if err != nil {
		b = []byte("{}")
	}
	entry := &domain.AuditLog{
		ID:         uuid.New(),
		MerchantID: &merchantID,
		Action:     domain.AuditActionWebhookChange,
		Actor:      "merchant",
		Details:    string(b),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("merchant_id", merchantID.String()).Msg("failed to write audit entry")
	}
}

func validOperationKind(k domain.OperationKind) bool {
	switch k {
	case domain.OpSTKPush, domain.OpSTKQuery, domain.OpB2C, domain.OpB2B,
		domain.OpC2B, domain.OpQRCode, domain.OpTransactionStatus, domain.OpReversal:
		return true
	}
	return false
}
