package service

import (
	"context"
	"fmt"
	"time"

	"daraja-gateway/internal/core/domain"
	"daraja-gateway/internal/core/ports"
	"daraja-gateway/pkg/apperror"
	"daraja-gateway/pkg/msisdn"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// STK query result codes with dedicated terminal mappings.
const (
	stkResultSuccess   = "0"
	stkResultCancelled = "1032"
)

// GatewayServiceImpl implements ports.GatewayService. Every operation loads
// the merchant, validates input before any network call, issues the provider
// request, and records a transaction keyed by the provider tx id. Terminal
// outcomes fan out to merchant webhooks exactly once per state change.
type GatewayServiceImpl struct {
	merchantRepo ports.MerchantRepository
	txStore      ports.TransactionStore
	provider     ports.ProviderClient
	dispatcher   ports.WebhookDispatcher
	log          zerolog.Logger
}

// NewGatewayService creates a new GatewayServiceImpl.
func NewGatewayService(
	merchantRepo ports.MerchantRepository,
	txStore ports.TransactionStore,
	provider ports.ProviderClient,
	dispatcher ports.WebhookDispatcher,
	log zerolog.Logger,
) *GatewayServiceImpl {
	return &GatewayServiceImpl{
		merchantRepo: merchantRepo,
		txStore:      txStore,
		provider:     provider,
		dispatcher:   dispatcher,
		log:          log,
	}
}

var _ ports.GatewayService = (*GatewayServiceImpl)(nil)

// activeMerchant loads the merchant and rejects suspended accounts.
func (s *GatewayServiceImpl) activeMerchant(ctx context.Context, merchantID uuid.UUID) (*domain.Merchant, error) {
	m, err := s.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("load merchant: %w", err))
	}
	if m == nil {
		return nil, apperror.NotFound("merchant")
	}
	if m.Status != domain.MerchantStatusActive {
		return nil, apperror.Validation("merchant is suspended")
	}
	return m, nil
}

// InitiateCharge issues an STK push and records the PENDING transaction
// keyed by the checkout request id.
func (s *GatewayServiceImpl) InitiateCharge(ctx context.Context, req ports.ChargeRequest) (*domain.Transaction, error) {
	m, err := s.activeMerchant(ctx, req.MerchantID)
	if err != nil {
		return nil, err
	}

	phone, err := msisdn.NormalizeStrict(req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive")
	}
	if req.AccountRef == "" {
		return nil, apperror.Validation("account reference is required")
	}

	res, err := s.provider.STKPush(ctx, m, ports.STKPushRequest{
		PhoneNumber: phone,
		Amount:      req.Amount,
		AccountRef:  req.AccountRef,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	txn := newTransaction(m.ID, res.CheckoutRequestID, domain.OpSTKPush, req.Amount)
	txn.PhoneNumber = &phone
	txn.AccountRef = &req.AccountRef
	if req.Description != "" {
		txn.Description = &req.Description
	}
	txn.Metadata = domain.Metadata{
		"MerchantRequestID": res.MerchantRequestID,
		"ResponseCode":      res.ResponseCode,
		"CustomerMessage":   res.CustomerMessage,
	}

	stored, created, err := s.txStore.Create(ctx, txn)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("merchant_id", m.ID.String()).
		Str("provider_tx_id", stored.ProviderTxID).
		Bool("created", created).
		Msg("charge initiated")
	return stored, nil
}

// QueryChargeStatus polls the provider for an STK push outcome and applies
// it when terminal.
func (s *GatewayServiceImpl) QueryChargeStatus(ctx context.Context, merchantID uuid.UUID, checkoutRequestID string) (*domain.Transaction, error) {
	m, err := s.activeMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	res, err := s.provider.STKQuery(ctx, m, checkoutRequestID)
	if err != nil {
		return nil, err
	}

	var status domain.TransactionStatus
	switch res.ResultCode {
	case stkResultSuccess:
		status = domain.TransactionStatusSuccess
	case stkResultCancelled:
		status = domain.TransactionStatusCancelled
	default:
		status = domain.TransactionStatusFailed
	}

	return s.applyOutcome(ctx, checkoutRequestID, status, domain.Metadata{
		"ResultCode": res.ResultCode,
		"ResultDesc": res.ResultDesc,
	})
}

// InitiatePayout issues a B2C or B2B payment and records the PENDING
// transaction keyed by the conversation id. The terminal outcome arrives
// via the result callback.
func (s *GatewayServiceImpl) InitiatePayout(ctx context.Context, req ports.PayoutOperationRequest) (*domain.Transaction, error) {
	m, err := s.activeMerchant(ctx, req.MerchantID)
	if err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive")
	}

	var (
		res *ports.AsyncResult
		txn *domain.Transaction
	)
	switch req.Kind {
	case domain.OpB2C:
		phone, err := msisdn.NormalizePermissive(req.PhoneNumber)
		if err != nil {
			return nil, err
		}
		res, err = s.provider.B2C(ctx, m, ports.PayoutRequest{
			PhoneNumber: phone,
			Amount:      req.Amount,
			Remarks:     req.Remarks,
		})
		if err != nil {
			return nil, err
		}
		txn = newTransaction(m.ID, res.ConversationID, domain.OpB2C, req.Amount)
		txn.PhoneNumber = &phone

	case domain.OpB2B:
		if req.ReceiverShortCode == "" {
			return nil, apperror.Validation("receiver short code is required")
		}
		res, err = s.provider.B2B(ctx, m, ports.B2BRequest{
			ReceiverShortCode: req.ReceiverShortCode,
			Amount:            req.Amount,
			AccountRef:        req.AccountRef,
			Remarks:           req.Remarks,
		})
		if err != nil {
			return nil, err
		}
		txn = newTransaction(m.ID, res.ConversationID, domain.OpB2B, req.Amount)
		if req.AccountRef != "" {
			txn.AccountRef = &req.AccountRef
		}

	default:
		return nil, apperror.Validation(fmt.Sprintf("unsupported payout kind %q", req.Kind))
	}

	txn.Metadata = domain.Metadata{
		"OriginatorConversationID": res.OriginatorConversationID,
		"ResponseDescription":      res.ResponseDescription,
	}

	stored, _, err := s.txStore.Create(ctx, txn)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("merchant_id", m.ID.String()).
		Str("provider_tx_id", stored.ProviderTxID).
		Str("kind", string(req.Kind)).
		Msg("payout initiated")
	return stored, nil
}

// SimulateIncomingPayment asks the sandbox to simulate a customer payment.
// The transaction stays PENDING until the confirmation callback records the
// authoritative incoming payment.
func (s *GatewayServiceImpl) SimulateIncomingPayment(ctx context.Context, req ports.SimulateRequest) (*domain.Transaction, error) {
	m, err := s.activeMerchant(ctx, req.MerchantID)
	if err != nil {
		return nil, err
	}
	if m.Environment != domain.EnvironmentSandbox {
		return nil, apperror.Validation("simulate is only available in sandbox")
	}

	phone, err := msisdn.NormalizePermissive(req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive")
	}

	res, err := s.provider.C2BSimulate(ctx, m, ports.C2BSimulateRequest{
		PhoneNumber: phone,
		Amount:      req.Amount,
		BillRef:     req.BillRef,
	})
	if err != nil {
		return nil, err
	}

	providerTxID := res.ConversationID
	if providerTxID == "" {
		providerTxID = res.OriginatorConversationID
	}
	txn := newTransaction(m.ID, providerTxID, domain.OpC2B, req.Amount)
	txn.PhoneNumber = &phone
	if req.BillRef != "" {
		txn.AccountRef = &req.BillRef
	}
	txn.Metadata = domain.Metadata{"ResponseDescription": res.ResponseDescription}

	stored, _, err := s.txStore.Create(ctx, txn)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// RegisterCallbackURL registers the merchant's C2B confirmation and
// validation URLs with the provider.
func (s *GatewayServiceImpl) RegisterCallbackURL(ctx context.Context, merchantID uuid.UUID, confirmationURL, validationURL string) error {
	m, err := s.activeMerchant(ctx, merchantID)
	if err != nil {
		return err
	}
	if confirmationURL == "" {
		return apperror.Validation("confirmation URL is required")
	}

	_, err = s.provider.C2BRegisterURL(ctx, m, ports.RegisterURLRequest{
		ConfirmationURL: confirmationURL,
		ValidationURL:   validationURL,
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("merchant_id", m.ID.String()).Msg("C2B callback URLs registered")
	return nil
}

// ReverseTransaction asks the provider to reverse a completed transaction.
// The reversal gets its own PENDING transaction keyed by the conversation id.
func (s *GatewayServiceImpl) ReverseTransaction(ctx context.Context, req ports.ReverseRequest) (*domain.Transaction, error) {
	m, err := s.activeMerchant(ctx, req.MerchantID)
	if err != nil {
		return nil, err
	}
	if req.ProviderReceipt == "" {
		return nil, apperror.Validation("provider receipt is required")
	}
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive")
	}

	res, err := s.provider.Reversal(ctx, m, ports.ReversalRequest{
		ProviderReceipt: req.ProviderReceipt,
		Amount:          req.Amount,
		Remarks:         req.Remarks,
	})
	if err != nil {
		return nil, err
	}

	txn := newTransaction(m.ID, res.ConversationID, domain.OpReversal, req.Amount)
	txn.Metadata = domain.Metadata{
		"OriginatorConversationID": res.OriginatorConversationID,
		"ReversedReceipt":          req.ProviderReceipt,
		"ResponseDescription":      res.ResponseDescription,
	}

	stored, _, err := s.txStore.Create(ctx, txn)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// QueryTransactionStatus asks the provider for the state of a transaction by
// receipt. The answer arrives via the result callback; the query itself is
// recorded as its own PENDING transaction.
func (s *GatewayServiceImpl) QueryTransactionStatus(ctx context.Context, merchantID uuid.UUID, providerReceipt string) (*domain.Transaction, error) {
	m, err := s.activeMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if providerReceipt == "" {
		return nil, apperror.Validation("provider receipt is required")
	}

	res, err := s.provider.TransactionStatus(ctx, m, ports.TransactionStatusRequest{
		ProviderReceipt: providerReceipt,
	})
	if err != nil {
		return nil, err
	}

	txn := newTransaction(m.ID, res.ConversationID, domain.OpTransactionStatus, 0)
	txn.Metadata = domain.Metadata{
		"OriginatorConversationID": res.OriginatorConversationID,
		"QueriedReceipt":           providerReceipt,
		"ResponseDescription":      res.ResponseDescription,
	}

	stored, _, err := s.txStore.Create(ctx, txn)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// GenerateQR creates a dynamic payment QR code. The provider answers
// synchronously, so the transaction is recorded terminal immediately.
func (s *GatewayServiceImpl) GenerateQR(ctx context.Context, merchantID uuid.UUID, req ports.QRRequest) (*domain.Transaction, *ports.QRResult, error) {
	m, err := s.activeMerchant(ctx, merchantID)
	if err != nil {
		return nil, nil, err
	}
	if req.Amount <= 0 {
		return nil, nil, apperror.Validation("amount must be positive")
	}

	res, err := s.provider.QRGenerate(ctx, m, req)
	if err != nil {
		return nil, nil, err
	}

	providerTxID := res.RequestID
	if providerTxID == "" {
		providerTxID = "qr_" + uuid.NewString()
	}
	txn := newTransaction(m.ID, providerTxID, domain.OpQRCode, req.Amount)
	txn.Status = domain.TransactionStatusSuccess
	if req.RefNo != "" {
		txn.AccountRef = &req.RefNo
	}

	stored, created, err := s.txStore.Create(ctx, txn)
	if err != nil {
		return nil, nil, err
	}
	// Created terminal, so this is the only chance to fan out.
	if created {
		if derr := s.dispatcher.Dispatch(ctx, stored); derr != nil {
			s.log.Error().Err(derr).
				Str("provider_tx_id", stored.ProviderTxID).
				Msg("webhook fan-out failed for qr code")
		}
	}
	return stored, res, nil
}

// ApplyProviderOutcome applies an asynchronous callback outcome to its
// transaction and fans out webhooks when the state changed.
func (s *GatewayServiceImpl) ApplyProviderOutcome(ctx context.Context, providerTxID string, status domain.TransactionStatus, patch domain.Metadata) error {
	_, err := s.applyOutcome(ctx, providerTxID, status, patch)
	return err
}

// RecordIncomingPayment records a confirmed C2B payment. Keyed by the
// provider receipt, so redelivered confirmations collapse into one row and
// fan out webhooks only once.
func (s *GatewayServiceImpl) RecordIncomingPayment(ctx context.Context, req ports.IncomingPaymentRequest) (*domain.Transaction, error) {
	m, err := s.merchantRepo.GetByShortCode(ctx, req.ShortCode)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("resolve short code: %w", err))
	}
	if m == nil {
		return nil, apperror.NotFound("merchant")
	}
	if req.ProviderReceipt == "" {
		return nil, apperror.Validation("provider receipt is required")
	}

	txn := newTransaction(m.ID, req.ProviderReceipt, domain.OpC2B, req.Amount)
	txn.Status = domain.TransactionStatusSuccess
	if req.PhoneNumber != "" {
		txn.PhoneNumber = &req.PhoneNumber
	}
	if req.BillRef != "" {
		txn.AccountRef = &req.BillRef
	}

	stored, created, err := s.txStore.Create(ctx, txn)
	if err != nil {
		return nil, err
	}
	if created {
		if derr := s.dispatcher.Dispatch(ctx, stored); derr != nil {
			s.log.Error().Err(derr).
				Str("provider_tx_id", stored.ProviderTxID).
				Msg("webhook fan-out failed for incoming payment")
		}
	}
	return stored, nil
}

// applyOutcome moves the transaction and, when it actually transitioned,
// fans out to webhooks. Duplicate terminal outcomes skip the fan-out.
func (s *GatewayServiceImpl) applyOutcome(ctx context.Context, providerTxID string, status domain.TransactionStatus, patch domain.Metadata) (*domain.Transaction, error) {
	stored, changed, err := s.txStore.ApplyOutcome(ctx, providerTxID, status, patch)
	if err != nil {
		return nil, err
	}
	if changed {
		if derr := s.dispatcher.Dispatch(ctx, stored); derr != nil {
			s.log.Error().Err(derr).
				Str("provider_tx_id", providerTxID).
				Msg("webhook fan-out failed")
		}
	}
	return stored, nil
}

func newTransaction(merchantID uuid.UUID, providerTxID string, op domain.OperationKind, amount int64) *domain.Transaction {
	now := time.Now().UTC()
	return &domain.Transaction{
		ID:           uuid.New(),
		MerchantID:   merchantID,
		ProviderTxID: providerTxID,
		Operation:    op,
		Amount:       amount,
		Status:       domain.TransactionStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
