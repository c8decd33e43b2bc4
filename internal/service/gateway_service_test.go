package service

import (
	"context"
	"testing"

	"daraja-gateway/internal/core/domain"
	"daraja-gateway/internal/core/ports"
	"daraja-gateway/internal/core/ports/mocks"
	"daraja-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type gatewayTestDeps struct {
	svc          *GatewayServiceImpl
	merchantRepo *mocks.MockMerchantRepository
	txStore      *mocks.MockTransactionStore
	provider     *mocks.MockProviderClient
	dispatcher   *mocks.MockWebhookDispatcher
	ctrl         *gomock.Controller
}

func setupGateway(t *testing.T) *gatewayTestDeps {
	ctrl := gomock.NewController(t)
	d := &gatewayTestDeps{
		merchantRepo: mocks.NewMockMerchantRepository(ctrl),
		txStore:      mocks.NewMockTransactionStore(ctrl),
		provider:     mocks.NewMockProviderClient(ctrl),
		dispatcher:   mocks.NewMockWebhookDispatcher(ctrl),
		ctrl:         ctrl,
	}
	d.svc = NewGatewayService(d.merchantRepo, d.txStore, d.provider, d.dispatcher, zerolog.Nop())
	return d
}

func activeMerchant(env domain.Environment) *domain.Merchant {
	return &domain.Merchant{
		ID:          uuid.New(),
		Name:        "Acme Stores",
		Environment: env,
		ShortCode:   "174379",
		Status:      domain.MerchantStatusActive,
	}
}

func TestGateway_InitiateCharge(t *testing.T) {
	d := setupGateway(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	m := activeMerchant(domain.EnvironmentSandbox)

	d.merchantRepo.EXPECT().GetByID(ctx, m.ID).Return(m, nil)
	d.provider.EXPECT().STKPush(ctx, m, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *domain.Merchant, req ports.STKPushRequest) (*ports.STKPushResult, error) {
			// Local 07... form must reach the provider normalized.
			assert.Equal(t, "254712345678", req.PhoneNumber)
			return &ports.STKPushResult{
				MerchantRequestID: "29115-1",
				CheckoutRequestID: "ws_CO_999",
				ResponseCode:      "0",
			}, nil
		})
	d.txStore.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, txn *domain.Transaction) (*domain.Transaction, bool, error) {
			assert.Equal(t, "ws_CO_999", txn.ProviderTxID)
			assert.Equal(t, domain.OpSTKPush, txn.Operation)
			assert.Equal(t, domain.TransactionStatusPending, txn.Status)
			assert.Equal(t, "29115-1", txn.Metadata["MerchantRequestID"])
			return txn, true, nil
		})

	result, err := d.svc.InitiateCharge(ctx, ports.ChargeRequest{
		MerchantID:  m.ID,
		PhoneNumber: "0712345678",
		Amount:      100,
		AccountRef:  "ORDER1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusPending, result.Status)
}

func TestGateway_InitiateCharge_RejectsBeforeProvider(t *testing.T) {
	d := setupGateway(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	m := activeMerchant(domain.EnvironmentSandbox)

	cases := map[string]ports.ChargeRequest{
		"bad phone":  {MerchantID: m.ID, PhoneNumber: "0312345678", Amount: 100, AccountRef: "R"},
		"zero amt":   {MerchantID: m.ID, PhoneNumber: "0712345678", Amount: 0, AccountRef: "R"},
		"no account": {MerchantID: m.ID, PhoneNumber: "0712345678", Amount: 100},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			d.merchantRepo.EXPECT().GetByID(ctx, m.ID).Return(m, nil)
			_, err := d.svc.InitiateCharge(ctx, req)
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		})
	}
}

func TestGateway_InitiateCharge_SuspendedMerchant(t *testing.T) {
	d := setupGateway(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	m := activeMerchant(domain.EnvironmentSandbox)
	m.Status = domain.MerchantStatusSuspended
	d.merchantRepo.EXPECT().GetByID(ctx, m.ID).Return(m, nil)

	_, err := d.svc.InitiateCharge(ctx, ports.ChargeRequest{
		MerchantID: m.ID, PhoneNumber: "0712345678", Amount: 100, AccountRef: "R",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestGateway_InitiateCharge_ProviderRejectionCreatesNoTransaction(t *testing.T) {
	d := setupGateway(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	m := activeMerchant(domain.EnvironmentSandbox)

	d.merchantRepo.EXPECT().GetByID(ctx, m.ID).Return(m, nil)
	d.provider.EXPECT().STKPush(ctx, m, gomock.Any()).
		Return(nil, apperror.API("500.001.1001", "Unable to lock subscriber"))

	_, err := d.svc.InitiateCharge(ctx, ports.ChargeRequest{
		MerchantID: m.ID, PhoneNumber: "0712345678", Amount: 100, AccountRef: "R",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindAPI))
}

func TestGateway_QueryChargeStatus_AppliesTerminalOutcome(t *testing.T) {
	d := setupGateway(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	m := activeMerchant(domain.EnvironmentSandbox)
	txn := &domain.Transaction{
		ID:           uuid.New(),
		MerchantID:   m.ID,
		ProviderTxID: "ws_CO_5",
		Operation:    domain.OpSTKPush,
		Status:       domain.TransactionStatusCancelled,
	}

	d.merchantRepo.EXPECT().GetByID(ctx, m.ID).Return(m, nil)
	d.provider.EXPECT().STKQuery(ctx, m, "ws_CO_5").Return(&ports.STKQueryResult{
		CheckoutRequestID: "ws_CO_5",
		ResultCode:        "1032",
		ResultDesc:        "Request cancelled by user",
	}, nil)
	d.txStore.EXPECT().
		ApplyOutcome(ctx, "ws_CO_5", domain.TransactionStatusCancelled, gomock.Any()).
		Return(txn, true, nil)
	d.dispatcher.EXPECT().Dispatch(ctx, txn).Return(nil)

	result, err := d.svc.QueryChargeStatus(ctx, m.ID, "ws_CO_5")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusCancelled, result.Status)
}

func TestGateway_InitiatePayout_B2C(t *testing.T) {
	d := setupGateway(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	m := activeMerchant(domain.EnvironmentSandbox)

	d.merchantRepo.EXPECT().GetByID(ctx, m.ID).Return(m, nil)
	d.provider.EXPECT().B2C(ctx, m, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *domain.Merchant, req ports.PayoutRequest) (*ports.AsyncResult, error) {
			assert.Equal(t, "254733000000", req.PhoneNumber)
			return &ports.AsyncResult{
				ConversationID:           "AG_1",
				OriginatorConversationID: "29115-2",
				ResponseCode:             "0",
			}, nil
		})
	d.txStore.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, txn *domain.Transaction) (*domain.Transaction, bool, error) {
			assert.Equal(t, "AG_1", txn.ProviderTxID)
			assert.Equal(t, domain.OpB2C, txn.Operation)
			return txn, true, nil
		})

	result, err := d.svc.InitiatePayout(ctx, ports.PayoutOperationRequest{
		MerchantID:  m.ID,
		Kind:        domain.OpB2C,
		PhoneNumber: "0733000000", // non-Safaricom range allowed for payouts
		Amount:      2500,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusPending, result.Status)
}

func TestGateway_InitiatePayout_UnknownKind(t *testing.T) {
	d := setupGateway(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	m := activeMerchant(domain.EnvironmentSandbox)
	d.merchantRepo.EXPECT().GetByID(ctx, m.ID).Return(m, nil)

	_, err := d.svc.InitiatePayout(ctx, ports.PayoutOperationRequest{
		MerchantID: m.ID, Kind: domain.OpSTKPush, PhoneNumber: "0712345678", Amount: 10,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestGateway_SimulateIncomingPayment_SandboxOnly(t *testing.T) {
	d := setupGateway(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	m := activeMerchant(domain.EnvironmentProduction)
	d.merchantRepo.EXPECT().GetByID(ctx, m.ID).Return(m, nil)

	_, err := d.svc.SimulateIncomingPayment(ctx, ports.SimulateRequest{
		MerchantID: m.ID, PhoneNumber: "0708374149", Amount: 500,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestGateway_ReverseTransaction(t *testing.T) {
	d := setupGateway(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	m := activeMerchant(domain.EnvironmentSandbox)

	d.merchantRepo.EXPECT().GetByID(ctx, m.ID).Return(m, nil)
	d.provider.EXPECT().Reversal(ctx, m, gomock.Any()).Return(&ports.AsyncResult{
		ConversationID: "AG_REV_1",
	}, nil)
	d.txStore.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, txn *domain.Transaction) (*domain.Transaction, bool, error) {
			assert.Equal(t, domain.OpReversal, txn.Operation)
			assert.Equal(t, "NLJ7RT61SV", txn.Metadata["ReversedReceipt"])
			return txn, true, nil
		})

	_, err := d.svc.ReverseTransaction(ctx, ports.ReverseRequest{
		MerchantID: m.ID, ProviderReceipt: "NLJ7RT61SV", Amount: 100,
	})
	require.NoError(t, err)
}

func TestGateway_ApplyProviderOutcome_DispatchesOnChange(t *testing.T) {
	d := setupGateway(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := &domain.Transaction{
		ID:           uuid.New(),
		ProviderTxID: "ws_CO_7",
		Status:       domain.TransactionStatusSuccess,
	}

	d.txStore.EXPECT().
		ApplyOutcome(ctx, "ws_CO_7", domain.TransactionStatusSuccess, gomock.Any()).
		Return(txn, true, nil)
	d.dispatcher.EXPECT().Dispatch(ctx, txn).Return(nil)

	err := d.svc.ApplyProviderOutcome(ctx, "ws_CO_7", domain.TransactionStatusSuccess, domain.Metadata{
		"MpesaReceiptNumber": "NLJ7RT61SV",
	})
	require.NoError(t, err)
}

func TestGateway_ApplyProviderOutcome_NoFanOutOnDuplicate(t *testing.T) {
	d := setupGateway(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := &domain.Transaction{
		ID:           uuid.New(),
		ProviderTxID: "ws_CO_7",
		Status:       domain.TransactionStatusSuccess,
	}

	// Already terminal: no Dispatch expectation.
	d.txStore.EXPECT().
		ApplyOutcome(ctx, "ws_CO_7", domain.TransactionStatusFailed, gomock.Any()).
		Return(txn, false, nil)

	err := d.svc.ApplyProviderOutcome(ctx, "ws_CO_7", domain.TransactionStatusFailed, nil)
	require.NoError(t, err)
}

func TestGateway_GenerateQR_DispatchesWebhooks(t *testing.T) {
	d := setupGateway(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	m := activeMerchant(domain.EnvironmentSandbox)

	d.merchantRepo.EXPECT().GetByID(ctx, m.ID).Return(m, nil)
	d.provider.EXPECT().QRGenerate(ctx, m, gomock.Any()).Return(&ports.QRResult{
		RequestID: "QR-77", QRCode: "aGVsbG8=",
	}, nil)
	d.txStore.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, txn *domain.Transaction) (*domain.Transaction, bool, error) {
			assert.Equal(t, domain.OpQRCode, txn.Operation)
			assert.Equal(t, domain.TransactionStatusSuccess, txn.Status)
			return txn, true, nil
		})
	// The row is born terminal; subscribers get exactly this one fan-out.
	d.dispatcher.EXPECT().Dispatch(ctx, gomock.Any()).Return(nil)

	txn, res, err := d.svc.GenerateQR(ctx, m.ID, ports.QRRequest{RefNo: "INV-1", Amount: 750})
	require.NoError(t, err)
	assert.Equal(t, "QR-77", txn.ProviderTxID)
	assert.Equal(t, "aGVsbG8=", res.QRCode)
}

func TestGateway_RecordIncomingPayment(t *testing.T) {
	d := setupGateway(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	m := activeMerchant(domain.EnvironmentSandbox)

	d.merchantRepo.EXPECT().GetByShortCode(ctx, "174379").Return(m, nil)
	d.txStore.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, txn *domain.Transaction) (*domain.Transaction, bool, error) {
			assert.Equal(t, "RKTQDM7W6S", txn.ProviderTxID)
			assert.Equal(t, domain.OpC2B, txn.Operation)
			assert.Equal(t, domain.TransactionStatusSuccess, txn.Status)
			return txn, true, nil
		})
	d.dispatcher.EXPECT().Dispatch(ctx, gomock.Any()).Return(nil)

	_, err := d.svc.RecordIncomingPayment(ctx, ports.IncomingPaymentRequest{
		ShortCode:       "174379",
		ProviderReceipt: "RKTQDM7W6S",
		Amount:          500,
		PhoneNumber:     "254708374149",
		BillRef:         "INV-9",
	})
	require.NoError(t, err)
}

func TestGateway_RecordIncomingPayment_DuplicateConfirmation(t *testing.T) {
	d := setupGateway(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	m := activeMerchant(domain.EnvironmentSandbox)
	existing := &domain.Transaction{ID: uuid.New(), ProviderTxID: "RKTQDM7W6S"}

	d.merchantRepo.EXPECT().GetByShortCode(ctx, "174379").Return(m, nil)
	// Duplicate: row exists, so no webhook fan-out.
	d.txStore.EXPECT().Create(ctx, gomock.Any()).Return(existing, false, nil)

	result, err := d.svc.RecordIncomingPayment(ctx, ports.IncomingPaymentRequest{
		ShortCode:       "174379",
		ProviderReceipt: "RKTQDM7W6S",
		Amount:          500,
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, result.ID)
}
