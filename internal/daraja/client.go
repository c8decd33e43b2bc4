package daraja

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"daraja-gateway/internal/core/domain"
	"daraja-gateway/internal/core/ports"
	"daraja-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

// Provider endpoint paths.
const (
	pathSTKPush     = "/mpesa/stkpush/v1/processrequest"
	pathSTKQuery    = "/mpesa/stkpushquery/v1/query"
	pathB2C         = "/mpesa/b2c/v1/paymentrequest"
	pathB2B         = "/mpesa/b2b/v1/paymentrequest"
	pathC2BSimulate = "/mpesa/c2b/v1/simulate"
	pathC2BRegister = "/mpesa/c2b/v1/registerurl"
	pathReversal    = "/mpesa/reversal/v1/request"
	pathTxStatus    = "/mpesa/transactionstatus/v1/query"
	pathQRGenerate  = "/mpesa/qrcode/v1/generate"
)

// Callback routes the provider posts asynchronous results to, relative to
// the configured public callback base URL.
const (
	CallbackPathSTK     = "/callbacks/stk"
	CallbackPathResult  = "/callbacks/result"
	CallbackPathTimeout = "/callbacks/timeout"
)

// Config holds client settings.
type Config struct {
	BaseURLs        BaseURLs
	CallbackBaseURL string
}

// Client implements ports.ProviderClient against the Daraja REST API.
type Client struct {
	cfg        Config
	httpClient HTTPClient
	tokens     ports.TokenProvider
	vault      ports.CredentialVault
	log        zerolog.Logger
}

// NewClient creates a provider client.
func NewClient(cfg Config, httpClient HTTPClient, tokens ports.TokenProvider, vault ports.CredentialVault, log zerolog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		tokens:     tokens,
		vault:      vault,
		log:        log,
	}
}

var _ ports.ProviderClient = (*Client)(nil)

// STKPush prompts the subscriber's device to authorize a charge.
func (c *Client) STKPush(ctx context.Context, m *domain.Merchant, req ports.STKPushRequest) (*ports.STKPushResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive").WithContext(string(domain.OpSTKPush), m.ID.String(), "")
	}
	if req.AccountRef == "" {
		return nil, apperror.Validation("account reference is required").WithContext(string(domain.OpSTKPush), m.ID.String(), "")
	}

	set, err := c.vault.Reveal(ctx, m.ID, string(domain.OpSTKPush))
	if err != nil {
		return nil, err
	}
	password, timestamp := STKPassword(m.ShortCode, set.Passkey, time.Now())

	body := stkPushRequest{
		BusinessShortCode: m.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            req.Amount,
		PartyA:            req.PhoneNumber,
		PartyB:            m.ShortCode,
		PhoneNumber:       req.PhoneNumber,
		CallBackURL:       c.cfg.CallbackBaseURL + CallbackPathSTK,
		AccountReference:  req.AccountRef,
		TransactionDesc:   orDefault(req.Description, "Payment"),
	}

	var resp stkPushResponse
	if err := c.post(ctx, m, pathSTKPush, body, &resp); err != nil {
		return nil, err
	}
	return &ports.STKPushResult{
		MerchantRequestID: resp.MerchantRequestID,
		CheckoutRequestID: resp.CheckoutRequestID,
		ResponseCode:      resp.ResponseCode,
		CustomerMessage:   resp.CustomerMessage,
	}, nil
}

// STKQuery polls the state of an earlier STK push.
func (c *Client) STKQuery(ctx context.Context, m *domain.Merchant, checkoutRequestID string) (*ports.STKQueryResult, error) {
	if checkoutRequestID == "" {
		return nil, apperror.Validation("checkout request id is required").WithContext(string(domain.OpSTKQuery), m.ID.String(), "")
	}

	set, err := c.vault.Reveal(ctx, m.ID, string(domain.OpSTKQuery))
	if err != nil {
		return nil, err
	}
	password, timestamp := STKPassword(m.ShortCode, set.Passkey, time.Now())

	body := stkQueryRequest{
		BusinessShortCode: m.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		CheckoutRequestID: checkoutRequestID,
	}

	var resp stkQueryResponse
	if err := c.post(ctx, m, pathSTKQuery, body, &resp); err != nil {
		return nil, err
	}
	return &ports.STKQueryResult{
		CheckoutRequestID: resp.CheckoutRequestID,
		ResultCode:        resp.ResultCode,
		ResultDesc:        resp.ResultDesc,
	}, nil
}

// B2C pays out from the merchant short-code to a subscriber.
func (c *Client) B2C(ctx context.Context, m *domain.Merchant, req ports.PayoutRequest) (*ports.AsyncResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive").WithContext(string(domain.OpB2C), m.ID.String(), "")
	}

	initiator, credential, err := c.initiatorMaterial(ctx, m, domain.OpB2C)
	if err != nil {
		return nil, err
	}

	body := b2cRequest{
		InitiatorName:      initiator,
		SecurityCredential: credential,
		CommandID:          orDefault(req.CommandID, "BusinessPayment"),
		Amount:             req.Amount,
		PartyA:             m.ShortCode,
		PartyB:             req.PhoneNumber,
		Remarks:            orDefault(req.Remarks, "Payout"),
		QueueTimeOutURL:    c.cfg.CallbackBaseURL + CallbackPathTimeout,
		ResultURL:          c.cfg.CallbackBaseURL + CallbackPathResult,
		Occasion:           req.Occasion,
	}

	return c.postAsync(ctx, m, pathB2C, body)
}

// B2B moves funds to another business short-code.
func (c *Client) B2B(ctx context.Context, m *domain.Merchant, req ports.B2BRequest) (*ports.AsyncResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive").WithContext(string(domain.OpB2B), m.ID.String(), "")
	}
	if req.ReceiverShortCode == "" {
		return nil, apperror.Validation("receiver short code is required").WithContext(string(domain.OpB2B), m.ID.String(), "")
	}

	initiator, credential, err := c.initiatorMaterial(ctx, m, domain.OpB2B)
	if err != nil {
		return nil, err
	}

	body := b2bRequest{
		Initiator:              initiator,
		SecurityCredential:     credential,
		CommandID:              "BusinessPayBill",
		SenderIdentifierType:   "4",
		RecieverIdentifierType: "4",
		Amount:                 req.Amount,
		PartyA:                 m.ShortCode,
		PartyB:                 req.ReceiverShortCode,
		AccountReference:       req.AccountRef,
		Remarks:                orDefault(req.Remarks, "Transfer"),
		QueueTimeOutURL:        c.cfg.CallbackBaseURL + CallbackPathTimeout,
		ResultURL:              c.cfg.CallbackBaseURL + CallbackPathResult,
	}

	return c.postAsync(ctx, m, pathB2B, body)
}

// C2BSimulate simulates an incoming customer payment (sandbox only).
func (c *Client) C2BSimulate(ctx context.Context, m *domain.Merchant, req ports.C2BSimulateRequest) (*ports.C2BResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive").WithContext(string(domain.OpC2B), m.ID.String(), "")
	}

	body := c2bSimulateRequest{
		ShortCode:     m.ShortCode,
		CommandID:     "CustomerPayBillOnline",
		Amount:        req.Amount,
		Msisdn:        req.PhoneNumber,
		BillRefNumber: req.BillRef,
	}

	var resp c2bResponse
	if err := c.post(ctx, m, pathC2BSimulate, body, &resp); err != nil {
		return nil, err
	}
	return &ports.C2BResult{
		ConversationID:           resp.ConversationID,
		OriginatorConversationID: firstNonEmpty(resp.OriginatorConversationID, resp.OriginatorCoversationID),
		ResponseDescription:      resp.ResponseDescription,
	}, nil
}

// C2BRegisterURL registers the merchant's confirmation and validation URLs.
func (c *Client) C2BRegisterURL(ctx context.Context, m *domain.Merchant, req ports.RegisterURLRequest) (*ports.C2BResult, error) {
	if req.ConfirmationURL == "" {
		return nil, apperror.Validation("confirmation URL is required").WithContext(string(domain.OpC2B), m.ID.String(), "")
	}

	body := c2bRegisterRequest{
		ShortCode:       m.ShortCode,
		ResponseType:    orDefault(req.ResponseType, "Completed"),
		ConfirmationURL: req.ConfirmationURL,
		ValidationURL:   req.ValidationURL,
	}

	var resp c2bResponse
	if err := c.post(ctx, m, pathC2BRegister, body, &resp); err != nil {
		return nil, err
	}
	return &ports.C2BResult{
		ConversationID:           resp.ConversationID,
		OriginatorConversationID: firstNonEmpty(resp.OriginatorConversationID, resp.OriginatorCoversationID),
		ResponseDescription:      resp.ResponseDescription,
	}, nil
}

// Reversal reverses a completed provider transaction.
func (c *Client) Reversal(ctx context.Context, m *domain.Merchant, req ports.ReversalRequest) (*ports.AsyncResult, error) {
	if req.ProviderReceipt == "" {
		return nil, apperror.Validation("provider receipt is required").WithContext(string(domain.OpReversal), m.ID.String(), "")
	}
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive").WithContext(string(domain.OpReversal), m.ID.String(), "")
	}

	initiator, credential, err := c.initiatorMaterial(ctx, m, domain.OpReversal)
	if err != nil {
		return nil, err
	}

	body := reversalRequest{
		Initiator:              initiator,
		SecurityCredential:     credential,
		CommandID:              "TransactionReversal",
		TransactionID:          req.ProviderReceipt,
		Amount:                 req.Amount,
		ReceiverParty:          m.ShortCode,
		RecieverIdentifierType: "11",
		ResultURL:              c.cfg.CallbackBaseURL + CallbackPathResult,
		QueueTimeOutURL:        c.cfg.CallbackBaseURL + CallbackPathTimeout,
		Remarks:                orDefault(req.Remarks, "Reversal"),
		Occasion:               req.Occasion,
	}

	return c.postAsync(ctx, m, pathReversal, body)
}

// TransactionStatus queries the provider-side state of a transaction.
func (c *Client) TransactionStatus(ctx context.Context, m *domain.Merchant, req ports.TransactionStatusRequest) (*ports.AsyncResult, error) {
	if req.ProviderReceipt == "" {
		return nil, apperror.Validation("provider receipt is required").WithContext(string(domain.OpTransactionStatus), m.ID.String(), "")
	}

	initiator, credential, err := c.initiatorMaterial(ctx, m, domain.OpTransactionStatus)
	if err != nil {
		return nil, err
	}

	body := transactionStatusRequest{
		Initiator:          initiator,
		SecurityCredential: credential,
		CommandID:          "TransactionStatusQuery",
		TransactionID:      req.ProviderReceipt,
		PartyA:             m.ShortCode,
		IdentifierType:     "4",
		ResultURL:          c.cfg.CallbackBaseURL + CallbackPathResult,
		QueueTimeOutURL:    c.cfg.CallbackBaseURL + CallbackPathTimeout,
		Remarks:            orDefault(req.Remarks, "Status query"),
	}

	return c.postAsync(ctx, m, pathTxStatus, body)
}

// QRGenerate creates a dynamic payment QR code.
func (c *Client) QRGenerate(ctx context.Context, m *domain.Merchant, req ports.QRRequest) (*ports.QRResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive").WithContext(string(domain.OpQRCode), m.ID.String(), "")
	}

	body := qrGenerateRequest{
		MerchantName: m.Name,
		RefNo:        req.RefNo,
		Amount:       req.Amount,
		TrxCode:      "PB",
		CPI:          m.ShortCode,
		Size:         orDefault(req.Size, "300"),
	}

	var resp qrGenerateResponse
	if err := c.post(ctx, m, pathQRGenerate, body, &resp); err != nil {
		return nil, err
	}
	return &ports.QRResult{
		RequestID: resp.RequestID,
		QRCode:    resp.QRCode,
	}, nil
}

// initiatorMaterial resolves and encrypts the security credential for
// payout-class operations.
func (c *Client) initiatorMaterial(ctx context.Context, m *domain.Merchant, op domain.OperationKind) (initiator, credential string, err error) {
	set, err := c.vault.Reveal(ctx, m.ID, string(op))
	if err != nil {
		return "", "", err
	}
	if set.InitiatorName == "" || set.InitiatorPassword == "" {
		return "", "", apperror.Encryption("merchant has no initiator credentials", nil).
			WithContext(string(op), m.ID.String(), "")
	}

	certPEM, err := ResolveCert(m.Environment, set, "")
	if err != nil {
		return "", "", err
	}
	credential, err = SecurityCredential(set.InitiatorPassword, certPEM)
	if err != nil {
		return "", "", err
	}
	return set.InitiatorName, credential, nil
}

func (c *Client) postAsync(ctx context.Context, m *domain.Merchant, path string, body any) (*ports.AsyncResult, error) {
	var resp asyncResponse
	if err := c.post(ctx, m, path, body, &resp); err != nil {
		return nil, err
	}
	return &ports.AsyncResult{
		ConversationID:           resp.ConversationID,
		OriginatorConversationID: resp.OriginatorConversationID,
		ResponseCode:             resp.ResponseCode,
		ResponseDescription:      resp.ResponseDescription,
	}, nil
}

// post resolves the bearer token, issues the request and maps the response.
// A non-2xx response surfaces the provider's code/description verbatim.
func (c *Client) post(ctx context.Context, m *domain.Merchant, path string, body, out any) error {
	token, err := c.tokens.GetToken(ctx, m)
	if err != nil {
		// Never send a signed request with a stale or absent token.
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return apperror.Internal(fmt.Errorf("marshal request body: %w", err))
	}

	url := c.cfg.BaseURLs.For(m.Environment) + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return apperror.Internal(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.Network(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apperror.Network(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var provErr apiError
		if json.Unmarshal(respBody, &provErr) == nil && provErr.ErrorCode != "" {
			c.log.Warn().
				Str("merchant_id", m.ID.String()).
				Str("path", path).
				Str("provider_code", provErr.ErrorCode).
				Msg("provider rejected request")
			return apperror.API(provErr.ErrorCode, provErr.ErrorMessage)
		}
		return apperror.API(fmt.Sprintf("%d", resp.StatusCode), string(truncate(respBody, 256)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return apperror.API("", fmt.Sprintf("malformed provider response: %v", err))
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
