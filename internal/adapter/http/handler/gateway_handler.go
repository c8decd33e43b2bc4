package handler

import (
	"daraja-gateway/internal/adapter/http/dto"
	"daraja-gateway/internal/adapter/http/middleware"
	"daraja-gateway/internal/core/domain"
	"daraja-gateway/internal/core/ports"
	"daraja-gateway/pkg/apperror"
	"daraja-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GatewayHandler handles payment operation endpoints.
type GatewayHandler struct {
	gatewaySvc ports.GatewayService
}

// NewGatewayHandler creates a new GatewayHandler.
func NewGatewayHandler(gatewaySvc ports.GatewayService) *GatewayHandler {
	return &GatewayHandler{gatewaySvc: gatewaySvc}
}

// merchantID pulls the authenticated merchant id set by JWTAuth.
func merchantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.CtxMerchantID)
	if !ok {
		response.Error(c, apperror.InvalidToken())
		return uuid.Nil, false
	}
	return v.(uuid.UUID), true
}

// InitiateCharge handles POST /api/v1/charges.
func (h *GatewayHandler) InitiateCharge(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	var req dto.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	txn, err := h.gatewaySvc.InitiateCharge(c.Request.Context(), ports.ChargeRequest{
		MerchantID:  mid,
		PhoneNumber: req.PhoneNumber,
		Amount:      req.Amount,
		AccountRef:  req.AccountRef,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// The prompt resolves asynchronously on the subscriber's device.
	response.Accepted(c, toTransactionResponse(txn))
}

// QueryCharge handles GET /api/v1/charges/:checkoutRequestID.
func (h *GatewayHandler) QueryCharge(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	txn, err := h.gatewaySvc.QueryChargeStatus(c.Request.Context(), mid, c.Param("checkoutRequestID"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toTransactionResponse(txn))
}

// InitiatePayout handles POST /api/v1/payouts.
func (h *GatewayHandler) InitiatePayout(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	var req dto.PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	txn, err := h.gatewaySvc.InitiatePayout(c.Request.Context(), ports.PayoutOperationRequest{
		MerchantID:        mid,
		Kind:              domain.OperationKind(req.Kind),
		PhoneNumber:       req.PhoneNumber,
		ReceiverShortCode: req.ReceiverShortCode,
		Amount:            req.Amount,
		AccountRef:        req.AccountRef,
		Remarks:           req.Remarks,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, toTransactionResponse(txn))
}

// SimulatePayment handles POST /api/v1/c2b/simulate (sandbox only).
func (h *GatewayHandler) SimulatePayment(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	var req dto.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	txn, err := h.gatewaySvc.SimulateIncomingPayment(c.Request.Context(), ports.SimulateRequest{
		MerchantID:  mid,
		PhoneNumber: req.PhoneNumber,
		Amount:      req.Amount,
		BillRef:     req.BillRef,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, toTransactionResponse(txn))
}

// RegisterURLs handles POST /api/v1/c2b/register-urls.
func (h *GatewayHandler) RegisterURLs(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	var req dto.RegisterURLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	err := h.gatewaySvc.RegisterCallbackURL(c.Request.Context(), mid, req.ConfirmationURL, req.ValidationURL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"registered": true})
}

// ReverseTransaction handles POST /api/v1/reversals.
func (h *GatewayHandler) ReverseTransaction(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	var req dto.ReverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	txn, err := h.gatewaySvc.ReverseTransaction(c.Request.Context(), ports.ReverseRequest{
		MerchantID:      mid,
		ProviderReceipt: req.ProviderReceipt,
		Amount:          req.Amount,
		Remarks:         req.Remarks,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, toTransactionResponse(txn))
}

// QueryTransactionStatus handles POST /api/v1/transaction-status.
func (h *GatewayHandler) QueryTransactionStatus(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	var req dto.StatusQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	txn, err := h.gatewaySvc.QueryTransactionStatus(c.Request.Context(), mid, req.ProviderReceipt)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, toTransactionResponse(txn))
}

// GenerateQR handles POST /api/v1/qr.
func (h *GatewayHandler) GenerateQR(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	var req dto.QRGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	txn, qr, err := h.gatewaySvc.GenerateQR(c.Request.Context(), mid, ports.QRRequest{
		RefNo:  req.RefNo,
		Amount: req.Amount,
		Size:   req.Size,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.QRGenerateResponse{
		Transaction: toTransactionResponse(txn),
		RequestID:   qr.RequestID,
		QRCode:      qr.QRCode,
	})
}

// toTransactionResponse converts domain.Transaction to DTO.
func toTransactionResponse(t *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:           t.ID.String(),
		ProviderTxID: t.ProviderTxID,
		Operation:    string(t.Operation),
		Amount:       t.Amount,
		Status:       string(t.Status),
		PhoneNumber:  t.PhoneNumber,
		AccountRef:   t.AccountRef,
		Description:  t.Description,
		Metadata:     t.Metadata,
		CreatedAt:    t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    t.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
