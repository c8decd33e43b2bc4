package handler

import (
	"daraja-gateway/internal/adapter/http/dto"
	"daraja-gateway/internal/core/domain"
	"daraja-gateway/internal/core/ports"
	"daraja-gateway/pkg/apperror"
	"daraja-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MerchantHandler handles onboarding and merchant-owned configuration.
type MerchantHandler struct {
	merchantSvc ports.MerchantService
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(merchantSvc ports.MerchantService) *MerchantHandler {
	return &MerchantHandler{merchantSvc: merchantSvc}
}

// Onboard handles POST /api/v1/merchants. Public: this is how a merchant
// gets its API token.
func (h *MerchantHandler) Onboard(c *gin.Context) {
	var req dto.OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.merchantSvc.Onboard(c.Request.Context(), ports.OnboardRequest{
		Name:        req.Name,
		Environment: domain.Environment(req.Environment),
		ShortCode:   req.ShortCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.OnboardResponse{
		MerchantID:  result.Merchant.ID.String(),
		Name:        result.Merchant.Name,
		Environment: string(result.Merchant.Environment),
		ShortCode:   result.Merchant.ShortCode,
		APIToken:    result.APIToken,
		TokenExpiry: result.TokenExp.Unix(),
	})
}

// GetProfile handles GET /api/v1/merchants/me.
func (h *MerchantHandler) GetProfile(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	m, err := h.merchantSvc.Get(c.Request.Context(), mid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.MerchantResponse{
		MerchantID:  m.ID.String(),
		Name:        m.Name,
		Environment: string(m.Environment),
		ShortCode:   m.ShortCode,
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// StoreCredentials handles PUT /api/v1/merchants/me/credentials. The body is
// accepted, vaulted and never returned by any endpoint.
func (h *MerchantHandler) StoreCredentials(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	var req dto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	err := h.merchantSvc.StoreCredentials(c.Request.Context(), mid, domain.CredentialSet{
		ConsumerKey:       req.ConsumerKey,
		ConsumerSecret:    req.ConsumerSecret,
		Passkey:           req.Passkey,
		InitiatorName:     req.InitiatorName,
		InitiatorPassword: req.InitiatorPassword,
		SandboxCertPEM:    req.SandboxCertPEM,
		ProductionCertPEM: req.ProductionCertPEM,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"stored": true})
}

// CreateWebhook handles POST /api/v1/merchants/me/webhooks.
func (h *MerchantHandler) CreateWebhook(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	var req dto.WebhookCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	kinds := make([]domain.OperationKind, len(req.EventKinds))
	for i, k := range req.EventKinds {
		kinds[i] = domain.OperationKind(k)
	}

	w, err := h.merchantSvc.CreateWebhook(c.Request.Context(), ports.WebhookCreateRequest{
		MerchantID: mid,
		URL:        req.URL,
		Secret:     req.Secret,
		EventKinds: kinds,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toWebhookResponse(w))
}

// ListWebhooks handles GET /api/v1/merchants/me/webhooks.
func (h *MerchantHandler) ListWebhooks(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	webhooks, err := h.merchantSvc.ListWebhooks(c.Request.Context(), mid)
	if err != nil {
		response.Error(c, err)
		return
	}
	items := make([]dto.WebhookResponse, len(webhooks))
	for i := range webhooks {
		items[i] = toWebhookResponse(&webhooks[i])
	}
	response.OK(c, items)
}

// SetWebhookActive handles PATCH /api/v1/merchants/me/webhooks/:id.
func (h *MerchantHandler) SetWebhookActive(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	webhookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid webhook id"))
		return
	}

	var req dto.WebhookActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.merchantSvc.SetWebhookActive(c.Request.Context(), mid, webhookID, *req.Active); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"active": *req.Active})
}

// ListDeliveries handles GET /api/v1/transactions/:id/deliveries.
func (h *MerchantHandler) ListDeliveries(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	txID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid transaction id"))
		return
	}

	deliveries, err := h.merchantSvc.ListDeliveries(c.Request.Context(), mid, txID)
	if err != nil {
		response.Error(c, err)
		return
	}
	items := make([]dto.DeliveryResponse, len(deliveries))
	for i := range deliveries {
		items[i] = toDeliveryResponse(&deliveries[i])
	}
	response.OK(c, items)
}

// ListTransactions handles GET /api/v1/transactions.
func (h *MerchantHandler) ListTransactions(c *gin.Context) {
	mid, ok := merchantID(c)
	if !ok {
		return
	}

	params := ports.TransactionListParams{MerchantID: mid}
	if s := c.Query("status"); s != "" {
		status := domain.TransactionStatus(s)
		params.Status = &status
	}
	if op := c.Query("operation"); op != "" {
		kind := domain.OperationKind(op)
		params.Operation = &kind
	}
	params.Page = queryInt(c, "page", 1)
	params.PageSize = queryInt(c, "page_size", 20)

	txns, total, err := h.merchantSvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, len(txns))
	for i := range txns {
		items[i] = toTransactionResponse(&txns[i])
	}
	totalPages := int((total + int64(params.PageSize) - 1) / int64(params.PageSize))
	response.OK(c, dto.TransactionListResponse{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	})
}

func toWebhookResponse(w *domain.Webhook) dto.WebhookResponse {
	kinds := make([]string, len(w.EventKinds))
	for i, k := range w.EventKinds {
		kinds[i] = string(k)
	}
	return dto.WebhookResponse{
		ID:         w.ID.String(),
		URL:        w.URL,
		EventKinds: kinds,
		Active:     w.Active,
		CreatedAt:  w.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toDeliveryResponse(d *domain.WebhookDelivery) dto.DeliveryResponse {
	resp := dto.DeliveryResponse{
		ID:             d.ID.String(),
		WebhookID:      d.WebhookID.String(),
		EventID:        d.EventID,
		Status:         string(d.Status),
		Attempts:       d.Attempts,
		LastHTTPStatus: d.LastHTTPStatus,
		CreatedAt:      d.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if d.NextRetryAt != nil {
		s := d.NextRetryAt.Format("2006-01-02T15:04:05Z07:00")
		resp.NextRetryAt = &s
	}
	if d.DeliveredAt != nil {
		s := d.DeliveredAt.Format("2006-01-02T15:04:05Z07:00")
		resp.DeliveredAt = &s
	}
	return resp
}

func queryInt(c *gin.Context, key string, def int) int {
	s := c.Query(key)
	if s == "" {
		return def
	}
	var n int
	for _, r := range s {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
		if n > 1_000_000 {
			return def
		}
	}
	if n == 0 {
		return def
	}
	return n
}
