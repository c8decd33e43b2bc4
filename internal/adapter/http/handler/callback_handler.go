package handler

import (
	"net/http"
	"time"

	"daraja-gateway/internal/core/ports"
	"daraja-gateway/internal/daraja"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// callbackDedupTTL bounds the replay window for provider callbacks. The
// provider retries failed deliveries for well under a day.
const callbackDedupTTL = 24 * time.Hour

// CallbackHandler receives the provider's asynchronous callbacks. The
// provider treats any non-zero ResultCode as a delivery failure and retries,
// so every endpoint acknowledges with ResultCode 0 regardless of internal
// outcome; failures are logged and surfaced through the transaction state.
type CallbackHandler struct {
	gatewaySvc ports.GatewayService
	dedup      ports.CallbackDedup
	log        zerolog.Logger
}

// NewCallbackHandler creates a new CallbackHandler.
func NewCallbackHandler(gatewaySvc ports.GatewayService, dedup ports.CallbackDedup, log zerolog.Logger) *CallbackHandler {
	return &CallbackHandler{gatewaySvc: gatewaySvc, dedup: dedup, log: log}
}

// ack is the only body the provider accepts as a successful delivery.
func ack(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
}

// STKCallback handles POST /callbacks/stk.
func (h *CallbackHandler) STKCallback(c *gin.Context) {
	var cb daraja.STKCallback
	if err := c.ShouldBindJSON(&cb); err != nil {
		h.log.Warn().Err(err).Msg("malformed STK callback")
		ack(c)
		return
	}

	providerTxID, status, patch := cb.Outcome()
	if providerTxID == "" {
		h.log.Warn().Msg("STK callback without CheckoutRequestID")
		ack(c)
		return
	}

	fresh, err := h.dedup.CheckAndSet(c.Request.Context(), "stk:"+providerTxID, callbackDedupTTL)
	if err != nil {
		// Dedup store down: let the idempotent outcome application absorb
		// any replay.
		h.log.Warn().Err(err).Msg("callback dedup check failed, processing anyway")
	} else if !fresh {
		h.log.Info().Str("provider_tx_id", providerTxID).Msg("duplicate STK callback ignored")
		ack(c)
		return
	}

	if err := h.gatewaySvc.ApplyProviderOutcome(c.Request.Context(), providerTxID, status, patch); err != nil {
		h.log.Error().Err(err).Str("provider_tx_id", providerTxID).Msg("failed to apply STK callback outcome")
	}
	ack(c)
}

// ResultCallback handles POST /callbacks/result (B2C, B2B, reversal,
// transaction status).
func (h *CallbackHandler) ResultCallback(c *gin.Context) {
	var cb daraja.ResultCallback
	if err := c.ShouldBindJSON(&cb); err != nil {
		h.log.Warn().Err(err).Msg("malformed result callback")
		ack(c)
		return
	}

	providerTxID, status, patch := cb.Outcome()
	if providerTxID == "" {
		h.log.Warn().Msg("result callback without ConversationID")
		ack(c)
		return
	}

	fresh, err := h.dedup.CheckAndSet(c.Request.Context(), "result:"+providerTxID, callbackDedupTTL)
	if err != nil {
		h.log.Warn().Err(err).Msg("callback dedup check failed, processing anyway")
	} else if !fresh {
		h.log.Info().Str("provider_tx_id", providerTxID).Msg("duplicate result callback ignored")
		ack(c)
		return
	}

	if err := h.gatewaySvc.ApplyProviderOutcome(c.Request.Context(), providerTxID, status, patch); err != nil {
		h.log.Error().Err(err).Str("provider_tx_id", providerTxID).Msg("failed to apply result callback outcome")
	}
	ack(c)
}

// TimeoutCallback handles POST /callbacks/timeout. The provider posts here
// when an async operation could not be processed in time; the transaction
// stays PENDING until a later query or result settles it.
func (h *CallbackHandler) TimeoutCallback(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		h.log.Warn().Err(err).Msg("malformed timeout callback")
		ack(c)
		return
	}
	h.log.Warn().Interface("body", body).Msg("provider reported operation timeout")
	ack(c)
}

// C2BConfirmation handles POST /callbacks/c2b/confirmation.
func (h *CallbackHandler) C2BConfirmation(c *gin.Context) {
	var cb daraja.C2BConfirmation
	if err := c.ShouldBindJSON(&cb); err != nil {
		h.log.Warn().Err(err).Msg("malformed C2B confirmation")
		ack(c)
		return
	}
	if cb.TransID == "" || cb.BusinessShortCode == "" {
		h.log.Warn().Msg("C2B confirmation missing TransID or BusinessShortCode")
		ack(c)
		return
	}

	// TransAmount arrives as a decimal string; amounts are whole shillings.
	amount, err := cb.TransAmount.Float64()
	if err != nil {
		h.log.Warn().Err(err).Str("trans_id", cb.TransID).Msg("unparseable C2B amount")
		ack(c)
		return
	}

	_, err = h.gatewaySvc.RecordIncomingPayment(c.Request.Context(), ports.IncomingPaymentRequest{
		ShortCode:       cb.BusinessShortCode,
		ProviderReceipt: cb.TransID,
		Amount:          int64(amount),
		PhoneNumber:     cb.MSISDN,
		BillRef:         cb.BillRefNumber,
	})
	if err != nil {
		h.log.Error().Err(err).Str("trans_id", cb.TransID).Msg("failed to record incoming payment")
	}
	ack(c)
}

// C2BValidation handles POST /callbacks/c2b/validation. All payments are
// accepted; per-merchant validation rules are not supported.
func (h *CallbackHandler) C2BValidation(c *gin.Context) {
	ack(c)
}
