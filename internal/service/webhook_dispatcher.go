package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"daraja-gateway/internal/core/domain"
	"daraja-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Webhook signature and correlation headers.
const (
	HeaderWebhookSignature = "X-Webhook-Signature"
	HeaderWebhookEventID   = "X-Webhook-Event-Id"
)

const maxStoredResponseBody = 512

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DispatcherConfig tunes retry behavior.
type DispatcherConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Timeout     time.Duration
}

// WebhookDispatcherService implements ports.WebhookDispatcher. Every
// (webhook, event) pair gets exactly one delivery row; attempts update that
// row and rows are never deleted, forming the delivery audit trail. The first
// attempt fires immediately on its own goroutine; later attempts run from the
// periodic sweeper via ProcessDue.
type WebhookDispatcherService struct {
	webhookRepo  ports.WebhookRepository
	deliveryRepo ports.WebhookDeliveryRepository
	encSvc       ports.EncryptionService
	sigSvc       ports.SignatureService
	httpClient   HTTPClient
	cfg          DispatcherConfig
	log          zerolog.Logger

	// backoff computes the delay before the next attempt. Overridable in
	// tests; attempt is 1-based.
	backoff func(attempt int) time.Duration

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
	wg       sync.WaitGroup
}

// NewWebhookDispatcherService creates a webhook dispatcher.
func NewWebhookDispatcherService(
	webhookRepo ports.WebhookRepository,
	deliveryRepo ports.WebhookDeliveryRepository,
	encSvc ports.EncryptionService,
	sigSvc ports.SignatureService,
	httpClient HTTPClient,
	cfg DispatcherConfig,
	log zerolog.Logger,
) *WebhookDispatcherService {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 6
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 15 * time.Second
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 10 * time.Minute
	}
	s := &WebhookDispatcherService{
		webhookRepo:  webhookRepo,
		deliveryRepo: deliveryRepo,
		encSvc:       encSvc,
		sigSvc:       sigSvc,
		httpClient:   httpClient,
		cfg:          cfg,
		log:          log,
		inFlight:     map[uuid.UUID]struct{}{},
	}
	s.backoff = s.defaultBackoff
	return s
}

var _ ports.WebhookDispatcher = (*WebhookDispatcherService)(nil)

// defaultBackoff doubles the base delay per attempt, capped, with up to 50%
// jitter to spread thundering retries.
func (s *WebhookDispatcherService) defaultBackoff(attempt int) time.Duration {
	delay := s.cfg.BaseDelay << uint(attempt-1)
	if delay > s.cfg.MaxDelay || delay <= 0 {
		delay = s.cfg.MaxDelay
	}
	return delay + time.Duration(rand.Int63n(int64(delay)/2+1))
}

// Dispatch fans the transaction's state change out to every active webhook of
// the merchant subscribed to the operation kind. Redelivering the same
// outcome reuses the existing delivery row instead of creating a second one.
func (s *WebhookDispatcherService) Dispatch(ctx context.Context, t *domain.Transaction) error {
	webhooks, err := s.webhookRepo.ListActiveByMerchant(ctx, t.MerchantID)
	if err != nil {
		return fmt.Errorf("list webhooks: %w", err)
	}

	eventID := domain.EventID(t.ID, t.Status)
	payload, err := json.Marshal(domain.Event{
		EventID:       eventID,
		TransactionID: t.ID.String(),
		Type:          t.Operation,
		Status:        string(t.Status),
		Amount:        t.Amount,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	for i := range webhooks {
		w := webhooks[i]
		if !w.SubscribedTo(t.Operation) {
			continue
		}

		now := time.Now().UTC()
		// The row is born due one base delay out. The first attempt below
		// normally overwrites this, but if the process dies before that
		// write lands the sweeper still picks the row up instead of leaving
		// it pending forever.
		firstDue := now.Add(s.cfg.BaseDelay)
		d := &domain.WebhookDelivery{
			ID:            uuid.New(),
			WebhookID:     w.ID,
			TransactionID: &t.ID,
			EventID:       eventID,
			Payload:       string(payload),
			Status:        domain.DeliveryStatusPending,
			NextRetryAt:   &firstDue,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		inserted, err := s.deliveryRepo.CreateIfAbsent(ctx, d)
		if err != nil {
			s.log.Error().Err(err).
				Str("webhook_id", w.ID.String()).
				Str("event_id", eventID).
				Msg("failed to record webhook delivery")
			continue
		}
		if !inserted {
			s.log.Debug().
				Str("webhook_id", w.ID.String()).
				Str("event_id", eventID).
				Msg("delivery already recorded for event, skipping")
			continue
		}

		// First attempt fires detached from the triggering request.
		s.spawnAttempt(d, &w)
	}
	return nil
}

// ProcessDue re-attempts pending deliveries whose retry time has passed.
// Invoked on a schedule by the retry sweeper.
func (s *WebhookDispatcherService) ProcessDue(ctx context.Context) error {
	due, err := s.deliveryRepo.ListDue(ctx, time.Now().UTC(), 100)
	if err != nil {
		return fmt.Errorf("list due deliveries: %w", err)
	}

	for i := range due {
		d := due[i]
		w, err := s.webhookRepo.GetByID(ctx, d.WebhookID)
		if err != nil {
			s.log.Error().Err(err).Str("delivery_id", d.ID.String()).Msg("failed to load webhook for retry")
			continue
		}
		if w == nil || !w.Active {
			// Target disabled since the event fired; close the row out.
			d.Status = domain.DeliveryStatusFailed
			d.UpdatedAt = time.Now().UTC()
			if err := s.deliveryRepo.Update(ctx, &d); err != nil {
				s.log.Error().Err(err).Str("delivery_id", d.ID.String()).Msg("failed to close delivery for inactive webhook")
			}
			continue
		}
		s.spawnAttempt(&d, w)
	}
	return nil
}

// Wait blocks until all in-flight attempts finish. Used during shutdown.
func (s *WebhookDispatcherService) Wait() {
	s.wg.Wait()
}

// spawnAttempt runs one delivery attempt on its own goroutine, guarding
// against the sweeper and an inline dispatch racing on the same row.
func (s *WebhookDispatcherService) spawnAttempt(d *domain.WebhookDelivery, w *domain.Webhook) {
	s.mu.Lock()
	if _, busy := s.inFlight[d.ID]; busy {
		s.mu.Unlock()
		return
	}
	s.inFlight[d.ID] = struct{}{}
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			delete(s.inFlight, d.ID)
			s.mu.Unlock()
		}()

		ctx := context.Background()
		if s.cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
			defer cancel()
		}
		s.attempt(ctx, d, w)
	}()
}

// attempt performs one POST and records the result on the delivery row.
func (s *WebhookDispatcherService) attempt(ctx context.Context, d *domain.WebhookDelivery, w *domain.Webhook) {
	now := time.Now().UTC()
	d.Attempts++
	d.LastAttemptAt = &now

	status, body, err := s.post(ctx, d, w)
	if err == nil && status >= 200 && status < 300 {
		d.Status = domain.DeliveryStatusDelivered
		d.LastHTTPStatus = &status
		d.LastBody = &body
		d.DeliveredAt = &now
		d.NextRetryAt = nil
	} else {
		if status > 0 {
			d.LastHTTPStatus = &status
			d.LastBody = &body
		}
		if d.Attempts >= s.cfg.MaxAttempts {
			d.Status = domain.DeliveryStatusFailed
			d.NextRetryAt = nil
		} else {
			next := now.Add(s.backoff(d.Attempts))
			d.NextRetryAt = &next
		}
	}
	d.UpdatedAt = now

	if uerr := s.deliveryRepo.Update(ctx, d); uerr != nil {
		s.log.Error().Err(uerr).Str("delivery_id", d.ID.String()).Msg("failed to persist delivery attempt")
		return
	}

	evt := s.log.Info()
	if d.Status != domain.DeliveryStatusDelivered {
		evt = s.log.Warn().AnErr("attempt_error", err)
	}
	evt.
		Str("delivery_id", d.ID.String()).
		Str("event_id", d.EventID).
		Int("attempt", d.Attempts).
		Int("http_status", status).
		Str("status", string(d.Status)).
		Msg("webhook delivery attempt")
}

// post signs the stored payload and POSTs it to the webhook URL. The
// signature covers the exact bytes on the wire.
func (s *WebhookDispatcherService) post(ctx context.Context, d *domain.WebhookDelivery, w *domain.Webhook) (int, string, error) {
	secret, err := s.encSvc.Decrypt(w.SecretEnc)
	if err != nil {
		return 0, "", fmt.Errorf("decrypt webhook secret: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader([]byte(d.Payload)))
	if err != nil {
		return 0, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderWebhookSignature, s.sigSvc.Sign(secret, d.Payload))
	req.Header.Set(HeaderWebhookEventID, d.EventID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	buf := make([]byte, maxStoredResponseBody)
	n, _ := resp.Body.Read(buf)
	return resp.StatusCode, string(buf[:n]), nil
}
