package postgres

import (
	"context"
	"errors"
	"fmt"

	"daraja-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const webhookColumns = `id, merchant_id, url, secret_enc, event_kinds, active, created_at, updated_at`

// WebhookRepo implements ports.WebhookRepository.
type WebhookRepo struct {
	pool Pool
}

// NewWebhookRepo creates a new WebhookRepo.
func NewWebhookRepo(pool Pool) *WebhookRepo {
	return &WebhookRepo{pool: pool}
}

// Create inserts a webhook endpoint.
func (r *WebhookRepo) Create(ctx context.Context, w *domain.Webhook) error {
	query := `INSERT INTO webhooks (` + webhookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.MerchantID, w.URL, w.SecretEnc, kindsToStrings(w.EventKinds),
		w.Active, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook: %w", err)
	}
	return nil
}

// GetByID fetches a webhook by id.
func (r *WebhookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Webhook, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhooks WHERE id = $1`
	return r.scanWebhook(r.pool.QueryRow(ctx, query, id))
}

// ListByMerchant lists all webhooks of a merchant.
func (r *WebhookRepo) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]domain.Webhook, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhooks WHERE merchant_id = $1 ORDER BY created_at`
	return r.queryWebhooks(ctx, query, merchantID)
}

// ListActiveByMerchant lists only the webhooks that fan-out considers.
func (r *WebhookRepo) ListActiveByMerchant(ctx context.Context, merchantID uuid.UUID) ([]domain.Webhook, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhooks WHERE merchant_id = $1 AND active ORDER BY created_at`
	return r.queryWebhooks(ctx, query, merchantID)
}

// SetActive enables or disables a webhook.
func (r *WebhookRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE webhooks SET active = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("set webhook active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("webhook not found: %s", id)
	}
	return nil
}

func (r *WebhookRepo) queryWebhooks(ctx context.Context, query string, args ...any) ([]domain.Webhook, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list webhooks: %w", err)
	}
	defer rows.Close()

	var webhooks []domain.Webhook
	for rows.Next() {
		w := domain.Webhook{}
		var kinds []string
		err := rows.Scan(
			&w.ID, &w.MerchantID, &w.URL, &w.SecretEnc, &kinds,
			&w.Active, &w.CreatedAt, &w.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan webhook row: %w", err)
		}
		w.EventKinds = stringsToKinds(kinds)
		webhooks = append(webhooks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate webhook rows: %w", err)
	}
	return webhooks, nil
}

func (r *WebhookRepo) scanWebhook(row pgx.Row) (*domain.Webhook, error) {
	w := &domain.Webhook{}
	var kinds []string
	err := row.Scan(
		&w.ID, &w.MerchantID, &w.URL, &w.SecretEnc, &kinds,
		&w.Active, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan webhook: %w", err)
	}
	w.EventKinds = stringsToKinds(kinds)
	return w, nil
}

func kindsToStrings(kinds []domain.OperationKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func stringsToKinds(s []string) []domain.OperationKind {
	out := make([]domain.OperationKind, len(s))
	for i, v := range s {
		out[i] = domain.OperationKind(v)
	}
	return out
}
