package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"daraja-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const deliveryColumns = `id, webhook_id, transaction_id, event_id, payload, status,
	last_http_status, last_body, attempts, last_attempt_at, next_retry_at, delivered_at,
	created_at, updated_at`

// DeliveryRepo implements ports.WebhookDeliveryRepository. Rows form a
// permanent delivery audit trail and are never deleted.
type DeliveryRepo struct {
	pool Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(pool Pool) *DeliveryRepo {
	return &DeliveryRepo{pool: pool}
}

// CreateIfAbsent inserts the delivery unless the (webhook id, event id) pair
// already exists. Returns true when a row was inserted.
func (r *DeliveryRepo) CreateIfAbsent(ctx context.Context, d *domain.WebhookDelivery) (bool, error) {
	query := `INSERT INTO webhook_deliveries (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (webhook_id, event_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		d.ID, d.WebhookID, d.TransactionID, d.EventID, d.Payload, d.Status,
		d.LastHTTPStatus, d.LastBody, d.Attempts, d.LastAttemptAt, d.NextRetryAt, d.DeliveredAt,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert webhook delivery: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Update rewrites the mutable attempt-tracking columns of a delivery.
func (r *DeliveryRepo) Update(ctx context.Context, d *domain.WebhookDelivery) error {
	query := `UPDATE webhook_deliveries
		SET status = $1, last_http_status = $2, last_body = $3, attempts = $4,
			last_attempt_at = $5, next_retry_at = $6, delivered_at = $7, updated_at = NOW()
		WHERE id = $8`

	tag, err := r.pool.Exec(ctx, query,
		d.Status, d.LastHTTPStatus, d.LastBody, d.Attempts,
		d.LastAttemptAt, d.NextRetryAt, d.DeliveredAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update webhook delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("webhook delivery not found: %s", d.ID)
	}
	return nil
}

// GetByID fetches a delivery by id.
func (r *DeliveryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookDelivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM webhook_deliveries WHERE id = $1`
	return r.scanDelivery(r.pool.QueryRow(ctx, query, id))
}

// ListDue returns PENDING deliveries whose next attempt time has passed,
// oldest first.
func (r *DeliveryRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.WebhookDelivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM webhook_deliveries
		WHERE status = 'PENDING' AND next_retry_at IS NOT NULL AND next_retry_at <= $1
		ORDER BY next_retry_at LIMIT $2`

	return r.queryDeliveries(ctx, query, now, limit)
}

// ListByTransaction returns the delivery audit trail for a transaction.
func (r *DeliveryRepo) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]domain.WebhookDelivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM webhook_deliveries
		WHERE transaction_id = $1 ORDER BY created_at DESC`

	return r.queryDeliveries(ctx, query, transactionID)
}

func (r *DeliveryRepo) queryDeliveries(ctx context.Context, query string, args ...any) ([]domain.WebhookDelivery, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list webhook deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []domain.WebhookDelivery
	for rows.Next() {
		d := domain.WebhookDelivery{}
		err := rows.Scan(
			&d.ID, &d.WebhookID, &d.TransactionID, &d.EventID, &d.Payload, &d.Status,
			&d.LastHTTPStatus, &d.LastBody, &d.Attempts, &d.LastAttemptAt, &d.NextRetryAt, &d.DeliveredAt,
			&d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan webhook delivery row: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate webhook delivery rows: %w", err)
	}
	return deliveries, nil
}

func (r *DeliveryRepo) scanDelivery(row pgx.Row) (*domain.WebhookDelivery, error) {
	d := &domain.WebhookDelivery{}
	err := row.Scan(
		&d.ID, &d.WebhookID, &d.TransactionID, &d.EventID, &d.Payload, &d.Status,
		&d.LastHTTPStatus, &d.LastBody, &d.Attempts, &d.LastAttemptAt, &d.NextRetryAt, &d.DeliveredAt,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan webhook delivery: %w", err)
	}
	return d, nil
}
