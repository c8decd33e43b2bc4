package postgres

import (
	"context"
	"testing"
	"time"

	"daraja-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDelivery() *domain.WebhookDelivery {
	now := time.Now().UTC().Truncate(time.Microsecond)
	txID := uuid.New()
	return &domain.WebhookDelivery{
		ID:            uuid.New(),
		WebhookID:     uuid.New(),
		TransactionID: &txID,
		EventID:       "evt_0123456789abcdef",
		Payload:       `{"eventId":"evt_0123456789abcdef","status":"SUCCESS"}`,
		Status:        domain.DeliveryStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func deliveryColumnNames() []string {
	return []string{"id", "webhook_id", "transaction_id", "event_id", "payload", "status",
		"last_http_status", "last_body", "attempts", "last_attempt_at", "next_retry_at", "delivered_at",
		"created_at", "updated_at"}
}

func deliveryRow(d *domain.WebhookDelivery) *pgxmock.Rows {
	return pgxmock.NewRows(deliveryColumnNames()).AddRow(
		d.ID, d.WebhookID, d.TransactionID, d.EventID, d.Payload, d.Status,
		d.LastHTTPStatus, d.LastBody, d.Attempts, d.LastAttemptAt, d.NextRetryAt, d.DeliveredAt,
		d.CreatedAt, d.UpdatedAt,
	)
}

func TestDeliveryRepo_CreateIfAbsent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	d := newTestDelivery()

	mock.ExpectExec("INSERT INTO webhook_deliveries").
		WithArgs(
			d.ID, d.WebhookID, d.TransactionID, d.EventID, d.Payload, d.Status,
			d.LastHTTPStatus, d.LastBody, d.Attempts, d.LastAttemptAt, d.NextRetryAt, d.DeliveredAt,
			d.CreatedAt, d.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	inserted, err := repo.CreateIfAbsent(context.Background(), d)
	assert.NoError(t, err)
	assert.True(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_CreateIfAbsent_Duplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	d := newTestDelivery()

	// Same (webhook_id, event_id) pair: the conflict leaves zero rows affected.
	mock.ExpectExec("INSERT INTO webhook_deliveries").
		WithArgs(
			d.ID, d.WebhookID, d.TransactionID, d.EventID, d.Payload, d.Status,
			d.LastHTTPStatus, d.LastBody, d.Attempts, d.LastAttemptAt, d.NextRetryAt, d.DeliveredAt,
			d.CreatedAt, d.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	inserted, err := repo.CreateIfAbsent(context.Background(), d)
	assert.NoError(t, err)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	d := newTestDelivery()
	status := 503
	d.LastHTTPStatus = &status
	d.Attempts = 2
	next := time.Now().UTC().Add(30 * time.Second)
	d.NextRetryAt = &next

	mock.ExpectExec("UPDATE webhook_deliveries").
		WithArgs(
			d.Status, d.LastHTTPStatus, d.LastBody, d.Attempts,
			d.LastAttemptAt, d.NextRetryAt, d.DeliveredAt, d.ID,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.Update(context.Background(), d)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_ListDue(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	d := newTestDelivery()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM webhook_deliveries").
		WithArgs(now, 100).
		WillReturnRows(deliveryRow(d))

	due, err := repo.ListDue(context.Background(), now, 100)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, d.EventID, due[0].EventID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepo_ListByTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDeliveryRepo(mock)
	d := newTestDelivery()

	mock.ExpectQuery("SELECT .+ FROM webhook_deliveries").
		WithArgs(*d.TransactionID).
		WillReturnRows(deliveryRow(d))

	deliveries, err := repo.ListByTransaction(context.Background(), *d.TransactionID)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, d.ID, deliveries[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
