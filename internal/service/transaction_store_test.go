package service

import (
	"context"
	"sync"
	"testing"

	"daraja-gateway/internal/core/domain"
	"daraja-gateway/internal/core/ports"
	"daraja-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTxRepo is an in-memory TransactionRepository mirroring the SQL
// semantics: insert-if-absent and a PENDING-guarded outcome update.
type memTxRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.Transaction
}

func newMemTxRepo() *memTxRepo {
	return &memTxRepo{rows: map[string]*domain.Transaction{}}
}

func (r *memTxRepo) Create(ctx context.Context, t *domain.Transaction) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[t.ProviderTxID]; ok {
		return false, nil
	}
	cp := *t
	r.rows[t.ProviderTxID] = &cp
	return true, nil
}

func (r *memTxRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.rows {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTxRepo) GetByProviderTxID(ctx context.Context, providerTxID string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[providerTxID]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTxRepo) UpdateOutcome(ctx context.Context, providerTxID string, status domain.TransactionStatus, patch domain.Metadata) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[providerTxID]
	if !ok || t.Status != domain.TransactionStatusPending {
		return false, nil
	}
	t.Status = status
	t.Metadata = t.Metadata.Merge(patch)
	return true, nil
}

func (r *memTxRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	return nil, 0, nil
}

func pendingTx(providerTxID string) *domain.Transaction {
	return &domain.Transaction{
		ID:           uuid.New(),
		MerchantID:   uuid.New(),
		ProviderTxID: providerTxID,
		Operation:    domain.OpSTKPush,
		Amount:       100,
		Status:       domain.TransactionStatusPending,
	}
}

func TestTransactionStore_CreateIdempotent(t *testing.T) {
	store := NewTransactionStoreService(newMemTxRepo(), zerolog.Nop())
	ctx := context.Background()

	first := pendingTx("ws_CO_1")
	stored, created, err := store.Create(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, first.ID, stored.ID)

	dup := pendingTx("ws_CO_1")
	stored2, created2, err := store.Create(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created2)
	assert.Equal(t, first.ID, stored2.ID, "duplicate create must return the original row")
}

func TestTransactionStore_CreateRace(t *testing.T) {
	store := NewTransactionStoreService(newMemTxRepo(), zerolog.Nop())
	ctx := context.Background()

	const racers = 20
	var (
		wg          sync.WaitGroup
		createdBits [racers]bool
		ids         [racers]uuid.UUID
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stored, created, err := store.Create(ctx, pendingTx("ws_CO_race"))
			assert.NoError(t, err)
			createdBits[i] = created
			ids[i] = stored.ID
		}(i)
	}
	wg.Wait()

	winners := 0
	for i := 0; i < racers; i++ {
		if createdBits[i] {
			winners++
		}
		assert.Equal(t, ids[0], ids[i], "all racers must observe the same row")
	}
	assert.Equal(t, 1, winners, "exactly one racer may win the insert")
}

func TestTransactionStore_ApplyOutcome(t *testing.T) {
	store := NewTransactionStoreService(newMemTxRepo(), zerolog.Nop())
	ctx := context.Background()

	_, _, err := store.Create(ctx, pendingTx("ws_CO_2"))
	require.NoError(t, err)

	stored, changed, err := store.ApplyOutcome(ctx, "ws_CO_2", domain.TransactionStatusSuccess, domain.Metadata{
		"MpesaReceiptNumber": "NLJ7RT61SV",
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.TransactionStatusSuccess, stored.Status)
	assert.Equal(t, "NLJ7RT61SV", stored.Metadata["MpesaReceiptNumber"])
}

func TestTransactionStore_ApplyOutcomeTerminalIsNoOp(t *testing.T) {
	store := NewTransactionStoreService(newMemTxRepo(), zerolog.Nop())
	ctx := context.Background()

	_, _, err := store.Create(ctx, pendingTx("ws_CO_3"))
	require.NoError(t, err)

	_, changed, err := store.ApplyOutcome(ctx, "ws_CO_3", domain.TransactionStatusFailed, nil)
	require.NoError(t, err)
	require.True(t, changed)

	// A late duplicate callback with a different status must not move the row.
	stored, changed, err := store.ApplyOutcome(ctx, "ws_CO_3", domain.TransactionStatusSuccess, nil)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, domain.TransactionStatusFailed, stored.Status)
}

func TestTransactionStore_ApplyOutcomeRejectsNonTerminal(t *testing.T) {
	store := NewTransactionStoreService(newMemTxRepo(), zerolog.Nop())

	_, _, err := store.ApplyOutcome(context.Background(), "ws_CO_4", domain.TransactionStatusPending, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestTransactionStore_ApplyOutcomeUnknownTx(t *testing.T) {
	store := NewTransactionStoreService(newMemTxRepo(), zerolog.Nop())

	_, _, err := store.ApplyOutcome(context.Background(), "ws_CO_unknown", domain.TransactionStatusSuccess, nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
