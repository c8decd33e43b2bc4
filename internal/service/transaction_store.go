package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"daraja-gateway/internal/core/domain"
	"daraja-gateway/internal/core/ports"
	"daraja-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

const lockStripes = 64

// TransactionStoreService implements ports.TransactionStore. The database
// carries the hard guarantees (unique provider tx id, guarded PENDING
// transition); the striped in-process locks only serialize racing callers so
// both see the same canonical row.
type TransactionStoreService struct {
	repo  ports.TransactionRepository
	log   zerolog.Logger
	locks [lockStripes]sync.Mutex
}

// NewTransactionStoreService creates a transaction store.
func NewTransactionStoreService(repo ports.TransactionRepository, log zerolog.Logger) *TransactionStoreService {
	return &TransactionStoreService{repo: repo, log: log}
}

var _ ports.TransactionStore = (*TransactionStoreService)(nil)

func (s *TransactionStoreService) lockFor(providerTxID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(providerTxID))
	return &s.locks[h.Sum32()%lockStripes]
}

// Create inserts the transaction unless one with the same provider tx id
// exists. Concurrent duplicates all receive the same stored row; exactly one
// caller gets created=true.
func (s *TransactionStoreService) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, bool, error) {
	if t.ProviderTxID == "" {
		return nil, false, apperror.Validation("provider transaction id is required")
	}

	mu := s.lockFor(t.ProviderTxID)
	mu.Lock()
	defer mu.Unlock()

	inserted, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, false, apperror.Internal(fmt.Errorf("create transaction: %w", err))
	}

	stored, err := s.repo.GetByProviderTxID(ctx, t.ProviderTxID)
	if err != nil {
		return nil, false, apperror.Internal(fmt.Errorf("read back transaction: %w", err))
	}
	if stored == nil {
		return nil, false, apperror.Internal(fmt.Errorf("transaction %s vanished after create", t.ProviderTxID))
	}

	if !inserted {
		s.log.Debug().
			Str("provider_tx_id", t.ProviderTxID).
			Msg("duplicate create absorbed, returning existing transaction")
	}
	return stored, inserted, nil
}

// ApplyOutcome moves a PENDING transaction to a terminal status, merging the
// provider patch into its metadata. A second outcome for an already-terminal
// transaction is a logged no-op.
func (s *TransactionStoreService) ApplyOutcome(ctx context.Context, providerTxID string, status domain.TransactionStatus, patch domain.Metadata) (*domain.Transaction, bool, error) {
	if !status.IsTerminal() {
		return nil, false, apperror.Validation(fmt.Sprintf("status %s is not terminal", status))
	}

	mu := s.lockFor(providerTxID)
	mu.Lock()
	defer mu.Unlock()

	changed, err := s.repo.UpdateOutcome(ctx, providerTxID, status, patch)
	if err != nil {
		return nil, false, apperror.Internal(fmt.Errorf("apply outcome: %w", err))
	}

	stored, err := s.repo.GetByProviderTxID(ctx, providerTxID)
	if err != nil {
		return nil, false, apperror.Internal(fmt.Errorf("read back transaction: %w", err))
	}
	if stored == nil {
		return nil, false, apperror.NotFound("transaction")
	}

	if !changed {
		s.log.Info().
			Str("provider_tx_id", providerTxID).
			Str("stored_status", string(stored.Status)).
			Str("ignored_status", string(status)).
			Msg("outcome for terminal transaction ignored")
	}
	return stored, changed, nil
}

// GetByProviderTxID fetches a transaction by provider tx id.
func (s *TransactionStoreService) GetByProviderTxID(ctx context.Context, providerTxID string) (*domain.Transaction, error) {
	t, err := s.repo.GetByProviderTxID(ctx, providerTxID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("get transaction: %w", err))
	}
	if t == nil {
		return nil, apperror.NotFound("transaction")
	}
	return t, nil
}
