package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"daraja-gateway/internal/core/domain"
	"daraja-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, merchant_id, provider_tx_id, operation, amount, status,
	phone_number, account_ref, description, metadata, created_at, updated_at`

// TransactionRepo implements ports.TransactionRepository. The provider tx id
// carries a unique constraint; idempotent create and the PENDING-only outcome
// update both lean on the database, not on application-level checks.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts the transaction unless a row with the same provider tx id
// already exists. Returns true when a row was inserted.
func (r *TransactionRepo) Create(ctx context.Context, t *domain.Transaction) (bool, error) {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (provider_tx_id) DO NOTHING`

	meta, err := metadataJSON(t.Metadata)
	if err != nil {
		return false, err
	}

	tag, err := r.pool.Exec(ctx, query,
		t.ID, t.MerchantID, t.ProviderTxID, t.Operation, t.Amount, t.Status,
		t.PhoneNumber, t.AccountRef, t.Description, meta,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert transaction: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByProviderTxID fetches a transaction by its provider transaction id.
func (r *TransactionRepo) GetByProviderTxID(ctx context.Context, providerTxID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE provider_tx_id = $1`
	return r.scanTransaction(r.pool.QueryRow(ctx, query, providerTxID))
}

// UpdateOutcome moves a PENDING transaction to a terminal status and merges
// the metadata patch into the existing blob. Returns true when a row moved;
// an already-terminal row is untouched.
func (r *TransactionRepo) UpdateOutcome(ctx context.Context, providerTxID string, status domain.TransactionStatus, patch domain.Metadata) (bool, error) {
	query := `UPDATE transactions
		SET status = $1,
			metadata = COALESCE(metadata, '{}'::jsonb) || $2::jsonb,
			updated_at = NOW()
		WHERE provider_tx_id = $3 AND status = 'PENDING'`

	meta, err := metadataJSON(patch)
	if err != nil {
		return false, err
	}

	tag, err := r.pool.Exec(ctx, query, status, meta, providerTxID)
	if err != nil {
		return false, fmt.Errorf("update transaction outcome: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List fetches a merchant's transactions with filtering and pagination.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("merchant_id = $%d", argIdx))
	args = append(args, params.MerchantID)
	argIdx++

	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}
	if params.Operation != nil {
		conditions = append(conditions, fmt.Sprintf("operation = $%d", argIdx))
		args = append(args, *params.Operation)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM transactions %s", where)
	var total int64
	err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT `+transactionColumns+`
		FROM transactions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		var meta []byte
		err := rows.Scan(
			&t.ID, &t.MerchantID, &t.ProviderTxID, &t.Operation, &t.Amount, &t.Status,
			&t.PhoneNumber, &t.AccountRef, &t.Description, &meta,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction row: %w", err)
		}
		if t.Metadata, err = metadataFromJSON(meta); err != nil {
			return nil, 0, err
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, total, nil
}

func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	var meta []byte
	err := row.Scan(
		&t.ID, &t.MerchantID, &t.ProviderTxID, &t.Operation, &t.Amount, &t.Status,
		&t.PhoneNumber, &t.AccountRef, &t.Description, &meta,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	if t.Metadata, err = metadataFromJSON(meta); err != nil {
		return nil, err
	}
	return t, nil
}

func metadataJSON(m domain.Metadata) ([]byte, error) {
	if m == nil {
		m = domain.Metadata{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal transaction metadata: %w", err)
	}
	return b, nil
}

func metadataFromJSON(b []byte) (domain.Metadata, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var m domain.Metadata
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal transaction metadata: %w", err)
	}
	return m, nil
}
