package postgres

import (
	"context"
	"errors"
	"fmt"

	"daraja-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const credentialColumns = `merchant_id, consumer_key_enc, consumer_secret_enc, passkey_enc,
	initiator_name_enc, initiator_password_enc, sandbox_cert_enc, production_cert_enc,
	created_at, updated_at`

// CredentialRepo implements ports.CredentialRepository. Every column holding
// secret material is ciphertext; the repository never sees plaintext.
type CredentialRepo struct {
	pool Pool
}

// NewCredentialRepo creates a new CredentialRepo.
func NewCredentialRepo(pool Pool) *CredentialRepo {
	return &CredentialRepo{pool: pool}
}

// Upsert replaces the merchant's credential record. One active set per
// merchant; a re-issue overwrites every column.
func (r *CredentialRepo) Upsert(ctx context.Context, cred *domain.Credential) error {
	query := `INSERT INTO credentials (` + credentialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (merchant_id) DO UPDATE SET
			consumer_key_enc = EXCLUDED.consumer_key_enc,
			consumer_secret_enc = EXCLUDED.consumer_secret_enc,
			passkey_enc = EXCLUDED.passkey_enc,
			initiator_name_enc = EXCLUDED.initiator_name_enc,
			initiator_password_enc = EXCLUDED.initiator_password_enc,
			sandbox_cert_enc = EXCLUDED.sandbox_cert_enc,
			production_cert_enc = EXCLUDED.production_cert_enc,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		cred.MerchantID, cred.ConsumerKeyEnc, cred.ConsumerSecretEnc, cred.PasskeyEnc,
		cred.InitiatorNameEnc, cred.InitiatorPasswordEnc, cred.SandboxCertEnc, cred.ProductionCertEnc,
		cred.CreatedAt, cred.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert credential: %w", err)
	}
	return nil
}

// Get fetches the credential record for a merchant.
func (r *CredentialRepo) Get(ctx context.Context, merchantID uuid.UUID) (*domain.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE merchant_id = $1`

	c := &domain.Credential{}
	err := r.pool.QueryRow(ctx, query, merchantID).Scan(
		&c.MerchantID, &c.ConsumerKeyEnc, &c.ConsumerSecretEnc, &c.PasskeyEnc,
		&c.InitiatorNameEnc, &c.InitiatorPasswordEnc, &c.SandboxCertEnc, &c.ProductionCertEnc,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return c, nil
}

// ListAll returns every credential record, used by key rotation.
func (r *CredentialRepo) ListAll(ctx context.Context) ([]domain.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials ORDER BY merchant_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	var creds []domain.Credential
	for rows.Next() {
		c := domain.Credential{}
		err := rows.Scan(
			&c.MerchantID, &c.ConsumerKeyEnc, &c.ConsumerSecretEnc, &c.PasskeyEnc,
			&c.InitiatorNameEnc, &c.InitiatorPasswordEnc, &c.SandboxCertEnc, &c.ProductionCertEnc,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan credential row: %w", err)
		}
		creds = append(creds, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credential rows: %w", err)
	}
	return creds, nil
}

// UpdateEncrypted rewrites the ciphertext columns inside a key-rotation
// transaction.
func (r *CredentialRepo) UpdateEncrypted(ctx context.Context, tx pgx.Tx, cred *domain.Credential) error {
	query := `UPDATE credentials SET
			consumer_key_enc = $1,
			consumer_secret_enc = $2,
			passkey_enc = $3,
			initiator_name_enc = $4,
			initiator_password_enc = $5,
			sandbox_cert_enc = $6,
			production_cert_enc = $7,
			updated_at = NOW()
		WHERE merchant_id = $8`

	tag, err := tx.Exec(ctx, query,
		cred.ConsumerKeyEnc, cred.ConsumerSecretEnc, cred.PasskeyEnc,
		cred.InitiatorNameEnc, cred.InitiatorPasswordEnc, cred.SandboxCertEnc, cred.ProductionCertEnc,
		cred.MerchantID,
	)
	if err != nil {
		return fmt.Errorf("update encrypted credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("credential not found: %s", cred.MerchantID)
	}
	return nil
}
