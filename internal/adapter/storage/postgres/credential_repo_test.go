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

func newTestCredential() *domain.Credential {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Credential{
		MerchantID:        uuid.New(),
		ConsumerKeyEnc:    "enc:ck",
		ConsumerSecretEnc: "enc:cs",
		PasskeyEnc:        "enc:pk",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func credentialColumnNames() []string {
	return []string{"merchant_id", "consumer_key_enc", "consumer_secret_enc", "passkey_enc",
		"initiator_name_enc", "initiator_password_enc", "sandbox_cert_enc", "production_cert_enc",
		"created_at", "updated_at"}
}

func credentialRow(c *domain.Credential) *pgxmock.Rows {
	return pgxmock.NewRows(credentialColumnNames()).AddRow(
		c.MerchantID, c.ConsumerKeyEnc, c.ConsumerSecretEnc, c.PasskeyEnc,
		c.InitiatorNameEnc, c.InitiatorPasswordEnc, c.SandboxCertEnc, c.ProductionCertEnc,
		c.CreatedAt, c.UpdatedAt,
	)
}

func TestCredentialRepo_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCredentialRepo(mock)
	c := newTestCredential()

	mock.ExpectExec("INSERT INTO credentials").
		WithArgs(c.MerchantID, c.ConsumerKeyEnc, c.ConsumerSecretEnc, c.PasskeyEnc,
			c.InitiatorNameEnc, c.InitiatorPasswordEnc, c.SandboxCertEnc, c.ProductionCertEnc,
			c.CreatedAt, c.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Upsert(context.Background(), c)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepo_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCredentialRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM credentials WHERE merchant_id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(credentialColumnNames()))

	result, err := repo.Get(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepo_ListAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCredentialRepo(mock)
	c := newTestCredential()

	mock.ExpectQuery("SELECT .+ FROM credentials ORDER BY merchant_id").
		WillReturnRows(credentialRow(c))

	creds, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, c.MerchantID, creds[0].MerchantID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepo_UpdateEncrypted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCredentialRepo(mock)
	c := newTestCredential()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE credentials").
		WithArgs(c.ConsumerKeyEnc, c.ConsumerSecretEnc, c.PasskeyEnc,
			c.InitiatorNameEnc, c.InitiatorPasswordEnc, c.SandboxCertEnc, c.ProductionCertEnc,
			c.MerchantID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateEncrypted(context.Background(), dbTx, c)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
