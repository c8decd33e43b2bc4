package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"daraja-gateway/internal/core/domain"
	"daraja-gateway/internal/core/ports"
	"daraja-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EncryptorFactory builds an EncryptionService from a passphrase. The vault
// uses it during key rotation to derive the replacement key.
type EncryptorFactory func(passphrase string) (ports.EncryptionService, error)

// CredentialVaultService implements ports.CredentialVault. Plaintext
// credential material only exists in memory between Reveal and the end of the
// calling operation; every reveal leaves an audit row that records who and
// when, never the material itself.
type CredentialVaultService struct {
	credRepo   ports.CredentialRepository
	auditRepo  ports.AuditRepository
	transactor ports.DBTransactor
	newEnc     EncryptorFactory
	log        zerolog.Logger

	mu  sync.RWMutex
	enc ports.EncryptionService
}

// NewCredentialVaultService creates a vault with an initial encryption key.
func NewCredentialVaultService(
	credRepo ports.CredentialRepository,
	auditRepo ports.AuditRepository,
	transactor ports.DBTransactor,
	enc ports.EncryptionService,
	newEnc EncryptorFactory,
	log zerolog.Logger,
) *CredentialVaultService {
	return &CredentialVaultService{
		credRepo:   credRepo,
		auditRepo:  auditRepo,
		transactor: transactor,
		newEnc:     newEnc,
		log:        log,
		enc:        enc,
	}
}

var _ ports.CredentialVault = (*CredentialVaultService)(nil)

// Store encrypts and persists the full credential set, replacing any previous
// record for the merchant. There is no partial update: re-issuing one secret
// re-issues the set.
func (s *CredentialVaultService) Store(ctx context.Context, merchantID uuid.UUID, set domain.CredentialSet) error {
	if set.ConsumerKey == "" || set.ConsumerSecret == "" {
		return apperror.Validation("consumer key and secret are required")
	}

	s.mu.RLock()
	enc := s.enc
	s.mu.RUnlock()

	cred, err := encryptSet(enc, merchantID, &set)
	if err != nil {
		return apperror.Encryption("encrypting credential set", err)
	}

	now := time.Now().UTC()
	cred.CreatedAt = now
	cred.UpdatedAt = now
	if err := s.credRepo.Upsert(ctx, cred); err != nil {
		return apperror.Internal(fmt.Errorf("store credentials: %w", err))
	}

	s.writeAudit(ctx, &merchantID, domain.AuditActionCredentialStore, "merchant", map[string]any{
		"has_passkey":   set.Passkey != "",
		"has_initiator": set.InitiatorName != "",
	})

	s.log.Info().Str("merchant_id", merchantID.String()).Msg("credential set stored")
	return nil
}

// Reveal decrypts the merchant's credential set for one operation. The actor
// is the operation kind asking for the material.
func (s *CredentialVaultService) Reveal(ctx context.Context, merchantID uuid.UUID, actor string) (*domain.CredentialSet, error) {
	cred, err := s.credRepo.Get(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, apperror.NotFound("credentials")
	}

	s.mu.RLock()
	enc := s.enc
	s.mu.RUnlock()

	set, err := decryptSet(enc, cred)
	if err != nil {
		return nil, apperror.Encryption("decrypting credential set", err).
			WithContext(actor, merchantID.String(), "")
	}

	s.writeAudit(ctx, &merchantID, domain.AuditActionCredentialReveal, actor, nil)
	return set, nil
}

// RotateEncryptionKey re-encrypts every stored credential under a key derived
// from newPassphrase. All rows move in one database transaction, so at no
// point is any record readable under neither key.
func (s *CredentialVaultService) RotateEncryptionKey(ctx context.Context, newPassphrase string) error {
	nextEnc, err := s.newEnc(newPassphrase)
	if err != nil {
		return apperror.Encryption("deriving rotation key", err)
	}

	// Hold the write lock for the whole rotation: a Reveal racing the commit
	// must not decrypt a re-encrypted row with the old key.
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.credRepo.ListAll(ctx)
	if err != nil {
		return apperror.Internal(fmt.Errorf("list credentials for rotation: %w", err))
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.Internal(fmt.Errorf("begin rotation tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	for i := range creds {
		set, err := decryptSet(s.enc, &creds[i])
		if err != nil {
			return apperror.Encryption(
				fmt.Sprintf("decrypting credentials for merchant %s", creds[i].MerchantID), err)
		}
		rotated, err := encryptSet(nextEnc, creds[i].MerchantID, set)
		if err != nil {
			return apperror.Encryption(
				fmt.Sprintf("re-encrypting credentials for merchant %s", creds[i].MerchantID), err)
		}
		rotated.CreatedAt = creds[i].CreatedAt
		rotated.UpdatedAt = time.Now().UTC()
		if err := s.credRepo.UpdateEncrypted(ctx, dbTx, rotated); err != nil {
			return apperror.Internal(fmt.Errorf("rewrite credentials: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return apperror.Internal(fmt.Errorf("commit rotation tx: %w", err))
	}

	s.enc = nextEnc

	s.writeAudit(ctx, nil, domain.AuditActionKeyRotation, "system", map[string]any{
		"records": len(creds),
	})
	s.log.Info().Int("records", len(creds)).Msg("vault encryption key rotated")
	return nil
}

// writeAudit records an audit entry. Audit failures are logged, not fatal:
// an audit outage must not take payments down with it.
func (s *CredentialVaultService) writeAudit(ctx context.Context, merchantID *uuid.UUID, action domain.AuditAction, actor string, details map[string]any) {
	entry := &domain.AuditLog{
		ID:         uuid.New(),
		MerchantID: merchantID,
		Action:     action,
		Actor:      actor,
		CreatedAt:  time.Now().UTC(),
	}
	if details != nil {
		b, err := json.Marshal(details)
		if err == nil {
			entry.Details = string(b)
		}
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("action", string(action)).Msg("failed to write audit entry")
	}
}

func encryptSet(enc ports.EncryptionService, merchantID uuid.UUID, set *domain.CredentialSet) (*domain.Credential, error) {
	cred := &domain.Credential{MerchantID: merchantID}

	fields := []struct {
		plain string
		out   *string
	}{
		{set.ConsumerKey, &cred.ConsumerKeyEnc},
		{set.ConsumerSecret, &cred.ConsumerSecretEnc},
		{set.Passkey, &cred.PasskeyEnc},
		{set.InitiatorName, &cred.InitiatorNameEnc},
		{set.InitiatorPassword, &cred.InitiatorPasswordEnc},
		{set.SandboxCertPEM, &cred.SandboxCertEnc},
		{set.ProductionCertPEM, &cred.ProductionCertEnc},
	}
	for _, f := range fields {
		if f.plain == "" {
			continue
		}
		ct, err := enc.Encrypt(f.plain)
		if err != nil {
			return nil, err
		}
		*f.out = ct
	}
	return cred, nil
}

func decryptSet(enc ports.EncryptionService, cred *domain.Credential) (*domain.CredentialSet, error) {
	set := &domain.CredentialSet{}

	fields := []struct {
		cipher string
		out    *string
	}{
		{cred.ConsumerKeyEnc, &set.ConsumerKey},
		{cred.ConsumerSecretEnc, &set.ConsumerSecret},
		{cred.PasskeyEnc, &set.Passkey},
		{cred.InitiatorNameEnc, &set.InitiatorName},
		{cred.InitiatorPasswordEnc, &set.InitiatorPassword},
		{cred.SandboxCertEnc, &set.SandboxCertPEM},
		{cred.ProductionCertEnc, &set.ProductionCertPEM},
	}
	for _, f := range fields {
		if f.cipher == "" {
			continue
		}
		pt, err := enc.Decrypt(f.cipher)
		if err != nil {
			return nil, err
		}
		*f.out = pt
	}
	return set, nil
}
