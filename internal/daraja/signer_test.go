package daraja

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"daraja-gateway/internal/core/domain"
	"daraja-gateway/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_NairobiWallClock(t *testing.T) {
	// 10:30 UTC is 13:30 in Nairobi (UTC+3, no DST).
	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "20240315133000", Timestamp(at))
}

func TestSTKPassword_Encoding(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	password, timestamp := STKPassword("174379", "passkey123", at)

	assert.Equal(t, "20240315133000", timestamp)

	decoded, err := base64.StdEncoding.DecodeString(password)
	require.NoError(t, err)
	assert.Equal(t, "174379passkey12320240315133000", string(decoded))
}

func testRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func publicKeyPEM(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func certificatePEM(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "api.safaricom.co.ke"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
}

func TestSecurityCredential_RoundTrip(t *testing.T) {
	key := testRSAKey(t)

	for name, pemData := range map[string]string{
		"public_key":  publicKeyPEM(t, key),
		"certificate": certificatePEM(t, key),
	} {
		t.Run(name, func(t *testing.T) {
			cred, err := SecurityCredential("InitiatorPass99!", pemData)
			require.NoError(t, err)

			ciphertext, err := base64.StdEncoding.DecodeString(cred)
			require.NoError(t, err)

			plaintext, err := rsa.DecryptPKCS1v15(nil, key, ciphertext)
			require.NoError(t, err)
			assert.Equal(t, "InitiatorPass99!", string(plaintext))
		})
	}
}

func TestSecurityCredential_BadPEM(t *testing.T) {
	_, err := SecurityCredential("pass", "not a pem block")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindEncryption))
}

func TestResolveCert_ExplicitOverridesTag(t *testing.T) {
	set := &domain.CredentialSet{
		SandboxCertPEM:    "sandbox-pem",
		ProductionCertPEM: "production-pem",
	}

	got, err := ResolveCert(domain.EnvironmentSandbox, set, "explicit-pem")
	require.NoError(t, err)
	assert.Equal(t, "explicit-pem", got)

	got, err = ResolveCert(domain.EnvironmentSandbox, set, "")
	require.NoError(t, err)
	assert.Equal(t, "sandbox-pem", got)

	got, err = ResolveCert(domain.EnvironmentProduction, set, "")
	require.NoError(t, err)
	assert.Equal(t, "production-pem", got)
}

func TestResolveCert_MissingMaterial(t *testing.T) {
	_, err := ResolveCert(domain.EnvironmentProduction, &domain.CredentialSet{}, "")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindEncryption))
}
