package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testVaultPassphrase = "correct horse battery staple"
	testVaultSalt       = "daraja-gateway-salt"
)

func TestAESEncryptionService_NewInvalidInputs(t *testing.T) {
	_, err := NewAESEncryptionService("", testVaultSalt)
	assert.Error(t, err)

	_, err = NewAESEncryptionService(testVaultPassphrase, "short")
	assert.Error(t, err)
}

func TestAESEncryptionService_EncryptDecrypt(t *testing.T) {
	svc, err := NewAESEncryptionService(testVaultPassphrase, testVaultSalt)
	require.NoError(t, err)

	plaintext := "consumer-secret-value"
	ciphertext, err := svc.Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := svc.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestAESEncryptionService_DeterministicKeyDerivation(t *testing.T) {
	svc1, err := NewAESEncryptionService(testVaultPassphrase, testVaultSalt)
	require.NoError(t, err)
	svc2, err := NewAESEncryptionService(testVaultPassphrase, testVaultSalt)
	require.NoError(t, err)

	// A restart with the same passphrase and salt must read old ciphertext.
	ciphertext, err := svc1.Encrypt("initiator-password")
	require.NoError(t, err)

	decrypted, err := svc2.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "initiator-password", decrypted)
}

func TestAESEncryptionService_DifferentNonces(t *testing.T) {
	svc, err := NewAESEncryptionService(testVaultPassphrase, testVaultSalt)
	require.NoError(t, err)

	plaintext := "test_value"
	c1, err := svc.Encrypt(plaintext)
	require.NoError(t, err)
	c2, err := svc.Encrypt(plaintext)
	require.NoError(t, err)

	assert.NotEqual(t, c1, c2, "same plaintext should produce different ciphertext due to random nonce")

	d1, _ := svc.Decrypt(c1)
	d2, _ := svc.Decrypt(c2)
	assert.Equal(t, d1, d2)
}

func TestAESEncryptionService_TamperedCiphertext(t *testing.T) {
	svc, err := NewAESEncryptionService(testVaultPassphrase, testVaultSalt)
	require.NoError(t, err)

	ciphertext, err := svc.Encrypt("secret")
	require.NoError(t, err)

	tampered := ciphertext[:len(ciphertext)-2] + "ff"
	_, err = svc.Decrypt(tampered)
	assert.Error(t, err)
}

func TestAESEncryptionService_WrongPassphrase(t *testing.T) {
	svc1, _ := NewAESEncryptionService(testVaultPassphrase, testVaultSalt)
	svc2, _ := NewAESEncryptionService("a different passphrase", testVaultSalt)

	ciphertext, err := svc1.Encrypt("passkey_material")
	require.NoError(t, err)

	_, err = svc2.Decrypt(ciphertext)
	assert.Error(t, err)
}

func TestAESEncryptionService_InvalidCiphertext(t *testing.T) {
	svc, _ := NewAESEncryptionService(testVaultPassphrase, testVaultSalt)

	_, err := svc.Decrypt("not-hex-at-all!!!")
	assert.Error(t, err)

	_, err = svc.Decrypt("abcdef")
	assert.Error(t, err)
}
