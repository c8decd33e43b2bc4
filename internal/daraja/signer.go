package daraja

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"time"

	"daraja-gateway/internal/core/domain"
	"daraja-gateway/pkg/apperror"
)

// timestampLayout is the provider's required format: whole seconds,
// merchant-local (Nairobi) time.
const timestampLayout = "20060102150405"

// Kenya does not observe DST, so a fixed offset is safe and avoids a tzdata
// dependency in minimal containers.
var nairobi = time.FixedZone("EAT", 3*60*60)

// Timestamp formats t in the provider's timestamp convention.
func Timestamp(t time.Time) string {
	return t.In(nairobi).Format(timestampLayout)
}

// STKPassword derives the charge-initiation password field: a one-way
// Base64 encoding of short-code, passkey and timestamp. The inverse is
// never computed.
func STKPassword(shortCode, passkey string, t time.Time) (password, timestamp string) {
	timestamp = Timestamp(t)
	password = base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
	return password, timestamp
}

// SecurityCredential encrypts the initiator password under the provider
// certificate (RSA PKCS#1 v1.5) and Base64-encodes the result, as required
// for payout-class operations.
func SecurityCredential(initiatorPassword, certPEM string) (string, error) {
	pub, err := parseRSAPublicKey(certPEM)
	if err != nil {
		return "", apperror.Encryption("parse provider certificate", err)
	}

	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, pub, []byte(initiatorPassword))
	if err != nil {
		return "", apperror.Encryption("encrypt security credential", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// ResolveCert selects certificate material for the merchant's environment.
// An explicitly supplied PEM always overrides the environment tag.
func ResolveCert(env domain.Environment, set *domain.CredentialSet, explicitPEM string) (string, error) {
	if explicitPEM != "" {
		return explicitPEM, nil
	}

	var pemData string
	switch env {
	case domain.EnvironmentSandbox:
		pemData = set.SandboxCertPEM
	case domain.EnvironmentProduction:
		pemData = set.ProductionCertPEM
	}
	if pemData == "" {
		return "", apperror.Encryption(
			fmt.Sprintf("no provider certificate for environment %q", env), nil)
	}
	return pemData, nil
}

// parseRSAPublicKey accepts either an X.509 certificate or a bare PKIX
// public key in PEM form.
func parseRSAPublicKey(pemData string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}

	switch block.Type {
	case "CERTIFICATE":
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing certificate: %w", err)
		}
		pub, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("certificate does not carry an RSA public key")
		}
		return pub, nil
	case "PUBLIC KEY":
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing public key: %w", err)
		}
		pub, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("PEM block is not an RSA public key")
		}
		return pub, nil
	default:
		return nil, fmt.Errorf("unsupported PEM block type %q", block.Type)
	}
}
