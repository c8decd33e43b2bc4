// Package msisdn canonicalizes Kenyan phone numbers into the 12-digit
// international form the provider expects (254 followed by 9 digits).
package msisdn

import (
	"strings"

	"daraja-gateway/pkg/apperror"
)

const countryCode = "254"

// NormalizeStrict canonicalizes raw into MSISDN form and accepts only the
// two network ranges the provider's charge flow supports: 2547XXXXXXXX and
// 2541XXXXXXXX. Use this for the party that will be charged.
func NormalizeStrict(raw string) (string, error) {
	n, err := normalize(raw)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(n, countryCode+"7") && !strings.HasPrefix(n, countryCode+"1") {
		return "", apperror.Validation("phone number must be a Safaricom 2547/2541 range: " + n)
	}
	return n, nil
}

// NormalizePermissive canonicalizes raw into MSISDN form and accepts any
// 254 + 9-digit result regardless of network prefix. Use this for simulate
// and payout party fields.
func NormalizePermissive(raw string) (string, error) {
	return normalize(raw)
}

// normalize strips non-digits and rewrites local and prefixed forms into
// 254XXXXXXXXX. A bare 9-digit input is treated as an implicit local
// subscriber number.
func normalize(raw string) (string, error) {
	digits := stripNonDigits(raw)

	switch {
	case len(digits) == 10 && digits[0] == '0':
		// Local form 07XXXXXXXX / 01XXXXXXXX.
		digits = countryCode + digits[1:]
	case len(digits) == 9:
		digits = countryCode + digits
	}

	if len(digits) != 12 || !strings.HasPrefix(digits, countryCode) {
		return "", apperror.Validation("phone number is not a valid Kenyan MSISDN: " + raw)
	}
	return digits, nil
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
