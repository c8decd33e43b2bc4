package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := OnboardRequest{
		Name:        "  Acme Shop  ",
		Environment: " sandbox ",
		ShortCode:   " 174379 ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "Acme Shop", req.Name)
	assert.Equal(t, "sandbox", req.Environment)
	assert.Equal(t, "174379", req.ShortCode)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := OnboardRequest{
		Name:        "Acme <script>alert('x')</script> Shop",
		Environment: "sandbox",
		ShortCode:   "174379",
	}
	SanitizeStruct(&req)

	assert.Contains(t, req.Name, "&lt;script&gt;")
	assert.NotContains(t, req.Name, "<script>")
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- safe_url validator tests ---

type urlHolder struct {
	URL string `validate:"safe_url"`
}

func TestSafeURL_Valid(t *testing.T) {
	v := validator.New()
	assert.NoError(t, v.RegisterValidation("safe_url", validateSafeURL))

	cases := []string{
		"https://example.com/hook",
		"http://localhost:8080/callback",
		"https://example.com/hook?token=abc",
		"", // presence is the "required" tag's job
	}
	for _, tc := range cases {
		assert.NoError(t, v.Struct(urlHolder{URL: tc}), "expected valid: %s", tc)
	}
}

func TestSafeURL_Invalid(t *testing.T) {
	v := validator.New()
	assert.NoError(t, v.RegisterValidation("safe_url", validateSafeURL))

	cases := []string{
		"ftp://example.com/hook",
		"javascript:alert(1)",
		"example.com/hook", // no scheme
		"//example.com",
		"not a url",
	}
	for _, tc := range cases {
		assert.Error(t, v.Struct(urlHolder{URL: tc}), "expected invalid: %s", tc)
	}
}
