package daraja

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"daraja-gateway/internal/core/domain"
	"daraja-gateway/internal/core/ports"
	"daraja-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const tokenPath = "/oauth/v1/generate?grant_type=client_credentials"

// HTTPClient is the minimal HTTP surface the package depends on, for
// testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type cachedToken struct {
	value     string
	expiresAt time.Time
}

// TokenCache caches provider bearer tokens per merchant and refreshes them
// before expiry. Concurrent callers during a cold or expired window share a
// single in-flight fetch per merchant.
type TokenCache struct {
	vault        ports.CredentialVault
	httpClient   HTTPClient
	baseURLs     BaseURLs
	safetyMargin time.Duration
	log          zerolog.Logger

	mu    sync.Mutex
	cache map[uuid.UUID]cachedToken
	group singleflight.Group
}

// BaseURLs maps merchant environments to provider hosts.
type BaseURLs struct {
	Sandbox    string
	Production string
}

// For returns the base URL for env.
func (b BaseURLs) For(env domain.Environment) string {
	if env == domain.EnvironmentProduction {
		return b.Production
	}
	return b.Sandbox
}

// NewTokenCache creates a TokenCache.
func NewTokenCache(vault ports.CredentialVault, httpClient HTTPClient, baseURLs BaseURLs, safetyMargin time.Duration, log zerolog.Logger) *TokenCache {
	if safetyMargin <= 0 {
		safetyMargin = 60 * time.Second
	}
	return &TokenCache{
		vault:        vault,
		httpClient:   httpClient,
		baseURLs:     baseURLs,
		safetyMargin: safetyMargin,
		log:          log,
		cache:        map[uuid.UUID]cachedToken{},
	}
}

// GetToken returns a cached token if more than the safety margin remains
// before expiry, otherwise performs one token exchange shared by all
// concurrent callers for the merchant.
func (c *TokenCache) GetToken(ctx context.Context, merchant *domain.Merchant) (string, error) {
	if tok, ok := c.lookup(merchant.ID); ok {
		return tok, nil
	}

	v, err, _ := c.group.Do(merchant.ID.String(), func() (interface{}, error) {
		// Re-check under the flight: a racing caller may have refreshed
		// between lookup and Do.
		if tok, ok := c.lookup(merchant.ID); ok {
			return tok, nil
		}
		return c.fetch(ctx, merchant)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached token for a merchant.
func (c *TokenCache) Invalidate(merchantID uuid.UUID) {
	c.mu.Lock()
	delete(c.cache, merchantID)
	c.mu.Unlock()
}

func (c *TokenCache) lookup(merchantID uuid.UUID) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tok, ok := c.cache[merchantID]
	if !ok || time.Until(tok.expiresAt) <= c.safetyMargin {
		return "", false
	}
	return tok.value, true
}

// fetch performs the Basic-auth token exchange and stores the result.
func (c *TokenCache) fetch(ctx context.Context, merchant *domain.Merchant) (string, error) {
	set, err := c.vault.Reveal(ctx, merchant.ID, "oauth")
	if err != nil {
		return "", err
	}

	url := c.baseURLs.For(merchant.Environment) + tokenPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("build token request: %w", err))
	}
	basic := base64.StdEncoding.EncodeToString([]byte(set.ConsumerKey + ":" + set.ConsumerSecret))
	req.Header.Set("Authorization", "Basic "+basic)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperror.Network(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", apperror.Network(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().
			Str("merchant_id", merchant.ID.String()).
			Int("status", resp.StatusCode).
			Msg("token exchange rejected")
		return "", apperror.Auth(
			fmt.Sprintf("token exchange returned status %d", resp.StatusCode), nil)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", apperror.Auth("malformed token response", err)
	}
	if tr.AccessToken == "" {
		return "", apperror.Auth("token response missing access_token", nil)
	}

	ttl, err := strconv.Atoi(tr.ExpiresIn)
	if err != nil || ttl <= 0 {
		ttl = 3599
	}

	c.mu.Lock()
	c.cache[merchant.ID] = cachedToken{
		value:     tr.AccessToken,
		expiresAt: time.Now().Add(time.Duration(ttl) * time.Second),
	}
	c.mu.Unlock()

	c.log.Debug().
		Str("merchant_id", merchant.ID.String()).
		Int("expires_in", ttl).
		Msg("provider token refreshed")

	return tr.AccessToken, nil
}
