package amadeus

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/yokuflik/price-tracker/pkg/logger"
)

// TokenCache holds at most one live bearer token for the provider API and
// re-runs the client-credentials exchange when it has none. The TTL is fixed
// to match the provider's token lifetime instead of trusting the expiry in
// the exchange response.
type TokenCache struct {
	conf       *clientcredentials.Config
	httpClient *http.Client
	ttl        time.Duration
	logger     logger.Logger

	mu        sync.Mutex
	token     string
	fetchedAt time.Time
}

// NewTokenCache creates a token cache for the given token endpoint.
func NewTokenCache(tokenURL, clientID, clientSecret string, ttl time.Duration, httpClient *http.Client, log logger.Logger) *TokenCache {
	return &TokenCache{
		conf: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: httpClient,
		ttl:        ttl,
		logger:     log,
	}
}

// Token returns the cached bearer token, running a client-credentials
// exchange when none is live. An exchange failure is returned as AuthError
// with no retry.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Since(c.fetchedAt) < c.ttl {
		return c.token, nil
	}

	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}

	tok, err := c.conf.Token(ctx)
	if err != nil {
		return "", &AuthError{Err: err}
	}

	c.token = tok.AccessToken
	c.fetchedAt = time.Now()
	c.logger.Info("Fetched provider access token", "fetchedAt", c.fetchedAt.Format(time.RFC3339))

	return c.token, nil
}

// Invalidate clears the cached token. Callers must invoke it once a request
// using the token comes back authentication-rejected, then retry the flow
// exactly once with a fresh token.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = ""
	c.logger.Warn("Provider access token invalidated")
}
