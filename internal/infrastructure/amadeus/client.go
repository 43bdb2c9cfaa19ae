package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yokuflik/price-tracker/internal/domain/entity"
	"github.com/yokuflik/price-tracker/internal/infrastructure/cache"
	"github.com/yokuflik/price-tracker/pkg/logger"
	"github.com/yokuflik/price-tracker/pkg/metrics"
)

// DateFormat is the calendar-date format the provider expects.
const DateFormat = "2006-01-02"

// ResponseCache is the per-day result cache consulted before any provider
// call. Failed calls are never cached.
type ResponseCache interface {
	Get(key string) ([]entity.Offer, bool)
	Put(key string, offers []entity.Offer)
}

// DayQuery is one single-day flight-offer search.
type DayQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	TravelClass   string
}

// cacheKey covers every dimension that changes the provider response, so
// queries differing only in cabin class or return date never share an entry.
func (q DayQuery) cacheKey() string {
	return cache.Key(q.Origin, q.Destination, q.DepartureDate, q.ReturnDate, q.TravelClass)
}

// Client talks to the flight-offer search endpoint. Every call is for a
// fixed single adult and a small result cap.
type Client struct {
	searchURL  string
	httpClient *http.Client
	tokens     *TokenCache
	cache      ResponseCache
	maxResults int
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a provider search client.
func NewClient(searchURL string, tokens *TokenCache, responseCache ResponseCache, maxResults int, httpClient *http.Client, log logger.Logger, m *metrics.Metrics) *Client {
	return &Client{
		searchURL:  searchURL,
		httpClient: httpClient,
		tokens:     tokens,
		cache:      responseCache,
		maxResults: maxResults,
		logger:     log,
		metrics:    m,
	}
}

type searchResponse struct {
	Data []entity.Offer `json:"data"`
}

// SearchDay returns the raw offers for one route and departure date. The
// cache is checked first; on a miss the endpoint is called with a bearer
// token, and an authentication-rejected response invalidates the token and
// retries the identical query exactly once with a fresh one. A second
// rejection is surfaced as AuthError. Any other non-200 response is a
// SearchError carrying the upstream status and body.
func (c *Client) SearchDay(ctx context.Context, q DayQuery) ([]entity.Offer, error) {
	key := q.cacheKey()
	if offers, ok := c.cache.Get(key); ok {
		if c.metrics != nil {
			c.metrics.OfferCacheHits.Inc()
		}
		c.logger.Debug("Offer cache hit", "key", key)
		return offers, nil
	}
	if c.metrics != nil {
		c.metrics.OfferCacheMisses.Inc()
	}

	for attempt := 0; attempt < 2; attempt++ {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}

		offers, retry, err := c.searchOnce(ctx, q, token)
		if err != nil {
			return nil, err
		}
		if retry {
			c.tokens.Invalidate()
			continue
		}

		c.cache.Put(key, offers)
		return offers, nil
	}

	return nil, &AuthError{Err: errors.New("authentication rejected after token refresh")}
}

// searchOnce performs one HTTP call. retry is true only on an
// authentication-rejected response.
func (c *Client) searchOnce(ctx context.Context, q DayQuery, token string) (offers []entity.Offer, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build search request: %w", err)
	}

	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartureDate)
	params.Set("adults", "1")
	params.Set("max", strconv.Itoa(c.maxResults))
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}
	if q.TravelClass != "" {
		params.Set("travelClass", q.TravelClass)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Authorization", "Bearer "+token)

	if c.metrics != nil {
		c.metrics.SearchesIssued.Inc()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("flight search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read search response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, true, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, &SearchError{Status: resp.StatusCode, Body: string(body)}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false, fmt.Errorf("decode search response: %w", err)
	}
	return parsed.Data, false, nil
}
