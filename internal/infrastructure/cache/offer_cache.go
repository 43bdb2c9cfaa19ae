package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/yokuflik/price-tracker/internal/domain/entity"
)

// OfferCache is a time-bounded cache of per-day search results, keyed by
// route and departure date. Entries expire a fixed duration after they are
// stored, independent of access, and capacity is bounded: once full, the
// entry closest to expiry is evicted. Safe for concurrent use; a racing
// redundant Put simply overwrites with an equivalent value.
type OfferCache struct {
	ttl      time.Duration
	capacity int
	now      func() time.Time

	mu      sync.RWMutex
	entries map[string]offerEntry
}

type offerEntry struct {
	offers    []entity.Offer
	expiresAt time.Time
}

// NewOfferCache creates an offer cache with the given TTL and capacity.
func NewOfferCache(ttl time.Duration, capacity int) *OfferCache {
	return &OfferCache{
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
		entries:  make(map[string]offerEntry),
	}
}

// Key joins query dimensions into a cache key. Callers must include every
// parameter that changes the provider response, or distinct queries collide
// on one entry.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}

// Get returns the cached offers for the key, or false when absent or
// expired.
func (c *OfferCache) Get(key string) ([]entity.Offer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, false
	}
	return entry.offers, true
}

// Put stores the offers for the key, evicting the oldest-expiring entry
// when the cache is full.
func (c *OfferCache) Put(key string, offers []entity.Offer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictLocked(now)
	}
	c.entries[key] = offerEntry{offers: offers, expiresAt: now.Add(c.ttl)}
}

// Len returns the number of stored entries, expired ones included until
// they are evicted.
func (c *OfferCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictLocked drops every expired entry; if none had expired yet it drops
// the single entry closest to expiry. Caller holds the write lock.
func (c *OfferCache) evictLocked(now time.Time) {
	var oldestKey string
	var oldestExpiry time.Time
	dropped := false

	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			dropped = true
			continue
		}
		if oldestKey == "" || entry.expiresAt.Before(oldestExpiry) {
			oldestKey = key
			oldestExpiry = entry.expiresAt
		}
	}

	if !dropped && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
