package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yokuflik/price-tracker/internal/domain/entity"
)

func offersPriced(total string) []entity.Offer {
	return []entity.Offer{{Price: entity.OfferPrice{Total: total}}}
}

func TestGetAfterPutReturnsValueBeforeTTL(t *testing.T) {
	c := NewOfferCache(time.Hour, 10)
	key := Key("TLV", "JFK", "2026-09-10")
	stored := offersPriced("480")

	c.Put(key, stored)
	got, ok := c.Get(key)

	require.True(t, ok)
	assert.Equal(t, stored, got)
}

func TestGetMissesOnUnknownKey(t *testing.T) {
	c := NewOfferCache(time.Hour, 10)

	_, ok := c.Get(Key("TLV", "JFK", "2026-09-10"))

	assert.False(t, ok)
}

func TestEntriesExpireAfterTTLIndependentOfAccess(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	c := NewOfferCache(time.Hour, 10)
	c.now = func() time.Time { return now }
	key := Key("TLV", "JFK", "2026-09-10")

	c.Put(key, offersPriced("480"))

	now = now.Add(59 * time.Minute)
	_, ok := c.Get(key)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = c.Get(key)
	assert.False(t, ok, "entry expires exactly at the TTL")
}

func TestPutEvictsOldestExpiringWhenFull(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	c := NewOfferCache(time.Hour, 2)
	c.now = func() time.Time { return now }

	c.Put(Key("TLV", "JFK", "2026-09-10"), offersPriced("480"))
	now = now.Add(10 * time.Minute)
	c.Put(Key("TLV", "LHR", "2026-09-10"), offersPriced("300"))
	now = now.Add(10 * time.Minute)
	c.Put(Key("TLV", "CDG", "2026-09-10"), offersPriced("250"))

	_, ok := c.Get(Key("TLV", "JFK", "2026-09-10"))
	assert.False(t, ok, "the entry closest to expiry is evicted first")

	_, ok = c.Get(Key("TLV", "LHR", "2026-09-10"))
	assert.True(t, ok)
	_, ok = c.Get(Key("TLV", "CDG", "2026-09-10"))
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestPutPrefersDroppingExpiredEntries(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	c := NewOfferCache(time.Hour, 2)
	c.now = func() time.Time { return now }

	c.Put(Key("TLV", "JFK", "2026-09-10"), offersPriced("480"))
	now = now.Add(30 * time.Minute)
	c.Put(Key("TLV", "LHR", "2026-09-10"), offersPriced("300"))

	// First entry is now expired; inserting a third drops it, not the live one.
	now = now.Add(45 * time.Minute)
	c.Put(Key("TLV", "CDG", "2026-09-10"), offersPriced("250"))

	_, ok := c.Get(Key("TLV", "LHR", "2026-09-10"))
	assert.True(t, ok, "live entry survives eviction")
	_, ok = c.Get(Key("TLV", "CDG", "2026-09-10"))
	assert.True(t, ok)
}

func TestOverwritingAKeyRefreshesTheEntry(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	c := NewOfferCache(time.Hour, 2)
	c.now = func() time.Time { return now }
	key := Key("TLV", "JFK", "2026-09-10")

	c.Put(key, offersPriced("480"))
	now = now.Add(50 * time.Minute)
	c.Put(key, offersPriced("460"))

	now = now.Add(30 * time.Minute)
	got, ok := c.Get(key)
	require.True(t, ok, "TTL restarts from the second put")
	assert.Equal(t, "460", got[0].Price.Total)
	assert.Equal(t, 1, c.Len())
}
