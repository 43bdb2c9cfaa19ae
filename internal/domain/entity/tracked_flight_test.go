package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowEndCoversFlexibleDaysAfter(t *testing.T) {
	flight := &TrackedFlight{
		RequestedDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		MoreCriteria:  MoreCriteria{FlexibleDaysAfter: 3},
	}

	assert.Equal(t, time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC), flight.WindowEnd())
}

func TestIsExpiredOnlyAfterTheWindowEndDayPasses(t *testing.T) {
	flight := &TrackedFlight{
		RequestedDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	}

	assert.False(t, flight.IsExpired(time.Date(2026, 9, 10, 23, 0, 0, 0, time.UTC)),
		"still active through the whole last day")
	assert.True(t, flight.IsExpired(time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)))
	assert.True(t, flight.IsExpired(time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)))
}

func TestOfferTotalPrice(t *testing.T) {
	offer := Offer{Price: OfferPrice{Total: "480.50"}}

	price, err := offer.TotalPrice()
	require.NoError(t, err)
	assert.Equal(t, 480.50, price)

	offer.Price.Total = "n/a"
	_, err = offer.TotalPrice()
	assert.Error(t, err)
}

func TestOfferAirlineFallsBackToEmpty(t *testing.T) {
	assert.Equal(t, "LY", (&Offer{ValidatingAirlineCodes: []string{"LY", "EL"}}).Airline())
	assert.Equal(t, "", (&Offer{}).Airline())
}

func TestConnectionsUnlimited(t *testing.T) {
	assert.True(t, MoreCriteria{MaxConnections: UnlimitedConnections}.ConnectionsUnlimited())
	assert.False(t, MoreCriteria{MaxConnections: 0}.ConnectionsUnlimited())
}
