package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yokuflik/price-tracker/internal/domain/entity"
)

// leg is (departure at, arrival at) of one segment.
type leg struct {
	dep string
	arr string
}

func makeOffer(total string, legs ...leg) entity.Offer {
	segments := make([]entity.Segment, 0, len(legs))
	for _, l := range legs {
		segments = append(segments, entity.Segment{
			Departure: entity.SegmentPoint{IataCode: "AAA", At: l.dep},
			Arrival:   entity.SegmentPoint{IataCode: "BBB", At: l.arr},
		})
	}
	return entity.Offer{
		Price:                  entity.OfferPrice{Total: total},
		ValidatingAirlineCodes: []string{"LY"},
		Itineraries:            []entity.Itinerary{{Segments: segments}},
	}
}

func hoursPtr(h float64) *float64 { return &h }

func TestFilterOffersUnlimitedReturnsInputUnchanged(t *testing.T) {
	offers := []entity.Offer{
		makeOffer("100", leg{"2026-09-10T08:00:00", "2026-09-10T12:00:00"}),
		makeOffer("90",
			leg{"2026-09-10T08:00:00", "2026-09-10T12:00:00"},
			leg{"2026-09-10T20:00:00", "2026-09-11T02:00:00"},
		),
	}
	criteria := entity.MoreCriteria{MaxConnections: entity.UnlimitedConnections}

	got := FilterOffers(offers, criteria)

	assert.Equal(t, offers, got)
	assert.Same(t, &offers[0], &got[0], "fast path must return the input slice itself")
}

func TestFilterOffersConnectionCap(t *testing.T) {
	nonstop := makeOffer("100", leg{"2026-09-10T08:00:00", "2026-09-10T12:00:00"})
	oneStop := makeOffer("80",
		leg{"2026-09-10T08:00:00", "2026-09-10T12:00:00"},
		leg{"2026-09-10T14:00:00", "2026-09-10T20:00:00"},
	)
	twoStops := makeOffer("60",
		leg{"2026-09-10T08:00:00", "2026-09-10T10:00:00"},
		leg{"2026-09-10T11:00:00", "2026-09-10T13:00:00"},
		leg{"2026-09-10T14:00:00", "2026-09-10T20:00:00"},
	)
	offers := []entity.Offer{twoStops, oneStop, nonstop}

	t.Run("nonstop only", func(t *testing.T) {
		got := FilterOffers(offers, entity.MoreCriteria{MaxConnections: 0})
		require.Len(t, got, 1)
		assert.Equal(t, "100", got[0].Price.Total)
	})

	t.Run("one connection allowed keeps nonstop too", func(t *testing.T) {
		got := FilterOffers(offers, entity.MoreCriteria{MaxConnections: 1})
		require.Len(t, got, 2)
		assert.Equal(t, "100", got[0].Price.Total, "nonstop bucket comes first")
		assert.Equal(t, "80", got[1].Price.Total)
	})

	t.Run("cap above deepest keeps all", func(t *testing.T) {
		got := FilterOffers(offers, entity.MoreCriteria{MaxConnections: 5})
		assert.Len(t, got, 3)
	})
}

func TestFilterOffersLayoverBound(t *testing.T) {
	shortLayover := makeOffer("80",
		leg{"2026-09-10T08:00:00", "2026-09-10T12:00:00"},
		leg{"2026-09-10T14:00:00", "2026-09-10T20:00:00"}, // 2h layover
	)
	longLayover := makeOffer("70",
		leg{"2026-09-10T08:00:00", "2026-09-10T12:00:00"},
		leg{"2026-09-10T18:30:00", "2026-09-11T00:00:00"}, // 6.5h layover
	)
	nonstop := makeOffer("100", leg{"2026-09-10T08:00:00", "2026-09-10T12:00:00"})

	criteria := entity.MoreCriteria{MaxConnections: 2, MaxConnectionHours: hoursPtr(3)}
	got := FilterOffers([]entity.Offer{shortLayover, longLayover, nonstop}, criteria)

	require.Len(t, got, 2)
	assert.Equal(t, "100", got[0].Price.Total, "nonstop has no layovers and trivially passes")
	assert.Equal(t, "80", got[1].Price.Total)
}

func TestFilterOffersLayoverBoundIsInclusive(t *testing.T) {
	exact := makeOffer("80",
		leg{"2026-09-10T08:00:00", "2026-09-10T12:00:00"},
		leg{"2026-09-10T14:30:00", "2026-09-10T20:00:00"}, // exactly 2.5h
	)
	criteria := entity.MoreCriteria{MaxConnections: 1, MaxConnectionHours: hoursPtr(2.5)}

	got := FilterOffers([]entity.Offer{exact}, criteria)

	assert.Len(t, got, 1)
}

func TestFilterOffersMaxOfLayoversDecides(t *testing.T) {
	// First layover fits the bound, second does not: whole offer drops.
	offer := makeOffer("60",
		leg{"2026-09-10T08:00:00", "2026-09-10T10:00:00"},
		leg{"2026-09-10T11:00:00", "2026-09-10T13:00:00"}, // 1h
		leg{"2026-09-10T18:00:00", "2026-09-10T22:00:00"}, // 5h
	)
	criteria := entity.MoreCriteria{MaxConnections: 2, MaxConnectionHours: hoursPtr(3)}

	got := FilterOffers([]entity.Offer{offer}, criteria)

	assert.Empty(t, got)
}

func TestFilterOffersSkipsUnclassifiable(t *testing.T) {
	noItineraries := entity.Offer{Price: entity.OfferPrice{Total: "50"}}
	noSegments := entity.Offer{
		Price:       entity.OfferPrice{Total: "55"},
		Itineraries: []entity.Itinerary{{}},
	}
	badTimestamp := makeOffer("65",
		leg{"2026-09-10T08:00:00", "not-a-time"},
		leg{"2026-09-10T14:00:00", "2026-09-10T20:00:00"},
	)
	good := makeOffer("100", leg{"2026-09-10T08:00:00", "2026-09-10T12:00:00"})

	criteria := entity.MoreCriteria{MaxConnections: 2, MaxConnectionHours: hoursPtr(10)}
	got := FilterOffers([]entity.Offer{noItineraries, noSegments, badTimestamp, good}, criteria)

	require.Len(t, got, 1)
	assert.Equal(t, "100", got[0].Price.Total)
}
