package usecase

import (
	"github.com/yokuflik/price-tracker/internal/domain/entity"
	"github.com/yokuflik/price-tracker/pkg/utils"
)

// FilterOffers post-processes merged raw offers against the flight's
// criteria. When the connection cap is unlimited the input is returned
// unchanged; otherwise offers are classified by the connection count of
// their first itinerary and only those at or under the cap survive. When a
// layover bound is also set, a surviving offer is dropped if its longest
// layover exceeds the bound. Offers missing itinerary data are
// unclassifiable and silently skipped.
func FilterOffers(offers []entity.Offer, criteria entity.MoreCriteria) []entity.Offer {
	if criteria.ConnectionsUnlimited() {
		return offers
	}

	buckets := make(map[int][]entity.Offer)
	for i := range offers {
		count, ok := connectionCount(&offers[i])
		if !ok || count > criteria.MaxConnections {
			continue
		}
		buckets[count] = append(buckets[count], offers[i])
	}

	kept := make([]entity.Offer, 0, len(offers))
	for count := 0; count <= criteria.MaxConnections; count++ {
		for i := range buckets[count] {
			offer := buckets[count][i]
			if criteria.MaxConnectionHours != nil {
				longest, ok := maxLayoverHours(&offer)
				if !ok || longest > *criteria.MaxConnectionHours {
					continue
				}
			}
			kept = append(kept, offer)
		}
	}
	return kept
}

// connectionCount is segments-1 of the first itinerary. ok is false when
// the offer has no itinerary or segment data.
func connectionCount(offer *entity.Offer) (int, bool) {
	itinerary := offer.FirstItinerary()
	if itinerary == nil || len(itinerary.Segments) == 0 {
		return 0, false
	}
	return len(itinerary.Segments) - 1, true
}

// maxLayoverHours computes the longest gap between one segment's arrival
// and the next segment's departure across the first itinerary, as a
// real-valued duration in hours. An itinerary with at most one segment has
// no layovers and yields zero. ok is false when a timestamp is unparseable.
func maxLayoverHours(offer *entity.Offer) (float64, bool) {
	itinerary := offer.FirstItinerary()
	if itinerary == nil {
		return 0, false
	}

	var longest float64
	for i := 0; i+1 < len(itinerary.Segments); i++ {
		arrival, err := utils.ParseFlightTime(itinerary.Segments[i].Arrival.At)
		if err != nil {
			return 0, false
		}
		departure, err := utils.ParseFlightTime(itinerary.Segments[i+1].Departure.At)
		if err != nil {
			return 0, false
		}
		layover := departure.Sub(arrival).Hours()
		if layover > longest {
			longest = layover
		}
	}
	return longest, true
}
