package usecase

import (
	"context"
	"fmt"

	"github.com/yokuflik/price-tracker/internal/domain/entity"
	"github.com/yokuflik/price-tracker/internal/infrastructure/amadeus"
	"github.com/yokuflik/price-tracker/pkg/logger"
)

// FlightSearcher issues one single-day provider query.
type FlightSearcher interface {
	SearchDay(ctx context.Context, q amadeus.DayQuery) ([]entity.Offer, error)
}

// SearchExpander turns a tracked flight, possibly with a flexible date
// window, into one provider query per day and merges the raw results.
type SearchExpander struct {
	client FlightSearcher
	logger logger.Logger
}

// NewSearchExpander creates a search expander.
func NewSearchExpander(client FlightSearcher, log logger.Logger) *SearchExpander {
	return &SearchExpander{
		client: client,
		logger: log,
	}
}

// Search issues flexible_days_before + 1 + flexible_days_after consecutive
// per-day queries starting at requested_date - flexible_days_before, and
// concatenates the raw offers without cross-day de-duplication. A failure
// on any single day aborts the whole search: a partial multi-day result
// would silently understate the best available price. The flight's stored
// requested date is never mutated.
func (s *SearchExpander) Search(ctx context.Context, flight *entity.TrackedFlight) ([]entity.Offer, error) {
	criteria := flight.MoreCriteria
	days := criteria.FlexibleDaysBefore + 1 + criteria.FlexibleDaysAfter
	start := flight.RequestedDate.AddDate(0, 0, -criteria.FlexibleDaysBefore)

	var merged []entity.Offer
	for i := 0; i < days; i++ {
		query := amadeus.DayQuery{
			Origin:        flight.DepartureAirport,
			Destination:   flight.ArrivalAirport,
			DepartureDate: start.AddDate(0, 0, i).Format(amadeus.DateFormat),
			TravelClass:   criteria.CabinClass,
		}
		if criteria.IsRoundTrip && criteria.ReturnDate != "" {
			query.ReturnDate = criteria.ReturnDate
		}

		offers, err := s.client.SearchDay(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("search %s on %s: %w", flight.Route(), query.DepartureDate, err)
		}
		merged = append(merged, offers...)
	}

	s.logger.Debug("Search window expanded",
		"route", flight.Route(),
		"days", days,
		"offers", len(merged))

	return merged, nil
}
