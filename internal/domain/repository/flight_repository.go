package repository

import (
	"context"
	"time"

	"github.com/yokuflik/price-tracker/internal/domain/entity"
)

// FlightRepository defines the storage operations used by the reconciler.
// Tracked flights are created and edited elsewhere; this core only lists
// them and writes back the price-reconciliation state.
type FlightRepository interface {
	ListTrackedFlights(ctx context.Context) ([]*entity.TrackedFlight, error)
	UpdateBestPrice(ctx context.Context, flightID int64, lastChecked time.Time, lastPriceFound *float64, bestFound *entity.BestFound) error
	DeleteTrackedFlight(ctx context.Context, flightID int64) error
	GetUserEmail(ctx context.Context, userID int64) (string, error)
}
