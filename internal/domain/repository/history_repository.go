package repository

import (
	"context"

	"github.com/yokuflik/price-tracker/internal/domain/entity"
)

// HistoryRepository archives tracked-flight snapshots.
type HistoryRepository interface {
	// ArchiveExpired records the final state of a flight whose search
	// window has passed, before it is removed from active tracking.
	ArchiveExpired(ctx context.Context, flight *entity.TrackedFlight) error

	// ArchiveFoundBetter records a flight at the moment a qualifying
	// price was found.
	ArchiveFoundBetter(ctx context.Context, flight *entity.TrackedFlight) error
}
