package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yokuflik/price-tracker/internal/domain/entity"
	"github.com/yokuflik/price-tracker/internal/domain/repository"
	"github.com/yokuflik/price-tracker/pkg/logger"

	"gorm.io/gorm"
)

// GormFlightRepository implements the FlightRepository interface
type GormFlightRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormFlightRepository creates a new GORM tracked-flight repository
func NewGormFlightRepository(db *gorm.DB, log logger.Logger) repository.FlightRepository {
	return &GormFlightRepository{
		db:     db,
		logger: log,
	}
}

// TrackedFlights GORM model for database mapping. The optional criteria
// and best-found state are stored as JSON documents, matching how the CRUD
// side writes them.
type TrackedFlights struct {
	ID               int64      `gorm:"primaryKey;column:flight_id"`
	UserID           int64      `gorm:"column:user_id"`
	DepartureAirport string     `gorm:"column:departure_airport"`
	ArrivalAirport   string     `gorm:"column:arrival_airport"`
	RequestedDate    time.Time  `gorm:"column:requested_date;type:date"`
	TargetPrice      float64    `gorm:"column:target_price"`
	LastChecked      *time.Time `gorm:"column:last_checked"`
	LastPriceFound   *float64   `gorm:"column:last_price_found"`
	NotifyOnAnyDrop  bool       `gorm:"column:notify_on_any_drop"`
	MoreCriteria     string     `gorm:"column:more_criteria;type:jsonb"`
	BestFound        *string    `gorm:"column:best_found;type:jsonb"`
}

// TableName overrides the default table name
func (TrackedFlights) TableName() string {
	return "tracked_flights"
}

// Users GORM model, read-only here for email lookups
type Users struct {
	ID    int64  `gorm:"primaryKey;column:id"`
	Email string `gorm:"column:email"`
}

// TableName overrides the default table name
func (Users) TableName() string {
	return "users"
}

// ListTrackedFlights returns every actively tracked flight. Rows with
// malformed JSON state are skipped with a warning instead of failing the
// whole batch.
func (r *GormFlightRepository) ListTrackedFlights(ctx context.Context) ([]*entity.TrackedFlight, error) {
	var rows []TrackedFlights
	result := r.db.WithContext(ctx).Order("flight_id").Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("list tracked flights: %w", result.Error)
	}

	flights := make([]*entity.TrackedFlight, 0, len(rows))
	for i := range rows {
		flight, err := r.toEntity(&rows[i])
		if err != nil {
			r.logger.Warn("Skipping tracked flight with malformed state",
				"flightId", rows[i].ID, "error", err)
			continue
		}
		flights = append(flights, flight)
	}
	return flights, nil
}

// UpdateBestPrice writes back the reconciliation state of one flight.
func (r *GormFlightRepository) UpdateBestPrice(ctx context.Context, flightID int64, lastChecked time.Time, lastPriceFound *float64, bestFound *entity.BestFound) error {
	updates := map[string]interface{}{
		"last_checked":     lastChecked,
		"last_price_found": lastPriceFound,
	}
	if bestFound != nil {
		data, err := json.Marshal(bestFound)
		if err != nil {
			return fmt.Errorf("marshal best found: %w", err)
		}
		updates["best_found"] = string(data)
	}

	result := r.db.WithContext(ctx).
		Model(&TrackedFlights{}).
		Where("flight_id = ?", flightID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update flight %d: %w", flightID, result.Error)
	}
	return nil
}

// DeleteTrackedFlight removes a flight from active tracking.
func (r *GormFlightRepository) DeleteTrackedFlight(ctx context.Context, flightID int64) error {
	result := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		Delete(&TrackedFlights{})
	if result.Error != nil {
		return fmt.Errorf("delete flight %d: %w", flightID, result.Error)
	}
	return nil
}

// GetUserEmail resolves the owning user's email address.
func (r *GormFlightRepository) GetUserEmail(ctx context.Context, userID int64) (string, error) {
	var user Users
	result := r.db.WithContext(ctx).Where("id = ?", userID).First(&user)
	if result.Error != nil {
		return "", fmt.Errorf("get user %d: %w", userID, result.Error)
	}
	return user.Email, nil
}

// toEntity converts a GORM model to a domain entity
func (r *GormFlightRepository) toEntity(row *TrackedFlights) (*entity.TrackedFlight, error) {
	flight := &entity.TrackedFlight{
		ID:               row.ID,
		UserID:           row.UserID,
		DepartureAirport: row.DepartureAirport,
		ArrivalAirport:   row.ArrivalAirport,
		RequestedDate:    row.RequestedDate,
		TargetPrice:      row.TargetPrice,
		LastChecked:      row.LastChecked,
		LastPriceFound:   row.LastPriceFound,
		NotifyOnAnyDrop:  row.NotifyOnAnyDrop,
	}

	if row.MoreCriteria != "" {
		if err := json.Unmarshal([]byte(row.MoreCriteria), &flight.MoreCriteria); err != nil {
			return nil, fmt.Errorf("unmarshal more criteria: %w", err)
		}
	}
	if row.BestFound != nil && *row.BestFound != "" {
		var best entity.BestFound
		if err := json.Unmarshal([]byte(*row.BestFound), &best); err != nil {
			return nil, fmt.Errorf("unmarshal best found: %w", err)
		}
		flight.BestFound = &best
	}
	return flight, nil
}
