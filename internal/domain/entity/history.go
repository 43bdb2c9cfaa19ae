package entity

import (
	"time"
)

// Archive reasons recorded on history documents.
const (
	ArchiveReasonExpired     = "expired"
	ArchiveReasonFoundBetter = "found_better"
)

// FlightHistoryRecord is the archived snapshot of a tracked flight, written
// when the flight expires or when a qualifying price is found.
type FlightHistoryRecord struct {
	ID               string     `bson:"_id,omitempty"`
	FlightID         int64      `bson:"flightId"`
	UserID           int64      `bson:"userId"`
	DepartureAirport string     `bson:"departureAirport"`
	ArrivalAirport   string     `bson:"arrivalAirport"`
	RequestedDate    time.Time  `bson:"requestedDate"`
	TargetPrice      float64    `bson:"targetPrice"`
	LastPriceFound   *float64   `bson:"lastPriceFound,omitempty"`
	BestFound        *BestFound `bson:"bestFound,omitempty"`
	Reason           string     `bson:"reason"`
	ArchivedAt       time.Time  `bson:"archivedAt"`
}

// NewHistoryRecord snapshots a tracked flight for archival.
func NewHistoryRecord(flight *TrackedFlight, reason string, archivedAt time.Time) *FlightHistoryRecord {
	return &FlightHistoryRecord{
		FlightID:         flight.ID,
		UserID:           flight.UserID,
		DepartureAirport: flight.DepartureAirport,
		ArrivalAirport:   flight.ArrivalAirport,
		RequestedDate:    flight.RequestedDate,
		TargetPrice:      flight.TargetPrice,
		LastPriceFound:   flight.LastPriceFound,
		BestFound:        flight.BestFound,
		Reason:           reason,
		ArchivedAt:       archivedAt,
	}
}
