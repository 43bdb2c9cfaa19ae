package entity

import (
	"time"
)

// UnlimitedConnections disables the connection-count filter.
const UnlimitedConnections = -1

// Cabin classes accepted by the flight-offer provider.
const (
	CabinEconomy        = "ECONOMY"
	CabinPremiumEconomy = "PREMIUM_ECONOMY"
	CabinBusiness       = "BUSINESS"
	CabinFirst          = "FIRST"
)

// BestFound is the cheapest qualifying offer ever observed for a tracked
// flight. A nil BestFound on the flight means no cycle has seeded it yet.
type BestFound struct {
	Price      float64 `json:"price" bson:"price"`
	TimeWindow string  `json:"time" bson:"time"`
	Airline    string  `json:"airline" bson:"airline"`
}

// MoreCriteria holds the optional search criteria of a tracked flight.
type MoreCriteria struct {
	MaxConnections     int      `json:"maxConnections"`
	MaxConnectionHours *float64 `json:"maxConnectionHours,omitempty"`
	CabinClass         string   `json:"cabinClass,omitempty"`
	IsRoundTrip        bool     `json:"isRoundTrip"`
	ReturnDate         string   `json:"returnDate,omitempty"`
	FlexibleDaysBefore int      `json:"flexibleDaysBefore"`
	FlexibleDaysAfter  int      `json:"flexibleDaysAfter"`
	CustomName         string   `json:"customName,omitempty"`
}

// ConnectionsUnlimited reports whether the connection-count filter is off.
func (c MoreCriteria) ConnectionsUnlimited() bool {
	return c.MaxConnections < 0
}

// TrackedFlight is a user's saved route/date/criteria that is periodically
// re-priced against the provider.
type TrackedFlight struct {
	ID               int64
	UserID           int64
	DepartureAirport string
	ArrivalAirport   string
	RequestedDate    time.Time
	TargetPrice      float64
	LastChecked      *time.Time
	LastPriceFound   *float64
	NotifyOnAnyDrop  bool
	MoreCriteria     MoreCriteria
	BestFound        *BestFound
}

// WindowEnd returns the last calendar date covered by the flexible window.
func (f *TrackedFlight) WindowEnd() time.Time {
	return f.RequestedDate.AddDate(0, 0, f.MoreCriteria.FlexibleDaysAfter)
}

// IsExpired reports whether the whole search window has passed. The window
// covers the end date's full day, so a flight is expired only from the
// following midnight on.
func (f *TrackedFlight) IsExpired(now time.Time) bool {
	return !now.Before(f.WindowEnd().AddDate(0, 0, 1))
}

// Route returns the route in "TLV-JFK" form for logging.
func (f *TrackedFlight) Route() string {
	return f.DepartureAirport + "-" + f.ArrivalAirport
}
