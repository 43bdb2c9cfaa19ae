package entity

import (
	"strconv"
)

// Offer is one priced itinerary as returned by the flight-offer provider.
// The JSON tags follow the provider's wire format; offers are ephemeral and
// never persisted.
type Offer struct {
	Price                  OfferPrice  `json:"price"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes"`
	Itineraries            []Itinerary `json:"itineraries"`
}

// OfferPrice carries the provider's total price, which arrives as a string.
type OfferPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency,omitempty"`
}

// Itinerary is an ordered list of flight segments.
type Itinerary struct {
	Segments []Segment `json:"segments"`
}

// Segment is a single leg of an itinerary.
type Segment struct {
	Departure SegmentPoint `json:"departure"`
	Arrival   SegmentPoint `json:"arrival"`
}

// SegmentPoint is an airport plus the provider's ISO-8601 local timestamp.
type SegmentPoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

// TotalPrice parses the provider's total price string.
func (o *Offer) TotalPrice() (float64, error) {
	return strconv.ParseFloat(o.Price.Total, 64)
}

// Airline returns the first validating airline code, or empty when the
// provider omitted it.
func (o *Offer) Airline() string {
	if len(o.ValidatingAirlineCodes) == 0 {
		return ""
	}
	return o.ValidatingAirlineCodes[0]
}

// FirstItinerary returns the offer's first itinerary, or nil when the offer
// is missing itinerary data and cannot be classified.
func (o *Offer) FirstItinerary() *Itinerary {
	if len(o.Itineraries) == 0 {
		return nil
	}
	return &o.Itineraries[0]
}
