package templates

import (
	"fmt"

	"github.com/yokuflik/price-tracker/internal/domain/entity"
)

const priceAlertBody = `Hi,

We found a flight at the price you wanted!

Route: %s -> %s
%s
Price: %.2f (your target was %.2f)
Airline: %s

Happy travels,
The price tracker`

// PriceAlert builds the subject and body of a "found better flight" email.
func PriceAlert(flight *entity.TrackedFlight) (subject, body string) {
	name := flight.MoreCriteria.CustomName
	if name == "" {
		name = flight.Route()
	}
	subject = fmt.Sprintf("Price alert: %s at %.2f", name, flight.BestFound.Price)
	body = fmt.Sprintf(priceAlertBody,
		flight.DepartureAirport,
		flight.ArrivalAirport,
		flight.BestFound.TimeWindow,
		flight.BestFound.Price,
		flight.TargetPrice,
		flight.BestFound.Airline,
	)
	return subject, body
}
