package loyalty

import "flightmiles/internal/models"

// Wire shapes of the calculate endpoint. Optional fields stay pointers
// so absent upstream data passes through as null instead of a zero
// value the API would misread.

type calculateRequest struct {
	Flights []calcFlight `json:"flights"`
}

type calcFlight struct {
	ID    *string   `json:"id"`
	Price calcPrice `json:"price"`
	Legs  []calcLeg `json:"legs"`
}

type calcPrice struct {
	Currency          *string  `json:"currency"`
	Total             *float64 `json:"total"`
	BaseFare          *float64 `json:"baseFare"`
	Taxes             *float64 `json:"taxes"`
	AirlineSurcharges *float64 `json:"airlineSurcharges"`
}

type calcLeg struct {
	ID       *string       `json:"id"`
	Segments []calcSegment `json:"segments"`
}

type calcSegment struct {
	ID               *string  `json:"id"`
	MarketingAirline *string  `json:"marketingAirline"`
	OperatingAirline *string  `json:"operatingAirline"`
	DepartureAirport *string  `json:"departureAirport"`
	ArrivalAirport   *string  `json:"arrivalAirport"`
	DepartureDate    *string  `json:"departureDate"`
	BookingClass     *string  `json:"bookingClass"`
	FlightNumber     *string  `json:"flightNumber"`
	FareBasisCode    *string  `json:"fareBasisCode"`
	Distance         *float64 `json:"distance"`
}

type calculateResponse struct {
	Flights []calcFlightResult `json:"flights"`
}

type calcFlightResult struct {
	ID       string        `json:"id"`
	Programs []calcProgram `json:"programs"`
}

type calcProgram struct {
	Code        string           `json:"code"`
	StatusTiers []calcStatusTier `json:"statusTiers"`
}

type calcStatusTier struct {
	MileageEarnings []calcEarning `json:"mileageEarnings"`
}

type calcEarning struct {
	Code  int     `json:"code"`
	Value float64 `json:"value"`
}

// buildCalculateRequest maps search-result flights into the calculate
// request body, carrying each leg's segments with airline, airport, date
// and fare data.
func buildCalculateRequest(flights []models.Flight) calculateRequest {
	request := calculateRequest{Flights: make([]calcFlight, 0, len(flights))}

	for _, flight := range flights {
		body := calcFlight{
			ID:   flight.FlightID,
			Legs: make([]calcLeg, 0, len(flight.Legs)),
		}

		if flight.Price != nil {
			body.Price = calcPrice{
				Currency:          flight.Price.CurrencyCode,
				Total:             flight.Price.Total,
				BaseFare:          flight.Price.Fare,
				Taxes:             flight.Price.Taxes,
				AirlineSurcharges: flight.Price.Surcharges,
			}
		}

		for _, leg := range flight.Legs {
			bodyLeg := calcLeg{
				ID:       leg.LegID,
				Segments: make([]calcSegment, 0, len(leg.Segments)),
			}

			for _, segment := range leg.Segments {
				bodyLeg.Segments = append(bodyLeg.Segments, calcSegment{
					ID:               segment.SegmentID,
					MarketingAirline: segment.MarketingAirlineCode,
					OperatingAirline: segment.OperatingAirlineCode,
					DepartureAirport: segment.DeptCode,
					ArrivalAirport:   segment.DestCode,
					DepartureDate:    segment.DeptDate,
					BookingClass:     segment.FareCode,
					FlightNumber:     segment.FlightNumber,
					FareBasisCode:    segment.FareBasisCode,
					Distance:         segment.Distance,
				})
			}

			body.Legs = append(body.Legs, bodyLeg)
		}

		request.Flights = append(request.Flights, body)
	}

	return request
}
