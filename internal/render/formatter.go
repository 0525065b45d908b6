// Package render derives display strings from a flight search response
// and renders them as the results HTML fragment.
package render

import (
	"fmt"

	"flightmiles/internal/dates"
	"flightmiles/internal/lookup"
	"flightmiles/internal/models"
	"flightmiles/pkg/format"
)

const (
	nonstop       = "Nonstop"
	oneStop       = "1 stop"
	multipleStops = "%d stops"
)

// Formatter turns a search response into a view model without mutating
// it. Every accessor validates its own inputs and yields an empty value
// on anything malformed or missing, so a document is always renderable
// even from partial data.
type Formatter struct {
	response *models.SearchResponse
}

func New(response *models.SearchResponse) *Formatter {
	return &Formatter{response: response}
}

// Price renders the flight total as "<amount> <currency>", or nothing
// when either part is missing.
func (f *Formatter) Price(flight models.Flight) string {
	if flight.Price == nil || flight.Price.Total == nil || flight.Price.CurrencyCode == nil {
		return ""
	}
	return format.Price(*flight.Price.Total, *flight.Price.CurrencyCode)
}

func (f *Formatter) FlightID(flight models.Flight) string {
	if flight.FlightID == nil {
		return ""
	}
	return *flight.FlightID
}

// Airlines lists the marketing airline names for a leg, deduplicated by
// code in order of first appearance. Codes missing from the response's
// airline list are dropped.
func (f *Formatter) Airlines(leg models.Leg) []string {
	if len(leg.Segments) == 0 {
		return nil
	}

	var codes []string
	seen := make(map[string]bool)
	for _, segment := range leg.Segments {
		if segment.MarketingAirlineCode == nil {
			continue
		}
		code := *segment.MarketingAirlineCode
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}

	var names []string
	for _, code := range codes {
		airline, ok := lookup.FirstByKey(f.response.Airlines, func(a models.Airline) string {
			return a.AirlineCode
		}, code)
		if ok {
			names = append(names, airline.AirlineName)
		}
	}

	return names
}

// DepartureTime renders the first segment's departure as H:MM.
func (f *Formatter) DepartureTime(leg models.Leg) string {
	return f.legTime(leg, true)
}

// ArrivalTime renders the last segment's arrival as H:MM.
func (f *Formatter) ArrivalTime(leg models.Leg) string {
	return f.legTime(leg, false)
}

func (f *Formatter) legTime(leg models.Leg, departure bool) string {
	segment, ok := endpointSegment(leg, departure)
	if !ok {
		return ""
	}

	value := segment.ArrDate
	if departure {
		value = segment.DeptDate
	}
	if value == nil {
		return ""
	}

	t, ok := dates.Parse(*value)
	if !ok {
		return ""
	}
	return dates.Clock(t)
}

// DepartureAirport returns the first segment's departure airport code.
func (f *Formatter) DepartureAirport(leg models.Leg) string {
	return f.legAirport(leg, true)
}

// ArrivalAirport returns the last segment's destination airport code.
func (f *Formatter) ArrivalAirport(leg models.Leg) string {
	return f.legAirport(leg, false)
}

func (f *Formatter) legAirport(leg models.Leg, departure bool) string {
	segment, ok := endpointSegment(leg, departure)
	if !ok {
		return ""
	}

	code := segment.DestCode
	if departure {
		code = segment.DeptCode
	}
	if code == nil {
		return ""
	}
	return *code
}

func endpointSegment(leg models.Leg, departure bool) (models.Segment, bool) {
	if len(leg.Segments) == 0 {
		return models.Segment{}, false
	}
	if departure {
		return leg.Segments[0], true
	}
	return leg.Segments[len(leg.Segments)-1], true
}

// Duration renders the leg duration as "{h}h {m}m".
func (f *Formatter) Duration(leg models.Leg) string {
	if leg.LegDurationMinutes == nil {
		return ""
	}
	return format.Duration(*leg.LegDurationMinutes)
}

// Stops labels the leg by its segment count. A leg with more than two
// segments is labeled with the segment count itself, not the stop
// count; that matches the behavior results have always shown and is
// pinned by a test.
func (f *Formatter) Stops(leg models.Leg) string {
	count := len(leg.Segments)
	if count <= 1 {
		return nonstop
	}
	if count == 2 {
		return oneStop
	}
	return fmt.Sprintf(multipleStops, count)
}
