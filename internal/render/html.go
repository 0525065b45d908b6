package render

import (
	_ "embed"
	"html/template"
	"strings"

	"flightmiles/internal/models"
)

//go:embed results.tmpl
var resultsTmpl string

var resultsTemplate = template.Must(template.New("results").Parse(resultsTmpl))

// FlightView is one flight prepared for the results template.
type FlightView struct {
	ID            string
	Price         string
	FrequentFlyer *models.MileageSummary
	Legs          []LegView
}

// LegView is one leg prepared for the results template.
type LegView struct {
	Airlines         []string
	DepartureTime    string
	DepartureAirport string
	ArrivalTime      string
	ArrivalAirport   string
	Duration         string
	Stops            string
}

// View derives the display model for every flight in the response.
func (f *Formatter) View() []FlightView {
	views := make([]FlightView, 0, len(f.response.Flights))

	for _, flight := range f.response.Flights {
		view := FlightView{
			ID:            f.FlightID(flight),
			Price:         f.Price(flight),
			FrequentFlyer: flight.FrequentFlyer,
			Legs:          make([]LegView, 0, len(flight.Legs)),
		}

		for _, leg := range flight.Legs {
			view.Legs = append(view.Legs, LegView{
				Airlines:         f.Airlines(leg),
				DepartureTime:    f.DepartureTime(leg),
				DepartureAirport: f.DepartureAirport(leg),
				ArrivalTime:      f.ArrivalTime(leg),
				ArrivalAirport:   f.ArrivalAirport(leg),
				Duration:         f.Duration(leg),
				Stops:            f.Stops(leg),
			})
		}

		views = append(views, view)
	}

	return views
}

// HTML renders the results fragment. Template values are escaped by
// html/template.
func (f *Formatter) HTML() (string, error) {
	var buf strings.Builder
	if err := resultsTemplate.Execute(&buf, f.View()); err != nil {
		return "", err
	}
	return buf.String(), nil
}
