package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightmiles/internal/models"
)

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }

func testResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Airlines: []models.Airline{
			{AirlineCode: "AA", AirlineName: "American Airlines"},
			{AirlineCode: "BA", AirlineName: "British Airways"},
		},
	}
}

func TestPrice(t *testing.T) {
	f := New(testResponse())

	flight := models.Flight{Price: &models.Price{Total: num(623.4), CurrencyCode: str("USD")}}
	assert.Equal(t, "623.40 USD", f.Price(flight))

	flight = models.Flight{Price: &models.Price{Total: num(1234.5), CurrencyCode: str("USD")}}
	assert.Equal(t, "1,234.50 USD", f.Price(flight))
}

func TestPrice_MissingParts(t *testing.T) {
	f := New(testResponse())

	assert.Empty(t, f.Price(models.Flight{}))
	assert.Empty(t, f.Price(models.Flight{Price: &models.Price{Total: num(10)}}))
	assert.Empty(t, f.Price(models.Flight{Price: &models.Price{CurrencyCode: str("USD")}}))
}

func TestFlightID(t *testing.T) {
	f := New(testResponse())

	assert.Equal(t, "f1", f.FlightID(models.Flight{FlightID: str("f1")}))
	assert.Empty(t, f.FlightID(models.Flight{}))
}

func TestAirlines_DeduplicatedInEncounterOrder(t *testing.T) {
	f := New(testResponse())

	leg := models.Leg{Segments: []models.Segment{
		{MarketingAirlineCode: str("AA")},
		{MarketingAirlineCode: str("BA")},
		{MarketingAirlineCode: str("AA")},
	}}

	assert.Equal(t, []string{"American Airlines", "British Airways"}, f.Airlines(leg))
}

func TestAirlines_UnresolvedCodesDropped(t *testing.T) {
	f := New(testResponse())

	leg := models.Leg{Segments: []models.Segment{
		{MarketingAirlineCode: str("ZZ")},
		{MarketingAirlineCode: str("BA")},
		{},
	}}

	assert.Equal(t, []string{"British Airways"}, f.Airlines(leg))
}

func TestAirlines_NoSegments(t *testing.T) {
	f := New(testResponse())
	assert.Nil(t, f.Airlines(models.Leg{}))
}

func TestLegTimes_FromFirstAndLastSegment(t *testing.T) {
	f := New(testResponse())

	leg := models.Leg{Segments: []models.Segment{
		{DeptDate: str("2024-05-01T09:05:00"), ArrDate: str("2024-05-01T11:00:00")},
		{DeptDate: str("2024-05-01T12:00:00"), ArrDate: str("2024-05-01T14:30:00")},
	}}

	assert.Equal(t, "9:05", f.DepartureTime(leg))
	assert.Equal(t, "14:30", f.ArrivalTime(leg))
}

func TestLegTimes_MissingOrMalformed(t *testing.T) {
	f := New(testResponse())

	assert.Empty(t, f.DepartureTime(models.Leg{}))
	assert.Empty(t, f.ArrivalTime(models.Leg{Segments: []models.Segment{{}}}))
	assert.Empty(t, f.DepartureTime(models.Leg{Segments: []models.Segment{{DeptDate: str("bogus")}}}))
}

func TestLegAirports(t *testing.T) {
	f := New(testResponse())

	leg := models.Leg{Segments: []models.Segment{
		{DeptCode: str("LON"), DestCode: str("FRA")},
		{DeptCode: str("FRA"), DestCode: str("NYC")},
	}}

	assert.Equal(t, "LON", f.DepartureAirport(leg))
	assert.Equal(t, "NYC", f.ArrivalAirport(leg))

	assert.Empty(t, f.DepartureAirport(models.Leg{}))
	assert.Empty(t, f.ArrivalAirport(models.Leg{Segments: []models.Segment{{}}}))
}

func TestDuration(t *testing.T) {
	f := New(testResponse())

	assert.Equal(t, "2h 5m", f.Duration(models.Leg{LegDurationMinutes: num(125)}))
	assert.Empty(t, f.Duration(models.Leg{}))
}

// A leg with n > 2 segments is labeled "{n} stops" with the segment
// count itself, not n-1. This matches what results have always shown;
// the test pins the behavior.
func TestStops(t *testing.T) {
	f := New(testResponse())

	segs := func(n int) []models.Segment { return make([]models.Segment, n) }

	assert.Equal(t, "Nonstop", f.Stops(models.Leg{}))
	assert.Equal(t, "Nonstop", f.Stops(models.Leg{Segments: segs(1)}))
	assert.Equal(t, "1 stop", f.Stops(models.Leg{Segments: segs(2)}))
	assert.Equal(t, "3 stops", f.Stops(models.Leg{Segments: segs(3)}))
	assert.Equal(t, "4 stops", f.Stops(models.Leg{Segments: segs(4)}))
}

func TestHTML_RendersFlightsAndEscapes(t *testing.T) {
	response := testResponse()
	response.Flights = []models.Flight{
		{
			FlightID: str(`f1"><script>`),
			Price:    &models.Price{Total: num(623.4), CurrencyCode: str("USD")},
			Legs: []models.Leg{{
				LegDurationMinutes: num(125),
				Segments: []models.Segment{{
					MarketingAirlineCode: str("AA"),
					DeptCode:             str("LON"),
					DestCode:             str("NYC"),
					DeptDate:             str("2024-05-01T09:05:00"),
					ArrDate:              str("2024-05-01T17:20:00"),
				}},
			}},
			FrequentFlyer: &models.MileageSummary{
				FlightID:        "f1",
				Program:         "AAdvantage",
				AwardMilesValue: "1200",
				AwardMilesName:  "Award miles",
			},
		},
		{
			FlightID: str("f2"),
		},
	}

	html, err := New(response).HTML()
	require.NoError(t, err)

	assert.Contains(t, html, `class="flight-results"`)
	assert.Contains(t, html, "623.40 USD")
	assert.Contains(t, html, "American Airlines")
	assert.Contains(t, html, "9:05")
	assert.Contains(t, html, "17:20")
	assert.Contains(t, html, "2h 5m")
	assert.Contains(t, html, "Nonstop")
	assert.Contains(t, html, "AAdvantage")
	assert.Contains(t, html, "Award miles")

	// flight without a mileage summary
	assert.Contains(t, html, "No earnings :(")

	// flight id is escaped, never raw
	assert.NotContains(t, html, `id="f1"><script>`)
}

func TestView_DoesNotMutateResponse(t *testing.T) {
	response := testResponse()
	response.Flights = []models.Flight{{FlightID: str("f1")}}

	_ = New(response).View()

	assert.Nil(t, response.Flights[0].FrequentFlyer)
	assert.Equal(t, "f1", *response.Flights[0].FlightID)
}
