package handler

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"flightmiles/internal/dates"
	"flightmiles/internal/identity"
	"flightmiles/internal/lookup"
	"flightmiles/internal/loyalty"
	"flightmiles/internal/models"
	"flightmiles/internal/render"
	"flightmiles/internal/upstream"
)

// Fixed user-facing messages. Failures always come back as HTTP 200
// with success=false and one of these.
const (
	defaultFailureMessage   = "Unknown processing error."
	searchesFailureMessage  = "Could not load collection of flight searches."
	searchIDFailureMessage  = "Specified search ID is invalid or unspecified."
	resultsFailureMessage   = "Could not load flight search results."
	noFlightsFailureMessage = "There are no flights for this search. Please try a different one."
)

type SearchHandler struct {
	search   *upstream.SearchClient
	loyalty  *loyalty.Client
	identity identity.Provider
}

// NewSearchHandler builds the browser-facing handler. loyaltyClient and
// identityProvider may be nil, in which case results render without
// mileage enrichment.
func NewSearchHandler(search *upstream.SearchClient, loyaltyClient *loyalty.Client, identityProvider identity.Provider) *SearchHandler {
	return &SearchHandler{
		search:   search,
		loyalty:  loyaltyClient,
		identity: identityProvider,
	}
}

// ListSearches returns the available sample searches as {id, name}
// pairs with human-readable itinerary names.
func (h *SearchHandler) ListSearches(c echo.Context) error {
	searches, err := h.search.Searches(c.Request().Context())
	if err != nil {
		log.Printf("list searches: %v", err)
		return failure(c, searchesFailureMessage)
	}
	if len(searches) == 0 {
		return failure(c, searchesFailureMessage)
	}

	options := make([]models.SearchOption, 0, len(searches))
	for _, search := range searches {
		if len(search.Legs) == 0 {
			continue
		}
		options = append(options, models.SearchOption{
			ID:   search.ID,
			Name: searchName(search.Legs),
		})
	}

	return success(c, options)
}

// searchName summarizes an itinerary: one way, round trip when the
// second leg returns to the first leg's origin, multi-city otherwise.
func searchName(legs []models.SearchLeg) string {
	switch {
	case len(legs) == 1:
		return "One way " + legs[0].DeptCode + " → " + legs[0].DestCode +
			" on " + dates.DayMonth(legs[0].DeptDate)

	case len(legs) == 2 && legs[0].DeptCode == legs[1].DestCode:
		return "Round trip " + legs[0].DeptCode + " ↔ " + legs[0].DestCode +
			" on " + dates.DayMonth(legs[0].DeptDate) +
			", return " + dates.DayMonth(legs[1].DeptDate)

	default:
		var name strings.Builder
		name.WriteString("Multi-city " + legs[0].DeptCode)

		var when strings.Builder
		when.WriteString(" on ")

		for i, leg := range legs {
			name.WriteString(" → " + leg.DestCode)
			when.WriteString(dates.DayMonth(leg.DeptDate))
			if i == len(legs)-2 {
				when.WriteString(" and ")
			} else if i < len(legs)-2 {
				when.WriteString(", ")
			}
		}

		return name.String() + when.String()
	}
}

// FlightResults fetches one search's flights, enriches them with award
// miles when the loyalty API cooperates and returns the rendered HTML.
func (h *SearchHandler) FlightResults(c echo.Context) error {
	id := c.QueryParam("id")
	if !isNumeric(id) {
		return failure(c, searchIDFailureMessage)
	}

	response, err := h.search.Results(c.Request().Context(), id)
	if err != nil {
		log.Printf("flight results %s: %v", id, err)
		return failure(c, resultsFailureMessage)
	}
	if response.Flights == nil {
		return failure(c, resultsFailureMessage)
	}
	if len(response.Flights) == 0 {
		return failure(c, noFlightsFailureMessage)
	}

	h.enrich(c, response)

	html, err := render.New(response).HTML()
	if err != nil {
		log.Printf("render results %s: %v", id, err)
		return failure(c, resultsFailureMessage)
	}

	return success(c, html)
}

// enrich attaches mileage summaries to matching flights. Enrichment is
// best effort: any failure degrades to an un-enriched render.
func (h *SearchHandler) enrich(c echo.Context, response *models.SearchResponse) {
	if h.loyalty == nil || h.identity == nil {
		return
	}

	travelerID, err := h.identity.TravelerID(c)
	if err != nil {
		log.Printf("resolve traveler: %v", err)
		return
	}

	ctx := c.Request().Context()
	summaries, err := h.loyalty.Calculate(ctx, identity.SessionID(c), travelerID, response.Flights)
	if err != nil {
		log.Printf("calculate miles: %v", err)
		return
	}

	for i, flight := range response.Flights {
		if flight.FlightID == nil {
			continue
		}
		summary, ok := lookup.FirstByKey(summaries, func(s models.MileageSummary) string {
			return s.FlightID
		}, *flight.FlightID)
		if ok {
			response.Flights[i].FrequentFlyer = &summary
		}
	}
}

// isNumeric accepts plain decimal numbers only; ParseFloat alone would
// also let "Inf", "NaN" and hex floats through to the upstream query.
func isNumeric(value string) bool {
	if value == "" || strings.ContainsAny(value, "xX") {
		return false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false
	}
	return !math.IsInf(parsed, 0) && !math.IsNaN(parsed)
}

func success(c echo.Context, content any) error {
	return c.JSON(http.StatusOK, models.SuccessResponse(content))
}

func failure(c echo.Context, message string) error {
	if message == "" {
		message = defaultFailureMessage
	}
	return c.JSON(http.StatusOK, models.FailureResponse(message))
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
