package models

// Airline maps an IATA code to a display name in search responses.
type Airline struct {
	AirlineCode string `json:"airlineCode"`
	AirlineName string `json:"airlineName"`
}

// Segment is one non-stop flight between two airports. The upstream API
// omits fields freely, so optional fields decode into pointers and
// consumers treat nil as absent.
type Segment struct {
	SegmentID            *string  `json:"segmentId,omitempty"`
	MarketingAirlineCode *string  `json:"marketingAirlineCode,omitempty"`
	OperatingAirlineCode *string  `json:"operatingAirlineCode,omitempty"`
	DeptCode             *string  `json:"deptCode,omitempty"`
	DestCode             *string  `json:"destCode,omitempty"`
	DeptDate             *string  `json:"deptDate,omitempty"`
	ArrDate              *string  `json:"arrDate,omitempty"`
	FareCode             *string  `json:"fareCode,omitempty"`
	FlightNumber         *string  `json:"flightNumber,omitempty"`
	FareBasisCode        *string  `json:"fareBasisCode,omitempty"`
	Distance             *float64 `json:"distance,omitempty"`
}

// Leg is one directional portion of an itinerary. Segments, if present,
// are ordered departure to arrival: the first segment defines leg
// departure, the last one leg arrival.
type Leg struct {
	LegID              *string   `json:"legId,omitempty"`
	LegDurationMinutes *float64  `json:"legDurationMinutes,omitempty"`
	Segments           []Segment `json:"segments,omitempty"`
}

type Price struct {
	Total        *float64 `json:"total,omitempty"`
	CurrencyCode *string  `json:"currencyCode,omitempty"`
	Fare         *float64 `json:"fare,omitempty"`
	Taxes        *float64 `json:"taxes,omitempty"`
	Surcharges   *float64 `json:"surcharges,omitempty"`
}

type Flight struct {
	FlightID *string `json:"flightId,omitempty"`
	Price    *Price  `json:"price,omitempty"`
	Legs     []Leg   `json:"legs,omitempty"`

	// FrequentFlyer is attached after mileage enrichment; at most one
	// summary per flight.
	FrequentFlyer *MileageSummary `json:"frequentFlyer,omitempty"`
}

// SearchResponse is the payload of a single-search lookup against the
// upstream search API.
type SearchResponse struct {
	Airlines []Airline `json:"airlines"`
	Flights  []Flight  `json:"flights"`
}

// SearchLeg is one leg of a search definition in the searches collection.
type SearchLeg struct {
	DeptCode string `json:"deptCode"`
	DestCode string `json:"destCode"`
	DeptDate string `json:"deptDate"`
}

// SearchDefinition is one entry of the upstream searches collection.
type SearchDefinition struct {
	ID   int64       `json:"id"`
	Legs []SearchLeg `json:"legs"`
}
