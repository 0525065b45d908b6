package models

// AwardMilesCode identifies the award-miles metric in the loyalty API.
const AwardMilesCode = 1

// MileType is one mileage metric a program tracks (award miles, status
// miles and so on).
type MileType struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// Program is one frequent flyer program from the loyalty API catalog.
type Program struct {
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	MileTypes []MileType `json:"mileTypes"`
}

// MileageSummary is the flat per-flight mileage estimate shown next to a
// flight result: the program name, the formatted award miles amount and
// the program-specific name for that kind of miles.
type MileageSummary struct {
	FlightID        string `json:"flightId"`
	Program         string `json:"program"`
	AwardMilesValue string `json:"awardMilesValue"`
	AwardMilesName  string `json:"awardMilesName"`
}
