package model

import "time"

// Sport is a row of the sport catalogue.
type Sport struct {
	SportID    int64  `json:"sport_id"`
	SportName  string `json:"sport_name"`
	Discipline string `json:"discipline"`
}

// Event is a competition within a sport, held at a venue.
type Event struct {
	EventID    int64     `json:"event_id"`
	SportID    int64     `json:"sport_id"`
	EventName  string    `json:"event_name"`
	Gender     string    `json:"event_gender"`
	VenueName  string    `json:"sport_venue"`
	EventStart time.Time `json:"event_start"`
}

// EventKind tells whether an event is contested by teams or individuals.
type EventKind string

const (
	EventIndividual EventKind = "individual"
	EventTeam       EventKind = "team"
)

// ResultRecord is one line of an event's results. Participant is the team
// name for team events and "Family, Given" for individual events.
type ResultRecord struct {
	Participant string `json:"participant"`
	CountryName string `json:"country_name"`
	Medal       Medal  `json:"medal"`
}
