package model

import "time"

// Journey is a scheduled vehicle trip between two places. AvailableSeats is
// capacity minus the seats already booked.
type Journey struct {
	JourneyID      int64     `json:"journey_id"`
	VehicleCode    string    `json:"vehicle_code"`
	OriginName     string    `json:"origin_name"`
	DestName       string    `json:"dest_name"`
	WhenDeparts    time.Time `json:"when_departs"`
	WhenArrives    time.Time `json:"when_arrives"`
	AvailableSeats int       `json:"available_seats"`
}

// JourneyDetails is the single-journey view with raw booked and capacity
// counters.
type JourneyDetails struct {
	JourneyID   int64     `json:"journey_id"`
	VehicleCode string    `json:"vehicle_code"`
	OriginName  string    `json:"origin_name"`
	DestName    string    `json:"dest_name"`
	WhenDeparts time.Time `json:"when_departs"`
	WhenArrives time.Time `json:"when_arrives"`
	Capacity    int       `json:"capacity"`
	NBooked     int       `json:"nbooked"`
}

// Available returns the number of unclaimed seats, never below zero.
func (d JourneyDetails) Available() int {
	if d.NBooked >= d.Capacity {
		return 0
	}
	return d.Capacity - d.NBooked
}
