package model

import "time"

// BookingRecord describes one seat reservation as returned by reserveSeat
// and by the booking details lookup. The two name fields hold display names
// ("Family, Given"), not member ids.
type BookingRecord struct {
	BookedByName  string    `json:"bookedby_name"`
	BookedForName string    `json:"bookedfor_name"`
	WhenBooked    time.Time `json:"when_booked"`
	JourneyID     int64     `json:"journey_id"`
	VehicleCode   string    `json:"vehicle"`
	OriginName    string    `json:"origin_name"`
	DestName      string    `json:"dest_name"`
	WhenDeparts   time.Time `json:"when_departs"`
	WhenArrives   time.Time `json:"when_arrives"`
}

// BookingSummary is one line of a member's booking history.
type BookingSummary struct {
	JourneyID   int64     `json:"journey_id"`
	VehicleCode string    `json:"vehicle_code"`
	OriginName  string    `json:"origin_name"`
	DestName    string    `json:"dest_name"`
	WhenDeparts time.Time `json:"when_departs"`
	WhenArrives time.Time `json:"when_arrives"`
	WhenBooked  time.Time `json:"when_booked"`
}
