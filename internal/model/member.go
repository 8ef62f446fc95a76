package model

// Role classifies a member. A member with an athlete row is an athlete,
// else one with an official row is an official, everyone else is staff.
type Role string

const (
	RoleAthlete  Role = "athlete"
	RoleOfficial Role = "official"
	RoleStaff    Role = "staff"
)

// RoleOf derives the member role from the presence of subtype rows.
func RoleOf(isAthlete, isOfficial bool) Role {
	switch {
	case isAthlete:
		return RoleAthlete
	case isOfficial:
		return RoleOfficial
	default:
		return RoleStaff
	}
}

// DisplayName renders a person as "Family, Given".
func DisplayName(family, given string) string {
	return family + ", " + given
}

// Member is the identity record returned by a successful login and used as
// the base of a profile.
//
// Fields:
//
//	MemberID    – member.member_id
//	Title       – member.title (Mr, Ms, Dr ...)
//	FirstName   – member.given_names
//	FamilyName  – member.family_name
//	CountryName – country.country_name of the member's country
//	Residence   – place.place_name of the member's accommodation
//	MemberType  – derived role
type Member struct {
	MemberID    string `json:"member_id"`
	Title       string `json:"title"`
	FirstName   string `json:"first_name"`
	FamilyName  string `json:"family_name"`
	CountryName string `json:"country_name"`
	Residence   string `json:"residence"`
	MemberType  Role   `json:"member_type"`
}

// Profile extends Member with booking and medal counts. The medal fields are
// set only for athletes.
type Profile struct {
	Member
	NumBookings int  `json:"num_bookings"`
	NumGold     *int `json:"num_gold,omitempty"`
	NumSilver   *int `json:"num_silver,omitempty"`
	NumBronze   *int `json:"num_bronze,omitempty"`
}

// SetMedals copies a tally into the optional medal fields.
func (p *Profile) SetMedals(t MedalTally) {
	gold, silver, bronze := t.Gold, t.Silver, t.Bronze
	p.NumGold, p.NumSilver, p.NumBronze = &gold, &silver, &bronze
}
