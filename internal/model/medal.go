package model

import (
	"encoding/json"
	"fmt"
)

// Medal is the closed set of result outcomes. The zero value means no medal.
type Medal uint8

const (
	MedalNone Medal = iota
	MedalGold
	MedalSilver
	MedalBronze
)

// ParseMedal maps a stored medal code to a Medal. A NULL column (nil) is
// MedalNone; any code other than G, S or B is a data integrity error.
func ParseMedal(code *string) (Medal, error) {
	if code == nil {
		return MedalNone, nil
	}
	switch *code {
	case "G":
		return MedalGold, nil
	case "S":
		return MedalSilver, nil
	case "B":
		return MedalBronze, nil
	}
	return MedalNone, Wrap("parseMedal", ErrDataIntegrity, fmt.Errorf("unknown medal code %q", *code))
}

// Code is the single letter stored in the medal columns.
func (m Medal) Code() string {
	switch m {
	case MedalGold:
		return "G"
	case MedalSilver:
		return "S"
	case MedalBronze:
		return "B"
	}
	return ""
}

func (m Medal) String() string {
	switch m {
	case MedalGold:
		return "Gold"
	case MedalSilver:
		return "Silver"
	case MedalBronze:
		return "Bronze"
	}
	return ""
}

// MarshalJSON renders the display label, or null when no medal was won.
func (m Medal) MarshalJSON() ([]byte, error) {
	if m == MedalNone {
		return []byte("null"), nil
	}
	return json.Marshal(m.String())
}

// MedalTally counts medals per colour.
type MedalTally struct {
	Gold   int
	Silver int
	Bronze int
}

// Add increments the counter for m by n. MedalNone is ignored.
func (t *MedalTally) Add(m Medal, n int) {
	switch m {
	case MedalGold:
		t.Gold += n
	case MedalSilver:
		t.Silver += n
	case MedalBronze:
		t.Bronze += n
	}
}

// Plus returns the per-colour sum of t and o.
func (t MedalTally) Plus(o MedalTally) MedalTally {
	return MedalTally{Gold: t.Gold + o.Gold, Silver: t.Silver + o.Silver, Bronze: t.Bronze + o.Bronze}
}
