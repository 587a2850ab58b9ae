package roster

import (
	"fmt"
	"strings"
)

// Availability is a player's answer for one fixture. There is no boolean form:
// UNKNOWN is an explicit third state.
type Availability string

const (
	AvailabilityAvailable   Availability = "AVAILABLE"
	AvailabilityUnavailable Availability = "UNAVAILABLE"
	AvailabilityUnknown     Availability = "UNKNOWN"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityUnavailable, AvailabilityUnknown:
		return true
	default:
		return false
	}
}

func (a Availability) String() string {
	return string(a)
}

// ParseAvailability accepts the wire values case-insensitively.
func ParseAvailability(value string) (Availability, error) {
	a := Availability(strings.ToUpper(strings.TrimSpace(value)))
	if !a.Valid() {
		return "", fmt.Errorf("unknown availability %q", value)
	}
	return a, nil
}

// Member is one player's participation record for a fixture detail.
type Member struct {
	ID              string
	FixtureDetailID string
	UserID          string
	PlayerName      string
	Availability    Availability
}
