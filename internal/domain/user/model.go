package user

import (
	"strings"
)

// User is an app account. ActiveTeamID selects the team used for scheduling.
type User struct {
	ID           string
	Email        string
	Name         string
	ActiveTeamID string
}

func (u User) HasActiveTeam() bool {
	return strings.TrimSpace(u.ActiveTeamID) != ""
}

// Principal is the caller identity established by the auth layer.
type Principal struct {
	UserID string
	Email  string
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
