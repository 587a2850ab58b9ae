package team

import "fmt"

// Team is a club side that takes part in fixtures.
type Team struct {
	ID   string
	Name string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
