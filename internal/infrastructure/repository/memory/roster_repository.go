package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/teamsync/internal/domain/roster"
)

type RosterRepository struct {
	mu      sync.RWMutex
	members map[string]roster.Member
}

func NewRosterRepository(members []roster.Member) *RosterRepository {
	byID := make(map[string]roster.Member, len(members))
	for _, item := range members {
		byID[item.ID] = item
	}
	return &RosterRepository{members: byID}
}

func (r *RosterRepository) GetByUserAndDetail(_ context.Context, userID, fixtureDetailID string) (roster.Member, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.members {
		if item.UserID == userID && item.FixtureDetailID == fixtureDetailID {
			return item, true, nil
		}
	}
	return roster.Member{}, false, nil
}

func (r *RosterRepository) ListByDetail(_ context.Context, fixtureDetailID string) ([]roster.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Member, 0)
	for _, item := range r.members {
		if item.FixtureDetailID == fixtureDetailID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlayerName != out[j].PlayerName {
			return out[i].PlayerName < out[j].PlayerName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *RosterRepository) UpdateAvailability(_ context.Context, memberID string, availability roster.Availability) error {
	if !availability.Valid() {
		return fmt.Errorf("invalid availability %q", availability)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.members[memberID]
	if !ok {
		return fmt.Errorf("roster member %s not found", memberID)
	}
	item.Availability = availability
	r.members[memberID] = item
	return nil
}
