package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/teamsync/internal/domain/fixture"
)

type FixtureRepository struct {
	mu       sync.RWMutex
	fixtures []fixture.Fixture
	byID     map[string]int
	details  map[string]fixture.Detail
}

func NewFixtureRepository(items []fixture.Fixture) *FixtureRepository {
	r := &FixtureRepository{
		byID:    make(map[string]int, len(items)),
		details: make(map[string]fixture.Detail),
	}
	sorted := make([]fixture.Fixture, 0, len(items))
	sorted = append(sorted, items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	for _, item := range sorted {
		r.byID[item.ID] = len(r.fixtures)
		r.fixtures = append(r.fixtures, cloneFixture(item))
		for _, d := range item.Details {
			r.details[d.ID] = d
		}
	}
	return r
}

func (r *FixtureRepository) List(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, item := range r.fixtures {
		out = append(out, cloneFixture(item))
	}
	return out, nil
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[fixtureID]
	if !ok {
		return fixture.Fixture{}, false, nil
	}
	return cloneFixture(r.fixtures[idx]), true, nil
}

func (r *FixtureRepository) ListByTeam(_ context.Context, teamID string) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0)
	for _, item := range r.fixtures {
		if item.HasParticipant(teamID) {
			out = append(out, cloneFixture(item))
		}
	}
	return out, nil
}

func (r *FixtureRepository) GetDetailByID(_ context.Context, detailID string) (fixture.Detail, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.details[detailID]
	return d, ok, nil
}

func cloneFixture(in fixture.Fixture) fixture.Fixture {
	out := in
	out.Participants = append([]fixture.Participant(nil), in.Participants...)
	out.Scores = append([]fixture.Score(nil), in.Scores...)
	out.Details = append([]fixture.Detail(nil), in.Details...)
	if in.Location != nil {
		loc := *in.Location
		out.Location = &loc
	}
	return out
}
