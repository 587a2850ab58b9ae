package fixture

import (
	"sort"
	"time"
)

// NextUpcoming returns the fixture with the smallest date strictly after now.
func NextUpcoming(items []Fixture, now time.Time) (Fixture, bool) {
	var (
		best  Fixture
		found bool
	)
	for _, item := range items {
		if !item.Date.After(now) {
			continue
		}
		if !found || item.Date.Before(best.Date) {
			best = item
			found = true
		}
	}
	return best, found
}

// RecentPast returns up to limit fixtures dated strictly before now, most
// recent first. A limit of zero or less yields an empty slice.
func RecentPast(items []Fixture, now time.Time, limit int) []Fixture {
	if limit <= 0 {
		return []Fixture{}
	}

	past := make([]Fixture, 0, len(items))
	for _, item := range items {
		if item.Date.Before(now) {
			past = append(past, item)
		}
	}
	sort.SliceStable(past, func(i, j int) bool {
		return past[i].Date.After(past[j].Date)
	})

	if len(past) > limit {
		past = past[:limit]
	}
	return past
}
