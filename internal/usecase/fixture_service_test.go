package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamsync/internal/domain/fixture"
	"github.com/riskibarqy/teamsync/internal/domain/roster"
	"github.com/riskibarqy/teamsync/internal/domain/team"
	"github.com/riskibarqy/teamsync/internal/domain/teamstats"
	"github.com/riskibarqy/teamsync/internal/domain/user"
	fixturemock "github.com/riskibarqy/teamsync/internal/mocks/domain/fixture"
	rostermock "github.com/riskibarqy/teamsync/internal/mocks/domain/roster"
	teammock "github.com/riskibarqy/teamsync/internal/mocks/domain/team"
	teamstatsmock "github.com/riskibarqy/teamsync/internal/mocks/domain/teamstats"
	usermock "github.com/riskibarqy/teamsync/internal/mocks/domain/user"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

const (
	testEmail    = "captain@teamsync.dev"
	testUserID   = "usr-captain"
	testTeamID   = "team-home"
	rivalsTeamID = "team-rivals"
)

type fixtureServiceMocks struct {
	users    *usermock.Repository
	teams    *teammock.Repository
	fixtures *fixturemock.Repository
	rosters  *rostermock.Repository
	stats    *teamstatsmock.Repository
}

func newFixtureServiceUnderTest(t *testing.T) (*FixtureService, fixtureServiceMocks) {
	t.Helper()

	m := fixtureServiceMocks{
		users:    usermock.NewRepository(t),
		teams:    teammock.NewRepository(t),
		fixtures: fixturemock.NewRepository(t),
		rosters:  rostermock.NewRepository(t),
		stats:    teamstatsmock.NewRepository(t),
	}
	svc := NewFixtureService(
		m.users, m.teams, m.fixtures, m.rosters, m.stats,
		WithClock(clockwork.NewFakeClockAt(testNow)),
		WithRecentMaxCount(50),
	)
	return svc, m
}

func (m fixtureServiceMocks) expectCaller() {
	m.users.
		On("GetByEmail", mock.Anything, testEmail).
		Return(user.User{ID: testUserID, Email: testEmail, ActiveTeamID: testTeamID}, true, nil).
		Once()
	m.teams.
		On("GetByID", mock.Anything, testTeamID).
		Return(team.Team{ID: testTeamID, Name: "Home United"}, true, nil).
		Once()
}

func matchFixture(id string, date time.Time, homeFirst bool) fixture.Fixture {
	participants := []fixture.Participant{
		{TeamID: testTeamID, Name: "Home United"},
		{TeamID: rivalsTeamID, Name: "Rivals FC"},
	}
	if !homeFirst {
		participants[0], participants[1] = participants[1], participants[0]
	}
	return fixture.Fixture{
		ID:           id,
		Date:         date,
		TournamentID: "cup-2026",
		Participants: participants,
		Location:     &fixture.Location{Name: "Riverside", Address: "1 Park Rd", Latitude: 51.5074, Longitude: -0.1278},
		Details: []fixture.Detail{
			{ID: id + "-home", FixtureID: id, TeamID: testTeamID},
			{ID: id + "-rivals", FixtureID: id, TeamID: rivalsTeamID},
		},
	}
}

func TestFixtureService_Upcoming_ReturnsNextFixtureWithAvailability(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, m := newFixtureServiceUnderTest(t)
	m.expectCaller()

	day := 24 * time.Hour
	m.fixtures.
		On("ListByTeam", mock.Anything, testTeamID).
		Return([]fixture.Fixture{
			matchFixture("fx-past", testNow.Add(-day), true),
			matchFixture("fx-later", testNow.Add(3*day), true),
			matchFixture("fx-next", testNow.Add(day), false),
		}, nil).
		Once()
	m.rosters.
		On("GetByUserAndDetail", mock.Anything, testUserID, "fx-next-home").
		Return(roster.Member{ID: "rm-1", Availability: roster.AvailabilityAvailable}, true, nil).
		Once()

	got, err := svc.Upcoming(ctx, testEmail)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}

	available := roster.AvailabilityAvailable
	want := &UpcomingFixture{
		ID:           "fx-next",
		DetailsID:    "fx-next-home",
		Date:         testNow.Add(day),
		Team:         "Home United",
		Opposition:   "Rivals FC",
		Location:     &fixture.Location{Name: "Riverside", Address: "1 Park Rd", Latitude: 51.5074, Longitude: -0.1278},
		Availability: &available,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected upcoming fixture (-want +got):\n%s", diff)
	}
}

func TestFixtureService_Upcoming_AbsentWhenNothingScheduled(t *testing.T) {
	t.Parallel()

	svc, m := newFixtureServiceUnderTest(t)
	m.expectCaller()
	m.fixtures.
		On("ListByTeam", mock.Anything, testTeamID).
		Return([]fixture.Fixture{matchFixture("fx-past", testNow.Add(-time.Hour), true)}, nil).
		Once()

	got, err := svc.Upcoming(context.Background(), testEmail)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no upcoming fixture, got %+v", got)
	}
}

func TestFixtureService_Upcoming_NoRosterRecordLeavesAvailabilityAbsent(t *testing.T) {
	t.Parallel()

	svc, m := newFixtureServiceUnderTest(t)
	m.expectCaller()
	m.fixtures.
		On("ListByTeam", mock.Anything, testTeamID).
		Return([]fixture.Fixture{matchFixture("fx-next", testNow.Add(time.Hour), true)}, nil).
		Once()
	m.rosters.
		On("GetByUserAndDetail", mock.Anything, testUserID, "fx-next-home").
		Return(roster.Member{}, false, nil).
		Once()

	got, err := svc.Upcoming(context.Background(), testEmail)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if got == nil || got.Availability != nil {
		t.Fatalf("expected fixture without availability, got %+v", got)
	}
}

func TestFixtureService_Upcoming_UserNotFound(t *testing.T) {
	t.Parallel()

	svc, m := newFixtureServiceUnderTest(t)
	m.users.
		On("GetByEmail", mock.Anything, testEmail).
		Return(user.User{}, false, nil).
		Once()

	_, err := svc.Upcoming(context.Background(), testEmail)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFixtureService_Upcoming_NoActiveTeam(t *testing.T) {
	t.Parallel()

	svc, m := newFixtureServiceUnderTest(t)
	m.users.
		On("GetByEmail", mock.Anything, testEmail).
		Return(user.User{ID: testUserID, Email: testEmail}, true, nil).
		Once()

	_, err := svc.Upcoming(context.Background(), testEmail)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFixtureService_Upcoming_MissingIdentity(t *testing.T) {
	t.Parallel()

	svc, _ := newFixtureServiceUnderTest(t)
	_, err := svc.Upcoming(context.Background(), "  ")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestFixtureService_Recent_MostRecentFirstWithOptionalScores(t *testing.T) {
	t.Parallel()

	svc, m := newFixtureServiceUnderTest(t)
	m.expectCaller()

	day := 24 * time.Hour
	items := make([]fixture.Fixture, 0, 6)
	for i, offset := range []time.Duration{-5 * day, -day, -3 * day, -2 * day, -4 * day, 2 * day} {
		item := matchFixture(string(rune('a'+i)), testNow.Add(offset), i%2 == 0)
		items = append(items, item)
	}
	items[1].Scores = []fixture.Score{{TeamID: rivalsTeamID, Score: 1}, {TeamID: testTeamID, Score: 2}}

	m.fixtures.
		On("ListByTeam", mock.Anything, testTeamID).
		Return(items, nil).
		Once()

	got, err := svc.Recent(context.Background(), testEmail, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}

	two, one := 2, 1
	want := []RecentFixture{
		{
			ID:         "b",
			Team:       FixtureSide{Name: "Home United", Score: &two},
			Opposition: FixtureSide{Name: "Rivals FC", Score: &one},
			Date:       testNow.Add(-day),
		},
		{
			ID:         "d",
			Team:       FixtureSide{Name: "Home United"},
			Opposition: FixtureSide{Name: "Rivals FC"},
			Date:       testNow.Add(-2 * day),
		},
		{
			ID:         "c",
			Team:       FixtureSide{Name: "Home United"},
			Opposition: FixtureSide{Name: "Rivals FC"},
			Date:       testNow.Add(-3 * day),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected recent fixtures (-want +got):\n%s", diff)
	}
}

func TestFixtureService_Recent_ZeroCountIsEmpty(t *testing.T) {
	t.Parallel()

	svc, m := newFixtureServiceUnderTest(t)
	m.expectCaller()

	got, err := svc.Recent(context.Background(), testEmail, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestFixtureService_Recent_RejectsInvalidCountBeforeStoreAccess(t *testing.T) {
	t.Parallel()

	svc, _ := newFixtureServiceUnderTest(t)
	for _, count := range []int{-1, 51} {
		_, err := svc.Recent(context.Background(), testEmail, count)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("count=%d: expected ErrInvalidInput, got %v", count, err)
		}
	}
}

func TestFixtureService_Details_UsesDetailOwnerPerspective(t *testing.T) {
	t.Parallel()

	svc, m := newFixtureServiceUnderTest(t)
	m.users.
		On("GetByEmail", mock.Anything, testEmail).
		Return(user.User{ID: testUserID, Email: testEmail, ActiveTeamID: testTeamID}, true, nil).
		Once()

	item := matchFixture("fx-1", testNow.Add(-time.Hour), true)
	item.Scores = []fixture.Score{{TeamID: testTeamID, Score: 0}, {TeamID: rivalsTeamID, Score: 4}}

	m.fixtures.
		On("GetDetailByID", mock.Anything, "fx-1-rivals").
		Return(item.Details[1], true, nil).
		Once()
	m.fixtures.
		On("GetByID", mock.Anything, "fx-1").
		Return(item, true, nil).
		Once()
	m.stats.
		On("GetByTeamAndTournament", mock.Anything, rivalsTeamID, "cup-2026").
		Return(teamstats.TournamentStats{TeamID: rivalsTeamID, Wins: 5, Losses: 1, Draws: 2, Points: 17}, true, nil).
		Once()
	m.stats.
		On("GetByTeamAndTournament", mock.Anything, testTeamID, "cup-2026").
		Return(teamstats.TournamentStats{}, false, nil).
		Once()
	m.rosters.
		On("GetByUserAndDetail", mock.Anything, testUserID, "fx-1-rivals").
		Return(roster.Member{}, false, nil).
		Once()

	got, err := svc.Details(context.Background(), testEmail, "fx-1-rivals")
	if err != nil {
		t.Fatalf("details: %v", err)
	}

	four, zero := 4, 0
	want := &FixtureDetails{
		ID:        "fx-1-rivals",
		FixtureID: "fx-1",
		Date:      item.Date,
		Team: DetailSide{
			Name:  "Rivals FC",
			Score: &four,
			Stats: &SideStats{Wins: 5, Losses: 1, Draws: 2, Points: 17},
		},
		Opposition: DetailSide{Name: "Home United", Score: &zero},
		Location:   &fixture.Location{Name: "Riverside", Address: "1 Park Rd", Latitude: 51.5074, Longitude: -0.1278},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected details (-want +got):\n%s", diff)
	}
}

func TestFixtureService_Details_NotFound(t *testing.T) {
	t.Parallel()

	svc, m := newFixtureServiceUnderTest(t)
	m.users.
		On("GetByEmail", mock.Anything, testEmail).
		Return(user.User{ID: testUserID, Email: testEmail}, true, nil).
		Once()
	m.fixtures.
		On("GetDetailByID", mock.Anything, "missing").
		Return(fixture.Detail{}, false, nil).
		Once()

	got, err := svc.Details(context.Background(), testEmail, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil details on error, got %+v", got)
	}
}

func TestFixtureService_Details_AbsentWhenOppositionMissing(t *testing.T) {
	t.Parallel()

	svc, m := newFixtureServiceUnderTest(t)
	m.users.
		On("GetByEmail", mock.Anything, testEmail).
		Return(user.User{ID: testUserID, Email: testEmail}, true, nil).
		Once()

	item := matchFixture("fx-1", testNow, true)
	item.Participants = item.Participants[:1]
	m.fixtures.
		On("GetDetailByID", mock.Anything, "fx-1-home").
		Return(item.Details[0], true, nil).
		Once()
	m.fixtures.
		On("GetByID", mock.Anything, "fx-1").
		Return(item, true, nil).
		Once()

	got, err := svc.Details(context.Background(), testEmail, "fx-1-home")
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if got != nil {
		t.Fatalf("expected absent details, got %+v", got)
	}
}

func TestFixtureService_Details_StatsErrorPropagates(t *testing.T) {
	t.Parallel()

	svc, m := newFixtureServiceUnderTest(t)
	m.users.
		On("GetByEmail", mock.Anything, testEmail).
		Return(user.User{ID: testUserID, Email: testEmail}, true, nil).
		Once()

	item := matchFixture("fx-1", testNow, true)
	boom := errors.New("stats store down")
	m.fixtures.
		On("GetDetailByID", mock.Anything, "fx-1-home").
		Return(item.Details[0], true, nil).
		Once()
	m.fixtures.
		On("GetByID", mock.Anything, "fx-1").
		Return(item, true, nil).
		Once()
	m.stats.
		On("GetByTeamAndTournament", mock.Anything, mock.AnythingOfType("string"), "cup-2026").
		Return(teamstats.TournamentStats{}, false, boom).
		Maybe()

	_, err := svc.Details(context.Background(), testEmail, "fx-1-home")
	if !errors.Is(err, boom) {
		t.Fatalf("expected stats error, got %v", err)
	}
}

func TestFixtureService_SetAvailability_UpdatesCallerRosterRecord(t *testing.T) {
	t.Parallel()

	svc, m := newFixtureServiceUnderTest(t)
	m.users.
		On("GetByEmail", mock.Anything, testEmail).
		Return(user.User{ID: testUserID, Email: testEmail}, true, nil).
		Once()
	m.rosters.
		On("GetByUserAndDetail", mock.Anything, testUserID, "fx-1-home").
		Return(roster.Member{ID: "rm-7", UserID: testUserID, FixtureDetailID: "fx-1-home"}, true, nil).
		Once()
	m.rosters.
		On("UpdateAvailability", mock.Anything, "rm-7", roster.AvailabilityUnavailable).
		Return(nil).
		Once()

	err := svc.SetAvailability(context.Background(), testEmail, SetAvailabilityInput{
		FixtureDetailsID: "fx-1-home",
		Availability:     "UNAVAILABLE",
	})
	if err != nil {
		t.Fatalf("set availability: %v", err)
	}
}

func TestFixtureService_SetAvailability_NoRosterRecord(t *testing.T) {
	t.Parallel()

	svc, m := newFixtureServiceUnderTest(t)
	m.users.
		On("GetByEmail", mock.Anything, testEmail).
		Return(user.User{ID: testUserID, Email: testEmail}, true, nil).
		Once()
	m.rosters.
		On("GetByUserAndDetail", mock.Anything, testUserID, "fx-1-home").
		Return(roster.Member{}, false, nil).
		Once()

	err := svc.SetAvailability(context.Background(), testEmail, SetAvailabilityInput{
		FixtureDetailsID: "fx-1-home",
		Availability:     "AVAILABLE",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFixtureService_SetAvailability_RejectsUnknownEnum(t *testing.T) {
	t.Parallel()

	svc, _ := newFixtureServiceUnderTest(t)
	err := svc.SetAvailability(context.Background(), testEmail, SetAvailabilityInput{
		FixtureDetailsID: "fx-1-home",
		Availability:     "MAYBE",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFixtureService_GetByID(t *testing.T) {
	t.Parallel()

	svc, m := newFixtureServiceUnderTest(t)
	m.fixtures.
		On("GetByID", mock.Anything, "fx-404").
		Return(fixture.Fixture{}, false, nil).
		Once()

	_, exists, err := svc.GetByID(context.Background(), "fx-404")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if exists {
		t.Fatalf("expected missing fixture to be absent")
	}

	if _, _, err := svc.GetByID(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank id, got %v", err)
	}
}

func TestFixtureService_Roster(t *testing.T) {
	t.Parallel()

	svc, m := newFixtureServiceUnderTest(t)
	m.users.
		On("GetByEmail", mock.Anything, testEmail).
		Return(user.User{ID: testUserID, Email: testEmail}, true, nil).
		Once()
	m.fixtures.
		On("GetDetailByID", mock.Anything, "fx-1-home").
		Return(fixture.Detail{ID: "fx-1-home", FixtureID: "fx-1", TeamID: testTeamID}, true, nil).
		Once()
	m.rosters.
		On("ListByDetail", mock.Anything, "fx-1-home").
		Return([]roster.Member{
			{ID: "rm-1", UserID: testUserID, PlayerName: "Sam Keeper", Availability: roster.AvailabilityAvailable},
			{ID: "rm-2", UserID: "usr-2", PlayerName: "Alex Wing", Availability: roster.AvailabilityUnknown},
		}, nil).
		Once()

	got, err := svc.Roster(context.Background(), testEmail, "fx-1-home")
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	want := []RosterEntry{
		{MemberID: "rm-1", UserID: testUserID, PlayerName: "Sam Keeper", Availability: roster.AvailabilityAvailable},
		{MemberID: "rm-2", UserID: "usr-2", PlayerName: "Alex Wing", Availability: roster.AvailabilityUnknown},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected roster (-want +got):\n%s", diff)
	}
}
