package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/teamsync/internal/domain/fixture"
	"github.com/riskibarqy/teamsync/internal/domain/roster"
	"github.com/riskibarqy/teamsync/internal/domain/team"
	"github.com/riskibarqy/teamsync/internal/domain/teamstats"
	"github.com/riskibarqy/teamsync/internal/domain/user"
	"github.com/sourcegraph/conc/pool"
)

type SetAvailabilityInput struct {
	FixtureDetailsID string
	Availability     string
}

type FixtureService struct {
	userRepo       user.Repository
	teamRepo       team.Repository
	fixtureRepo    fixture.Repository
	rosterRepo     roster.Repository
	statsRepo      teamstats.Repository
	clock          clockwork.Clock
	recentMaxCount int
}

type FixtureServiceOption func(*FixtureService)

func WithClock(clock clockwork.Clock) FixtureServiceOption {
	return func(s *FixtureService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithRecentMaxCount caps the count accepted by Recent. Zero disables the cap.
func WithRecentMaxCount(max int) FixtureServiceOption {
	return func(s *FixtureService) {
		if max > 0 {
			s.recentMaxCount = max
		}
	}
}

func NewFixtureService(
	userRepo user.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	rosterRepo roster.Repository,
	statsRepo teamstats.Repository,
	opts ...FixtureServiceOption,
) *FixtureService {
	s := &FixtureService{
		userRepo:    userRepo,
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		rosterRepo:  rosterRepo,
		statsRepo:   statsRepo,
		clock:       clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FixtureService) All(ctx context.Context) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.All")
	defer span.End()

	items, err := s.fixtureRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}
	return items, nil
}

// GetByID returns false without error when no fixture has the id.
func (s *FixtureService) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.GetByID")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return fixture.Fixture{}, false, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	item, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("get fixture: %w", err)
	}
	return item, exists, nil
}

// Upcoming returns the caller's next fixture, or nil when none is scheduled.
func (s *FixtureService) Upcoming(ctx context.Context, email string) (*UpcomingFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Upcoming")
	defer span.End()

	caller, activeTeam, err := s.resolveCaller(ctx, email)
	if err != nil {
		return nil, err
	}

	items, err := s.fixtureRepo.ListByTeam(ctx, activeTeam.ID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by team: %w", err)
	}

	next, ok := fixture.NextUpcoming(items, s.clock.Now())
	if !ok {
		return nil, nil
	}

	out := &UpcomingFixture{
		ID:       next.ID,
		Date:     next.Date,
		Team:     activeTeam.Name,
		Location: copyLocation(next.Location),
	}
	teamSide, opposition := next.Sides(activeTeam.ID)
	if teamSide != nil {
		out.Team = teamSide.Name
	}
	if opposition != nil {
		out.Opposition = opposition.Name
	}

	if detail, ok := next.DetailFor(activeTeam.ID); ok {
		out.DetailsID = detail.ID
		availability, err := s.availabilityOf(ctx, caller.ID, detail.ID)
		if err != nil {
			return nil, err
		}
		out.Availability = availability
	}

	return out, nil
}

// Recent returns up to count past fixtures of the caller's team, most recent first.
func (s *FixtureService) Recent(ctx context.Context, email string, count int) ([]RecentFixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Recent")
	defer span.End()

	if count < 0 {
		return nil, fmt.Errorf("%w: count must be >= 0, got %d", ErrInvalidInput, count)
	}
	if s.recentMaxCount > 0 && count > s.recentMaxCount {
		return nil, fmt.Errorf("%w: count must be <= %d, got %d", ErrInvalidInput, s.recentMaxCount, count)
	}

	_, activeTeam, err := s.resolveCaller(ctx, email)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []RecentFixture{}, nil
	}

	items, err := s.fixtureRepo.ListByTeam(ctx, activeTeam.ID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by team: %w", err)
	}

	past := fixture.RecentPast(items, s.clock.Now(), count)
	out := make([]RecentFixture, 0, len(past))
	for _, item := range past {
		row := RecentFixture{
			ID:   item.ID,
			Date: item.Date,
			Team: FixtureSide{
				Name:  activeTeam.Name,
				Score: scorePtr(item, activeTeam.ID),
			},
		}
		teamSide, opposition := item.Sides(activeTeam.ID)
		if teamSide != nil {
			row.Team.Name = teamSide.Name
		}
		if opposition != nil {
			row.Opposition = FixtureSide{
				Name:  opposition.Name,
				Score: scorePtr(item, opposition.TeamID),
			}
		}
		out = append(out, row)
	}

	return out, nil
}

// Details resolves a fixture detail into a full view. It returns nil without
// error when the fixture lacks either side of the match.
func (s *FixtureService) Details(ctx context.Context, email, detailID string) (*FixtureDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Details")
	defer span.End()

	detailID = strings.TrimSpace(detailID)
	if detailID == "" {
		return nil, fmt.Errorf("%w: fixture details id is required", ErrInvalidInput)
	}

	caller, err := s.loadUser(ctx, email)
	if err != nil {
		return nil, err
	}

	detail, item, err := s.loadDetail(ctx, detailID)
	if err != nil {
		return nil, err
	}

	teamSide, opposition := item.Sides(detail.TeamID)
	if teamSide == nil || opposition == nil {
		return nil, nil
	}

	out := &FixtureDetails{
		ID:        detail.ID,
		FixtureID: item.ID,
		Date:      item.Date,
		Team: DetailSide{
			Name:  teamSide.Name,
			Score: scorePtr(item, teamSide.TeamID),
		},
		Opposition: DetailSide{
			Name:  opposition.Name,
			Score: scorePtr(item, opposition.TeamID),
		},
		Location: copyLocation(item.Location),
	}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		stats, err := s.statsFor(ctx, teamSide.TeamID, item.TournamentID)
		out.Team.Stats = stats
		return err
	})
	p.Go(func(ctx context.Context) error {
		stats, err := s.statsFor(ctx, opposition.TeamID, item.TournamentID)
		out.Opposition.Stats = stats
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	availability, err := s.availabilityOf(ctx, caller.ID, detail.ID)
	if err != nil {
		return nil, err
	}
	out.Availability = availability

	return out, nil
}

// SetAvailability overwrites the caller's own roster answer for a fixture detail.
func (s *FixtureService) SetAvailability(ctx context.Context, email string, input SetAvailabilityInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.SetAvailability")
	defer span.End()

	detailID := strings.TrimSpace(input.FixtureDetailsID)
	if detailID == "" {
		return fmt.Errorf("%w: fixture details id is required", ErrInvalidInput)
	}
	availability, err := roster.ParseAvailability(input.Availability)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	caller, err := s.loadUser(ctx, email)
	if err != nil {
		return err
	}

	member, exists, err := s.rosterRepo.GetByUserAndDetail(ctx, caller.ID, detailID)
	if err != nil {
		return fmt.Errorf("get roster member: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: roster member for user=%s detail=%s", ErrNotFound, caller.ID, detailID)
	}

	if err := s.rosterRepo.UpdateAvailability(ctx, member.ID, availability); err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	return nil
}

// Roster lists every member tracked for a fixture detail.
func (s *FixtureService) Roster(ctx context.Context, email, detailID string) ([]RosterEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Roster")
	defer span.End()

	detailID = strings.TrimSpace(detailID)
	if detailID == "" {
		return nil, fmt.Errorf("%w: fixture details id is required", ErrInvalidInput)
	}
	if _, err := s.loadUser(ctx, email); err != nil {
		return nil, err
	}

	_, exists, err := s.fixtureRepo.GetDetailByID(ctx, detailID)
	if err != nil {
		return nil, fmt.Errorf("get fixture detail: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: fixture detail=%s", ErrNotFound, detailID)
	}

	members, err := s.rosterRepo.ListByDetail(ctx, detailID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}

	out := make([]RosterEntry, 0, len(members))
	for _, m := range members {
		out = append(out, RosterEntry{
			MemberID:     m.ID,
			UserID:       m.UserID,
			PlayerName:   m.PlayerName,
			Availability: m.Availability,
		})
	}
	return out, nil
}

func (s *FixtureService) loadUser(ctx context.Context, email string) (user.User, error) {
	email = user.NormalizeEmail(email)
	if email == "" {
		return user.User{}, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}

	u, exists, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, email)
	}
	return u, nil
}

func (s *FixtureService) resolveCaller(ctx context.Context, email string) (user.User, team.Team, error) {
	u, err := s.loadUser(ctx, email)
	if err != nil {
		return user.User{}, team.Team{}, err
	}
	if !u.HasActiveTeam() {
		return user.User{}, team.Team{}, fmt.Errorf("%w: active team for user=%s", ErrNotFound, u.ID)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, u.ActiveTeamID)
	if err != nil {
		return user.User{}, team.Team{}, fmt.Errorf("get active team: %w", err)
	}
	if !exists {
		return user.User{}, team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, u.ActiveTeamID)
	}
	return u, t, nil
}

func (s *FixtureService) loadDetail(ctx context.Context, detailID string) (fixture.Detail, fixture.Fixture, error) {
	detail, exists, err := s.fixtureRepo.GetDetailByID(ctx, detailID)
	if err != nil {
		return fixture.Detail{}, fixture.Fixture{}, fmt.Errorf("get fixture detail: %w", err)
	}
	if !exists {
		return fixture.Detail{}, fixture.Fixture{}, fmt.Errorf("%w: fixture detail=%s", ErrNotFound, detailID)
	}

	item, exists, err := s.fixtureRepo.GetByID(ctx, detail.FixtureID)
	if err != nil {
		return fixture.Detail{}, fixture.Fixture{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return fixture.Detail{}, fixture.Fixture{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, detail.FixtureID)
	}
	return detail, item, nil
}

func (s *FixtureService) statsFor(ctx context.Context, teamID, tournamentID string) (*SideStats, error) {
	if strings.TrimSpace(tournamentID) == "" {
		return nil, nil
	}
	stats, exists, err := s.statsRepo.GetByTeamAndTournament(ctx, teamID, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("get team stats team=%s: %w", teamID, err)
	}
	return statsView(stats, exists), nil
}

func (s *FixtureService) availabilityOf(ctx context.Context, userID, detailID string) (*roster.Availability, error) {
	member, exists, err := s.rosterRepo.GetByUserAndDetail(ctx, userID, detailID)
	if err != nil {
		return nil, fmt.Errorf("get roster member: %w", err)
	}
	if !exists {
		return nil, nil
	}
	availability := member.Availability
	return &availability, nil
}
