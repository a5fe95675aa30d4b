package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/football-console/brackets"
	"github.com/Dosada05/football-console/models"
	"github.com/Dosada05/football-console/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStandings записывает вызовы Publish.
type stubStandings struct {
	published []uuid.UUID
}

func (s *stubStandings) GetStandings(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error) {
	return []models.Standing{}, nil
}

func (s *stubStandings) Publish(ctx context.Context, tournamentID uuid.UUID) {
	s.published = append(s.published, tournamentID)
}

type matchEnv struct {
	owner       uuid.UUID
	tournament  *models.Tournament
	match       *models.Match
	memberRepo  *mockMembershipRepo
	matchRepo   *mockMatchRepo
	standings   *stubStandings
	broadcaster *mockBroadcaster
	svc         MatchService
}

func newMatchEnv(status models.MatchStatus) *matchEnv {
	env := &matchEnv{owner: uuid.New()}
	env.tournament = sampleTournament(uuid.New(), env.owner)
	env.match = &models.Match{
		ID:           uuid.New(),
		TournamentID: env.tournament.ID,
		HomeTeamID:   uuid.New(),
		AwayTeamID:   uuid.New(),
		MatchDate:    models.NewDate(2025, 3, 8),
		Status:       status,
	}
	env.memberRepo = &mockMembershipRepo{}
	env.matchRepo = &mockMatchRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Match, error) {
			if id != env.match.ID {
				return nil, repositories.ErrMatchNotFound
			}
			cp := *env.match
			return &cp, nil
		},
	}
	env.standings = &stubStandings{}
	env.broadcaster = &mockBroadcaster{}
	env.svc = NewMatchService(
		tournamentRepoWith(env.tournament),
		env.memberRepo,
		env.matchRepo,
		env.standings,
		brackets.NewRoundRobinGenerator(),
		env.broadcaster,
		nil,
		discardLogger(),
	)
	return env
}

func TestScheduleMatch(t *testing.T) {
	env := newMatchEnv(models.MatchStatusScheduled)
	home, away := uuid.New(), uuid.New()

	match, err := env.svc.ScheduleMatch(context.Background(), env.owner, ScheduleMatchInput{
		TournamentID: env.tournament.ID,
		HomeTeamID:   home,
		AwayTeamID:   away,
		MatchDate:    models.NewDate(2025, 3, 15),
		MatchTime:    strPtr(" 18:30 "),
		Venue:        strPtr("  "),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, match.ID)
	assert.Equal(t, models.MatchStatusScheduled, match.Status)
	require.NotNil(t, match.MatchTime)
	assert.Equal(t, "18:30", *match.MatchTime)
	assert.Nil(t, match.Venue)
	assert.Equal(t, []string{brackets.MessageMatchUpdated}, env.broadcaster.types())
}

func TestScheduleMatch_Validation(t *testing.T) {
	env := newMatchEnv(models.MatchStatusScheduled)
	team := uuid.New()
	date := models.NewDate(2025, 3, 15)

	tests := []struct {
		name    string
		userID  uuid.UUID
		input   ScheduleMatchInput
		wantErr error
	}{
		{"missing date", env.owner, ScheduleMatchInput{TournamentID: env.tournament.ID, HomeTeamID: team, AwayTeamID: uuid.New()}, ErrMatchFieldsRequired},
		{"same teams", env.owner, ScheduleMatchInput{TournamentID: env.tournament.ID, HomeTeamID: team, AwayTeamID: team, MatchDate: date}, ErrSameTeams},
		{"bad time", env.owner, ScheduleMatchInput{TournamentID: env.tournament.ID, HomeTeamID: team, AwayTeamID: uuid.New(), MatchDate: date, MatchTime: strPtr("25:99")}, ErrInvalidMatchTime},
		{"unknown tournament", env.owner, ScheduleMatchInput{TournamentID: uuid.New(), HomeTeamID: team, AwayTeamID: uuid.New(), MatchDate: date}, ErrTournamentNotFound},
		{"not owner", uuid.New(), ScheduleMatchInput{TournamentID: env.tournament.ID, HomeTeamID: team, AwayTeamID: uuid.New(), MatchDate: date}, ErrForbiddenOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.ScheduleMatch(context.Background(), tt.userID, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestScheduleMatch_TeamNotMember(t *testing.T) {
	env := newMatchEnv(models.MatchStatusScheduled)
	outsider := uuid.New()
	env.memberRepo.existsFn = func(ctx context.Context, tournamentID, teamID uuid.UUID) (bool, error) {
		return teamID != outsider, nil
	}

	_, err := env.svc.ScheduleMatch(context.Background(), env.owner, ScheduleMatchInput{
		TournamentID: env.tournament.ID,
		HomeTeamID:   uuid.New(),
		AwayTeamID:   outsider,
		MatchDate:    models.NewDate(2025, 3, 15),
	})
	assert.ErrorIs(t, err, ErrTeamNotInTournament)
}

func TestRecordScore(t *testing.T) {
	env := newMatchEnv(models.MatchStatusLive)
	var gotHome, gotAway int
	env.matchRepo.updateScoreFn = func(ctx context.Context, id uuid.UUID, home, away int) error {
		gotHome, gotAway = home, away
		return nil
	}

	match, err := env.svc.RecordScore(context.Background(), env.match.ID, env.owner, RecordScoreInput{
		HomeScore: intPtr(3),
		AwayScore: intPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, gotHome)
	assert.Equal(t, 1, gotAway)
	assert.Equal(t, models.MatchStatusCompleted, match.Status)
	assert.Equal(t, 3, *match.HomeScore)
	assert.Equal(t, []uuid.UUID{env.tournament.ID}, env.standings.published)
	assert.Equal(t, []string{brackets.MessageMatchUpdated}, env.broadcaster.types())
}

func TestRecordScore_RerecordCompleted(t *testing.T) {
	env := newMatchEnv(models.MatchStatusCompleted)
	env.match.HomeScore, env.match.AwayScore = intPtr(1), intPtr(1)

	match, err := env.svc.RecordScore(context.Background(), env.match.ID, env.owner, RecordScoreInput{
		HomeScore: intPtr(2),
		AwayScore: intPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, *match.HomeScore)
	assert.Len(t, env.standings.published, 1)
}

func TestRecordScore_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  models.MatchStatus
		userID  func(env *matchEnv) uuid.UUID
		matchID func(env *matchEnv) uuid.UUID
		input   RecordScoreInput
		wantErr error
	}{
		{
			name:    "missing away score",
			status:  models.MatchStatusLive,
			input:   RecordScoreInput{HomeScore: intPtr(1)},
			wantErr: ErrScoreRequired,
		},
		{
			name:    "negative score",
			status:  models.MatchStatusLive,
			input:   RecordScoreInput{HomeScore: intPtr(-1), AwayScore: intPtr(0)},
			wantErr: ErrInvalidScore,
		},
		{
			name:    "cancelled match",
			status:  models.MatchStatusCancelled,
			input:   RecordScoreInput{HomeScore: intPtr(1), AwayScore: intPtr(0)},
			wantErr: ErrMatchCancelled,
		},
		{
			name:    "match not found",
			status:  models.MatchStatusLive,
			matchID: func(env *matchEnv) uuid.UUID { return uuid.New() },
			input:   RecordScoreInput{HomeScore: intPtr(1), AwayScore: intPtr(0)},
			wantErr: ErrMatchNotFound,
		},
		{
			name:    "not tournament owner",
			status:  models.MatchStatusLive,
			userID:  func(env *matchEnv) uuid.UUID { return uuid.New() },
			input:   RecordScoreInput{HomeScore: intPtr(1), AwayScore: intPtr(0)},
			wantErr: ErrForbiddenOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newMatchEnv(tt.status)
			userID, matchID := env.owner, env.match.ID
			if tt.userID != nil {
				userID = tt.userID(env)
			}
			if tt.matchID != nil {
				matchID = tt.matchID(env)
			}

			_, err := env.svc.RecordScore(context.Background(), matchID, userID, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, env.standings.published)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name          string
		from          models.MatchStatus
		to            models.MatchStatus
		wantErr       error
		wantPublished int
		wantMessages  int
	}{
		{"scheduled to live", models.MatchStatusScheduled, models.MatchStatusLive, nil, 0, 1},
		{"live to completed", models.MatchStatusLive, models.MatchStatusCompleted, nil, 1, 1},
		{"scheduled to cancelled", models.MatchStatusScheduled, models.MatchStatusCancelled, nil, 0, 1},
		{"same status is a no-op", models.MatchStatusLive, models.MatchStatusLive, nil, 0, 0},
		{"completed to live", models.MatchStatusCompleted, models.MatchStatusLive, ErrInvalidStatusTransition, 0, 0},
		{"cancelled to scheduled", models.MatchStatusCancelled, models.MatchStatusScheduled, ErrInvalidStatusTransition, 0, 0},
		{"live to scheduled", models.MatchStatusLive, models.MatchStatusScheduled, ErrInvalidStatusTransition, 0, 0},
		{"unknown status", models.MatchStatusLive, models.MatchStatus("postponed"), ErrInvalidMatchStatus, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newMatchEnv(tt.from)
			updated := false
			env.matchRepo.updateStatusFn = func(ctx context.Context, id uuid.UUID, status models.MatchStatus) error {
				updated = true
				assert.Equal(t, tt.to, status)
				return nil
			}

			match, err := env.svc.UpdateStatus(context.Background(), env.match.ID, env.owner, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, updated)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.to, match.Status)
			}
			assert.Len(t, env.standings.published, tt.wantPublished)
			assert.Len(t, env.broadcaster.types(), tt.wantMessages)
		})
	}
}

func TestDeleteMatch_CompletedRepublishesStandings(t *testing.T) {
	env := newMatchEnv(models.MatchStatusCompleted)

	require.NoError(t, env.svc.DeleteMatch(context.Background(), env.match.ID, env.owner))
	assert.Equal(t, []uuid.UUID{env.tournament.ID}, env.standings.published)

	payload, ok := env.broadcaster.messages[0].Payload.(MatchEvent)
	require.True(t, ok)
	assert.Equal(t, MatchActionDeleted, payload.Action)
}

func TestGenerateFixtures(t *testing.T) {
	env := newMatchEnv(models.MatchStatusScheduled)
	teams := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	env.memberRepo.listByTournamentFn = func(ctx context.Context, id uuid.UUID) ([]models.Membership, error) {
		ms := make([]models.Membership, len(teams))
		for i, teamID := range teams {
			ms[i] = models.Membership{TournamentID: id, TeamID: teamID}
		}
		return ms, nil
	}
	var saved []*models.Match
	env.matchRepo.createManyFn = func(ctx context.Context, matches []*models.Match) error {
		saved = matches
		for _, m := range matches {
			m.ID = uuid.New()
		}
		return nil
	}

	created, err := env.svc.GenerateFixtures(context.Background(), env.tournament.ID, env.owner, GenerateFixturesInput{
		Legs:        2,
		DayInterval: 7,
		MatchTime:   strPtr("15:00"),
		Venue:       strPtr("Central Stadium"),
	})
	require.NoError(t, err)
	require.Len(t, created, 12)
	assert.Len(t, saved, 12)

	for _, m := range created {
		assert.NotEqual(t, uuid.Nil, m.ID)
		assert.Equal(t, env.tournament.ID, m.TournamentID)
		assert.Equal(t, models.MatchStatusScheduled, m.Status)
		assert.Equal(t, "Central Stadium", *m.Venue)
		assert.False(t, m.MatchDate.Before(env.tournament.StartDate.Time))
	}
	assert.Equal(t, env.tournament.StartDate, created[0].MatchDate)
	assert.Len(t, env.broadcaster.types(), 12)
}

func TestGenerateFixtures_Errors(t *testing.T) {
	env := newMatchEnv(models.MatchStatusScheduled)
	env.memberRepo.listByTournamentFn = func(ctx context.Context, id uuid.UUID) ([]models.Membership, error) {
		return []models.Membership{{TournamentID: id, TeamID: uuid.New()}}, nil
	}

	_, err := env.svc.GenerateFixtures(context.Background(), env.tournament.ID, env.owner, GenerateFixturesInput{})
	assert.ErrorIs(t, err, ErrNotEnoughTeams)

	_, err = env.svc.GenerateFixtures(context.Background(), env.tournament.ID, env.owner, GenerateFixturesInput{Legs: 3})
	assert.ErrorIs(t, err, ErrInvalidFixtureSettings)

	_, err = env.svc.GenerateFixtures(context.Background(), env.tournament.ID, uuid.New(), GenerateFixturesInput{})
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

func TestGenerateFixtures_DayInterval(t *testing.T) {
	env := newMatchEnv(models.MatchStatusScheduled)
	env.memberRepo.listByTournamentFn = func(ctx context.Context, id uuid.UUID) ([]models.Membership, error) {
		return []models.Membership{{TeamID: uuid.New()}, {TeamID: uuid.New()}, {TeamID: uuid.New()}}, nil
	}

	_, err := env.svc.GenerateFixtures(context.Background(), env.tournament.ID, env.owner, GenerateFixturesInput{DayInterval: -1})
	require.ErrorIs(t, err, ErrInvalidFixtureSettings)
	assert.Contains(t, err.Error(), "day interval must not be negative")

	// 0 означает интервал по умолчанию, неделю
	created, err := env.svc.GenerateFixtures(context.Background(), env.tournament.ID, env.owner, GenerateFixturesInput{DayInterval: 0})
	require.NoError(t, err)
	require.Len(t, created, 3)

	dates := make(map[string]bool)
	for _, m := range created {
		dates[m.MatchDate.Time.Format("2006-01-02")] = true
	}
	start := env.tournament.StartDate.Time
	assert.Equal(t, map[string]bool{
		start.Format("2006-01-02"):                   true,
		start.AddDate(0, 0, 7).Format("2006-01-02"):  true,
		start.AddDate(0, 0, 14).Format("2006-01-02"): true,
	}, dates)
}

func TestGenerateFixtures_StoreFailure(t *testing.T) {
	env := newMatchEnv(models.MatchStatusScheduled)
	env.memberRepo.listByTournamentFn = func(ctx context.Context, id uuid.UUID) ([]models.Membership, error) {
		return []models.Membership{{TeamID: uuid.New()}, {TeamID: uuid.New()}}, nil
	}
	dbErr := errors.New("tx aborted")
	env.matchRepo.createManyFn = func(ctx context.Context, matches []*models.Match) error { return dbErr }

	_, err := env.svc.GenerateFixtures(context.Background(), env.tournament.ID, env.owner, GenerateFixturesInput{})
	assert.ErrorIs(t, err, dbErr)
	assert.Empty(t, env.broadcaster.types())
}

func TestListMatches_InvalidStatus(t *testing.T) {
	env := newMatchEnv(models.MatchStatusScheduled)
	status := models.MatchStatus("finished")

	_, err := env.svc.ListMatches(context.Background(), ListMatchesInput{Status: &status})
	assert.ErrorIs(t, err, ErrInvalidMatchStatus)

	matches, err := env.svc.ListMatches(context.Background(), ListMatchesInput{})
	require.NoError(t, err)
	assert.NotNil(t, matches)
}
