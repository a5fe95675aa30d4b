package standings

import (
	"errors"
	"testing"

	"github.com/Dosada05/football-console/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func memberships(teamIDs ...uuid.UUID) []models.Membership {
	out := make([]models.Membership, 0, len(teamIDs))
	for _, id := range teamIDs {
		out = append(out, models.Membership{TeamID: id, Team: &models.Team{ID: id, Name: id.String()[:8]}})
	}
	return out
}

func completed(home, away uuid.UUID, homeScore, awayScore *int) models.Match {
	return models.Match{
		ID:         uuid.New(),
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     models.MatchStatusCompleted,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
	}
}

func rowFor(t *testing.T, table []models.Standing, teamID uuid.UUID) models.Standing {
	t.Helper()
	for _, row := range table {
		if row.TeamID == teamID {
			return row
		}
	}
	t.Fatalf("team %s not found in table", teamID)
	return models.Standing{}
}

func TestCompute_NoMatches(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	table, err := Compute(memberships(a, b, c), nil)
	require.NoError(t, err)
	require.Len(t, table, 3)

	for i, want := range []uuid.UUID{a, b, c} {
		row := table[i]
		assert.Equal(t, want, row.TeamID)
		assert.Equal(t, i+1, row.Position)
		assert.Zero(t, row.Played)
		assert.Zero(t, row.Points)
		assert.Zero(t, row.GoalDifference)
	}
}

func TestCompute_SingleDecisiveMatch(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	table, err := Compute(memberships(a, b), []models.Match{completed(a, b, intPtr(3), intPtr(1))})
	require.NoError(t, err)
	require.Len(t, table, 2)

	winner := table[0]
	assert.Equal(t, a, winner.TeamID)
	assert.Equal(t, 1, winner.Played)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 3, winner.GoalsFor)
	assert.Equal(t, 1, winner.GoalsAgainst)
	assert.Equal(t, 2, winner.GoalDifference)
	assert.Equal(t, 3, winner.Points)

	loser := table[1]
	assert.Equal(t, b, loser.TeamID)
	assert.Equal(t, 1, loser.Played)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, 1, loser.GoalsFor)
	assert.Equal(t, 3, loser.GoalsAgainst)
	assert.Equal(t, -2, loser.GoalDifference)
	assert.Equal(t, 0, loser.Points)
}

func TestCompute_AwayWin(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	table, err := Compute(memberships(a, b), []models.Match{completed(a, b, intPtr(0), intPtr(2))})
	require.NoError(t, err)

	assert.Equal(t, b, table[0].TeamID)
	assert.Equal(t, 3, table[0].Points)
	assert.Equal(t, 1, table[1].Losses)
}

func TestCompute_Draw(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	table, err := Compute(memberships(a, b), []models.Match{completed(a, b, intPtr(2), intPtr(2))})
	require.NoError(t, err)

	for _, id := range []uuid.UUID{a, b} {
		row := rowFor(t, table, id)
		assert.Equal(t, 1, row.Played)
		assert.Equal(t, 1, row.Draws)
		assert.Equal(t, 2, row.GoalsFor)
		assert.Equal(t, 2, row.GoalsAgainst)
		assert.Equal(t, 0, row.GoalDifference)
		assert.Equal(t, 1, row.Points)
	}
	// равенство по всем критериям сохраняет порядок членства
	assert.Equal(t, a, table[0].TeamID)
	assert.Equal(t, b, table[1].TeamID)
}

func TestCompute_PointsTieBrokenByGoalDifference(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	matches := []models.Match{
		completed(a, c, intPtr(1), intPtr(0)),
		completed(b, d, intPtr(4), intPtr(0)),
	}

	table, err := Compute(memberships(a, b, c, d), matches)
	require.NoError(t, err)

	assert.Equal(t, b, table[0].TeamID)
	assert.Equal(t, 4, table[0].GoalDifference)
	assert.Equal(t, a, table[1].TeamID)
	assert.Equal(t, 1, table[1].GoalDifference)
	assert.Equal(t, 3, table[0].Points)
	assert.Equal(t, 3, table[1].Points)
	assert.Equal(t, 1, table[0].Position)
	assert.Equal(t, 2, table[1].Position)
}

func TestCompute_Idempotent(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	ms := memberships(a, b, c)
	matches := []models.Match{
		completed(a, b, intPtr(1), intPtr(1)),
		completed(c, a, intPtr(0), intPtr(2)),
		completed(b, c, intPtr(3), intPtr(2)),
	}

	first, err := Compute(ms, matches)
	require.NoError(t, err)
	second, err := Compute(ms, matches)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_UnknownTeam(t *testing.T) {
	a, b, stranger := uuid.New(), uuid.New(), uuid.New()
	bad := completed(a, stranger, intPtr(1), intPtr(0))

	table, err := Compute(memberships(a, b), []models.Match{completed(a, b, intPtr(1), intPtr(0)), bad})
	require.Error(t, err)
	assert.Nil(t, table)
	assert.True(t, errors.Is(err, ErrUnknownTeamInMatch))

	var unknown *UnknownTeamError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, bad.ID, unknown.MatchID)
	assert.Equal(t, stranger, unknown.TeamID)
}

func TestCompute_UnknownTeamIgnoredWhenNotCompleted(t *testing.T) {
	a, stranger := uuid.New(), uuid.New()
	scheduled := models.Match{ID: uuid.New(), HomeTeamID: a, AwayTeamID: stranger, Status: models.MatchStatusScheduled}

	table, err := Compute(memberships(a), []models.Match{scheduled})
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Zero(t, table[0].Played)
}

func TestCompute_NullScoresCountAsGoallessDraw(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	table, err := Compute(memberships(a, b), []models.Match{completed(a, b, nil, nil)})
	require.NoError(t, err)

	for _, id := range []uuid.UUID{a, b} {
		row := rowFor(t, table, id)
		assert.Equal(t, 1, row.Played)
		assert.Equal(t, 1, row.Draws)
		assert.Equal(t, 0, row.GoalsFor)
		assert.Equal(t, 0, row.GoalsAgainst)
		assert.Equal(t, 1, row.Points)
	}
}

func TestCompute_OneNullScore(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	table, err := Compute(memberships(a, b), []models.Match{completed(a, b, intPtr(2), nil)})
	require.NoError(t, err)

	assert.Equal(t, a, table[0].TeamID)
	assert.Equal(t, 3, table[0].Points)
	assert.Equal(t, 2, table[0].GoalsFor)
}

func TestCompute_IgnoresNonCompletedMatches(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	matches := []models.Match{
		{ID: uuid.New(), HomeTeamID: a, AwayTeamID: b, Status: models.MatchStatusScheduled},
		{ID: uuid.New(), HomeTeamID: a, AwayTeamID: b, Status: models.MatchStatusLive, HomeScore: intPtr(1), AwayScore: intPtr(0)},
		{ID: uuid.New(), HomeTeamID: a, AwayTeamID: b, Status: models.MatchStatusCancelled, HomeScore: intPtr(5), AwayScore: intPtr(0)},
	}

	table, err := Compute(memberships(a, b), matches)
	require.NoError(t, err)

	for _, row := range table {
		assert.Zero(t, row.Played)
		assert.Zero(t, row.Points)
	}
}

func TestCompute_EmptyMemberships(t *testing.T) {
	table, err := Compute(nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, table)
	assert.Empty(t, table)
}

func TestCompute_DuplicateMembershipCollapsed(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ms := append(memberships(a, b), models.Membership{TeamID: a})

	table, err := Compute(ms, []models.Match{completed(a, b, intPtr(1), intPtr(0))})
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, 1, rowFor(t, table, a).Played)
}

func TestCompute_DoesNotMutateInputs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ms := memberships(a, b)
	matches := []models.Match{completed(b, a, intPtr(2), intPtr(0))}

	msBefore := append([]models.Membership(nil), ms...)
	teamBefore := *ms[0].Team
	matchesBefore := append([]models.Match(nil), matches...)

	table, err := Compute(ms, matches)
	require.NoError(t, err)

	table[0].Team.Name = "renamed"

	assert.Equal(t, msBefore, ms)
	assert.Equal(t, teamBefore, *ms[0].Team)
	assert.Equal(t, matchesBefore, matches)
	assert.Equal(t, 2, *matches[0].HomeScore)
}

func TestCompute_TeamPointersAreCopied(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ms := memberships(a, b)
	logoURL, logoKey, owner := "https://cdn.example.com/a.png", "logos/a.png", uuid.New()
	ms[0].Team.LogoURL = &logoURL
	ms[0].Team.LogoKey = &logoKey
	ms[0].Team.CreatedBy = &owner

	table, err := Compute(ms, nil)
	require.NoError(t, err)

	var row *models.Standing
	for i := range table {
		if table[i].TeamID == a {
			row = &table[i]
		}
	}
	require.NotNil(t, row)
	require.NotNil(t, row.Team.LogoURL)
	assert.NotSame(t, ms[0].Team.LogoURL, row.Team.LogoURL)
	assert.NotSame(t, ms[0].Team.LogoKey, row.Team.LogoKey)
	assert.NotSame(t, ms[0].Team.CreatedBy, row.Team.CreatedBy)

	*row.Team.LogoURL = "https://cdn.example.com/b.png"
	*row.Team.LogoKey = "logos/b.png"
	*row.Team.CreatedBy = uuid.Nil

	assert.Equal(t, "https://cdn.example.com/a.png", *ms[0].Team.LogoURL)
	assert.Equal(t, "logos/a.png", *ms[0].Team.LogoKey)
	assert.Equal(t, owner, *ms[0].Team.CreatedBy)
}

func TestCompute_SeasonTable(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	matches := []models.Match{
		completed(a, b, intPtr(2), intPtr(0)),
		completed(b, c, intPtr(1), intPtr(1)),
		completed(c, a, intPtr(3), intPtr(1)),
		completed(b, a, intPtr(0), intPtr(0)),
	}

	table, err := Compute(memberships(a, b, c), matches)
	require.NoError(t, err)

	// a: W D L  -> 4 pts, GF 3 GA 3
	// c: D W    -> 4 pts, GF 4 GA 2
	// b: L D D  -> 2 pts
	require.Len(t, table, 3)
	assert.Equal(t, c, table[0].TeamID)
	assert.Equal(t, 4, table[0].Points)
	assert.Equal(t, 2, table[0].GoalDifference)
	assert.Equal(t, a, table[1].TeamID)
	assert.Equal(t, 4, table[1].Points)
	assert.Equal(t, 0, table[1].GoalDifference)
	assert.Equal(t, b, table[2].TeamID)
	assert.Equal(t, 2, table[2].Points)
	assert.Equal(t, 3, table[2].Played)

	totalPlayed := 0
	for _, row := range table {
		totalPlayed += row.Played
	}
	assert.Equal(t, 2*len(matches), totalPlayed)
}
