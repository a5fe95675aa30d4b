// Package standings builds a league table from a tournament's memberships and
// its matches. Compute is pure: it performs no I/O and never modifies its inputs.
package standings

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Dosada05/football-console/models"
	"github.com/google/uuid"
)

const (
	PointsForWin  = 3
	PointsForDraw = 1
	PointsForLoss = 0
)

var ErrUnknownTeamInMatch = errors.New("completed match references a team that is not a member of the tournament")

// UnknownTeamError описывает матч, команда которого не зарегистрирована в турнире.
type UnknownTeamError struct {
	MatchID uuid.UUID
	TeamID  uuid.UUID
}

func (e *UnknownTeamError) Error() string {
	return fmt.Sprintf("%s (match %s, team %s)", ErrUnknownTeamInMatch.Error(), e.MatchID, e.TeamID)
}

func (e *UnknownTeamError) Unwrap() error {
	return ErrUnknownTeamInMatch
}

// Compute returns the table for one tournament. There is one row per member
// team, in membership order before sorting. Only completed matches count and
// missing scores are treated as zero. Rows are ordered by points, then goal
// difference, both descending; remaining ties keep membership order.
func Compute(memberships []models.Membership, matches []models.Match) ([]models.Standing, error) {
	table := make([]models.Standing, 0, len(memberships))
	index := make(map[uuid.UUID]int, len(memberships))

	for _, m := range memberships {
		if _, dup := index[m.TeamID]; dup {
			continue
		}
		row := models.Standing{TeamID: m.TeamID}
		if m.Team != nil {
			row.Team = copyTeam(m.Team)
		}
		index[m.TeamID] = len(table)
		table = append(table, row)
	}

	for _, match := range matches {
		if match.Status != models.MatchStatusCompleted {
			continue
		}

		homeIdx, ok := index[match.HomeTeamID]
		if !ok {
			return nil, &UnknownTeamError{MatchID: match.ID, TeamID: match.HomeTeamID}
		}
		awayIdx, ok := index[match.AwayTeamID]
		if !ok {
			return nil, &UnknownTeamError{MatchID: match.ID, TeamID: match.AwayTeamID}
		}

		homeGoals := scoreOrZero(match.HomeScore)
		awayGoals := scoreOrZero(match.AwayScore)

		home := &table[homeIdx]
		away := &table[awayIdx]

		home.Played++
		away.Played++
		home.GoalsFor += homeGoals
		home.GoalsAgainst += awayGoals
		away.GoalsFor += awayGoals
		away.GoalsAgainst += homeGoals

		switch {
		case homeGoals > awayGoals:
			home.Wins++
			home.Points += PointsForWin
			away.Losses++
			away.Points += PointsForLoss
		case awayGoals > homeGoals:
			away.Wins++
			away.Points += PointsForWin
			home.Losses++
			home.Points += PointsForLoss
		default:
			home.Draws++
			away.Draws++
			home.Points += PointsForDraw
			away.Points += PointsForDraw
		}
	}

	for i := range table {
		table[i].GoalDifference = table[i].GoalsFor - table[i].GoalsAgainst
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		return table[i].GoalDifference > table[j].GoalDifference
	})

	for i := range table {
		table[i].Position = i + 1
	}

	return table, nil
}

func scoreOrZero(score *int) int {
	if score == nil {
		return 0
	}
	return *score
}

// copyTeam копирует команду вместе с указателями, таблица не делит память с входом.
func copyTeam(t *models.Team) *models.Team {
	team := *t
	if t.LogoURL != nil {
		v := *t.LogoURL
		team.LogoURL = &v
	}
	if t.LogoKey != nil {
		v := *t.LogoKey
		team.LogoKey = &v
	}
	if t.CreatedBy != nil {
		v := *t.CreatedBy
		team.CreatedBy = &v
	}
	return &team
}
