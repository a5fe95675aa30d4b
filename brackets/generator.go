package brackets

import (
	"context"

	"github.com/Dosada05/football-console/models"
	"github.com/google/uuid"
)

// Fixture - одна запланированная встреча расписания.
type Fixture struct {
	Round        int
	OrderInRound int
	Leg          int
	HomeTeamID   uuid.UUID
	AwayTeamID   uuid.UUID
	MatchDate    models.Date
}

type GenerateFixturesParams struct {
	TournamentID uuid.UUID
	TeamIDs      []uuid.UUID // порядок команд определяет посев
	Legs         int         // 1 или 2
	StartDate    models.Date
	DayInterval  int // дней между турами
}

type FixtureGenerator interface {
	GenerateFixtures(ctx context.Context, params GenerateFixturesParams) ([]*Fixture, error)

	GetName() string
}
