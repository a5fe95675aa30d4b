package brackets

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotEnoughTeams = errors.New("round robin requires at least 2 teams")
	ErrInvalidLegs    = errors.New("round robin supports 1 or 2 legs")
	ErrDuplicateTeam  = errors.New("team listed twice in fixture generation")
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() FixtureGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateFixtures строит расписание круговым методом: одна команда стоит на месте,
// остальные вращаются. При нечетном числе команд добавляется пустой слот,
// и команда, попавшая на него, отдыхает в этом туре.
// Во втором круге хозяева и гости меняются местами.
func (g *RoundRobinGenerator) GenerateFixtures(ctx context.Context, params GenerateFixturesParams) ([]*Fixture, error) {
	teams := params.TeamIDs
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrNotEnoughTeams, len(teams))
	}
	legs := params.Legs
	if legs == 0 {
		legs = 1
	}
	if legs != 1 && legs != 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidLegs, params.Legs)
	}
	interval := params.DayInterval
	if interval <= 0 {
		interval = 7
	}

	seen := make(map[uuid.UUID]struct{}, len(teams))
	slots := make([]uuid.UUID, 0, len(teams)+1)
	for _, id := range teams {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTeam, id)
		}
		seen[id] = struct{}{}
		slots = append(slots, id)
	}
	if len(slots)%2 == 1 {
		slots = append(slots, uuid.Nil) // bye
	}

	n := len(slots)
	roundsPerLeg := n - 1
	fixtures := make([]*Fixture, 0, legs*len(teams)*(len(teams)-1)/2)

	for leg := 1; leg <= legs; leg++ {
		rotation := make([]uuid.UUID, n)
		copy(rotation, slots)

		for r := 0; r < roundsPerLeg; r++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			round := (leg-1)*roundsPerLeg + r + 1
			date := params.StartDate.AddDays((round - 1) * interval)
			order := 0

			for i := 0; i < n/2; i++ {
				home, away := rotation[i], rotation[n-1-i]
				if home == uuid.Nil || away == uuid.Nil {
					continue
				}
				// фиксированная команда чередует поле по турам
				if i == 0 && r%2 == 1 {
					home, away = away, home
				}
				if leg == 2 {
					home, away = away, home
				}
				order++
				fixtures = append(fixtures, &Fixture{
					Round:        round,
					OrderInRound: order,
					Leg:          leg,
					HomeTeamID:   home,
					AwayTeamID:   away,
					MatchDate:    date,
				})
			}

			// вращение всех слотов кроме первого
			last := rotation[n-1]
			copy(rotation[2:], rotation[1:n-1])
			rotation[1] = last
		}
	}

	return fixtures, nil
}
