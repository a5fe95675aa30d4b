package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusLive, MatchStatusCompleted, MatchStatusCancelled:
		return true
	}
	return false
}

type Match struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	TournamentID uuid.UUID   `json:"tournament_id" db:"tournament_id"`
	HomeTeamID   uuid.UUID   `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   uuid.UUID   `json:"away_team_id" db:"away_team_id"`
	MatchDate    Date        `json:"match_date" db:"match_date"`
	MatchTime    *string     `json:"match_time,omitempty" db:"match_time"`
	Venue        *string     `json:"venue,omitempty" db:"venue"`
	Status       MatchStatus `json:"status" db:"status"`
	HomeScore    *int        `json:"home_score" db:"home_score"`
	AwayScore    *int        `json:"away_score" db:"away_score"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`

	// Связанные сущности, заполняются репозиторием при выборке списка
	HomeTeam   *Team       `json:"home_team,omitempty" db:"-"`
	AwayTeam   *Team       `json:"away_team,omitempty" db:"-"`
	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
}
