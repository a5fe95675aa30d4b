package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership связывает команду с турниром (таблица tournament_teams).
// Пара (TournamentID, TeamID) уникальна.
type Membership struct {
	TournamentID uuid.UUID `json:"tournament_id" db:"tournament_id"`
	TeamID       uuid.UUID `json:"team_id" db:"team_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
