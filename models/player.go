package models

import (
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Email     *string    `json:"email,omitempty" db:"email"`
	Position  *string    `json:"position,omitempty" db:"position"`
	TeamID    *uuid.UUID `json:"team_id,omitempty" db:"team_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
