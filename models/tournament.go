package models

import (
	"time"

	"github.com/google/uuid"
)

// Tournament представляет турнир (лигу).
type Tournament struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	StartDate   Date      `json:"start_date" db:"start_date"`
	EndDate     Date      `json:"end_date" db:"end_date"`
	CreatedBy   uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Заполняется только в обзоре турниров с командами
	Teams []Team `json:"teams,omitempty" db:"-"`
}
