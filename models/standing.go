package models

import "github.com/google/uuid"

// Standing - строка турнирной таблицы. Вычисляется, в БД не хранится.
type Standing struct {
	Position       int       `json:"position"`
	TeamID         uuid.UUID `json:"team_id"`
	Team           *Team     `json:"team,omitempty"`
	Played         int       `json:"played"`
	Wins           int       `json:"wins"`
	Draws          int       `json:"draws"`
	Losses         int       `json:"losses"`
	GoalsFor       int       `json:"goals_for"`
	GoalsAgainst   int       `json:"goals_against"`
	GoalDifference int       `json:"goal_difference"`
	Points         int       `json:"points"`
}
