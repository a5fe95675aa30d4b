package services

import (
	"errors"

	"github.com/Dosada05/football-console/standings"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации и бизнес-правил
	ErrValidationFailed        = errors.New("validation failed") // Общая ошибка валидации
	ErrTournamentNameRequired  = errors.New("tournament name is required")
	ErrTournamentDatesRequired = errors.New("tournament start and end dates are required")
	ErrTournamentInvalidDates  = errors.New("tournament end date must not precede start date")
	ErrTeamNameRequired        = errors.New("team name is required")
	ErrPlayerNameRequired      = errors.New("player name is required")
	ErrTeamsRequired           = errors.New("at least one team is required")
	ErrMatchFieldsRequired     = errors.New("tournament, home team, away team and match date are required")
	ErrSameTeams               = errors.New("home and away team must differ")
	ErrInvalidMatchTime        = errors.New("match time must be in HH:MM format")
	ErrScoreRequired           = errors.New("both home and away scores are required")
	ErrInvalidScore            = errors.New("scores must be non-negative")
	ErrInvalidMatchStatus      = errors.New("invalid match status")
	ErrInvalidStatusTransition = errors.New("invalid match status transition")
	ErrMatchCancelled          = errors.New("cancelled match cannot be scored")
	ErrNotEnoughTeams          = errors.New("at least two member teams are required to generate fixtures")
	ErrInvalidFixtureSettings  = errors.New("invalid fixture settings")
	ErrUnsupportedLogoType     = errors.New("unsupported logo content type")
	ErrLogoStorageDisabled     = errors.New("logo storage is not configured")

	// Ошибки конфликтов
	ErrTeamNameConflict    = errors.New("team name is already in use")
	ErrTeamInUse           = errors.New("team cannot be deleted while it has matches")
	ErrTeamNotInTournament = errors.New("team is not a member of the match tournament")
	ErrMembershipInUse     = errors.New("team has matches in this tournament")

	// Ошибка согласованности данных для таблицы
	ErrUnknownTeamInMatch = standings.ErrUnknownTeamInMatch

	// Ошибки авторизации
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrMembershipNotFound = errors.New("team is not assigned to this tournament")
)
