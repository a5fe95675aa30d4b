package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/football-console/models"
	"github.com/Dosada05/football-console/storage"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// trimOptional обрезает пробелы и превращает пустую строку в nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func validateTournamentDates(start, end models.Date) error {
	if start.IsZero() || end.IsZero() {
		return ErrTournamentDatesRequired
	}
	if end.Before(start.Time) {
		return fmt.Errorf("%w: start %s, end %s", ErrTournamentInvalidDates, start, end)
	}
	return nil
}

func validateMatchTime(matchTime *string) (*string, error) {
	matchTime = trimOptional(matchTime)
	if matchTime == nil {
		return nil, nil
	}
	if _, err := time.Parse("15:04", *matchTime); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMatchTime, *matchTime)
	}
	return matchTime, nil
}

// isValidStatusTransition: scheduled -> live|completed|cancelled, live -> completed|cancelled.
// Завершенные и отмененные матчи статус не меняют.
func isValidStatusTransition(current, next models.MatchStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.MatchStatus][]models.MatchStatus{
		models.MatchStatusScheduled: {models.MatchStatusLive, models.MatchStatusCompleted, models.MatchStatusCancelled},
		models.MatchStatusLive:      {models.MatchStatusCompleted, models.MatchStatusCancelled},
		models.MatchStatusCompleted: {},
		models.MatchStatusCancelled: {},
	}
	for _, allowedNextStatus := range allowedTransitions[current] {
		if next == allowedNextStatus {
			return true
		}
	}
	return false
}

// --- Заполнение URL логотипов ---

func populateTeamLogoURLFunc(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.LogoKey)
		if url != "" {
			team.LogoURL = &url
		}
	}
}

func populateTeamsLogoURLFunc(teams []models.Team, uploader storage.FileUploader) {
	for i := range teams {
		populateTeamLogoURLFunc(&teams[i], uploader)
	}
}

func populateMatchTeamsLogoURLFunc(matches []models.Match, uploader storage.FileUploader) {
	for i := range matches {
		populateTeamLogoURLFunc(matches[i].HomeTeam, uploader)
		populateTeamLogoURLFunc(matches[i].AwayTeam, uploader)
	}
}
