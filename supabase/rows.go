package supabase

import (
	"time"

	"github.com/Dosada05/football-console/models"
	"github.com/google/uuid"
)

// teamRow mirrors the teams table; models.Team hides logo_key from JSON.
type teamRow struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	LogoURL   *string    `json:"logo_url"`
	LogoKey   *string    `json:"logo_key"`
	CreatedBy *uuid.UUID `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}

func (r teamRow) toModel() models.Team {
	return models.Team{
		ID:        r.ID,
		Name:      r.Name,
		LogoURL:   r.LogoURL,
		LogoKey:   r.LogoKey,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
	}
}

type teamInsert struct {
	Name      string     `json:"name"`
	LogoURL   *string    `json:"logo_url,omitempty"`
	LogoKey   *string    `json:"logo_key,omitempty"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
}

type membershipRow struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	TeamID       uuid.UUID `json:"team_id"`
	CreatedAt    time.Time `json:"created_at"`
	Team         *teamRow  `json:"team"`
}

func (r membershipRow) toModel() models.Membership {
	m := models.Membership{TournamentID: r.TournamentID, TeamID: r.TeamID, CreatedAt: r.CreatedAt}
	if r.Team != nil {
		team := r.Team.toModel()
		m.Team = &team
	}
	return m
}

type membershipInsert struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	TeamID       uuid.UUID `json:"team_id"`
}

type tournamentInsert struct {
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	StartDate   models.Date `json:"start_date"`
	EndDate     models.Date `json:"end_date"`
	CreatedBy   uuid.UUID   `json:"created_by"`
}

type playerInsert struct {
	Name     string     `json:"name"`
	Email    *string    `json:"email"`
	Position *string    `json:"position"`
	TeamID   *uuid.UUID `json:"team_id"`
}

type matchInsert struct {
	TournamentID uuid.UUID          `json:"tournament_id"`
	HomeTeamID   uuid.UUID          `json:"home_team_id"`
	AwayTeamID   uuid.UUID          `json:"away_team_id"`
	MatchDate    models.Date        `json:"match_date"`
	MatchTime    *string            `json:"match_time"`
	Venue        *string            `json:"venue"`
	Status       models.MatchStatus `json:"status"`
}

func newMatchInsert(m *models.Match) matchInsert {
	return matchInsert{
		TournamentID: m.TournamentID,
		HomeTeamID:   m.HomeTeamID,
		AwayTeamID:   m.AwayTeamID,
		MatchDate:    m.MatchDate,
		MatchTime:    m.MatchTime,
		Venue:        m.Venue,
		Status:       m.Status,
	}
}

const (
	tableTournaments     = "tournaments"
	tableTeams           = "teams"
	tablePlayers         = "players"
	tableTournamentTeams = "tournament_teams"
	tableMatches         = "matches"

	playerSelect     = "*, team:teams(id,name)"
	membershipSelect = "tournament_id,team_id,created_at,team:teams(*)"
	matchSelect      = "*, tournament:tournaments(id,name), " +
		"home_team:teams!matches_home_team_id_fkey(id,name), " +
		"away_team:teams!matches_away_team_id_fkey(id,name)"
)
