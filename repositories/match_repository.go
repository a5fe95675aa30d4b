package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/football-console/models"
	"github.com/google/uuid"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchSameTeams         = errors.New("home and away team must differ")
	ErrMatchTeamInvalid       = errors.New("invalid team reference for match")
	ErrMatchTournamentInvalid = errors.New("invalid tournament reference for match")
	ErrMatchInvalidScore      = errors.New("match score must not be negative")
)

type MatchFilter struct {
	TournamentID *uuid.UUID
	Status       *models.MatchStatus
}

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	// CreateMany сохраняет все матчи в одной транзакции.
	CreateMany(ctx context.Context, matches []*models.Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	// List возвращает матчи по дате и времени вместе с названиями команд и турнира.
	List(ctx context.Context, filter MatchFilter) ([]models.Match, error)
	UpdateScore(ctx context.Context, id uuid.UUID, homeScore, awayScore int) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[models.MatchStatus]int, error)
	// HasMatchesForTeams сообщает, есть ли в турнире матчи с участием любой из команд.
	HasMatchesForTeams(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) (bool, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchSelectSQL = `
	SELECT m.id, m.tournament_id, m.home_team_id, m.away_team_id, m.match_date, m.match_time,
	       m.venue, m.status, m.home_score, m.away_score, m.created_at,
	       ht.name, at.name, tr.name
	FROM matches m
	JOIN teams ht ON ht.id = m.home_team_id
	JOIN teams at ON at.id = m.away_team_id
	JOIN tournaments tr ON tr.id = m.tournament_id`

func scanMatch(s rowScanner, m *models.Match) error {
	var homeName, awayName, tournamentName string
	err := s.Scan(
		&m.ID, &m.TournamentID, &m.HomeTeamID, &m.AwayTeamID, &m.MatchDate, &m.MatchTime,
		&m.Venue, &m.Status, &m.HomeScore, &m.AwayScore, &m.CreatedAt,
		&homeName, &awayName, &tournamentName,
	)
	if err != nil {
		return err
	}
	m.HomeTeam = &models.Team{ID: m.HomeTeamID, Name: homeName}
	m.AwayTeam = &models.Team{ID: m.AwayTeamID, Name: awayName}
	m.Tournament = &models.Tournament{ID: m.TournamentID, Name: tournamentName}
	return nil
}

func (r *postgresMatchRepository) insert(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	query := `
		INSERT INTO matches (tournament_id, home_team_id, away_team_id, match_date, match_time, venue, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		m.TournamentID, m.HomeTeamID, m.AwayTeamID, m.MatchDate, m.MatchTime, m.Venue, m.Status,
	).Scan(&m.ID, &m.CreatedAt)
	return r.handleMatchError(err, "create")
}

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	return r.insert(ctx, nil, m)
}

func (r *postgresMatchRepository) CreateMany(ctx context.Context, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, m := range matches {
			if err := r.insert(ctx, tx, m); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	m := &models.Match{}
	if err := scanMatch(r.db.QueryRowContext(ctx, matchSelectSQL+` WHERE m.id = $1`, id), m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	return m, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, filter MatchFilter) ([]models.Match, error) {
	query := matchSelectSQL + ` WHERE 1=1`
	args := []interface{}{}

	if filter.TournamentID != nil {
		args = append(args, *filter.TournamentID)
		query += fmt.Sprintf(" AND m.tournament_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND m.status = $%d", len(args))
	}
	query += " ORDER BY m.match_date ASC, m.match_time ASC NULLS LAST, m.created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := scanMatch(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateScore(ctx context.Context, id uuid.UUID, homeScore, awayScore int) error {
	query := `UPDATE matches SET home_score = $1, away_score = $2, status = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, homeScore, awayScore, models.MatchStatusCompleted, id)
	if err != nil {
		return r.handleMatchError(err, "update score of")
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE matches SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return r.handleMatchError(err, "update status of")
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) CountByStatus(ctx context.Context) (map[models.MatchStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM matches GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.MatchStatus]int)
	for rows.Next() {
		var status models.MatchStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan match count: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match counts: %w", err)
	}
	return counts, nil
}

func (r *postgresMatchRepository) handleMatchError(err error, op string) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := asPQError(err); ok {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			switch pqErr.Constraint {
			case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
				return ErrMatchTeamInvalid
			case "matches_tournament_id_fkey":
				return ErrMatchTournamentInvalid
			}
		case pqCheckViolation:
			switch pqErr.Constraint {
			case "matches_distinct_teams":
				return ErrMatchSameTeams
			case "matches_scores_non_negative":
				return ErrMatchInvalidScore
			}
		}
	}
	return fmt.Errorf("failed to %s match: %w", op, err)
}

func (r *postgresMatchRepository) HasMatchesForTeams(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) (bool, error) {
	if len(teamIDs) == 0 {
		return false, nil
	}
	query := `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE tournament_id = $1
			  AND (home_team_id = ANY($2::uuid[]) OR away_team_id = ANY($2::uuid[]))
		)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, tournamentID, uuidArray(teamIDs)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check team matches: %w", err)
	}
	return exists, nil
}
