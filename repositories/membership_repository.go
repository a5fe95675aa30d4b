package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/football-console/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrMembershipNotFound          = errors.New("team is not assigned to this tournament")
	ErrMembershipTournamentInvalid = errors.New("invalid tournament reference for membership")
	ErrMembershipTeamInvalid       = errors.New("invalid team reference for membership")
	ErrMembershipInUse             = errors.New("team has matches in this tournament")
)

type MembershipRepository interface {
	// AddTeams добавляет команды в турнир, пропуская уже назначенные. Возвращает число добавленных.
	AddTeams(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) (int, error)
	// ReplaceForTournament заменяет весь набор команд турнира.
	ReplaceForTournament(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) error
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Membership, error)
	ListAll(ctx context.Context) ([]models.Membership, error)
	ListAvailableTeams(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error)
	Exists(ctx context.Context, tournamentID, teamID uuid.UUID) (bool, error)
	Remove(ctx context.Context, tournamentID, teamID uuid.UUID) error
}

type postgresMembershipRepository struct {
	db *sql.DB
}

func NewPostgresMembershipRepository(db *sql.DB) MembershipRepository {
	return &postgresMembershipRepository{db: db}
}

const membershipSelectSQL = `
	SELECT tt.tournament_id, tt.team_id, tt.created_at,
	       t.id, t.name, t.logo_url, t.logo_key, t.created_by, t.created_at
	FROM tournament_teams tt
	JOIN teams t ON t.id = tt.team_id`

const membershipInsertSQL = `
	INSERT INTO tournament_teams (tournament_id, team_id)
	SELECT $1, unnest($2::uuid[])
	ON CONFLICT (tournament_id, team_id) DO NOTHING`

func uuidArray(ids []uuid.UUID) interface{} {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return pq.Array(strs)
}

func (r *postgresMembershipRepository) AddTeams(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) (int, error) {
	if len(teamIDs) == 0 {
		return 0, nil
	}
	result, err := r.db.ExecContext(ctx, membershipInsertSQL, tournamentID, uuidArray(teamIDs))
	if err != nil {
		return 0, r.handleMembershipError(err, "add teams to")
	}
	added, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return int(added), nil
}

func (r *postgresMembershipRepository) ReplaceForTournament(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tournament_teams WHERE tournament_id = $1`, tournamentID); err != nil {
			return r.handleMembershipError(err, "clear teams of")
		}
		if len(teamIDs) == 0 {
			return nil
		}
		if _, err := tx.ExecContext(ctx, membershipInsertSQL, tournamentID, uuidArray(teamIDs)); err != nil {
			return r.handleMembershipError(err, "assign teams to")
		}
		return nil
	})
}

func (r *postgresMembershipRepository) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Membership, error) {
	return r.queryMemberships(ctx,
		membershipSelectSQL+` WHERE tt.tournament_id = $1 ORDER BY tt.created_at ASC, tt.team_id ASC`,
		tournamentID)
}

func (r *postgresMembershipRepository) ListAll(ctx context.Context) ([]models.Membership, error) {
	return r.queryMemberships(ctx, membershipSelectSQL+` ORDER BY tt.tournament_id, tt.created_at ASC, tt.team_id ASC`)
}

func (r *postgresMembershipRepository) queryMemberships(ctx context.Context, query string, args ...interface{}) ([]models.Membership, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	memberships := make([]models.Membership, 0)
	for rows.Next() {
		var m models.Membership
		team := &models.Team{}
		err := rows.Scan(
			&m.TournamentID, &m.TeamID, &m.CreatedAt,
			&team.ID, &team.Name, &team.LogoURL, &team.LogoKey, &team.CreatedBy, &team.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		m.Team = team
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", err)
	}
	return memberships, nil
}

func (r *postgresMembershipRepository) ListAvailableTeams(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams
		WHERE id NOT IN (SELECT team_id FROM tournament_teams WHERE tournament_id = $1)
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list available teams: %w", err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := scanTeam(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}
	return teams, nil
}

func (r *postgresMembershipRepository) Exists(ctx context.Context, tournamentID, teamID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM tournament_teams WHERE tournament_id = $1 AND team_id = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, tournamentID, teamID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

func (r *postgresMembershipRepository) Remove(ctx context.Context, tournamentID, teamID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tournament_teams WHERE tournament_id = $1 AND team_id = $2`, tournamentID, teamID)
	if err != nil {
		return r.handleMembershipError(err, "remove team from")
	}
	return checkAffectedRows(result, ErrMembershipNotFound)
}

func (r *postgresMembershipRepository) handleMembershipError(err error, op string) error {
	if pqErr, ok := asPQError(err); ok && pqErr.Code == pqForeignKeyViolation {
		switch pqErr.Constraint {
		case "tournament_teams_tournament_id_fkey":
			return ErrMembershipTournamentInvalid
		case "tournament_teams_team_id_fkey":
			return ErrMembershipTeamInvalid
		default:
			return ErrMembershipInUse
		}
	}
	return fmt.Errorf("failed to %s tournament: %w", op, err)
}
