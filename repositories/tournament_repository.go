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
	ErrTournamentNotFound       = errors.New("tournament not found")
	ErrTournamentInvalidCreator = errors.New("invalid tournament creator reference")
	ErrTournamentInvalidDates   = errors.New("tournament end date precedes start date")
)

// TournamentOrder задаёт порядок выборки списка турниров.
type TournamentOrder string

const (
	TournamentOrderNewest TournamentOrder = "newest"
	TournamentOrderName   TournamentOrder = "name"
)

type ListTournamentsFilter struct {
	CreatedBy *uuid.UUID
	OrderBy   TournamentOrder
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, name, description, start_date, end_date, created_by, created_at`

func scanTournament(s rowScanner, t *models.Tournament) error {
	return s.Scan(&t.ID, &t.Name, &t.Description, &t.StartDate, &t.EndDate, &t.CreatedBy, &t.CreatedAt)
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, description, start_date, end_date, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.Description, t.StartDate, t.EndDate, t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt)

	return r.handleTournamentError(err, "create")
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t := &models.Tournament{}
	err := scanTournament(r.db.QueryRowContext(ctx, query, id), t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE 1=1`
	args := []interface{}{}

	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		query += fmt.Sprintf(" AND created_by = $%d", len(args))
	}

	switch filter.OrderBy {
	case TournamentOrderName:
		query += " ORDER BY name ASC"
	default:
		query += " ORDER BY created_at DESC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := scanTournament(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments
		SET name = $1, description = $2, start_date = $3, end_date = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, t.Name, t.Description, t.StartDate, t.EndDate, t.ID)
	if err != nil {
		return r.handleTournamentError(err, "update")
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// Delete удаляет турнир; членства и матчи удаляются каскадно (ON DELETE CASCADE).
func (r *postgresTournamentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tournaments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tournaments: %w", err)
	}
	return count, nil
}

func (r *postgresTournamentRepository) handleTournamentError(err error, op string) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := asPQError(err); ok {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			if pqErr.Constraint == "tournaments_created_by_fkey" {
				return ErrTournamentInvalidCreator
			}
		case pqCheckViolation:
			return ErrTournamentInvalidDates
		}
	}
	return fmt.Errorf("failed to %s tournament: %w", op, err)
}
