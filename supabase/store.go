package supabase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/football-console/models"
	"github.com/Dosada05/football-console/repositories"
	"github.com/google/uuid"
)

// TokenSource returns the access token of the current request, or "" to use the anon key.
type TokenSource func(ctx context.Context) string

// Store exposes the repository interfaces backed by the hosted data API.
type Store struct {
	client *Client
	token  TokenSource
	logger *slog.Logger
}

func NewStore(client *Client, token TokenSource, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{client: client, token: token, logger: logger}
}

func (s *Store) Tournaments() repositories.TournamentRepository { return &tournamentStore{s} }
func (s *Store) Teams() repositories.TeamRepository             { return &teamStore{s} }
func (s *Store) Players() repositories.PlayerRepository         { return &playerStore{s} }
func (s *Store) Memberships() repositories.MembershipRepository { return &membershipStore{s} }
func (s *Store) Matches() repositories.MatchRepository          { return &matchStore{s} }

func (s *Store) from(ctx context.Context, table string) *QueryBuilder {
	q := s.client.From(table)
	if s.token != nil {
		if token := s.token(ctx); token != "" {
			q.WithToken(token)
		}
	}
	return q
}

// mentions reports whether the PostgREST error names the given constraint.
func mentions(e *Error, constraint string) bool {
	return strings.Contains(e.Message, constraint) || strings.Contains(e.Details, constraint)
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// --- tournaments ---

type tournamentStore struct{ s *Store }

func (r *tournamentStore) mapError(err error, op string) error {
	if sbErr, ok := asError(err); ok {
		switch sbErr.Code {
		case codeCheckViolation:
			return repositories.ErrTournamentInvalidDates
		case codeForeignKeyViolation:
			if mentions(sbErr, "tournaments_created_by_fkey") {
				return repositories.ErrTournamentInvalidCreator
			}
		}
	}
	return fmt.Errorf("failed to %s tournament: %w", op, err)
}

func (r *tournamentStore) Create(ctx context.Context, t *models.Tournament) error {
	var created []models.Tournament
	err := r.s.from(ctx, tableTournaments).
		Insert(tournamentInsert{
			Name:        t.Name,
			Description: t.Description,
			StartDate:   t.StartDate,
			EndDate:     t.EndDate,
			CreatedBy:   t.CreatedBy,
		}).
		ExecuteInto(ctx, &created)
	if err != nil {
		return r.mapError(err, "create")
	}
	if len(created) == 0 {
		return errors.New("failed to create tournament: empty response")
	}
	t.ID = created[0].ID
	t.CreatedAt = created[0].CreatedAt
	return nil
}

func (r *tournamentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	var rows []models.Tournament
	if err := r.s.from(ctx, tableTournaments).Select("*").Eq("id", id).Limit(1).ExecuteInto(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to get tournament %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, repositories.ErrTournamentNotFound
	}
	return &rows[0], nil
}

func (r *tournamentStore) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	q := r.s.from(ctx, tableTournaments).Select("*")
	if filter.CreatedBy != nil {
		q.Eq("created_by", *filter.CreatedBy)
	}
	if filter.OrderBy == repositories.TournamentOrderName {
		q.Order("name", true)
	} else {
		q.Order("created_at", false)
	}

	tournaments := make([]models.Tournament, 0)
	if err := q.ExecuteInto(ctx, &tournaments); err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (r *tournamentStore) Update(ctx context.Context, t *models.Tournament) error {
	n, err := r.s.from(ctx, tableTournaments).
		Update(map[string]interface{}{
			"name":        t.Name,
			"description": t.Description,
			"start_date":  t.StartDate,
			"end_date":    t.EndDate,
		}).
		Eq("id", t.ID).
		ExecuteAffected(ctx)
	if err != nil {
		return r.mapError(err, "update")
	}
	if n == 0 {
		return repositories.ErrTournamentNotFound
	}
	return nil
}

func (r *tournamentStore) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.s.from(ctx, tableTournaments).Delete().Eq("id", id).ExecuteAffected(ctx)
	if err != nil {
		return r.mapError(err, "delete")
	}
	if n == 0 {
		return repositories.ErrTournamentNotFound
	}
	return nil
}

func (r *tournamentStore) Count(ctx context.Context) (int, error) {
	n, err := r.s.from(ctx, tableTournaments).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count tournaments: %w", err)
	}
	return n, nil
}

// --- teams ---

type teamStore struct{ s *Store }

func (r *teamStore) mapError(err error, op string) error {
	if sbErr, ok := asError(err); ok {
		switch sbErr.Code {
		case codeUniqueViolation:
			return repositories.ErrTeamNameConflict
		case codeForeignKeyViolation:
			return repositories.ErrTeamInUse
		}
	}
	return fmt.Errorf("failed to %s team: %w", op, err)
}

func (r *teamStore) Create(ctx context.Context, team *models.Team) error {
	var created []teamRow
	err := r.s.from(ctx, tableTeams).
		Insert(teamInsert{Name: team.Name, LogoURL: team.LogoURL, LogoKey: team.LogoKey, CreatedBy: team.CreatedBy}).
		ExecuteInto(ctx, &created)
	if err != nil {
		return r.mapError(err, "create")
	}
	if len(created) == 0 {
		return errors.New("failed to create team: empty response")
	}
	team.ID = created[0].ID
	team.CreatedAt = created[0].CreatedAt
	return nil
}

func (r *teamStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var rows []teamRow
	if err := r.s.from(ctx, tableTeams).Select("*").Eq("id", id).Limit(1).ExecuteInto(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to get team %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, repositories.ErrTeamNotFound
	}
	team := rows[0].toModel()
	return &team, nil
}

func (r *teamStore) List(ctx context.Context, order repositories.TeamOrder) ([]models.Team, error) {
	q := r.s.from(ctx, tableTeams).Select("*")
	if order == repositories.TeamOrderName {
		q.Order("name", true)
	} else {
		q.Order("created_at", false)
	}
	return fetchTeams(ctx, q)
}

func fetchTeams(ctx context.Context, q *QueryBuilder) ([]models.Team, error) {
	var rows []teamRow
	if err := q.ExecuteInto(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	teams := make([]models.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, row.toModel())
	}
	return teams, nil
}

func (r *teamStore) Update(ctx context.Context, team *models.Team) error {
	n, err := r.s.from(ctx, tableTeams).
		Update(map[string]interface{}{"name": team.Name, "logo_url": team.LogoURL}).
		Eq("id", team.ID).
		ExecuteAffected(ctx)
	if err != nil {
		return r.mapError(err, "update")
	}
	if n == 0 {
		return repositories.ErrTeamNotFound
	}
	return nil
}

func (r *teamStore) UpdateLogoKey(ctx context.Context, id uuid.UUID, logoKey *string) error {
	n, err := r.s.from(ctx, tableTeams).
		Update(map[string]interface{}{"logo_key": logoKey}).
		Eq("id", id).
		ExecuteAffected(ctx)
	if err != nil {
		return r.mapError(err, "update logo of")
	}
	if n == 0 {
		return repositories.ErrTeamNotFound
	}
	return nil
}

func (r *teamStore) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.s.from(ctx, tableTeams).Delete().Eq("id", id).ExecuteAffected(ctx)
	if err != nil {
		return r.mapError(err, "delete")
	}
	if n == 0 {
		return repositories.ErrTeamNotFound
	}
	return nil
}

func (r *teamStore) Count(ctx context.Context) (int, error) {
	n, err := r.s.from(ctx, tableTeams).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return n, nil
}

// --- players ---

type playerStore struct{ s *Store }

func (r *playerStore) Create(ctx context.Context, p *models.Player) error {
	var created []models.Player
	err := r.s.from(ctx, tablePlayers).
		Insert(playerInsert{Name: p.Name, Email: p.Email, Position: p.Position, TeamID: p.TeamID}).
		ExecuteInto(ctx, &created)
	if err != nil {
		if sbErr, ok := asError(err); ok && sbErr.Code == codeForeignKeyViolation {
			return repositories.ErrPlayerTeamInvalid
		}
		return fmt.Errorf("failed to create player: %w", err)
	}
	if len(created) == 0 {
		return errors.New("failed to create player: empty response")
	}
	p.ID = created[0].ID
	p.CreatedAt = created[0].CreatedAt
	return nil
}

func (r *playerStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	var rows []models.Player
	if err := r.s.from(ctx, tablePlayers).Select(playerSelect).Eq("id", id).Limit(1).ExecuteInto(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, repositories.ErrPlayerNotFound
	}
	return &rows[0], nil
}

func (r *playerStore) List(ctx context.Context) ([]models.Player, error) {
	players := make([]models.Player, 0)
	if err := r.s.from(ctx, tablePlayers).Select(playerSelect).Order("name", true).ExecuteInto(ctx, &players); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (r *playerStore) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.s.from(ctx, tablePlayers).Delete().Eq("id", id).ExecuteAffected(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	if n == 0 {
		return repositories.ErrPlayerNotFound
	}
	return nil
}

func (r *playerStore) Count(ctx context.Context) (int, error) {
	n, err := r.s.from(ctx, tablePlayers).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return n, nil
}
