package supabase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/football-console/models"
	"github.com/Dosada05/football-console/repositories"
	"github.com/google/uuid"
)

// --- memberships ---

type membershipStore struct{ s *Store }

func (r *membershipStore) mapError(err error, op string) error {
	if sbErr, ok := asError(err); ok && sbErr.Code == codeForeignKeyViolation {
		switch {
		case mentions(sbErr, "tournament_teams_tournament_id_fkey"):
			return repositories.ErrMembershipTournamentInvalid
		case mentions(sbErr, "tournament_teams_team_id_fkey"):
			return repositories.ErrMembershipTeamInvalid
		default:
			return repositories.ErrMembershipInUse
		}
	}
	return fmt.Errorf("failed to %s tournament: %w", op, err)
}

func membershipRows(tournamentID uuid.UUID, teamIDs []uuid.UUID) []membershipInsert {
	rows := make([]membershipInsert, 0, len(teamIDs))
	for _, id := range teamIDs {
		rows = append(rows, membershipInsert{TournamentID: tournamentID, TeamID: id})
	}
	return rows
}

func (r *membershipStore) insert(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) (int, error) {
	return r.s.from(ctx, tableTournamentTeams).
		InsertIgnoringDuplicates(membershipRows(tournamentID, teamIDs), "tournament_id,team_id").
		ExecuteAffected(ctx)
}

func (r *membershipStore) AddTeams(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) (int, error) {
	if len(teamIDs) == 0 {
		return 0, nil
	}
	n, err := r.insert(ctx, tournamentID, teamIDs)
	if err != nil {
		return 0, r.mapError(err, "add teams to")
	}
	return n, nil
}

// ReplaceForTournament is not atomic over the REST API: it deletes the current
// set and then inserts the new one. When the insert fails the previous set is
// written back; if that also fails both errors are returned.
func (r *membershipStore) ReplaceForTournament(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) error {
	var previous []membershipInsert
	err := r.s.from(ctx, tableTournamentTeams).
		Select("tournament_id,team_id").
		Eq("tournament_id", tournamentID).
		ExecuteInto(ctx, &previous)
	if err != nil {
		return fmt.Errorf("failed to read current teams of tournament: %w", err)
	}

	if _, err := r.s.from(ctx, tableTournamentTeams).Delete().Eq("tournament_id", tournamentID).ExecuteAffected(ctx); err != nil {
		return r.mapError(err, "clear teams of")
	}
	if len(teamIDs) == 0 {
		return nil
	}

	if _, err := r.insert(ctx, tournamentID, teamIDs); err != nil {
		insertErr := r.mapError(err, "assign teams to")
		if len(previous) == 0 {
			return insertErr
		}

		prevIDs := make([]uuid.UUID, 0, len(previous))
		for _, p := range previous {
			prevIDs = append(prevIDs, p.TeamID)
		}
		if _, restoreErr := r.insert(ctx, tournamentID, prevIDs); restoreErr != nil {
			r.s.logger.ErrorContext(ctx, "failed to restore tournament teams after replace error",
				slog.String("tournament_id", tournamentID.String()),
				slog.Int("previous_teams", len(prevIDs)),
				slog.Any("error", restoreErr))
			return errors.Join(insertErr, fmt.Errorf("restore previous teams: %w", restoreErr))
		}
		r.s.logger.WarnContext(ctx, "tournament teams restored after replace error",
			slog.String("tournament_id", tournamentID.String()),
			slog.Any("error", err))
		return insertErr
	}
	return nil
}

func (r *membershipStore) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]models.Membership, error) {
	return r.fetch(ctx, r.s.from(ctx, tableTournamentTeams).
		Select(membershipSelect).
		Eq("tournament_id", tournamentID).
		Order("created_at", true).
		Order("team_id", true))
}

func (r *membershipStore) ListAll(ctx context.Context) ([]models.Membership, error) {
	return r.fetch(ctx, r.s.from(ctx, tableTournamentTeams).
		Select(membershipSelect).
		Order("tournament_id", true).
		Order("created_at", true).
		Order("team_id", true))
}

func (r *membershipStore) fetch(ctx context.Context, q *QueryBuilder) ([]models.Membership, error) {
	var rows []membershipRow
	if err := q.ExecuteInto(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	memberships := make([]models.Membership, 0, len(rows))
	for _, row := range rows {
		memberships = append(memberships, row.toModel())
	}
	return memberships, nil
}

func (r *membershipStore) ListAvailableTeams(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error) {
	var assigned []membershipInsert
	err := r.s.from(ctx, tableTournamentTeams).
		Select("team_id").
		Eq("tournament_id", tournamentID).
		ExecuteInto(ctx, &assigned)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned teams: %w", err)
	}

	q := r.s.from(ctx, tableTeams).Select("*").Order("name", true)
	if len(assigned) > 0 {
		ids := make([]uuid.UUID, 0, len(assigned))
		for _, a := range assigned {
			ids = append(ids, a.TeamID)
		}
		q.NotIn("id", uuidStrings(ids))
	}
	return fetchTeams(ctx, q)
}

func (r *membershipStore) Exists(ctx context.Context, tournamentID, teamID uuid.UUID) (bool, error) {
	var rows []membershipInsert
	err := r.s.from(ctx, tableTournamentTeams).
		Select("tournament_id,team_id").
		Eq("tournament_id", tournamentID).
		Eq("team_id", teamID).
		Limit(1).
		ExecuteInto(ctx, &rows)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return len(rows) > 0, nil
}

func (r *membershipStore) Remove(ctx context.Context, tournamentID, teamID uuid.UUID) error {
	n, err := r.s.from(ctx, tableTournamentTeams).
		Delete().
		Eq("tournament_id", tournamentID).
		Eq("team_id", teamID).
		ExecuteAffected(ctx)
	if err != nil {
		return r.mapError(err, "remove team from")
	}
	if n == 0 {
		return repositories.ErrMembershipNotFound
	}
	return nil
}

// --- matches ---

type matchStore struct{ s *Store }

func (r *matchStore) mapError(err error, op string) error {
	if sbErr, ok := asError(err); ok {
		switch sbErr.Code {
		case codeForeignKeyViolation:
			if mentions(sbErr, "matches_tournament_id_fkey") {
				return repositories.ErrMatchTournamentInvalid
			}
			return repositories.ErrMatchTeamInvalid
		case codeCheckViolation:
			if mentions(sbErr, "matches_scores_non_negative") {
				return repositories.ErrMatchInvalidScore
			}
			return repositories.ErrMatchSameTeams
		}
	}
	return fmt.Errorf("failed to %s match: %w", op, err)
}

func (r *matchStore) Create(ctx context.Context, m *models.Match) error {
	return r.CreateMany(ctx, []*models.Match{m})
}

// CreateMany sends one bulk insert, which PostgREST runs as a single statement.
func (r *matchStore) CreateMany(ctx context.Context, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	payload := make([]matchInsert, 0, len(matches))
	for _, m := range matches {
		payload = append(payload, newMatchInsert(m))
	}

	var created []models.Match
	if err := r.s.from(ctx, tableMatches).Insert(payload).ExecuteInto(ctx, &created); err != nil {
		return r.mapError(err, "create")
	}
	if len(created) != len(matches) {
		return fmt.Errorf("failed to create matches: expected %d rows, got %d", len(matches), len(created))
	}
	for i := range matches {
		matches[i].ID = created[i].ID
		matches[i].CreatedAt = created[i].CreatedAt
	}
	return nil
}

func (r *matchStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	var rows []models.Match
	if err := r.s.from(ctx, tableMatches).Select(matchSelect).Eq("id", id).Limit(1).ExecuteInto(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, repositories.ErrMatchNotFound
	}
	return &rows[0], nil
}

func (r *matchStore) List(ctx context.Context, filter repositories.MatchFilter) ([]models.Match, error) {
	q := r.s.from(ctx, tableMatches).Select(matchSelect)
	if filter.TournamentID != nil {
		q.Eq("tournament_id", *filter.TournamentID)
	}
	if filter.Status != nil {
		q.Eq("status", *filter.Status)
	}
	q.Order("match_date", true).Order("match_time", true)

	matches := make([]models.Match, 0)
	if err := q.ExecuteInto(ctx, &matches); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (r *matchStore) update(ctx context.Context, id uuid.UUID, fields map[string]interface{}, op string) error {
	n, err := r.s.from(ctx, tableMatches).Update(fields).Eq("id", id).ExecuteAffected(ctx)
	if err != nil {
		return r.mapError(err, op)
	}
	if n == 0 {
		return repositories.ErrMatchNotFound
	}
	return nil
}

func (r *matchStore) UpdateScore(ctx context.Context, id uuid.UUID, homeScore, awayScore int) error {
	return r.update(ctx, id, map[string]interface{}{
		"home_score": homeScore,
		"away_score": awayScore,
		"status":     models.MatchStatusCompleted,
	}, "update score of")
}

func (r *matchStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchStatus) error {
	return r.update(ctx, id, map[string]interface{}{"status": status}, "update status of")
}

func (r *matchStore) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.s.from(ctx, tableMatches).Delete().Eq("id", id).ExecuteAffected(ctx)
	if err != nil {
		return r.mapError(err, "delete")
	}
	if n == 0 {
		return repositories.ErrMatchNotFound
	}
	return nil
}

func (r *matchStore) CountByStatus(ctx context.Context) (map[models.MatchStatus]int, error) {
	var rows []struct {
		Status models.MatchStatus `json:"status"`
	}
	if err := r.s.from(ctx, tableMatches).Select("status").ExecuteInto(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}
	counts := make(map[models.MatchStatus]int)
	for _, row := range rows {
		counts[row.Status]++
	}
	return counts, nil
}

// HasMatchesForTeams делает два запроса: PostgREST-фильтры объединяются только через AND.
func (r *matchStore) HasMatchesForTeams(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) (bool, error) {
	if len(teamIDs) == 0 {
		return false, nil
	}
	ids := uuidStrings(teamIDs)
	for _, column := range []string{"home_team_id", "away_team_id"} {
		var rows []struct {
			ID uuid.UUID `json:"id"`
		}
		err := r.s.from(ctx, tableMatches).
			Select("id").
			Eq("tournament_id", tournamentID).
			In(column, ids).
			Limit(1).
			ExecuteInto(ctx, &rows)
		if err != nil {
			return false, fmt.Errorf("failed to check team matches: %w", err)
		}
		if len(rows) > 0 {
			return true, nil
		}
	}
	return false, nil
}
