package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/football-console/models"
	"github.com/Dosada05/football-console/repositories"
	"github.com/Dosada05/football-console/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type MembershipService interface {
	// AssignTeams добавляет команды в турнир, уже назначенные пропускаются.
	AssignTeams(ctx context.Context, tournamentID uuid.UUID, currentUserID uuid.UUID, teamIDs []uuid.UUID) (int, error)
	// ReplaceTeams заменяет весь состав турнира.
	ReplaceTeams(ctx context.Context, tournamentID uuid.UUID, currentUserID uuid.UUID, teamIDs []uuid.UUID) error
	ListTeams(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error)
	ListAvailableTeams(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error)
	RemoveTeam(ctx context.Context, tournamentID uuid.UUID, currentUserID uuid.UUID, teamID uuid.UUID) error
	ListTournamentsWithTeams(ctx context.Context) ([]models.Tournament, error)
}

type membershipService struct {
	tournamentRepo repositories.TournamentRepository
	membershipRepo repositories.MembershipRepository
	matchRepo      repositories.MatchRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewMembershipService(
	tournamentRepo repositories.TournamentRepository,
	membershipRepo repositories.MembershipRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) MembershipService {
	return &membershipService{
		tournamentRepo: tournamentRepo,
		membershipRepo: membershipRepo,
		matchRepo:      matchRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *membershipService) AssignTeams(ctx context.Context, tournamentID uuid.UUID, currentUserID uuid.UUID, teamIDs []uuid.UUID) (int, error) {
	teamIDs = uniqueIDs(teamIDs)
	if len(teamIDs) == 0 {
		return 0, ErrTeamsRequired
	}
	if _, err := getOwnedTournament(ctx, s.tournamentRepo, tournamentID, currentUserID); err != nil {
		return 0, err
	}

	added, err := s.membershipRepo.AddTeams(ctx, tournamentID, teamIDs)
	if err != nil {
		return 0, handleMembershipRepositoryError(err)
	}
	s.logger.InfoContext(ctx, "teams assigned to tournament",
		slog.String("tournament_id", tournamentID.String()), slog.Int("requested", len(teamIDs)), slog.Int("added", added))
	return added, nil
}

func (s *membershipService) ReplaceTeams(ctx context.Context, tournamentID uuid.UUID, currentUserID uuid.UUID, teamIDs []uuid.UUID) error {
	teamIDs = uniqueIDs(teamIDs)
	if _, err := getOwnedTournament(ctx, s.tournamentRepo, tournamentID, currentUserID); err != nil {
		return err
	}
	current, err := s.membershipRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to list tournament teams: %w", err)
	}
	keep := make(map[uuid.UUID]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		keep[id] = struct{}{}
	}
	var dropped []uuid.UUID
	for _, m := range current {
		if _, ok := keep[m.TeamID]; !ok {
			dropped = append(dropped, m.TeamID)
		}
	}
	if err := s.ensureNoMatches(ctx, tournamentID, dropped); err != nil {
		return err
	}

	if err := s.membershipRepo.ReplaceForTournament(ctx, tournamentID, teamIDs); err != nil {
		return handleMembershipRepositoryError(err)
	}
	s.logger.InfoContext(ctx, "tournament teams replaced",
		slog.String("tournament_id", tournamentID.String()), slog.Int("teams", len(teamIDs)))
	return nil
}

func (s *membershipService) ListTeams(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleTournamentRepositoryError(err)
	}
	memberships, err := s.membershipRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournament teams: %w", err)
	}
	return membershipTeams(memberships, s.uploader), nil
}

func (s *membershipService) ListAvailableTeams(ctx context.Context, tournamentID uuid.UUID) ([]models.Team, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleTournamentRepositoryError(err)
	}
	teams, err := s.membershipRepo.ListAvailableTeams(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list available teams: %w", err)
	}
	if teams == nil {
		return []models.Team{}, nil
	}
	populateTeamsLogoURLFunc(teams, s.uploader)
	return teams, nil
}

func (s *membershipService) RemoveTeam(ctx context.Context, tournamentID uuid.UUID, currentUserID uuid.UUID, teamID uuid.UUID) error {
	if _, err := getOwnedTournament(ctx, s.tournamentRepo, tournamentID, currentUserID); err != nil {
		return err
	}
	if err := s.ensureNoMatches(ctx, tournamentID, []uuid.UUID{teamID}); err != nil {
		return err
	}
	if err := s.membershipRepo.Remove(ctx, tournamentID, teamID); err != nil {
		return handleMembershipRepositoryError(err)
	}
	return nil
}

// ensureNoMatches: команду с матчами в турнире убрать нельзя.
func (s *membershipService) ensureNoMatches(ctx context.Context, tournamentID uuid.UUID, teamIDs []uuid.UUID) error {
	if len(teamIDs) == 0 {
		return nil
	}
	used, err := s.matchRepo.HasMatchesForTeams(ctx, tournamentID, teamIDs)
	if err != nil {
		return fmt.Errorf("failed to check tournament matches: %w", err)
	}
	if used {
		return ErrMembershipInUse
	}
	return nil
}

// ListTournamentsWithTeams читает турниры и все членства параллельно и
// раскладывает команды по турнирам.
func (s *membershipService) ListTournamentsWithTeams(ctx context.Context) ([]models.Tournament, error) {
	var (
		tournaments []models.Tournament
		memberships []models.Membership
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournaments, err = s.tournamentRepo.List(gctx, repositories.ListTournamentsFilter{OrderBy: repositories.TournamentOrderNewest})
		if err != nil {
			return fmt.Errorf("failed to list tournaments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		memberships, err = s.membershipRepo.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to list memberships: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byTournament := make(map[uuid.UUID][]models.Membership, len(tournaments))
	for _, m := range memberships {
		byTournament[m.TournamentID] = append(byTournament[m.TournamentID], m)
	}

	result := make([]models.Tournament, len(tournaments))
	for i, t := range tournaments {
		t.Teams = membershipTeams(byTournament[t.ID], s.uploader)
		result[i] = t
	}
	return result, nil
}

// membershipTeams возвращает команды членств в их порядке.
func membershipTeams(memberships []models.Membership, uploader storage.FileUploader) []models.Team {
	teams := make([]models.Team, 0, len(memberships))
	for _, m := range memberships {
		team := models.Team{ID: m.TeamID}
		if m.Team != nil {
			team = *m.Team
		}
		populateTeamLogoURLFunc(&team, uploader)
		teams = append(teams, team)
	}
	return teams
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func handleMembershipRepositoryError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMembershipNotFound):
		return ErrMembershipNotFound
	case errors.Is(err, repositories.ErrMembershipTournamentInvalid):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrMembershipTeamInvalid):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrMembershipInUse):
		return ErrMembershipInUse
	default:
		return fmt.Errorf("membership repository error: %w", err)
	}
}
