package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/football-console/brackets"
	"github.com/Dosada05/football-console/models"
	"github.com/Dosada05/football-console/repositories"
	"github.com/Dosada05/football-console/storage"
	"github.com/google/uuid"
)

// Действия в сообщениях MATCH_UPDATED.
const (
	MatchActionCreated = "created"
	MatchActionUpdated = "updated"
	MatchActionDeleted = "deleted"
)

// MatchEvent - полезная нагрузка сообщения MATCH_UPDATED.
type MatchEvent struct {
	Action string        `json:"action"`
	Match  *models.Match `json:"match"`
}

type MatchService interface {
	ScheduleMatch(ctx context.Context, currentUserID uuid.UUID, input ScheduleMatchInput) (*models.Match, error)
	ListMatches(ctx context.Context, input ListMatchesInput) ([]models.Match, error)
	GetMatchByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	RecordScore(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID, input RecordScoreInput) (*models.Match, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID, status models.MatchStatus) (*models.Match, error)
	DeleteMatch(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID) error
	GenerateFixtures(ctx context.Context, tournamentID uuid.UUID, currentUserID uuid.UUID, input GenerateFixturesInput) ([]models.Match, error)
}

type ScheduleMatchInput struct {
	TournamentID uuid.UUID   `json:"tournament_id"`
	HomeTeamID   uuid.UUID   `json:"home_team_id"`
	AwayTeamID   uuid.UUID   `json:"away_team_id"`
	MatchDate    models.Date `json:"match_date"`
	MatchTime    *string     `json:"match_time"`
	Venue        *string     `json:"venue"`
}

type ListMatchesInput struct {
	TournamentID *uuid.UUID
	Status       *models.MatchStatus
}

type RecordScoreInput struct {
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
}

type GenerateFixturesInput struct {
	Legs        int          `json:"legs"`
	StartDate   *models.Date `json:"start_date"` // по умолчанию дата начала турнира
	DayInterval int          `json:"day_interval"`
	MatchTime   *string      `json:"match_time"`
	Venue       *string      `json:"venue"`
}

type matchService struct {
	tournamentRepo   repositories.TournamentRepository
	membershipRepo   repositories.MembershipRepository
	matchRepo        repositories.MatchRepository
	standingsService StandingsService
	generator        brackets.FixtureGenerator
	broadcaster      Broadcaster
	uploader         storage.FileUploader
	logger           *slog.Logger
}

func NewMatchService(
	tournamentRepo repositories.TournamentRepository,
	membershipRepo repositories.MembershipRepository,
	matchRepo repositories.MatchRepository,
	standingsService StandingsService,
	generator brackets.FixtureGenerator,
	broadcaster Broadcaster,
	uploader storage.FileUploader,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		tournamentRepo:   tournamentRepo,
		membershipRepo:   membershipRepo,
		matchRepo:        matchRepo,
		standingsService: standingsService,
		generator:        generator,
		broadcaster:      broadcaster,
		uploader:         uploader,
		logger:           logger,
	}
}

func (s *matchService) ScheduleMatch(ctx context.Context, currentUserID uuid.UUID, input ScheduleMatchInput) (*models.Match, error) {
	if input.TournamentID == uuid.Nil || input.HomeTeamID == uuid.Nil || input.AwayTeamID == uuid.Nil || input.MatchDate.IsZero() {
		return nil, ErrMatchFieldsRequired
	}
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrSameTeams
	}
	matchTime, err := validateMatchTime(input.MatchTime)
	if err != nil {
		return nil, err
	}

	if _, err := getOwnedTournament(ctx, s.tournamentRepo, input.TournamentID, currentUserID); err != nil {
		return nil, err
	}
	for _, teamID := range []uuid.UUID{input.HomeTeamID, input.AwayTeamID} {
		member, err := s.membershipRepo.Exists(ctx, input.TournamentID, teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership of team %s: %w", teamID, err)
		}
		if !member {
			return nil, fmt.Errorf("%w: team %s", ErrTeamNotInTournament, teamID)
		}
	}

	match := &models.Match{
		TournamentID: input.TournamentID,
		HomeTeamID:   input.HomeTeamID,
		AwayTeamID:   input.AwayTeamID,
		MatchDate:    input.MatchDate,
		MatchTime:    matchTime,
		Venue:        trimOptional(input.Venue),
		Status:       models.MatchStatusScheduled,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, handleMatchRepositoryError(err)
	}

	s.publishMatch(match, MatchActionCreated)
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context, input ListMatchesInput) ([]models.Match, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMatchStatus, *input.Status)
	}
	matches, err := s.matchRepo.List(ctx, repositories.MatchFilter{
		TournamentID: input.TournamentID,
		Status:       input.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	if matches == nil {
		return []models.Match{}, nil
	}
	populateMatchTeamsLogoURLFunc(matches, s.uploader)
	return matches, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleMatchRepositoryError(err)
	}
	return match, nil
}

// RecordScore сохраняет счет и переводит матч в статус completed.
// Повторная запись счета завершенного матча разрешена.
func (s *matchService) RecordScore(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID, input RecordScoreInput) (*models.Match, error) {
	if input.HomeScore == nil || input.AwayScore == nil {
		return nil, ErrScoreRequired
	}
	if *input.HomeScore < 0 || *input.AwayScore < 0 {
		return nil, ErrInvalidScore
	}

	match, err := s.getOwnedMatch(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if match.Status == models.MatchStatusCancelled {
		return nil, ErrMatchCancelled
	}

	if err := s.matchRepo.UpdateScore(ctx, id, *input.HomeScore, *input.AwayScore); err != nil {
		return nil, handleMatchRepositoryError(err)
	}

	home, away := *input.HomeScore, *input.AwayScore
	match.HomeScore = &home
	match.AwayScore = &away
	match.Status = models.MatchStatusCompleted

	s.logger.InfoContext(ctx, "match score recorded",
		slog.String("match_id", id.String()), slog.Int("home_score", home), slog.Int("away_score", away))

	s.publishMatch(match, MatchActionUpdated)
	s.standingsService.Publish(ctx, match.TournamentID)
	return match, nil
}

func (s *matchService) UpdateStatus(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID, status models.MatchStatus) (*models.Match, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMatchStatus, status)
	}

	match, err := s.getOwnedMatch(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if !isValidStatusTransition(match.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, match.Status, status)
	}
	if match.Status == status {
		return match, nil
	}

	if err := s.matchRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, handleMatchRepositoryError(err)
	}
	match.Status = status

	s.publishMatch(match, MatchActionUpdated)
	if status == models.MatchStatusCompleted {
		s.standingsService.Publish(ctx, match.TournamentID)
	}
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID) error {
	match, err := s.getOwnedMatch(ctx, id, currentUserID)
	if err != nil {
		return err
	}
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		return handleMatchRepositoryError(err)
	}

	s.publishMatch(match, MatchActionDeleted)
	if match.Status == models.MatchStatusCompleted {
		s.standingsService.Publish(ctx, match.TournamentID)
	}
	return nil
}

// GenerateFixtures создает расписание круговой системы для всех команд турнира.
func (s *matchService) GenerateFixtures(ctx context.Context, tournamentID uuid.UUID, currentUserID uuid.UUID, input GenerateFixturesInput) ([]models.Match, error) {
	if input.Legs < 0 || input.Legs > 2 || input.DayInterval < 0 {
		return nil, fmt.Errorf("%w: legs must be 1 or 2, day interval must not be negative", ErrInvalidFixtureSettings)
	}
	matchTime, err := validateMatchTime(input.MatchTime)
	if err != nil {
		return nil, err
	}

	tournament, err := getOwnedTournament(ctx, s.tournamentRepo, tournamentID, currentUserID)
	if err != nil {
		return nil, err
	}

	memberships, err := s.membershipRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament teams: %w", err)
	}
	teamIDs := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		teamIDs = append(teamIDs, m.TeamID)
	}
	teamIDs = uniqueIDs(teamIDs)
	if len(teamIDs) < 2 {
		return nil, ErrNotEnoughTeams
	}

	startDate := tournament.StartDate
	if input.StartDate != nil && !input.StartDate.IsZero() {
		startDate = *input.StartDate
	}

	fixtures, err := s.generator.GenerateFixtures(ctx, brackets.GenerateFixturesParams{
		TournamentID: tournamentID,
		TeamIDs:      teamIDs,
		Legs:         input.Legs,
		StartDate:    startDate,
		DayInterval:  input.DayInterval,
	})
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughTeams) {
			return nil, ErrNotEnoughTeams
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidFixtureSettings, err)
	}

	venue := trimOptional(input.Venue)
	toCreate := make([]*models.Match, 0, len(fixtures))
	for _, f := range fixtures {
		toCreate = append(toCreate, &models.Match{
			TournamentID: tournamentID,
			HomeTeamID:   f.HomeTeamID,
			AwayTeamID:   f.AwayTeamID,
			MatchDate:    f.MatchDate,
			MatchTime:    matchTime,
			Venue:        venue,
			Status:       models.MatchStatusScheduled,
		})
	}

	if err := s.matchRepo.CreateMany(ctx, toCreate); err != nil {
		return nil, handleMatchRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "fixtures generated",
		slog.String("tournament_id", tournamentID.String()),
		slog.String("generator", s.generator.GetName()),
		slog.Int("teams", len(teamIDs)),
		slog.Int("matches", len(toCreate)))

	created := make([]models.Match, len(toCreate))
	for i, m := range toCreate {
		created[i] = *m
		s.publishMatch(m, MatchActionCreated)
	}
	return created, nil
}

func (s *matchService) getOwnedMatch(ctx context.Context, id, currentUserID uuid.UUID) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleMatchRepositoryError(err)
	}
	if _, err := getOwnedTournament(ctx, s.tournamentRepo, match.TournamentID, currentUserID); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) publishMatch(match *models.Match, action string) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.Publish(match.TournamentID, brackets.MessageMatchUpdated, MatchEvent{Action: action, Match: match})
}

func handleMatchRepositoryError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchSameTeams):
		return ErrSameTeams
	case errors.Is(err, repositories.ErrMatchTeamInvalid):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrMatchTournamentInvalid):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrMatchInvalidScore):
		return ErrInvalidScore
	default:
		return fmt.Errorf("match repository error: %w", err)
	}
}
