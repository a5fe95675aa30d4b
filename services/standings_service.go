package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/football-console/brackets"
	"github.com/Dosada05/football-console/metrics"
	"github.com/Dosada05/football-console/models"
	"github.com/Dosada05/football-console/repositories"
	"github.com/Dosada05/football-console/standings"
	"github.com/Dosada05/football-console/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Broadcaster рассылает сообщения в комнату турнира. Реализуется brackets.Hub.
type Broadcaster interface {
	Publish(tournamentID uuid.UUID, messageType string, payload interface{})
}

// StandingsUpdate - полезная нагрузка сообщения STANDINGS_UPDATED.
type StandingsUpdate struct {
	TournamentID uuid.UUID         `json:"tournament_id"`
	Standings    []models.Standing `json:"standings"`
}

type StandingsService interface {
	GetStandings(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error)
	// Publish пересчитывает таблицу и рассылает ее подписчикам турнира.
	// Ошибки логируются: запись результата к этому моменту уже выполнена.
	Publish(ctx context.Context, tournamentID uuid.UUID)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	membershipRepo repositories.MembershipRepository
	matchRepo      repositories.MatchRepository
	uploader       storage.FileUploader
	broadcaster    Broadcaster
	logger         *slog.Logger
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	membershipRepo repositories.MembershipRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
	broadcaster Broadcaster,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		membershipRepo: membershipRepo,
		matchRepo:      matchRepo,
		uploader:       uploader,
		broadcaster:    broadcaster,
		logger:         logger,
	}
}

func (s *standingsService) GetStandings(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleTournamentRepositoryError(err)
	}

	start := time.Now()
	table, err := s.compute(ctx, tournamentID)
	metrics.RecordStandingsComputation(computationOutcome(err), time.Since(start))
	if err != nil {
		return nil, err
	}

	for i := range table {
		populateTeamLogoURLFunc(table[i].Team, s.uploader)
	}
	return table, nil
}

// compute читает снимок (членства и завершенные матчи) двумя параллельными
// запросами и строит таблицу.
func (s *standingsService) compute(ctx context.Context, tournamentID uuid.UUID) ([]models.Standing, error) {
	var (
		memberships []models.Membership
		matches     []models.Match
	)
	completed := models.MatchStatusCompleted

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		memberships, err = s.membershipRepo.ListByTournament(gctx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load memberships for standings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gctx, repositories.MatchFilter{TournamentID: &tournamentID, Status: &completed})
		if err != nil {
			return fmt.Errorf("failed to load completed matches for standings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table, err := standings.Compute(memberships, matches)
	if err != nil {
		return nil, fmt.Errorf("tournament %s: %w", tournamentID, err)
	}
	return table, nil
}

func (s *standingsService) Publish(ctx context.Context, tournamentID uuid.UUID) {
	if s.broadcaster == nil {
		return
	}
	table, err := s.GetStandings(ctx, tournamentID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to recompute standings for broadcast",
			slog.String("tournament_id", tournamentID.String()), slog.Any("error", err))
		return
	}
	s.broadcaster.Publish(tournamentID, brackets.MessageStandingsUpdated, StandingsUpdate{
		TournamentID: tournamentID,
		Standings:    table,
	})
}

func computationOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, standings.ErrUnknownTeamInMatch):
		return metrics.OutcomeUnknownTeam
	default:
		return metrics.OutcomeError
	}
}
