package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/football-console/models"
	"github.com/Dosada05/football-console/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	playerRepo     repositories.PlayerRepository
	matchRepo      repositories.MatchRepository
}

func NewDashboardService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
) DashboardService {
	return &dashboardService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
	}
}

// GetStats собирает счетчики параллельно; любая ошибка прерывает сбор.
func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var (
		stats    models.DashboardStats
		byStatus map[models.MatchStatus]int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TournamentsTotal, err = s.tournamentRepo.Count(gctx)
		return wrapCountErr("tournaments", err)
	})
	g.Go(func() (err error) {
		stats.TeamsTotal, err = s.teamRepo.Count(gctx)
		return wrapCountErr("teams", err)
	})
	g.Go(func() (err error) {
		stats.PlayersTotal, err = s.playerRepo.Count(gctx)
		return wrapCountErr("players", err)
	})
	g.Go(func() (err error) {
		byStatus, err = s.matchRepo.CountByStatus(gctx)
		return wrapCountErr("matches", err)
	})
	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}

	stats.MatchesByStatus = make(map[models.MatchStatus]int, 4)
	for _, status := range []models.MatchStatus{
		models.MatchStatusScheduled, models.MatchStatusLive, models.MatchStatusCompleted, models.MatchStatusCancelled,
	} {
		stats.MatchesByStatus[status] = byStatus[status]
		stats.MatchesTotal += byStatus[status]
	}
	return stats, nil
}

func wrapCountErr(what string, err error) error {
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", what, err)
	}
	return nil
}
