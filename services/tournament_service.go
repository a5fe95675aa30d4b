package services

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

type TournamentService interface {
	CreateTournament(ctx context.Context, creatorID uuid.UUID, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error)
	ListTournaments(ctx context.Context, input ListTournamentsInput) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID, input UpdateTournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID) error
}

type CreateTournamentInput struct {
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	StartDate   models.Date `json:"start_date"`
	EndDate     models.Date `json:"end_date"`
}

// UpdateTournamentInput - частичное обновление, nil поля не меняются.
type UpdateTournamentInput struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	StartDate   *models.Date `json:"start_date"`
	EndDate     *models.Date `json:"end_date"`
}

type ListTournamentsInput struct {
	OrderBy   repositories.TournamentOrder
	CreatedBy *uuid.UUID
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	logger         *slog.Logger
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository, logger *slog.Logger) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		logger:         logger,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, creatorID uuid.UUID, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if err := validateTournamentDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:        name,
		Description: trimOptional(input.Description),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedBy:   creatorID,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, handleTournamentRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "tournament created", slog.String("tournament_id", tournament.ID.String()), slog.String("created_by", creatorID.String()))
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id uuid.UUID) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleTournamentRepositoryError(err)
	}
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, input ListTournamentsInput) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{
		CreatedBy: input.CreatedBy,
		OrderBy:   input.OrderBy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	if tournaments == nil {
		return []models.Tournament{}, nil
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.getOwnedTournament(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTournamentNameRequired
		}
		tournament.Name = name
	}
	if input.Description != nil {
		tournament.Description = trimOptional(input.Description)
	}
	if input.StartDate != nil {
		tournament.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		tournament.EndDate = *input.EndDate
	}
	if err := validateTournamentDates(tournament.StartDate, tournament.EndDate); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		return nil, handleTournamentRepositoryError(err)
	}
	return tournament, nil
}

// DeleteTournament удаляет турнир вместе с членствами и матчами.
func (s *tournamentService) DeleteTournament(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID) error {
	if _, err := s.getOwnedTournament(ctx, id, currentUserID); err != nil {
		return err
	}
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		return handleTournamentRepositoryError(err)
	}
	s.logger.InfoContext(ctx, "tournament deleted", slog.String("tournament_id", id.String()))
	return nil
}

func (s *tournamentService) getOwnedTournament(ctx context.Context, id, currentUserID uuid.UUID) (*models.Tournament, error) {
	return getOwnedTournament(ctx, s.tournamentRepo, id, currentUserID)
}

// getOwnedTournament загружает турнир и проверяет, что текущий пользователь его создатель.
func getOwnedTournament(ctx context.Context, repo repositories.TournamentRepository, id, currentUserID uuid.UUID) (*models.Tournament, error) {
	tournament, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, handleTournamentRepositoryError(err)
	}
	if tournament.CreatedBy != currentUserID {
		return nil, ErrForbiddenOperation
	}
	return tournament, nil
}

func handleTournamentRepositoryError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentInvalidDates):
		return ErrTournamentInvalidDates
	case errors.Is(err, repositories.ErrTournamentInvalidCreator):
		return fmt.Errorf("%w: unknown creator", ErrValidationFailed)
	default:
		return fmt.Errorf("tournament repository error: %w", err)
	}
}
