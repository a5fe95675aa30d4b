package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/football-console/models"
	"github.com/Dosada05/football-console/repositories"
	"github.com/google/uuid"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	DeletePlayer(ctx context.Context, id uuid.UUID) error
}

type CreatePlayerInput struct {
	Name     string     `json:"name"`
	Email    *string    `json:"email"`
	Position *string    `json:"position"`
	TeamID   *uuid.UUID `json:"team_id"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	email := trimOptional(input.Email)
	if email != nil && !strings.Contains(*email, "@") {
		return nil, fmt.Errorf("%w: invalid email", ErrValidationFailed)
	}

	player := &models.Player{
		Name:     name,
		Email:    email,
		Position: trimOptional(input.Position),
		TeamID:   input.TeamID,
	}

	if player.TeamID != nil {
		team, err := s.teamRepo.GetByID(ctx, *player.TeamID)
		if err != nil {
			return nil, handleTeamRepositoryError(err)
		}
		player.Team = team
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if players == nil {
		return []models.Player{}, nil
	}
	return players, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	return nil
}
