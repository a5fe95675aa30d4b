package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Dosada05/football-console/models"
	"github.com/Dosada05/football-console/repositories"
	"github.com/Dosada05/football-console/storage"
	"github.com/google/uuid"
)

type TeamService interface {
	CreateTeam(ctx context.Context, creatorID uuid.UUID, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeams(ctx context.Context, order repositories.TeamOrder) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID, input UpdateTeamInput) (*models.Team, error)
	UploadLogo(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID, contentType string, file io.Reader) (*models.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID) error
}

type CreateTeamInput struct {
	Name    string  `json:"name"`
	LogoURL *string `json:"logo_url"`
}

type UpdateTeamInput struct {
	Name    *string `json:"name"`
	LogoURL *string `json:"logo_url"`
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader // nil, если хранилище не настроено
	logger   *slog.Logger
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader, logger *slog.Logger) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
		logger:   logger,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, creatorID uuid.UUID, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{
		Name:      name,
		LogoURL:   trimOptional(input.LogoURL),
		CreatedBy: &creatorID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, handleTeamRepositoryError(err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleTeamRepositoryError(err)
	}
	populateTeamLogoURLFunc(team, s.uploader)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, order repositories.TeamOrder) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if teams == nil {
		return []models.Team{}, nil
	}
	populateTeamsLogoURLFunc(teams, s.uploader)
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.getOwnedTeam(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTeamNameRequired
		}
		team.Name = name
	}
	if input.LogoURL != nil {
		team.LogoURL = trimOptional(input.LogoURL)
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, handleTeamRepositoryError(err)
	}
	populateTeamLogoURLFunc(team, s.uploader)
	return team, nil
}

// UploadLogo кладет файл в хранилище под новым ключом, сохраняет ключ и удаляет
// предыдущий объект. Ошибка удаления старого объекта только логируется.
func (s *teamService) UploadLogo(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageDisabled
	}
	team, err := s.getOwnedTeam(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	key, err := storage.TeamLogoKey(team.ID, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLogoType, contentType)
	}

	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %s: %w", team.ID, err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, team.ID, &key); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned logo", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, handleTeamRepositoryError(err)
	}

	previousKey := derefString(team.LogoKey)
	if previousKey != "" && previousKey != key {
		if err := s.uploader.Delete(ctx, previousKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous team logo",
				slog.String("team_id", team.ID.String()), slog.String("key", previousKey), slog.Any("error", err))
		}
	}

	team.LogoKey = &key
	populateTeamLogoURLFunc(team, s.uploader)
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID) error {
	team, err := s.getOwnedTeam(ctx, id, currentUserID)
	if err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return handleTeamRepositoryError(err)
	}

	if key := derefString(team.LogoKey); key != "" && s.uploader != nil {
		if err := s.uploader.Delete(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "failed to delete logo of removed team", slog.String("key", key), slog.Any("error", err))
		}
	}
	return nil
}

// getOwnedTeam: команды без создателя (импортированные) доступны любому администратору.
func (s *teamService) getOwnedTeam(ctx context.Context, id, currentUserID uuid.UUID) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleTeamRepositoryError(err)
	}
	if team.CreatedBy != nil && *team.CreatedBy != currentUserID {
		return nil, ErrForbiddenOperation
	}
	return team, nil
}

func handleTeamRepositoryError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrTeamInUse):
		return ErrTeamInUse
	default:
		return fmt.Errorf("team repository error: %w", err)
	}
}
