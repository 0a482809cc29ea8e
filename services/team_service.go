package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/futliga/championship-system/models"
	"github.com/futliga/championship-system/repositories"
	"github.com/futliga/championship-system/storage"
)

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
	UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	UploadLogo(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error)
}

type CreateTeamInput struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Representative *string `json:"representative,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
}

type UpdateTeamInput struct {
	Name           *string `json:"name,omitempty"`
	Category       *string `json:"category,omitempty"`
	Representative *string `json:"representative,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	team := &models.Team{
		Name:           input.Name,
		Category:       input.Category,
		Representative: input.Representative,
		Phone:          input.Phone,
		Email:          input.Email,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	players, err := s.playerRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", id, err)
	}
	team.Players = make([]models.Player, 0, len(players))
	for _, p := range players {
		team.Players = append(team.Players, *p)
	}

	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, team := range teams {
		s.populateLogoURL(team)
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		team.Name = *input.Name
	}
	if input.Category != nil {
		team.Category = *input.Category
	}
	if input.Representative != nil {
		team.Representative = input.Representative
	}
	if input.Phone != nil {
		team.Phone = input.Phone
	}
	if input.Email != nil {
		team.Email = input.Email
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}

	// Логотип чистим после удаления записи; ошибка не фатальна.
	if team.LogoKey != nil && s.uploader != nil {
		if delErr := s.uploader.Delete(ctx, *team.LogoKey); delErr != nil {
			s.logger.WarnContext(ctx, "failed to delete team logo from storage",
				slog.Int("team_id", id), slog.Any("error", delErr))
		}
	}
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, reader io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageUnavailable
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	oldKey := team.LogoKey
	newKey := fmt.Sprintf("teams/%d/logo%s", teamID, ext)

	if _, err := s.uploader.Upload(ctx, newKey, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &newKey); err != nil {
		return nil, fmt.Errorf("failed to store team logo key: %w", err)
	}
	team.LogoKey = &newKey

	if oldKey != nil && *oldKey != newKey {
		if delErr := s.uploader.Delete(ctx, *oldKey); delErr != nil {
			s.logger.WarnContext(ctx, "failed to delete previous team logo",
				slog.Int("team_id", teamID), slog.Any("error", delErr))
		}
	}

	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) populateLogoURL(team *models.Team) {
	if team == nil || team.LogoKey == nil || *team.LogoKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*team.LogoKey); url != "" {
		team.LogoURL = &url
	}
}
