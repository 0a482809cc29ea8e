package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/futliga/championship-system/models"
	"github.com/futliga/championship-system/repositories"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	ListPlayersByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
}

type CreatePlayerInput struct {
	TeamID       int                   `json:"team_id"`
	FirstName    string                `json:"first_name"`
	LastName     string                `json:"last_name"`
	JerseyNumber int                   `json:"jersey_number"`
	Position     models.PlayerPosition `json:"position"`
	DateOfBirth  *time.Time            `json:"date_of_birth,omitempty"`
}

type UpdatePlayerInput struct {
	FirstName    *string                `json:"first_name,omitempty"`
	LastName     *string                `json:"last_name,omitempty"`
	JerseyNumber *int                   `json:"jersey_number,omitempty"`
	Position     *models.PlayerPosition `json:"position,omitempty"`
	DateOfBirth  *time.Time             `json:"date_of_birth,omitempty"`
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
	if !input.Position.Valid() {
		return nil, fmt.Errorf("invalid player position %q", input.Position)
	}

	player := &models.Player{
		TeamID:       input.TeamID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		JerseyNumber: input.JerseyNumber,
		Position:     input.Position,
		DateOfBirth:  input.DateOfBirth,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if team, teamErr := s.teamRepo.GetByID(ctx, player.TeamID); teamErr == nil {
		player.Team = team
	}

	stats, err := s.playerRepo.GetStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats for player %d: %w", id, err)
	}
	player.Stats = stats

	return player, nil
}

func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", teamID, err)
	}
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if input.FirstName != nil {
		player.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		player.LastName = *input.LastName
	}
	if input.JerseyNumber != nil {
		player.JerseyNumber = *input.JerseyNumber
	}
	if input.Position != nil {
		if !input.Position.Valid() {
			return nil, fmt.Errorf("invalid player position %q", *input.Position)
		}
		player.Position = *input.Position
	}
	if input.DateOfBirth != nil {
		player.DateOfBirth = input.DateOfBirth
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player %d: %w", id, err)
	}
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	return nil
}
