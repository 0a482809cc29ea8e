package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/futliga/championship-system/models"
	"github.com/futliga/championship-system/repositories"
	"github.com/futliga/championship-system/schedule"
)

type ChampionshipService interface {
	CreateChampionship(ctx context.Context, creatorID int, input CreateChampionshipInput) (*models.Championship, error)
	GetChampionshipByID(ctx context.Context, id int) (*models.Championship, error)
	ListChampionships(ctx context.Context, status *models.ChampionshipStatus) ([]*models.Championship, error)
	UpdateChampionship(ctx context.Context, id int, input UpdateChampionshipInput) (*models.Championship, error)
	DeleteChampionship(ctx context.Context, id int) error

	AddTeam(ctx context.Context, championshipID, teamID int) error
	RemoveTeam(ctx context.Context, championshipID, teamID int) error
	ListTeams(ctx context.Context, championshipID int) ([]*models.Team, error)

	// GenerateFixtures строит круговой календарь по заявленным командам
	// и создаёт матч на каждую пару. Возвращает созданные матчи.
	GenerateFixtures(ctx context.Context, championshipID int, input GenerateFixturesInput) ([]*models.Match, error)
}

type CreateChampionshipInput struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Location    string     `json:"location"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Category    string     `json:"category"`
	Rules       *string    `json:"rules,omitempty"`
}

type UpdateChampionshipInput struct {
	Name        *string                    `json:"name,omitempty"`
	Description *string                    `json:"description,omitempty"`
	Location    *string                    `json:"location,omitempty"`
	StartDate   *time.Time                 `json:"start_date,omitempty"`
	EndDate     *time.Time                 `json:"end_date,omitempty"`
	Category    *string                    `json:"category,omitempty"`
	Rules       *string                    `json:"rules,omitempty"`
	Status      *models.ChampionshipStatus `json:"status,omitempty"`
}

type GenerateFixturesInput struct {
	StartDate   time.Time `json:"start_date"`
	DaysBetween int       `json:"days_between"` // интервал между турами, по умолчанию 7
	Location    string    `json:"location"`
}

type championshipService struct {
	db               *sql.DB
	championshipRepo repositories.ChampionshipRepository
	standingRepo     repositories.StandingRepository
	matchRepo        repositories.MatchRepository
	userRepo         repositories.UserRepository
	logger           *slog.Logger
}

func NewChampionshipService(
	db *sql.DB,
	championshipRepo repositories.ChampionshipRepository,
	standingRepo repositories.StandingRepository,
	matchRepo repositories.MatchRepository,
	userRepo repositories.UserRepository,
	logger *slog.Logger,
) ChampionshipService {
	return &championshipService{
		db:               db,
		championshipRepo: championshipRepo,
		standingRepo:     standingRepo,
		matchRepo:        matchRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

func (s *championshipService) CreateChampionship(ctx context.Context, creatorID int, input CreateChampionshipInput) (*models.Championship, error) {
	if err := validateChampionshipDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	championship := &models.Championship{
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Category:    input.Category,
		Rules:       input.Rules,
		Status:      models.ChampionshipUpcoming,
		CreatorID:   creatorID,
	}
	if err := s.championshipRepo.Create(ctx, championship); err != nil {
		return nil, fmt.Errorf("failed to create championship: %w", err)
	}
	return championship, nil
}

// GetChampionshipByID возвращает чемпионат вместе с организатором, заявками,
// календарём и таблицей. Связанные сущности тянем параллельно.
func (s *championshipService) GetChampionshipByID(ctx context.Context, id int) (*models.Championship, error) {
	championship, err := s.championshipRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		creator, creatorErr := s.userRepo.GetByID(gCtx, championship.CreatorID)
		if creatorErr != nil {
			// Организатор мог быть удалён; чемпионат от этого не ломается.
			s.logger.WarnContext(gCtx, "failed to populate championship creator",
				slog.Int("championship_id", id), slog.Any("error", creatorErr))
			return nil
		}
		creator.PasswordHash = ""
		championship.Creator = creator
		return nil
	})

	g.Go(func() error {
		teams, teamsErr := s.championshipRepo.ListTeams(gCtx, id)
		if teamsErr != nil {
			return fmt.Errorf("failed to list championship teams: %w", teamsErr)
		}
		championship.Teams = make([]models.Team, 0, len(teams))
		for _, t := range teams {
			championship.Teams = append(championship.Teams, *t)
		}
		return nil
	})

	g.Go(func() error {
		matches, matchesErr := s.matchRepo.ListByChampionship(gCtx, id)
		if matchesErr != nil {
			return fmt.Errorf("failed to list championship matches: %w", matchesErr)
		}
		championship.Matches = make([]models.Match, 0, len(matches))
		for _, m := range matches {
			championship.Matches = append(championship.Matches, *m)
		}
		return nil
	})

	g.Go(func() error {
		standings, standingsErr := s.standingRepo.ListByChampionship(gCtx, id)
		if standingsErr != nil {
			return fmt.Errorf("failed to list championship standings: %w", standingsErr)
		}
		championship.Standings = make([]models.Standing, 0, len(standings))
		for _, st := range standings {
			championship.Standings = append(championship.Standings, *st)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return championship, nil
}

func (s *championshipService) ListChampionships(ctx context.Context, status *models.ChampionshipStatus) ([]*models.Championship, error) {
	if status != nil && !status.Valid() {
		return nil, ErrChampionshipStatusInvalid
	}
	championships, err := s.championshipRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list championships: %w", err)
	}
	return championships, nil
}

func (s *championshipService) UpdateChampionship(ctx context.Context, id int, input UpdateChampionshipInput) (*models.Championship, error) {
	championship, err := s.championshipRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		championship.Name = *input.Name
	}
	if input.Description != nil {
		championship.Description = input.Description
	}
	if input.Location != nil {
		championship.Location = *input.Location
	}
	if input.StartDate != nil {
		championship.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		championship.EndDate = input.EndDate
	}
	if input.Category != nil {
		championship.Category = *input.Category
	}
	if input.Rules != nil {
		championship.Rules = input.Rules
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrChampionshipStatusInvalid
		}
		championship.Status = *input.Status
	}

	if err := validateChampionshipDates(championship.StartDate, championship.EndDate); err != nil {
		return nil, err
	}

	if err := s.championshipRepo.Update(ctx, championship); err != nil {
		return nil, fmt.Errorf("failed to update championship %d: %w", id, err)
	}
	return championship, nil
}

func (s *championshipService) DeleteChampionship(ctx context.Context, id int) error {
	if err := s.championshipRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return ErrChampionshipNotFound
		}
		return fmt.Errorf("failed to delete championship %d: %w", id, err)
	}
	return nil
}

// AddTeam заявляет команду и заводит ей нулевую строку в таблице одной
// транзакцией: заявка без строки standings сломала бы fold результата.
func (s *championshipService) AddTeam(ctx context.Context, championshipID, teamID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.championshipRepo.AddTeam(ctx, tx, championshipID, teamID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrChampionshipTeamConflict):
			return ErrTeamAlreadyEnrolled
		case errors.Is(err, repositories.ErrChampionshipTeamInvalid):
			return ErrNotFound
		}
		return fmt.Errorf("failed to enroll team %d: %w", teamID, err)
	}

	standing := &models.Standing{
		ChampionshipID: championshipID,
		TeamID:         teamID,
	}
	if err := s.standingRepo.Create(ctx, tx, standing); err != nil {
		return fmt.Errorf("failed to create standing for team %d: %w", teamID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit enrollment: %w", err)
	}

	s.logger.InfoContext(ctx, "team enrolled in championship",
		slog.Int("championship_id", championshipID), slog.Int("team_id", teamID))
	return nil
}

func (s *championshipService) RemoveTeam(ctx context.Context, championshipID, teamID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.championshipRepo.RemoveTeam(ctx, tx, championshipID, teamID); err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return ErrTeamNotEnrolled
		}
		return fmt.Errorf("failed to withdraw team %d: %w", teamID, err)
	}

	if err := s.standingRepo.DeleteByChampionshipAndTeam(ctx, tx, championshipID, teamID); err != nil && !errors.Is(err, repositories.ErrStandingNotFound) {
		return fmt.Errorf("failed to delete standing for team %d: %w", teamID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit withdrawal: %w", err)
	}

	s.logger.InfoContext(ctx, "team withdrawn from championship",
		slog.Int("championship_id", championshipID), slog.Int("team_id", teamID))
	return nil
}

func (s *championshipService) ListTeams(ctx context.Context, championshipID int) ([]*models.Team, error) {
	if _, err := s.championshipRepo.GetByID(ctx, championshipID); err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, err
	}
	teams, err := s.championshipRepo.ListTeams(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for championship %d: %w", championshipID, err)
	}
	return teams, nil
}

func (s *championshipService) GenerateFixtures(ctx context.Context, championshipID int, input GenerateFixturesInput) ([]*models.Match, error) {
	championship, err := s.championshipRepo.GetByID(ctx, championshipID)
	if err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return nil, ErrChampionshipNotFound
		}
		return nil, err
	}

	teams, err := s.championshipRepo.ListTeams(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled teams: %w", err)
	}
	if len(teams) < 2 {
		return nil, ErrFixturesNotEnoughTeams
	}

	teamIDs := make([]int, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}
	fixtures := schedule.GenerateRoundRobin(teamIDs)

	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = championship.StartDate
	}
	daysBetween := input.DaysBetween
	if daysBetween <= 0 {
		daysBetween = 7
	}
	location := input.Location
	if location == "" {
		location = championship.Location
	}

	matches := make([]*models.Match, 0, len(fixtures))
	for _, f := range fixtures {
		match := &models.Match{
			ChampionshipID: championshipID,
			HomeTeamID:     f.HomeTeamID,
			AwayTeamID:     f.AwayTeamID,
			MatchDate:      startDate.AddDate(0, 0, (f.Matchday-1)*daysBetween),
			Location:       location,
			Status:         models.MatchScheduled,
		}
		if err := s.matchRepo.Create(ctx, match); err != nil {
			return nil, fmt.Errorf("failed to create fixture %d vs %d: %w", f.HomeTeamID, f.AwayTeamID, err)
		}
		matches = append(matches, match)
	}

	s.logger.InfoContext(ctx, "fixtures generated",
		slog.Int("championship_id", championshipID),
		slog.Int("matches", len(matches)),
		slog.Int("teams", len(teams)),
	)
	return matches, nil
}
