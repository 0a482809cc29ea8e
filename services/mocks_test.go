package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/futliga/championship-system/models"
	"github.com/futliga/championship-system/repositories"
)

type mockMatchRepo struct {
	mock.Mock
}

func (m *mockMatchRepo) Create(ctx context.Context, match *models.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *mockMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	args := m.Called(ctx, exec, id)
	if match, ok := args.Get(0).(*models.Match); ok {
		return match, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMatchRepo) ListByChampionship(ctx context.Context, championshipID int) ([]*models.Match, error) {
	args := m.Called(ctx, championshipID)
	if matches, ok := args.Get(0).([]*models.Match); ok {
		return matches, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMatchRepo) Update(ctx context.Context, match *models.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *mockMatchRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockMatchRepo) IncrementScore(ctx context.Context, exec repositories.SQLExecutor, id, homeDelta, awayDelta int) error {
	args := m.Called(ctx, exec, id, homeDelta, awayDelta)
	return args.Error(0)
}

func (m *mockMatchRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.MatchStatus) error {
	args := m.Called(ctx, exec, id, status)
	return args.Error(0)
}

type mockMatchEventRepo struct {
	mock.Mock
}

func (m *mockMatchEventRepo) Create(ctx context.Context, exec repositories.SQLExecutor, event *models.MatchEvent) error {
	args := m.Called(ctx, exec, event)
	return args.Error(0)
}

func (m *mockMatchEventRepo) ListByMatch(ctx context.Context, matchID int) ([]*models.MatchEvent, error) {
	args := m.Called(ctx, matchID)
	if events, ok := args.Get(0).([]*models.MatchEvent); ok {
		return events, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMatchEventRepo) TopScorers(ctx context.Context, championshipID, limit int) ([]*models.Scorer, error) {
	args := m.Called(ctx, championshipID, limit)
	if scorers, ok := args.Get(0).([]*models.Scorer); ok {
		return scorers, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMatchEventRepo) CardTally(ctx context.Context, championshipID int) ([]*models.PlayerCardStats, error) {
	args := m.Called(ctx, championshipID)
	if stats, ok := args.Get(0).([]*models.PlayerCardStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockStandingRepo struct {
	mock.Mock
}

func (m *mockStandingRepo) Create(ctx context.Context, exec repositories.SQLExecutor, standing *models.Standing) error {
	args := m.Called(ctx, exec, standing)
	return args.Error(0)
}

func (m *mockStandingRepo) GetByChampionshipAndTeam(ctx context.Context, championshipID, teamID int) (*models.Standing, error) {
	args := m.Called(ctx, championshipID, teamID)
	if standing, ok := args.Get(0).(*models.Standing); ok {
		return standing, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStandingRepo) ListByChampionship(ctx context.Context, championshipID int) ([]*models.Standing, error) {
	args := m.Called(ctx, championshipID)
	if standings, ok := args.Get(0).([]*models.Standing); ok {
		return standings, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStandingRepo) ApplyResult(ctx context.Context, exec repositories.SQLExecutor, championshipID, teamID int, delta repositories.StandingDelta) error {
	args := m.Called(ctx, exec, championshipID, teamID, delta)
	return args.Error(0)
}

func (m *mockStandingRepo) DeleteByChampionshipAndTeam(ctx context.Context, exec repositories.SQLExecutor, championshipID, teamID int) error {
	args := m.Called(ctx, exec, championshipID, teamID)
	return args.Error(0)
}

type mockTeamRepo struct {
	mock.Mock
}

func (m *mockTeamRepo) Create(ctx context.Context, team *models.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	args := m.Called(ctx, id)
	if team, ok := args.Get(0).(*models.Team); ok {
		return team, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTeamRepo) List(ctx context.Context) ([]*models.Team, error) {
	args := m.Called(ctx)
	if teams, ok := args.Get(0).([]*models.Team); ok {
		return teams, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTeamRepo) Update(ctx context.Context, team *models.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *mockTeamRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockTeamRepo) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	args := m.Called(ctx, id, logoKey)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockChampionshipRepo struct {
	mock.Mock
}

func (m *mockChampionshipRepo) Create(ctx context.Context, championship *models.Championship) error {
	args := m.Called(ctx, championship)
	return args.Error(0)
}

func (m *mockChampionshipRepo) GetByID(ctx context.Context, id int) (*models.Championship, error) {
	args := m.Called(ctx, id)
	if championship, ok := args.Get(0).(*models.Championship); ok {
		return championship, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChampionshipRepo) List(ctx context.Context, status *models.ChampionshipStatus) ([]*models.Championship, error) {
	args := m.Called(ctx, status)
	if championships, ok := args.Get(0).([]*models.Championship); ok {
		return championships, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockChampionshipRepo) Update(ctx context.Context, championship *models.Championship) error {
	args := m.Called(ctx, championship)
	return args.Error(0)
}

func (m *mockChampionshipRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockChampionshipRepo) AddTeam(ctx context.Context, exec repositories.SQLExecutor, championshipID, teamID int) error {
	args := m.Called(ctx, exec, championshipID, teamID)
	return args.Error(0)
}

func (m *mockChampionshipRepo) RemoveTeam(ctx context.Context, exec repositories.SQLExecutor, championshipID, teamID int) error {
	args := m.Called(ctx, exec, championshipID, teamID)
	return args.Error(0)
}

func (m *mockChampionshipRepo) ListTeams(ctx context.Context, championshipID int) ([]*models.Team, error) {
	args := m.Called(ctx, championshipID)
	if teams, ok := args.Get(0).([]*models.Team); ok {
		return teams, args.Error(1)
	}
	return nil, args.Error(1)
}
