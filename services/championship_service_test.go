package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/futliga/championship-system/models"
	"github.com/futliga/championship-system/repositories"
)

type championshipServiceMocks struct {
	db            *sql.DB
	dbMock        sqlmock.Sqlmock
	championships *mockChampionshipRepo
	standings     *mockStandingRepo
	matches       *mockMatchRepo
	users         *mockUserRepo
}

func newChampionshipService(t *testing.T) (ChampionshipService, *championshipServiceMocks) {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := &championshipServiceMocks{
		db:            db,
		dbMock:        dbMock,
		championships: new(mockChampionshipRepo),
		standings:     new(mockStandingRepo),
		matches:       new(mockMatchRepo),
		users:         new(mockUserRepo),
	}
	svc := NewChampionshipService(db, m.championships, m.standings, m.matches, m.users, testLogger())
	return svc, m
}

func TestAddTeamCreatesZeroedStanding(t *testing.T) {
	svc, m := newChampionshipService(t)

	m.dbMock.ExpectBegin()
	m.dbMock.ExpectCommit()

	m.championships.On("AddTeam", mock.Anything, mock.Anything, 1, 100).Return(nil)
	m.standings.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(s *models.Standing) bool {
		return s.ChampionshipID == 1 && s.TeamID == 100 &&
			s.Played == 0 && s.Points == 0 && s.GoalDifference == 0
	})).Return(nil)

	err := svc.AddTeam(context.Background(), 1, 100)

	require.NoError(t, err)
	assert.NoError(t, m.dbMock.ExpectationsWereMet())
	m.standings.AssertExpectations(t)
}

func TestAddTeamAlreadyEnrolled(t *testing.T) {
	svc, m := newChampionshipService(t)

	m.dbMock.ExpectBegin()
	m.dbMock.ExpectRollback()

	m.championships.On("AddTeam", mock.Anything, mock.Anything, 1, 100).Return(repositories.ErrChampionshipTeamConflict)

	err := svc.AddTeam(context.Background(), 1, 100)

	assert.ErrorIs(t, err, ErrTeamAlreadyEnrolled)
	m.standings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveTeamDeletesStanding(t *testing.T) {
	svc, m := newChampionshipService(t)

	m.dbMock.ExpectBegin()
	m.dbMock.ExpectCommit()

	m.championships.On("RemoveTeam", mock.Anything, mock.Anything, 1, 100).Return(nil)
	m.standings.On("DeleteByChampionshipAndTeam", mock.Anything, mock.Anything, 1, 100).Return(nil)

	err := svc.RemoveTeam(context.Background(), 1, 100)

	require.NoError(t, err)
	m.standings.AssertExpectations(t)
}

func TestRemoveTeamNotEnrolled(t *testing.T) {
	svc, m := newChampionshipService(t)

	m.dbMock.ExpectBegin()
	m.dbMock.ExpectRollback()

	m.championships.On("RemoveTeam", mock.Anything, mock.Anything, 1, 100).Return(repositories.ErrEnrollmentNotFound)

	err := svc.RemoveTeam(context.Background(), 1, 100)

	assert.ErrorIs(t, err, ErrTeamNotEnrolled)
}

func TestCreateChampionshipRejectsInvertedDates(t *testing.T) {
	svc, _ := newChampionshipService(t)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -7)

	_, err := svc.CreateChampionship(context.Background(), 1, CreateChampionshipInput{
		Name:      "Liga de Barrio",
		Location:  "Cancha Norte",
		StartDate: start,
		EndDate:   &end,
		Category:  "LIBRE",
	})

	assert.ErrorIs(t, err, ErrChampionshipDatesInvalid)
}

func TestGenerateFixturesCreatesAllPairings(t *testing.T) {
	svc, m := newChampionshipService(t)

	start := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	m.championships.On("GetByID", mock.Anything, 1).Return(&models.Championship{
		ID:        1,
		StartDate: start,
		Location:  "Cancha Norte",
	}, nil)
	m.championships.On("ListTeams", mock.Anything, 1).Return([]*models.Team{
		{ID: 100}, {ID: 200}, {ID: 300}, {ID: 400},
	}, nil)
	m.matches.On("Create", mock.Anything, mock.AnythingOfType("*models.Match")).Return(nil)

	matches, err := svc.GenerateFixtures(context.Background(), 1, GenerateFixturesInput{})

	require.NoError(t, err)
	// Четыре команды в один круг: 6 матчей в 3 тура.
	assert.Len(t, matches, 6)
	m.matches.AssertNumberOfCalls(t, "Create", 6)

	for _, match := range matches {
		assert.Equal(t, models.MatchScheduled, match.Status)
		assert.Equal(t, "Cancha Norte", match.Location)
		assert.NotEqual(t, match.HomeTeamID, match.AwayTeamID)
		assert.False(t, match.MatchDate.Before(start))
	}
}

func TestGenerateFixturesRequiresTwoTeams(t *testing.T) {
	svc, m := newChampionshipService(t)

	m.championships.On("GetByID", mock.Anything, 1).Return(&models.Championship{ID: 1}, nil)
	m.championships.On("ListTeams", mock.Anything, 1).Return([]*models.Team{{ID: 100}}, nil)

	_, err := svc.GenerateFixtures(context.Background(), 1, GenerateFixturesInput{})

	assert.ErrorIs(t, err, ErrFixturesNotEnoughTeams)
	m.matches.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
