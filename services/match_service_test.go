package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/futliga/championship-system/models"
	"github.com/futliga/championship-system/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

type matchServiceMocks struct {
	db        *sql.DB
	dbMock    sqlmock.Sqlmock
	matchRepo *mockMatchRepo
	eventRepo *mockMatchEventRepo
	standings *mockStandingRepo
	teams     *mockTeamRepo
}

func newMatchService(t *testing.T) (MatchService, *matchServiceMocks) {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := &matchServiceMocks{
		db:        db,
		dbMock:    dbMock,
		matchRepo: new(mockMatchRepo),
		eventRepo: new(mockMatchEventRepo),
		standings: new(mockStandingRepo),
		teams:     new(mockTeamRepo),
	}
	svc := NewMatchService(db, m.matchRepo, m.eventRepo, m.standings, m.teams, testLogger())
	return svc, m
}

func liveMatch() *models.Match {
	return &models.Match{
		ID:             10,
		ChampionshipID: 1,
		HomeTeamID:     100,
		AwayTeamID:     200,
		Status:         models.MatchLive,
	}
}

func TestRecordEventGoalIncrementsHomeScore(t *testing.T) {
	svc, m := newMatchService(t)

	m.dbMock.ExpectBegin()
	m.dbMock.ExpectCommit()

	m.matchRepo.On("GetByID", mock.Anything, mock.Anything, 10).Return(liveMatch(), nil)
	m.eventRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*models.MatchEvent")).Return(nil)
	m.matchRepo.On("IncrementScore", mock.Anything, mock.Anything, 10, 1, 0).Return(nil)

	event, err := svc.RecordEvent(context.Background(), 10, RecordEventInput{
		EventType: models.EventGoal,
		Minute:    23,
		TeamID:    intPtr(100),
		PlayerID:  intPtr(7),
	})

	require.NoError(t, err)
	assert.Equal(t, models.EventGoal, event.EventType)
	assert.NoError(t, m.dbMock.ExpectationsWereMet())
	m.matchRepo.AssertExpectations(t)
	m.eventRepo.AssertExpectations(t)
	m.standings.AssertNotCalled(t, "ApplyResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordEventOwnGoalCreditsOpponent(t *testing.T) {
	svc, m := newMatchService(t)

	m.dbMock.ExpectBegin()
	m.dbMock.ExpectCommit()

	m.matchRepo.On("GetByID", mock.Anything, mock.Anything, 10).Return(liveMatch(), nil)
	m.eventRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*models.MatchEvent")).Return(nil)
	// Автогол хозяев даёт мяч гостям.
	m.matchRepo.On("IncrementScore", mock.Anything, mock.Anything, 10, 0, 1).Return(nil)

	_, err := svc.RecordEvent(context.Background(), 10, RecordEventInput{
		EventType: models.EventOwnGoal,
		Minute:    40,
		TeamID:    intPtr(100),
	})

	require.NoError(t, err)
	m.matchRepo.AssertExpectations(t)
}

func TestRecordEventFullTimeFoldsStandings(t *testing.T) {
	svc, m := newMatchService(t)

	match := liveMatch()
	match.Status = models.MatchSecondHalf
	match.HomeScore = 2
	match.AwayScore = 1

	m.dbMock.ExpectBegin()
	m.dbMock.ExpectCommit()

	m.matchRepo.On("GetByID", mock.Anything, mock.Anything, 10).Return(match, nil)
	m.eventRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*models.MatchEvent")).Return(nil)
	m.matchRepo.On("UpdateStatus", mock.Anything, mock.Anything, 10, models.MatchFinished).Return(nil)

	m.standings.On("ApplyResult", mock.Anything, mock.Anything, 1, 100, repositories.StandingDelta{
		Won: 1, GoalsFor: 2, GoalsAgainst: 1, Points: 3,
	}).Return(nil)
	m.standings.On("ApplyResult", mock.Anything, mock.Anything, 1, 200, repositories.StandingDelta{
		Lost: 1, GoalsFor: 1, GoalsAgainst: 2,
	}).Return(nil)

	_, err := svc.RecordEvent(context.Background(), 10, RecordEventInput{
		EventType: models.EventFullTime,
		Minute:    90,
	})

	require.NoError(t, err)
	assert.NoError(t, m.dbMock.ExpectationsWereMet())
	m.standings.AssertExpectations(t)
	m.matchRepo.AssertExpectations(t)
}

func TestRecordEventFullTimeDrawFoldsOnePointEach(t *testing.T) {
	svc, m := newMatchService(t)

	match := liveMatch()
	match.HomeScore = 1
	match.AwayScore = 1

	m.dbMock.ExpectBegin()
	m.dbMock.ExpectCommit()

	m.matchRepo.On("GetByID", mock.Anything, mock.Anything, 10).Return(match, nil)
	m.eventRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*models.MatchEvent")).Return(nil)
	m.matchRepo.On("UpdateStatus", mock.Anything, mock.Anything, 10, models.MatchFinished).Return(nil)

	drawDelta := repositories.StandingDelta{Drawn: 1, GoalsFor: 1, GoalsAgainst: 1, Points: 1}
	m.standings.On("ApplyResult", mock.Anything, mock.Anything, 1, 100, drawDelta).Return(nil)
	m.standings.On("ApplyResult", mock.Anything, mock.Anything, 1, 200, drawDelta).Return(nil)

	_, err := svc.RecordEvent(context.Background(), 10, RecordEventInput{
		EventType: models.EventFullTime,
		Minute:    92,
	})

	require.NoError(t, err)
	m.standings.AssertExpectations(t)
}

func TestRecordEventRejectedOnFinalizedMatch(t *testing.T) {
	tests := []struct {
		name   string
		status models.MatchStatus
		input  RecordEventInput
	}{
		{
			name:   "goal after full time",
			status: models.MatchFinished,
			input:  RecordEventInput{EventType: models.EventGoal, Minute: 95, TeamID: intPtr(100)},
		},
		{
			name:   "duplicate full time",
			status: models.MatchFinished,
			input:  RecordEventInput{EventType: models.EventFullTime, Minute: 95},
		},
		{
			name:   "own goal on cancelled match",
			status: models.MatchCancelled,
			input:  RecordEventInput{EventType: models.EventOwnGoal, Minute: 10, TeamID: intPtr(200)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newMatchService(t)

			match := liveMatch()
			match.Status = tt.status

			m.dbMock.ExpectBegin()
			m.dbMock.ExpectRollback()
			m.matchRepo.On("GetByID", mock.Anything, mock.Anything, 10).Return(match, nil)

			_, err := svc.RecordEvent(context.Background(), 10, tt.input)

			assert.ErrorIs(t, err, ErrMatchAlreadyFinalized)
			m.eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			m.standings.AssertNotCalled(t, "ApplyResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRecordEventDisplayOnlyAllowedOnFinishedMatch(t *testing.T) {
	svc, m := newMatchService(t)

	match := liveMatch()
	match.Status = models.MatchFinished

	m.dbMock.ExpectBegin()
	m.dbMock.ExpectCommit()

	m.matchRepo.On("GetByID", mock.Anything, mock.Anything, 10).Return(match, nil)
	m.eventRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*models.MatchEvent")).Return(nil)

	// Жёлтая карточка не трогает ни счёт, ни таблицу.
	_, err := svc.RecordEvent(context.Background(), 10, RecordEventInput{
		EventType: models.EventYellowCard,
		Minute:    89,
		PlayerID:  intPtr(7),
	})

	require.NoError(t, err)
	m.matchRepo.AssertNotCalled(t, "IncrementScore", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.standings.AssertNotCalled(t, "ApplyResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordEventPayloadValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   RecordEventInput
		wantErr error
	}{
		{
			name:    "unknown event type",
			input:   RecordEventInput{EventType: "PENALTY_SHOOTOUT", Minute: 10},
			wantErr: ErrEventTypeInvalid,
		},
		{
			name:    "negative minute",
			input:   RecordEventInput{EventType: models.EventGoal, Minute: -1, TeamID: intPtr(100)},
			wantErr: ErrEventMinuteInvalid,
		},
		{
			name:    "minute beyond stoppage",
			input:   RecordEventInput{EventType: models.EventGoal, Minute: 131, TeamID: intPtr(100)},
			wantErr: ErrEventMinuteInvalid,
		},
		{
			name:    "goal without team",
			input:   RecordEventInput{EventType: models.EventGoal, Minute: 10},
			wantErr: ErrEventTeamRequired,
		},
		{
			name:    "goal by team not in match",
			input:   RecordEventInput{EventType: models.EventGoal, Minute: 10, TeamID: intPtr(999)},
			wantErr: ErrEventTeamNotInMatch,
		},
		{
			name:    "card without player",
			input:   RecordEventInput{EventType: models.EventRedCard, Minute: 10, TeamID: intPtr(100)},
			wantErr: ErrEventPlayerRequired,
		},
		{
			name:    "substitution with same player in and out",
			input:   RecordEventInput{EventType: models.EventSubstitution, Minute: 60, PlayerID: intPtr(7), PlayerOutID: intPtr(7)},
			wantErr: ErrEventSubstitutionFields,
		},
		{
			name:    "substitution without outgoing player",
			input:   RecordEventInput{EventType: models.EventSubstitution, Minute: 60, PlayerID: intPtr(7)},
			wantErr: ErrEventSubstitutionFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newMatchService(t)

			// Валидация типа и минуты срабатывает до транзакции.
			if tt.wantErr != ErrEventTypeInvalid && tt.wantErr != ErrEventMinuteInvalid {
				m.dbMock.ExpectBegin()
				m.dbMock.ExpectRollback()
				m.matchRepo.On("GetByID", mock.Anything, mock.Anything, 10).Return(liveMatch(), nil)
			}

			_, err := svc.RecordEvent(context.Background(), 10, tt.input)

			assert.ErrorIs(t, err, tt.wantErr)
			m.eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRecordEventMatchNotFound(t *testing.T) {
	svc, m := newMatchService(t)

	m.dbMock.ExpectBegin()
	m.dbMock.ExpectRollback()
	m.matchRepo.On("GetByID", mock.Anything, mock.Anything, 42).Return(nil, repositories.ErrMatchNotFound)

	_, err := svc.RecordEvent(context.Background(), 42, RecordEventInput{
		EventType: models.EventKickOff,
		Minute:    0,
	})

	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestCreateMatchRejectsSameTeams(t *testing.T) {
	svc, _ := newMatchService(t)

	_, err := svc.CreateMatch(context.Background(), CreateMatchInput{
		ChampionshipID: 1,
		HomeTeamID:     100,
		AwayTeamID:     100,
		MatchDate:      "2026-09-01T18:00:00Z",
		Location:       "Estadio Municipal",
	})

	assert.ErrorIs(t, err, ErrMatchSameTeams)
}

func TestUpdateMatchCannotFinishDirectly(t *testing.T) {
	svc, m := newMatchService(t)

	m.matchRepo.On("GetByID", mock.Anything, nil, 10).Return(liveMatch(), nil)

	finished := models.MatchFinished
	_, err := svc.UpdateMatch(context.Background(), 10, UpdateMatchInput{Status: &finished})

	assert.ErrorIs(t, err, ErrMatchFinishedViaUpdate)
	m.matchRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateMatchRejectsInvalidTransition(t *testing.T) {
	svc, m := newMatchService(t)

	match := liveMatch()
	match.Status = models.MatchCancelled
	m.matchRepo.On("GetByID", mock.Anything, nil, 10).Return(match, nil)

	scheduled := models.MatchScheduled
	_, err := svc.UpdateMatch(context.Background(), 10, UpdateMatchInput{Status: &scheduled})

	assert.ErrorIs(t, err, ErrMatchStatusTransitionInvalid)
}

func TestUpdateMatchAllowsSuspension(t *testing.T) {
	svc, m := newMatchService(t)

	m.matchRepo.On("GetByID", mock.Anything, nil, 10).Return(liveMatch(), nil)
	m.matchRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Match")).Return(nil)

	suspended := models.MatchSuspended
	match, err := svc.UpdateMatch(context.Background(), 10, UpdateMatchInput{Status: &suspended})

	require.NoError(t, err)
	assert.Equal(t, models.MatchSuspended, match.Status)
}
