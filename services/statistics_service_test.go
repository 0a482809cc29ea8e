package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/futliga/championship-system/cache"
	"github.com/futliga/championship-system/models"
	"github.com/futliga/championship-system/repositories"
)

// fakeStatsCache — кэш в памяти для тестов, без TTL.
type fakeStatsCache struct {
	entries map[string]string
	sets    int
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{entries: make(map[string]string)}
}

func (c *fakeStatsCache) Get(_ context.Context, key string) (string, error) {
	value, ok := c.entries[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return value, nil
}

func (c *fakeStatsCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, ok := value.([]byte)
	if !ok {
		raw, _ = json.Marshal(value)
	}
	c.entries[key] = string(raw)
	c.sets++
	return nil
}

func newStatisticsService(statsCache StatsCache) (StatisticsService, *mockStandingRepo, *mockMatchEventRepo, *mockChampionshipRepo) {
	standings := new(mockStandingRepo)
	events := new(mockMatchEventRepo)
	championships := new(mockChampionshipRepo)
	svc := NewStatisticsService(standings, events, championships, statsCache, testLogger())
	return svc, standings, events, championships
}

func TestGetStandingsCachesResult(t *testing.T) {
	statsCache := newFakeStatsCache()
	svc, standings, _, championships := newStatisticsService(statsCache)

	table := []*models.Standing{
		{ChampionshipID: 1, TeamID: 100, Played: 1, Won: 1, GoalsFor: 2, GoalsAgainst: 1, GoalDifference: 1, Points: 3},
		{ChampionshipID: 1, TeamID: 200, Played: 1, Lost: 1, GoalsFor: 1, GoalsAgainst: 2, GoalDifference: -1, Points: 0},
	}

	championships.On("GetByID", mock.Anything, 1).Return(&models.Championship{ID: 1}, nil).Once()
	standings.On("ListByChampionship", mock.Anything, 1).Return(table, nil).Once()

	first, err := svc.GetStandings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// Второй вызов идёт из кэша, репозиторий больше не трогаем.
	second, err := svc.GetStandings(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first[0].Points, second[0].Points)
	assert.Equal(t, 1, statsCache.sets)
	standings.AssertNumberOfCalls(t, "ListByChampionship", 1)
}

func TestGetStandingsWithoutCacheReadsRepository(t *testing.T) {
	svc, standings, _, championships := newStatisticsService(nil)

	championships.On("GetByID", mock.Anything, 1).Return(&models.Championship{ID: 1}, nil)
	standings.On("ListByChampionship", mock.Anything, 1).Return([]*models.Standing{}, nil)

	_, err := svc.GetStandings(context.Background(), 1)
	require.NoError(t, err)

	_, err = svc.GetStandings(context.Background(), 1)
	require.NoError(t, err)
	standings.AssertNumberOfCalls(t, "ListByChampionship", 2)
}

func TestGetStandingsChampionshipNotFound(t *testing.T) {
	svc, _, _, championships := newStatisticsService(nil)

	championships.On("GetByID", mock.Anything, 77).Return(nil, repositories.ErrChampionshipNotFound)

	_, err := svc.GetStandings(context.Background(), 77)
	assert.ErrorIs(t, err, ErrChampionshipNotFound)
}

func TestGetTopScorersDefaultsLimit(t *testing.T) {
	svc, _, events, championships := newStatisticsService(nil)

	scorers := []*models.Scorer{
		{Player: models.Player{ID: 7}, Goals: 5},
		{Player: models.Player{ID: 9}, Goals: 3},
	}
	championships.On("GetByID", mock.Anything, 1).Return(&models.Championship{ID: 1}, nil)
	events.On("TopScorers", mock.Anything, 1, defaultScorerLimit).Return(scorers, nil)

	result, err := svc.GetTopScorers(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, 5, result[0].Goals)
	events.AssertExpectations(t)
}

func TestGetCardTallyWeightsRedCards(t *testing.T) {
	svc, _, events, championships := newStatisticsService(newFakeStatsCache())

	// Одна жёлтая плюс одна красная весят больше двух жёлтых.
	tally := []*models.PlayerCardStats{
		{Player: models.Player{ID: 3}, YellowCards: 1, RedCards: 1, TotalCards: 3},
		{Player: models.Player{ID: 5}, YellowCards: 2, RedCards: 0, TotalCards: 2},
	}
	championships.On("GetByID", mock.Anything, 1).Return(&models.Championship{ID: 1}, nil)
	events.On("CardTally", mock.Anything, 1).Return(tally, nil)

	result, err := svc.GetCardTally(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, 3, result[0].TotalCards)
	assert.Equal(t, 3, result[0].Player.ID)
}
