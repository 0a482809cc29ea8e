package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/futliga/championship-system/cache"
	"github.com/futliga/championship-system/models"
	"github.com/futliga/championship-system/repositories"
)

const (
	statsCacheTTL      = 30 * time.Second
	defaultScorerLimit = 20
)

// StatsCache — минимальный контракт кэша статистики; его реализует
// cache.RedisClient. nil-кэш допустим, тогда читаем напрямую из БД.
type StatsCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type StatisticsService interface {
	GetStandings(ctx context.Context, championshipID int) ([]*models.Standing, error)
	GetTopScorers(ctx context.Context, championshipID, limit int) ([]*models.Scorer, error)
	GetCardTally(ctx context.Context, championshipID int) ([]*models.PlayerCardStats, error)
}

type statisticsService struct {
	standingRepo     repositories.StandingRepository
	eventRepo        repositories.MatchEventRepository
	championshipRepo repositories.ChampionshipRepository
	cache            StatsCache
	logger           *slog.Logger
}

func NewStatisticsService(
	standingRepo repositories.StandingRepository,
	eventRepo repositories.MatchEventRepository,
	championshipRepo repositories.ChampionshipRepository,
	cache StatsCache,
	logger *slog.Logger,
) StatisticsService {
	return &statisticsService{
		standingRepo:     standingRepo,
		eventRepo:        eventRepo,
		championshipRepo: championshipRepo,
		cache:            cache,
		logger:           logger,
	}
}

func (s *statisticsService) GetStandings(ctx context.Context, championshipID int) ([]*models.Standing, error) {
	cacheKey := fmt.Sprintf("stats:standings:%d", championshipID)

	var cached []*models.Standing
	if s.readCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	if err := s.ensureChampionship(ctx, championshipID); err != nil {
		return nil, err
	}

	standings, err := s.standingRepo.ListByChampionship(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings for championship %d: %w", championshipID, err)
	}

	s.writeCache(ctx, cacheKey, standings)
	return standings, nil
}

func (s *statisticsService) GetTopScorers(ctx context.Context, championshipID, limit int) ([]*models.Scorer, error) {
	if limit <= 0 {
		limit = defaultScorerLimit
	}
	cacheKey := fmt.Sprintf("stats:scorers:%d:%d", championshipID, limit)

	var cached []*models.Scorer
	if s.readCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	if err := s.ensureChampionship(ctx, championshipID); err != nil {
		return nil, err
	}

	scorers, err := s.eventRepo.TopScorers(ctx, championshipID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top scorers for championship %d: %w", championshipID, err)
	}

	s.writeCache(ctx, cacheKey, scorers)
	return scorers, nil
}

func (s *statisticsService) GetCardTally(ctx context.Context, championshipID int) ([]*models.PlayerCardStats, error) {
	cacheKey := fmt.Sprintf("stats:cards:%d", championshipID)

	var cached []*models.PlayerCardStats
	if s.readCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	if err := s.ensureChampionship(ctx, championshipID); err != nil {
		return nil, err
	}

	tally, err := s.eventRepo.CardTally(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute card tally for championship %d: %w", championshipID, err)
	}

	s.writeCache(ctx, cacheKey, tally)
	return tally, nil
}

func (s *statisticsService) ensureChampionship(ctx context.Context, championshipID int) error {
	if _, err := s.championshipRepo.GetByID(ctx, championshipID); err != nil {
		if errors.Is(err, repositories.ErrChampionshipNotFound) {
			return ErrChampionshipNotFound
		}
		return err
	}
	return nil
}

// readCache пытается взять значение из кэша. Ошибки кэша не фатальны:
// логируем и идём в БД.
func (s *statisticsService) readCache(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.WarnContext(ctx, "stats cache read failed",
				slog.String("key", key), slog.Any("error", err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.WarnContext(ctx, "stats cache entry is corrupt",
			slog.String("key", key), slog.Any("error", err))
		return false
	}
	return true
}

func (s *statisticsService) writeCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.WarnContext(ctx, "stats cache marshal failed",
			slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := s.cache.Set(ctx, key, raw, statsCacheTTL); err != nil {
		s.logger.WarnContext(ctx, "stats cache write failed",
			slog.String("key", key), slog.Any("error", err))
	}
}
