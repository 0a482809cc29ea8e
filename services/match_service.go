package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/futliga/championship-system/models"
	"github.com/futliga/championship-system/repositories"
)

// Минуты событий. Верхняя граница с запасом на дополнительное время.
const (
	minEventMinute = 0
	maxEventMinute = 130
)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListMatchesByChampionship(ctx context.Context, championshipID int) ([]*models.Match, error)
	UpdateMatch(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error

	// RecordEvent добавляет событие в журнал матча и применяет его эффект:
	// голы двигают счёт, FULL_TIME завершает матч и складывает результат
	// в таблицу обоих участников. Возвращает сохранённое событие; публикация
	// в live-канал — забота вызывающей стороны.
	RecordEvent(ctx context.Context, matchID int, input RecordEventInput) (*models.MatchEvent, error)
	ListEvents(ctx context.Context, matchID int) ([]*models.MatchEvent, error)
}

type CreateMatchInput struct {
	ChampionshipID int     `json:"championship_id"`
	HomeTeamID     int     `json:"home_team_id"`
	AwayTeamID     int     `json:"away_team_id"`
	MatchDate      string  `json:"match_date"` // RFC3339
	Location       string  `json:"location"`
	Field          *string `json:"field,omitempty"`
}

type UpdateMatchInput struct {
	MatchDate *string             `json:"match_date,omitempty"` // RFC3339
	Location  *string             `json:"location,omitempty"`
	Field     *string             `json:"field,omitempty"`
	Status    *models.MatchStatus `json:"status,omitempty"`
}

type RecordEventInput struct {
	EventType   models.MatchEventType `json:"event_type"`
	Minute      int                   `json:"minute"`
	TeamID      *int                  `json:"team_id,omitempty"`
	PlayerID    *int                  `json:"player_id,omitempty"`
	PlayerOutID *int                  `json:"player_out_id,omitempty"`
	Description *string               `json:"description,omitempty"`
}

type matchService struct {
	db           *sql.DB // для транзакций, охватывающих событие, счёт и standings
	matchRepo    repositories.MatchRepository
	eventRepo    repositories.MatchEventRepository
	standingRepo repositories.StandingRepository
	teamRepo     repositories.TeamRepository
	logger       *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	eventRepo repositories.MatchEventRepository,
	standingRepo repositories.StandingRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:           db,
		matchRepo:    matchRepo,
		eventRepo:    eventRepo,
		standingRepo: standingRepo,
		teamRepo:     teamRepo,
		logger:       logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrMatchSameTeams
	}

	matchDate, err := parseRFC3339(input.MatchDate)
	if err != nil {
		return nil, err
	}

	match := &models.Match{
		ChampionshipID: input.ChampionshipID,
		HomeTeamID:     input.HomeTeamID,
		AwayTeamID:     input.AwayTeamID,
		MatchDate:      matchDate,
		Location:       input.Location,
		Field:          input.Field,
		Status:         models.MatchScheduled,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchTeamInvalid) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	s.populateTeams(ctx, match)

	events, err := s.eventRepo.ListByMatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for match %d: %w", id, err)
	}
	match.Events = make([]models.MatchEvent, 0, len(events))
	for _, e := range events {
		match.Events = append(match.Events, *e)
	}
	return match, nil
}

func (s *matchService) ListMatchesByChampionship(ctx context.Context, championshipID int) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByChampionship(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for championship %d: %w", championshipID, err)
	}
	for _, match := range matches {
		s.populateTeams(ctx, match)
	}
	return matches, nil
}

func (s *matchService) UpdateMatch(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if input.MatchDate != nil {
		matchDate, parseErr := parseRFC3339(*input.MatchDate)
		if parseErr != nil {
			return nil, parseErr
		}
		match.MatchDate = matchDate
	}
	if input.Location != nil {
		match.Location = *input.Location
	}
	if input.Field != nil {
		match.Field = input.Field
	}
	if input.Status != nil {
		next := *input.Status
		if !next.Valid() {
			return nil, ErrMatchStatusInvalid
		}
		// FINISHED достижим только через событие FULL_TIME.
		if next == models.MatchFinished && match.Status != models.MatchFinished {
			return nil, ErrMatchFinishedViaUpdate
		}
		if !isValidMatchStatusTransition(match.Status, next) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrMatchStatusTransitionInvalid, match.Status, next)
		}
		match.Status = next
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return nil
}

func (s *matchService) RecordEvent(ctx context.Context, matchID int, input RecordEventInput) (*models.MatchEvent, error) {
	if !input.EventType.Valid() {
		return nil, ErrEventTypeInvalid
	}
	if input.Minute < minEventMinute || input.Minute > maxEventMinute {
		return nil, ErrEventMinuteInvalid
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	match, err := s.matchRepo.GetByID(ctx, tx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if err := validateEventPayload(match, input); err != nil {
		return nil, err
	}

	// Счёт и таблица финализированного матча неизменяемы: пропущенный
	// сюда гол или повторный FULL_TIME сложил бы результат в standings
	// ещё раз. События без эффекта на счёт записывать можно всегда.
	if (input.EventType.AffectsScore() || input.EventType == models.EventFullTime) && match.Status.Terminal() {
		return nil, ErrMatchAlreadyFinalized
	}

	event := &models.MatchEvent{
		MatchID:     matchID,
		EventType:   input.EventType,
		Minute:      input.Minute,
		TeamID:      input.TeamID,
		PlayerID:    input.PlayerID,
		PlayerOutID: input.PlayerOutID,
		Description: input.Description,
	}
	if err := s.eventRepo.Create(ctx, tx, event); err != nil {
		if errors.Is(err, repositories.ErrMatchEventPlayerInvalid) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to record event: %w", err)
	}

	switch {
	case input.EventType.AffectsScore():
		// Автогол засчитывается противоположной стороне.
		homeSide := *input.TeamID == match.HomeTeamID
		if input.EventType == models.EventOwnGoal {
			homeSide = !homeSide
		}
		homeDelta, awayDelta := 0, 1
		if homeSide {
			homeDelta, awayDelta = 1, 0
		}
		if err := s.matchRepo.IncrementScore(ctx, tx, matchID, homeDelta, awayDelta); err != nil {
			return nil, fmt.Errorf("failed to update score for match %d: %w", matchID, err)
		}

	case input.EventType == models.EventFullTime:
		if err := s.matchRepo.UpdateStatus(ctx, tx, matchID, models.MatchFinished); err != nil {
			return nil, fmt.Errorf("failed to finish match %d: %w", matchID, err)
		}
		if err := s.foldStandings(ctx, tx, match); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit event for match %d: %w", matchID, err)
	}

	s.logger.InfoContext(ctx, "match event recorded",
		slog.Int("match_id", matchID),
		slog.String("event_type", string(input.EventType)),
		slog.Int("minute", input.Minute),
	)
	return event, nil
}

func (s *matchService) ListEvents(ctx context.Context, matchID int) ([]*models.MatchEvent, error) {
	if _, err := s.matchRepo.GetByID(ctx, nil, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	events, err := s.eventRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for match %d: %w", matchID, err)
	}
	return events, nil
}

// foldStandings складывает итог завершённого матча в строки standings обеих
// команд. Дельты относительные (прирост поверх сохранённых значений), поэтому
// вызов обязан происходить ровно один раз на матч: это гарантирует запрет
// повторного FULL_TIME в RecordEvent.
func (s *matchService) foldStandings(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	homeWin := match.HomeScore > match.AwayScore
	draw := match.HomeScore == match.AwayScore
	awayWin := match.AwayScore > match.HomeScore

	homeDelta := repositories.StandingDelta{
		GoalsFor:     match.HomeScore,
		GoalsAgainst: match.AwayScore,
	}
	awayDelta := repositories.StandingDelta{
		GoalsFor:     match.AwayScore,
		GoalsAgainst: match.HomeScore,
	}
	switch {
	case homeWin:
		homeDelta.Won, homeDelta.Points = 1, 3
		awayDelta.Lost = 1
	case draw:
		homeDelta.Drawn, homeDelta.Points = 1, 1
		awayDelta.Drawn, awayDelta.Points = 1, 1
	case awayWin:
		homeDelta.Lost = 1
		awayDelta.Won, awayDelta.Points = 1, 3
	}

	if err := s.standingRepo.ApplyResult(ctx, exec, match.ChampionshipID, match.HomeTeamID, homeDelta); err != nil {
		if errors.Is(err, repositories.ErrStandingNotFound) {
			return fmt.Errorf("%w: team %d", ErrStandingNotFound, match.HomeTeamID)
		}
		return fmt.Errorf("failed to fold standings for home team %d: %w", match.HomeTeamID, err)
	}
	if err := s.standingRepo.ApplyResult(ctx, exec, match.ChampionshipID, match.AwayTeamID, awayDelta); err != nil {
		if errors.Is(err, repositories.ErrStandingNotFound) {
			return fmt.Errorf("%w: team %d", ErrStandingNotFound, match.AwayTeamID)
		}
		return fmt.Errorf("failed to fold standings for away team %d: %w", match.AwayTeamID, err)
	}
	return nil
}

// validateEventPayload проверяет, что событие несёт ровно те поля,
// которые нужны его типу, до какой-либо записи в БД.
func validateEventPayload(match *models.Match, input RecordEventInput) error {
	inMatch := func(teamID int) bool {
		return teamID == match.HomeTeamID || teamID == match.AwayTeamID
	}

	switch input.EventType {
	case models.EventGoal, models.EventOwnGoal:
		if input.TeamID == nil {
			return ErrEventTeamRequired
		}
		if !inMatch(*input.TeamID) {
			return ErrEventTeamNotInMatch
		}
	case models.EventYellowCard, models.EventRedCard:
		if input.PlayerID == nil {
			return ErrEventPlayerRequired
		}
		if input.TeamID != nil && !inMatch(*input.TeamID) {
			return ErrEventTeamNotInMatch
		}
	case models.EventSubstitution:
		if input.PlayerID == nil || input.PlayerOutID == nil || *input.PlayerID == *input.PlayerOutID {
			return ErrEventSubstitutionFields
		}
		if input.TeamID != nil && !inMatch(*input.TeamID) {
			return ErrEventTeamNotInMatch
		}
	default:
		// Маркеры периодов: дополнительных полей не требуют.
		if input.TeamID != nil && !inMatch(*input.TeamID) {
			return ErrEventTeamNotInMatch
		}
	}
	return nil
}

func (s *matchService) populateTeams(ctx context.Context, match *models.Match) {
	if home, err := s.teamRepo.GetByID(ctx, match.HomeTeamID); err == nil {
		match.HomeTeam = home
	} else {
		s.logger.WarnContext(ctx, "failed to populate home team",
			slog.Int("match_id", match.ID), slog.Int("team_id", match.HomeTeamID), slog.Any("error", err))
	}
	if away, err := s.teamRepo.GetByID(ctx, match.AwayTeamID); err == nil {
		match.AwayTeam = away
	} else {
		s.logger.WarnContext(ctx, "failed to populate away team",
			slog.Int("match_id", match.ID), slog.Int("team_id", match.AwayTeamID), slog.Any("error", err))
	}
}
