package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/futliga/championship-system/models"
	"github.com/lib/pq"
)

var (
	ErrMatchEventNotFound       = errors.New("match event not found")
	ErrMatchEventPlayerInvalid  = errors.New("match event player reference invalid")
	ErrMatchEventMatchInvalid   = errors.New("match event match reference invalid")
)

type MatchEventRepository interface {
	// Create добавляет запись в журнал событий. Журнал append-only:
	// обновления и удаления отдельных событий не поддерживаются.
	Create(ctx context.Context, exec SQLExecutor, event *models.MatchEvent) error

	// ListByMatch возвращает события в порядке отображения: по минуте,
	// затем по порядку вставки. Порядок применения к счёту — порядок вставки.
	ListByMatch(ctx context.Context, matchID int) ([]*models.MatchEvent, error)

	TopScorers(ctx context.Context, championshipID, limit int) ([]*models.Scorer, error)
	CardTally(ctx context.Context, championshipID int) ([]*models.PlayerCardStats, error)
}

type postgresMatchEventRepository struct {
	db *sql.DB
}

func NewPostgresMatchEventRepository(db *sql.DB) MatchEventRepository {
	return &postgresMatchEventRepository{db: db}
}

func (r *postgresMatchEventRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchEventRepository) Create(ctx context.Context, exec SQLExecutor, event *models.MatchEvent) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO match_events (match_id, event_type, minute, team_id, player_id, player_out_id, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		event.MatchID,
		event.EventType,
		event.Minute,
		event.TeamID,
		event.PlayerID,
		event.PlayerOutID,
		event.Description,
	).Scan(&event.ID, &event.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		switch pqErr.Constraint {
		case "match_events_match_id_fkey":
			return ErrMatchEventMatchInvalid
		case "match_events_player_id_fkey", "match_events_player_out_id_fkey":
			return ErrMatchEventPlayerInvalid
		}
	}
	return err
}

func (r *postgresMatchEventRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.MatchEvent, error) {
	query := `
		SELECT e.id, e.match_id, e.event_type, e.minute, e.team_id, e.player_id, e.player_out_id, e.description, e.created_at,
		       p.id, p.team_id, p.first_name, p.last_name, p.jersey_number, p.position
		FROM match_events e
		LEFT JOIN players p ON p.id = e.player_id
		WHERE e.match_id = $1
		ORDER BY e.minute ASC, e.id ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*models.MatchEvent, 0)
	for rows.Next() {
		event := &models.MatchEvent{}
		var pID, pTeamID, pJersey sql.NullInt64
		var pFirst, pLast, pPosition sql.NullString
		if scanErr := rows.Scan(
			&event.ID, &event.MatchID, &event.EventType, &event.Minute,
			&event.TeamID, &event.PlayerID, &event.PlayerOutID, &event.Description, &event.CreatedAt,
			&pID, &pTeamID, &pFirst, &pLast, &pJersey, &pPosition,
		); scanErr != nil {
			return nil, scanErr
		}
		if pID.Valid {
			event.Player = &models.Player{
				ID:           int(pID.Int64),
				TeamID:       int(pTeamID.Int64),
				FirstName:    pFirst.String,
				LastName:     pLast.String,
				JerseyNumber: int(pJersey.Int64),
				Position:     models.PlayerPosition(pPosition.String),
			}
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// TopScorers агрегирует голы по игрокам за чемпионат.
// Автоголы бомбардирам не засчитываются. Ничьи упорядочены по id игрока.
func (r *postgresMatchEventRepository) TopScorers(ctx context.Context, championshipID, limit int) ([]*models.Scorer, error) {
	query := `
		SELECT p.id, p.team_id, p.first_name, p.last_name, p.jersey_number, p.position, COUNT(*) AS goals
		FROM match_events e
		JOIN matches m ON m.id = e.match_id
		JOIN players p ON p.id = e.player_id
		WHERE m.championship_id = $1 AND e.event_type = 'GOAL'
		GROUP BY p.id, p.team_id, p.first_name, p.last_name, p.jersey_number, p.position
		ORDER BY goals DESC, p.id ASC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, championshipID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scorers := make([]*models.Scorer, 0)
	for rows.Next() {
		s := &models.Scorer{}
		if scanErr := rows.Scan(
			&s.Player.ID, &s.Player.TeamID, &s.Player.FirstName, &s.Player.LastName,
			&s.Player.JerseyNumber, &s.Player.Position, &s.Goals,
		); scanErr != nil {
			return nil, scanErr
		}
		scorers = append(scorers, s)
	}
	return scorers, rows.Err()
}

// CardTally агрегирует карточки по игрокам за чемпионат.
// Взвешенный итог: жёлтая = 1, красная = 2.
func (r *postgresMatchEventRepository) CardTally(ctx context.Context, championshipID int) ([]*models.PlayerCardStats, error) {
	query := `
		SELECT p.id, p.team_id, p.first_name, p.last_name, p.jersey_number, p.position,
		       COUNT(*) FILTER (WHERE e.event_type = 'YELLOW_CARD') AS yellow_cards,
		       COUNT(*) FILTER (WHERE e.event_type = 'RED_CARD')   AS red_cards,
		       COUNT(*) FILTER (WHERE e.event_type = 'YELLOW_CARD')
		         + 2 * COUNT(*) FILTER (WHERE e.event_type = 'RED_CARD') AS total_cards
		FROM match_events e
		JOIN matches m ON m.id = e.match_id
		JOIN players p ON p.id = e.player_id
		WHERE m.championship_id = $1 AND e.event_type IN ('YELLOW_CARD', 'RED_CARD')
		GROUP BY p.id, p.team_id, p.first_name, p.last_name, p.jersey_number, p.position
		ORDER BY total_cards DESC, p.id ASC`

	rows, err := r.db.QueryContext(ctx, query, championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]*models.PlayerCardStats, 0)
	for rows.Next() {
		cs := &models.PlayerCardStats{}
		if scanErr := rows.Scan(
			&cs.Player.ID, &cs.Player.TeamID, &cs.Player.FirstName, &cs.Player.LastName,
			&cs.Player.JerseyNumber, &cs.Player.Position,
			&cs.YellowCards, &cs.RedCards, &cs.TotalCards,
		); scanErr != nil {
			return nil, scanErr
		}
		stats = append(stats, cs)
	}
	return stats, rows.Err()
}
