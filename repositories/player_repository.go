package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/futliga/championship-system/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerTeamInvalid = errors.New("player team conflict or invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id int) error
	GetStats(ctx context.Context, playerID int) (*models.PlayerStats, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (team_id, first_name, last_name, jersey_number, position, date_of_birth)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.TeamID,
		player.FirstName,
		player.LastName,
		player.JerseyNumber,
		player.Position,
		player.DateOfBirth,
	).Scan(&player.ID, &player.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
		return ErrPlayerTeamInvalid
	}
	return err
}

func (r *postgresPlayerRepository) scanPlayer(rowScanner interface{ Scan(...interface{}) error }) (*models.Player, error) {
	player := &models.Player{}
	err := rowScanner.Scan(
		&player.ID,
		&player.TeamID,
		&player.FirstName,
		&player.LastName,
		&player.JerseyNumber,
		&player.Position,
		&player.DateOfBirth,
		&player.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT id, team_id, first_name, last_name, jersey_number, position, date_of_birth, created_at
		FROM players
		WHERE id = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	query := `
		SELECT id, team_id, first_name, last_name, jersey_number, position, date_of_birth, created_at
		FROM players
		WHERE team_id = $1
		ORDER BY jersey_number ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		player, scanErr := r.scanPlayer(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players
		SET first_name = $1, last_name = $2, jersey_number = $3, position = $4, date_of_birth = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		player.FirstName, player.LastName, player.JerseyNumber, player.Position, player.DateOfBirth, player.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM players WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// GetStats считает голы и карточки игрока по журналу событий.
func (r *postgresPlayerRepository) GetStats(ctx context.Context, playerID int) (*models.PlayerStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE event_type = 'GOAL')        AS goals,
			COUNT(*) FILTER (WHERE event_type = 'YELLOW_CARD') AS yellow_cards,
			COUNT(*) FILTER (WHERE event_type = 'RED_CARD')    AS red_cards
		FROM match_events
		WHERE player_id = $1`

	stats := &models.PlayerStats{}
	err := r.db.QueryRowContext(ctx, query, playerID).Scan(
		&stats.Goals, &stats.YellowCards, &stats.RedCards)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
