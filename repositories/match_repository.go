package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/futliga/championship-system/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match team or championship reference invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListByChampionship(ctx context.Context, championshipID int) ([]*models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int) error

	// IncrementScore применяет относительный прирост счёта на стороне БД,
	// чтобы параллельные записи событий не теряли обновления.
	IncrementScore(ctx context.Context, exec SQLExecutor, id, homeDelta, awayDelta int) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.MatchStatus) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (championship_id, home_team_id, away_team_id, match_date, location, field, status, home_score, away_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.ChampionshipID,
		match.HomeTeamID,
		match.AwayTeamID,
		match.MatchDate,
		match.Location,
		match.Field,
		match.Status,
		match.HomeScore,
		match.AwayScore,
	).Scan(&match.ID, &match.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
		return ErrMatchTeamInvalid
	}
	return err
}

func (r *postgresMatchRepository) scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	match := &models.Match{}
	err := rowScanner.Scan(
		&match.ID,
		&match.ChampionshipID,
		&match.HomeTeamID,
		&match.AwayTeamID,
		&match.MatchDate,
		&match.Location,
		&match.Field,
		&match.Status,
		&match.HomeScore,
		&match.AwayScore,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, championship_id, home_team_id, away_team_id, match_date, location, field, status, home_score, away_score, created_at
		FROM matches
		WHERE id = $1`
	return r.scanMatch(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) ListByChampionship(ctx context.Context, championshipID int) ([]*models.Match, error) {
	query := `
		SELECT id, championship_id, home_team_id, away_team_id, match_date, location, field, status, home_score, away_score, created_at
		FROM matches
		WHERE championship_id = $1
		ORDER BY match_date ASC`

	rows, err := r.db.QueryContext(ctx, query, championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET match_date = $1, location = $2, field = $3, status = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		match.MatchDate, match.Location, match.Field, match.Status, match.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	// События матча удаляются каскадом.
	query := `DELETE FROM matches WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) IncrementScore(ctx context.Context, exec SQLExecutor, id, homeDelta, awayDelta int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET home_score = home_score + $1, away_score = away_score + $2
		WHERE id = $3`

	result, err := executor.ExecContext(ctx, query, homeDelta, awayDelta, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.MatchStatus) error {
	executor := r.getExecutor(exec)
	query := `UPDATE matches SET status = $1 WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
