package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/futliga/championship-system/models"
)

var ErrStandingNotFound = errors.New("standing not found")

// StandingDelta — относительный прирост строки standings по итогам одного
// матча. Played всегда увеличивается на единицу, goal_difference выводится
// из goals_for/goals_against на стороне БД.
type StandingDelta struct {
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

type StandingRepository interface {
	Create(ctx context.Context, exec SQLExecutor, standing *models.Standing) error
	GetByChampionshipAndTeam(ctx context.Context, championshipID, teamID int) (*models.Standing, error)

	// ListByChampionship возвращает таблицу в турнирном порядке:
	// очки, разница мячей, забитые мячи; ничьи — по id команды.
	ListByChampionship(ctx context.Context, championshipID int) ([]*models.Standing, error)

	// ApplyResult применяет дельту как относительный инкремент к текущим
	// значениям строки. Вызывается ровно один раз на матч (см. MatchService).
	ApplyResult(ctx context.Context, exec SQLExecutor, championshipID, teamID int, delta StandingDelta) error

	DeleteByChampionshipAndTeam(ctx context.Context, exec SQLExecutor, championshipID, teamID int) error
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStandingRepository) Create(ctx context.Context, exec SQLExecutor, standing *models.Standing) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO standings
		    (championship_id, team_id, played, won, drawn, lost, goals_for, goals_against, goal_difference, points, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	if standing.UpdatedAt.IsZero() {
		standing.UpdatedAt = time.Now()
	}
	return executor.QueryRowContext(ctx, query,
		standing.ChampionshipID, standing.TeamID, standing.Played,
		standing.Won, standing.Drawn, standing.Lost,
		standing.GoalsFor, standing.GoalsAgainst, standing.GoalDifference,
		standing.Points, standing.UpdatedAt,
	).Scan(&standing.ID)
}

func (r *postgresStandingRepository) scanStanding(rowScanner interface{ Scan(...interface{}) error }) (*models.Standing, error) {
	s := &models.Standing{}
	err := rowScanner.Scan(
		&s.ID, &s.ChampionshipID, &s.TeamID, &s.Played,
		&s.Won, &s.Drawn, &s.Lost,
		&s.GoalsFor, &s.GoalsAgainst, &s.GoalDifference,
		&s.Points, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandingNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresStandingRepository) GetByChampionshipAndTeam(ctx context.Context, championshipID, teamID int) (*models.Standing, error) {
	query := `
		SELECT id, championship_id, team_id, played, won, drawn, lost,
		       goals_for, goals_against, goal_difference, points, updated_at
		FROM standings
		WHERE championship_id = $1 AND team_id = $2`
	return r.scanStanding(r.db.QueryRowContext(ctx, query, championshipID, teamID))
}

func (r *postgresStandingRepository) ListByChampionship(ctx context.Context, championshipID int) ([]*models.Standing, error) {
	query := `
		SELECT s.id, s.championship_id, s.team_id, s.played, s.won, s.drawn, s.lost,
		       s.goals_for, s.goals_against, s.goal_difference, s.points, s.updated_at,
		       t.name, t.category, t.logo_key
		FROM standings s
		JOIN teams t ON t.id = s.team_id
		WHERE s.championship_id = $1
		ORDER BY s.points DESC, s.goal_difference DESC, s.goals_for DESC, s.team_id ASC`

	rows, err := r.db.QueryContext(ctx, query, championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.Standing, 0)
	for rows.Next() {
		s := &models.Standing{Team: &models.Team{}}
		if scanErr := rows.Scan(
			&s.ID, &s.ChampionshipID, &s.TeamID, &s.Played,
			&s.Won, &s.Drawn, &s.Lost,
			&s.GoalsFor, &s.GoalsAgainst, &s.GoalDifference,
			&s.Points, &s.UpdatedAt,
			&s.Team.Name, &s.Team.Category, &s.Team.LogoKey,
		); scanErr != nil {
			return nil, scanErr
		}
		s.Team.ID = s.TeamID
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

func (r *postgresStandingRepository) ApplyResult(ctx context.Context, exec SQLExecutor, championshipID, teamID int, delta StandingDelta) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE standings SET
			played = played + 1,
			won = won + $1,
			drawn = drawn + $2,
			lost = lost + $3,
			goals_for = goals_for + $4,
			goals_against = goals_against + $5,
			goal_difference = goal_difference + $4 - $5,
			points = points + $6,
			updated_at = NOW()
		WHERE championship_id = $7 AND team_id = $8`

	result, err := executor.ExecContext(ctx, query,
		delta.Won, delta.Drawn, delta.Lost,
		delta.GoalsFor, delta.GoalsAgainst, delta.Points,
		championshipID, teamID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrStandingNotFound)
}

func (r *postgresStandingRepository) DeleteByChampionshipAndTeam(ctx context.Context, exec SQLExecutor, championshipID, teamID int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM standings WHERE championship_id = $1 AND team_id = $2`
	result, err := executor.ExecContext(ctx, query, championshipID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrStandingNotFound)
}
