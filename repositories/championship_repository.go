package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/futliga/championship-system/models"
	"github.com/lib/pq"
)

var (
	ErrChampionshipNotFound     = errors.New("championship not found")
	ErrChampionshipTeamConflict = errors.New("team is already enrolled in this championship")
	ErrChampionshipTeamInvalid  = errors.New("championship or team reference invalid")
	ErrEnrollmentNotFound       = errors.New("team is not enrolled in this championship")
)

type ChampionshipRepository interface {
	Create(ctx context.Context, championship *models.Championship) error
	GetByID(ctx context.Context, id int) (*models.Championship, error)
	List(ctx context.Context, status *models.ChampionshipStatus) ([]*models.Championship, error)
	Update(ctx context.Context, championship *models.Championship) error
	Delete(ctx context.Context, id int) error

	// Заявка команд. Строка в championship_teams живёт ровно столько же,
	// сколько строка в standings (см. ChampionshipService).
	AddTeam(ctx context.Context, exec SQLExecutor, championshipID, teamID int) error
	RemoveTeam(ctx context.Context, exec SQLExecutor, championshipID, teamID int) error
	ListTeams(ctx context.Context, championshipID int) ([]*models.Team, error)
}

type postgresChampionshipRepository struct {
	db *sql.DB
}

func NewPostgresChampionshipRepository(db *sql.DB) ChampionshipRepository {
	return &postgresChampionshipRepository{db: db}
}

func (r *postgresChampionshipRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresChampionshipRepository) Create(ctx context.Context, championship *models.Championship) error {
	query := `
		INSERT INTO championships (name, description, location, start_date, end_date, category, rules, status, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		championship.Name,
		championship.Description,
		championship.Location,
		championship.StartDate,
		championship.EndDate,
		championship.Category,
		championship.Rules,
		championship.Status,
		championship.CreatorID,
	).Scan(&championship.ID, &championship.CreatedAt)
}

func (r *postgresChampionshipRepository) scanChampionship(rowScanner interface{ Scan(...interface{}) error }) (*models.Championship, error) {
	c := &models.Championship{}
	err := rowScanner.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Location,
		&c.StartDate,
		&c.EndDate,
		&c.Category,
		&c.Rules,
		&c.Status,
		&c.CreatorID,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChampionshipNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresChampionshipRepository) GetByID(ctx context.Context, id int) (*models.Championship, error) {
	query := `
		SELECT id, name, description, location, start_date, end_date, category, rules, status, creator_id, created_at
		FROM championships
		WHERE id = $1`
	return r.scanChampionship(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresChampionshipRepository) List(ctx context.Context, status *models.ChampionshipStatus) ([]*models.Championship, error) {
	query := `
		SELECT id, name, description, location, start_date, end_date, category, rules, status, creator_id, created_at
		FROM championships`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY start_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	championships := make([]*models.Championship, 0)
	for rows.Next() {
		c, scanErr := r.scanChampionship(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		championships = append(championships, c)
	}
	return championships, rows.Err()
}

func (r *postgresChampionshipRepository) Update(ctx context.Context, championship *models.Championship) error {
	query := `
		UPDATE championships
		SET name = $1, description = $2, location = $3, start_date = $4, end_date = $5,
		    category = $6, rules = $7, status = $8
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		championship.Name,
		championship.Description,
		championship.Location,
		championship.StartDate,
		championship.EndDate,
		championship.Category,
		championship.Rules,
		championship.Status,
		championship.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrChampionshipNotFound)
}

func (r *postgresChampionshipRepository) Delete(ctx context.Context, id int) error {
	// Матчи, их события, заявки и standings удаляются каскадом (ON DELETE CASCADE).
	query := `DELETE FROM championships WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrChampionshipNotFound)
}

func (r *postgresChampionshipRepository) AddTeam(ctx context.Context, exec SQLExecutor, championshipID, teamID int) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO championship_teams (championship_id, team_id) VALUES ($1, $2)`
	_, err := executor.ExecContext(ctx, query, championshipID, teamID)
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			return ErrChampionshipTeamConflict
		case "23503": // foreign_key_violation
			return ErrChampionshipTeamInvalid
		}
	}
	return err
}

func (r *postgresChampionshipRepository) RemoveTeam(ctx context.Context, exec SQLExecutor, championshipID, teamID int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM championship_teams WHERE championship_id = $1 AND team_id = $2`
	result, err := executor.ExecContext(ctx, query, championshipID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEnrollmentNotFound)
}

func (r *postgresChampionshipRepository) ListTeams(ctx context.Context, championshipID int) ([]*models.Team, error) {
	query := `
		SELECT t.id, t.name, t.category, t.representative, t.phone, t.email, t.logo_key, t.created_at
		FROM teams t
		JOIN championship_teams ct ON ct.team_id = t.id
		WHERE ct.championship_id = $1
		ORDER BY t.name ASC`

	rows, err := r.db.QueryContext(ctx, query, championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team := &models.Team{}
		if scanErr := rows.Scan(
			&team.ID, &team.Name, &team.Category, &team.Representative,
			&team.Phone, &team.Email, &team.LogoKey, &team.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}
