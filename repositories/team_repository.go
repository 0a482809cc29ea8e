package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/futliga/championship-system/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name already exists")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, category, representative, phone, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.Name,
		team.Category,
		team.Representative,
		team.Phone,
		team.Email,
	).Scan(&team.ID, &team.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrTeamNameConflict
	}
	return err
}

func (r *postgresTeamRepository) scanTeam(rowScanner interface{ Scan(...interface{}) error }) (*models.Team, error) {
	team := &models.Team{}
	err := rowScanner.Scan(
		&team.ID,
		&team.Name,
		&team.Category,
		&team.Representative,
		&team.Phone,
		&team.Email,
		&team.LogoKey,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, name, category, representative, phone, email, logo_key, created_at
		FROM teams
		WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `
		SELECT id, name, category, representative, phone, email, logo_key, created_at
		FROM teams
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team, scanErr := r.scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams
		SET name = $1, category = $2, representative = $3, phone = $4, email = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		team.Name, team.Category, team.Representative, team.Phone, team.Email, team.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrTeamNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	query := `UPDATE teams SET logo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// foreign_key_violation: команда ещё заявлена в чемпионате
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" &&
			strings.Contains(pqErr.Constraint, "championship") {
			return errors.New("team is still enrolled in a championship")
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
