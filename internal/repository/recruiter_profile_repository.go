package repository

import (
	"context"

	"job-connect/internal/database"
	"job-connect/internal/domain/profile"

	"github.com/google/uuid"
)

type RecruiterProfileRepository interface {
	Create(ctx context.Context, p profile.RecruiterProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (profile.RecruiterProfile, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (profile.RecruiterProfile, error)
	Update(ctx context.Context, p profile.RecruiterProfile) error
}

type PostgresRecruiterProfileRepository struct {
	db database.Querier
}

func NewPostgresRecruiterProfileRepository(db database.Querier) *PostgresRecruiterProfileRepository {
	return &PostgresRecruiterProfileRepository{db: db}
}

const recruiterProfileColumns = `id, account_id, company_name, company_website, description, location, created_at, updated_at`

func (r *PostgresRecruiterProfileRepository) Create(ctx context.Context, p profile.RecruiterProfile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO recruiter_profiles (id, account_id, company_name, company_website, description, location)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.AccountID, p.CompanyName, p.CompanyWebsite, p.Description, p.Location,
	)
	return mapError(err)
}

func (r *PostgresRecruiterProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.RecruiterProfile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+recruiterProfileColumns+` FROM recruiter_profiles WHERE id = $1`, id)
	return scanRecruiterProfile(row)
}

func (r *PostgresRecruiterProfileRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (profile.RecruiterProfile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+recruiterProfileColumns+` FROM recruiter_profiles WHERE account_id = $1`, accountID)
	return scanRecruiterProfile(row)
}

func (r *PostgresRecruiterProfileRepository) Update(ctx context.Context, p profile.RecruiterProfile) error {
	n, err := r.db.Exec(ctx,
		`UPDATE recruiter_profiles
		 SET company_name = $1, company_website = $2, description = $3, location = $4, updated_at = now()
		 WHERE id = $5`,
		p.CompanyName, p.CompanyWebsite, p.Description, p.Location, p.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecruiterProfile(row database.Row) (profile.RecruiterProfile, error) {
	var p profile.RecruiterProfile
	if err := row.Scan(&p.ID, &p.AccountID, &p.CompanyName, &p.CompanyWebsite, &p.Description, &p.Location, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return profile.RecruiterProfile{}, mapError(err)
	}
	return p, nil
}
