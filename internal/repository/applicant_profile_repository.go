package repository

import (
	"context"

	"job-connect/internal/database"
	"job-connect/internal/domain/profile"

	"github.com/google/uuid"
)

type ApplicantProfileRepository interface {
	Create(ctx context.Context, p profile.ApplicantProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (profile.ApplicantProfile, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (profile.ApplicantProfile, error)
	IDByAccountID(ctx context.Context, accountID uuid.UUID) (uuid.UUID, error)
	Update(ctx context.Context, p profile.ApplicantProfile) error
	ReplaceSkills(ctx context.Context, profileID uuid.UUID, skillIDs []uuid.UUID) error

	InsertExperience(ctx context.Context, e profile.Experience) error
	UpdateExperience(ctx context.Context, e profile.Experience) error
	DeleteExperience(ctx context.Context, profileID, id uuid.UUID) error

	InsertEducation(ctx context.Context, e profile.Education) error
	UpdateEducation(ctx context.Context, e profile.Education) error
	DeleteEducation(ctx context.Context, profileID, id uuid.UUID) error
}

type PostgresApplicantProfileRepository struct {
	db database.Querier
}

func NewPostgresApplicantProfileRepository(db database.Querier) *PostgresApplicantProfileRepository {
	return &PostgresApplicantProfileRepository{db: db}
}

func (r *PostgresApplicantProfileRepository) Create(ctx context.Context, p profile.ApplicantProfile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applicant_profiles (id, account_id, headline, summary, resume_ref)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.AccountID, p.Headline, p.Summary, p.ResumeRef,
	)
	return mapError(err)
}

func (r *PostgresApplicantProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.ApplicantProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, account_id, headline, summary, resume_ref, created_at, updated_at
		 FROM applicant_profiles WHERE id = $1`,
		id,
	)
	return r.load(ctx, row)
}

func (r *PostgresApplicantProfileRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (profile.ApplicantProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, account_id, headline, summary, resume_ref, created_at, updated_at
		 FROM applicant_profiles WHERE account_id = $1`,
		accountID,
	)
	return r.load(ctx, row)
}

func (r *PostgresApplicantProfileRepository) IDByAccountID(ctx context.Context, accountID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	if err := r.db.QueryRow(ctx, `SELECT id FROM applicant_profiles WHERE account_id = $1`, accountID).Scan(&id); err != nil {
		return uuid.Nil, mapError(err)
	}
	return id, nil
}

func (r *PostgresApplicantProfileRepository) load(ctx context.Context, row database.Row) (profile.ApplicantProfile, error) {
	var p profile.ApplicantProfile
	if err := row.Scan(&p.ID, &p.AccountID, &p.Headline, &p.Summary, &p.ResumeRef, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return profile.ApplicantProfile{}, mapError(err)
	}

	skills, err := loadSkillLinks(ctx, r.db, "applicant_profile_skills", "profile_id", []uuid.UUID{p.ID})
	if err != nil {
		return profile.ApplicantProfile{}, err
	}
	p.Skills = skills[p.ID]

	if p.Experiences, err = r.experiences(ctx, p.ID); err != nil {
		return profile.ApplicantProfile{}, err
	}
	if p.Educations, err = r.educations(ctx, p.ID); err != nil {
		return profile.ApplicantProfile{}, err
	}
	return p, nil
}

func (r *PostgresApplicantProfileRepository) experiences(ctx context.Context, profileID uuid.UUID) ([]profile.Experience, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, position, title, company, start_date, end_date, description, created_at, updated_at
		 FROM experiences WHERE profile_id = $1
		 ORDER BY position ASC, created_at ASC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Experience, 0)
	for rows.Next() {
		var e profile.Experience
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Position, &e.Title, &e.Company, &e.StartDate, &e.EndDate, &e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicantProfileRepository) educations(ctx context.Context, profileID uuid.UUID) ([]profile.Education, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, position, degree, institution, graduation_date, major, created_at, updated_at
		 FROM educations WHERE profile_id = $1
		 ORDER BY position ASC, created_at ASC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Education, 0)
	for rows.Next() {
		var e profile.Education
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Position, &e.Degree, &e.Institution, &e.GraduationDate, &e.Major, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicantProfileRepository) Update(ctx context.Context, p profile.ApplicantProfile) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applicant_profiles
		 SET headline = $1, summary = $2, resume_ref = $3, updated_at = now()
		 WHERE id = $4`,
		p.Headline, p.Summary, p.ResumeRef, p.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresApplicantProfileRepository) ReplaceSkills(ctx context.Context, profileID uuid.UUID, skillIDs []uuid.UUID) error {
	return replaceSkillLinks(ctx, r.db, "applicant_profile_skills", "profile_id", profileID, skillIDs)
}

func (r *PostgresApplicantProfileRepository) InsertExperience(ctx context.Context, e profile.Experience) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO experiences (id, profile_id, position, title, company, start_date, end_date, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.ProfileID, e.Position, e.Title, e.Company, e.StartDate, e.EndDate, e.Description,
	)
	return mapError(err)
}

func (r *PostgresApplicantProfileRepository) UpdateExperience(ctx context.Context, e profile.Experience) error {
	n, err := r.db.Exec(ctx,
		`UPDATE experiences
		 SET position = $1, title = $2, company = $3, start_date = $4, end_date = $5, description = $6, updated_at = now()
		 WHERE id = $7 AND profile_id = $8`,
		e.Position, e.Title, e.Company, e.StartDate, e.EndDate, e.Description, e.ID, e.ProfileID,
	)
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresApplicantProfileRepository) DeleteExperience(ctx context.Context, profileID, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM experiences WHERE id = $1 AND profile_id = $2`, id, profileID)
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresApplicantProfileRepository) InsertEducation(ctx context.Context, e profile.Education) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO educations (id, profile_id, position, degree, institution, graduation_date, major)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.ProfileID, e.Position, e.Degree, e.Institution, e.GraduationDate, e.Major,
	)
	return mapError(err)
}

func (r *PostgresApplicantProfileRepository) UpdateEducation(ctx context.Context, e profile.Education) error {
	n, err := r.db.Exec(ctx,
		`UPDATE educations
		 SET position = $1, degree = $2, institution = $3, graduation_date = $4, major = $5, updated_at = now()
		 WHERE id = $6 AND profile_id = $7`,
		e.Position, e.Degree, e.Institution, e.GraduationDate, e.Major, e.ID, e.ProfileID,
	)
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresApplicantProfileRepository) DeleteEducation(ctx context.Context, profileID, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM educations WHERE id = $1 AND profile_id = $2`, id, profileID)
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
