package repository

import (
	"context"

	"job-connect/internal/database"
	"job-connect/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	// Create fails with ErrConflict when the applicant already applied to the job.
	Create(ctx context.Context, a application.Application) (application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	FindByApplicantAndJob(ctx context.Context, applicantID, jobID uuid.UUID) (application.Application, error)
	ReplaceSkills(ctx context.Context, applicationID uuid.UUID, skillIDs []uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
	ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]application.Application, error)
}

type PostgresApplicationRepository struct {
	db database.Querier
}

func NewPostgresApplicationRepository(db database.Querier) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationSelect = `SELECT a.id, a.applicant_id, a.job_id, a.applied_at, a.resume_ref, a.cover_letter,
	a.status, a.created_at, a.updated_at, j.title, j.recruiter_id, acc.username
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN applicant_profiles ap ON ap.id = a.applicant_id
	JOIN accounts acc ON acc.id = ap.account_id`

const applicationOrder = ` ORDER BY a.applied_at DESC, a.id ASC`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if a.Status == "" {
		a.Status = application.StatusPending
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, applicant_id, job_id, resume_ref, cover_letter, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING applied_at, created_at, updated_at`,
		a.ID, a.ApplicantID, a.JobID, a.ResumeRef, a.CoverLetter, string(a.Status),
	)
	if err := row.Scan(&a.AppliedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return application.Application{}, mapError(err)
	}
	return a, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	return r.one(ctx, applicationSelect+` WHERE a.id = $1`, id)
}

func (r *PostgresApplicationRepository) FindByApplicantAndJob(ctx context.Context, applicantID, jobID uuid.UUID) (application.Application, error) {
	return r.one(ctx, applicationSelect+` WHERE a.applicant_id = $1 AND a.job_id = $2`, applicantID, jobID)
}

func (r *PostgresApplicationRepository) ReplaceSkills(ctx context.Context, applicationID uuid.UUID, skillIDs []uuid.UUID) error {
	return replaceSkillLinks(ctx, r.db, "application_skills", "application_id", applicationID, skillIDs)
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = now() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return application.Application{}, mapError(err)
	}
	if n == 0 {
		return application.Application{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.applicant_id = $1`+applicationOrder, applicantID)
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.job_id = $1`+applicationOrder, jobID)
}

func (r *PostgresApplicationRepository) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE j.recruiter_id = $1`+applicationOrder, recruiterID)
}

func (r *PostgresApplicationRepository) one(ctx context.Context, query string, args ...any) (application.Application, error) {
	items, err := r.list(ctx, query, args...)
	if err != nil {
		return application.Application{}, err
	}
	if len(items) == 0 {
		return application.Application{}, ErrNotFound
	}
	return items[0], nil
}

func (r *PostgresApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out, err := scanApplications(rows)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(out))
	for _, a := range out {
		ids = append(ids, a.ID)
	}
	skills, err := loadSkillLinks(ctx, r.db, "application_skills", "application_id", ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Skills = skills[out[i].ID]
	}
	return out, nil
}

func scanApplications(rows database.Rows) ([]application.Application, error) {
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var a application.Application
		var status string
		if err := rows.Scan(
			&a.ID, &a.ApplicantID, &a.JobID, &a.AppliedAt, &a.ResumeRef, &a.CoverLetter,
			&status, &a.CreatedAt, &a.UpdatedAt, &a.JobTitle, &a.RecruiterID, &a.ApplicantUsername,
		); err != nil {
			return nil, err
		}
		a.Status = application.Status(status)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
