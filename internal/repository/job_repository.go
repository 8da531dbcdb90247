package repository

import (
	"context"
	"strings"

	"job-connect/internal/database"
	"job-connect/internal/domain/job"

	"github.com/google/uuid"
)

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	Update(ctx context.Context, j job.Job) (job.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	ReplaceSkills(ctx context.Context, jobID uuid.UUID, skillIDs []uuid.UUID) error
	// Search matches q case-insensitively against title, description,
	// location and required skill names. Empty q lists every job.
	Search(ctx context.Context, q string) ([]job.Job, error)
	ListByRecruiter(ctx context.Context, recruiterID uuid.UUID, activeOnly bool) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.Querier
}

func NewPostgresJobRepository(db database.Querier) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobSelect = `SELECT j.id, j.recruiter_id, rp.company_name, j.title, j.description, j.requirements,
	j.location, j.salary_range, j.employment_type, j.posted_at, j.application_deadline,
	j.is_active, j.created_at, j.updated_at
	FROM jobs j
	JOIN recruiter_profiles rp ON rp.id = j.recruiter_id`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (id, recruiter_id, title, description, requirements, location, salary_range,
		   employment_type, application_deadline, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING posted_at, created_at, updated_at`,
		j.ID, j.RecruiterID, j.Title, j.Description, j.Requirements, j.Location, j.SalaryRange,
		j.EmploymentType, j.ApplicationDeadline, j.IsActive,
	)
	if err := row.Scan(&j.PostedAt, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return job.Job{}, mapError(err)
	}
	return j, nil
}

// Update rewrites the editable fields. posted_at and recruiter_id are never touched.
func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE jobs
		 SET title = $1, description = $2, requirements = $3, location = $4, salary_range = $5,
		     employment_type = $6, application_deadline = $7, is_active = $8, updated_at = now()
		 WHERE id = $9
		 RETURNING posted_at, created_at, updated_at`,
		j.Title, j.Description, j.Requirements, j.Location, j.SalaryRange,
		j.EmploymentType, j.ApplicationDeadline, j.IsActive, j.ID,
	)
	if err := row.Scan(&j.PostedAt, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return job.Job{}, mapError(err)
	}
	return j, nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	rows, err := r.db.Query(ctx, jobSelect+` WHERE j.id = $1`, id)
	if err != nil {
		return job.Job{}, err
	}
	items, err := r.collect(ctx, rows)
	if err != nil {
		return job.Job{}, err
	}
	if len(items) == 0 {
		return job.Job{}, ErrNotFound
	}
	return items[0], nil
}

func (r *PostgresJobRepository) ReplaceSkills(ctx context.Context, jobID uuid.UUID, skillIDs []uuid.UUID) error {
	return replaceSkillLinks(ctx, r.db, "job_required_skills", "job_id", jobID, skillIDs)
}

func (r *PostgresJobRepository) Search(ctx context.Context, q string) ([]job.Job, error) {
	q = job.NormalizeQuery(q)
	if q == "" {
		rows, err := r.db.Query(ctx, jobSelect+` ORDER BY j.posted_at DESC, j.id ASC`)
		if err != nil {
			return nil, err
		}
		return r.collect(ctx, rows)
	}

	pattern := "%" + escapeLike(q) + "%"
	rows, err := r.db.Query(ctx,
		jobSelect+`
		 WHERE j.title ILIKE $1 ESCAPE '\'
		    OR j.description ILIKE $1 ESCAPE '\'
		    OR j.location ILIKE $1 ESCAPE '\'
		    OR EXISTS (
		        SELECT 1 FROM job_required_skills js
		        JOIN skills s ON s.id = js.skill_id
		        WHERE js.job_id = j.id AND s.name ILIKE $1 ESCAPE '\'
		    )
		 ORDER BY j.posted_at DESC, j.id ASC`,
		pattern,
	)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *PostgresJobRepository) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID, activeOnly bool) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		jobSelect+` WHERE j.recruiter_id = $1 AND ($2 = FALSE OR j.is_active)
		 ORDER BY j.posted_at DESC, j.id ASC`,
		recruiterID, activeOnly,
	)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *PostgresJobRepository) collect(ctx context.Context, rows database.Rows) ([]job.Job, error) {
	out, err := scanJobs(rows)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(out))
	for _, j := range out {
		ids = append(ids, j.ID)
	}
	skills, err := loadSkillLinks(ctx, r.db, "job_required_skills", "job_id", ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].RequiredSkills = skills[out[i].ID]
	}
	return out, nil
}

// scanJobs drains and closes rows before any follow-up query on the same connection.
func scanJobs(rows database.Rows) ([]job.Job, error) {
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(
			&j.ID, &j.RecruiterID, &j.CompanyName, &j.Title, &j.Description, &j.Requirements,
			&j.Location, &j.SalaryRange, &j.EmploymentType, &j.PostedAt, &j.ApplicationDeadline,
			&j.IsActive, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// escapeLike quotes LIKE metacharacters so q is matched literally.
func escapeLike(q string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
}
