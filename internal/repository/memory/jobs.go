package memory

import (
	"context"

	"job-connect/internal/domain/job"
	"job-connect/internal/domain/skill"
	"job-connect/internal/repository"

	"github.com/google/uuid"
)

type jobRepo struct{ s *Store }

func (r jobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	defer r.s.lock()()
	if _, ok := r.s.data.recruiters[j.RecruiterID]; !ok {
		return job.Job{}, repository.ErrReference
	}
	if _, ok := r.s.data.jobs[j.ID]; ok {
		return job.Job{}, repository.ErrConflict
	}
	now := r.s.clock.tick()
	j.PostedAt, j.CreatedAt, j.UpdatedAt = now, now, now
	j.RequiredSkills = nil
	r.s.data.jobs[j.ID] = j
	return r.hydrate(j), nil
}

func (r jobRepo) Update(_ context.Context, j job.Job) (job.Job, error) {
	defer r.s.lock()()
	cur, ok := r.s.data.jobs[j.ID]
	if !ok {
		return job.Job{}, repository.ErrNotFound
	}
	cur.Title = j.Title
	cur.Description = j.Description
	cur.Requirements = j.Requirements
	cur.Location = j.Location
	cur.SalaryRange = j.SalaryRange
	cur.EmploymentType = j.EmploymentType
	cur.ApplicationDeadline = j.ApplicationDeadline
	cur.IsActive = j.IsActive
	cur.UpdatedAt = r.s.clock.tick()
	r.s.data.jobs[j.ID] = cur
	return r.hydrate(cur), nil
}

// Delete cascades to the job's skill links and applications.
func (r jobRepo) Delete(_ context.Context, id uuid.UUID) error {
	defer r.s.lock()()
	if _, ok := r.s.data.jobs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.data.jobs, id)
	delete(r.s.data.jobSkills, id)
	for appID, a := range r.s.data.applications {
		if a.JobID == id {
			delete(r.s.data.applications, appID)
			delete(r.s.data.applicationSkills, appID)
		}
	}
	return nil
}

func (r jobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	defer r.s.lock()()
	j, ok := r.s.data.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrNotFound
	}
	return r.hydrate(j), nil
}

func (r jobRepo) ReplaceSkills(_ context.Context, jobID uuid.UUID, skillIDs []uuid.UUID) error {
	defer r.s.lock()()
	if _, ok := r.s.data.jobs[jobID]; !ok {
		return repository.ErrNotFound
	}
	ids := skill.UniqueIDs(skillIDs)
	if err := r.s.checkSkills(ids); err != nil {
		return err
	}
	r.s.data.jobSkills[jobID] = ids
	return nil
}

func (r jobRepo) Search(_ context.Context, q string) ([]job.Job, error) {
	defer r.s.lock()()
	out := make([]job.Job, 0)
	for _, j := range r.s.data.jobs {
		j = r.hydrate(j)
		if j.Matches(q) {
			out = append(out, j)
		}
	}
	job.SortByPostedDesc(out)
	return out, nil
}

func (r jobRepo) ListByRecruiter(_ context.Context, recruiterID uuid.UUID, activeOnly bool) ([]job.Job, error) {
	defer r.s.lock()()
	out := make([]job.Job, 0)
	for _, j := range r.s.data.jobs {
		if j.RecruiterID != recruiterID {
			continue
		}
		if activeOnly && !j.IsActive {
			continue
		}
		out = append(out, r.hydrate(j))
	}
	job.SortByPostedDesc(out)
	return out, nil
}

func (r jobRepo) hydrate(j job.Job) job.Job {
	j.CompanyName = r.s.data.recruiters[j.RecruiterID].CompanyName
	j.RequiredSkills = r.s.skillsFor(r.s.data.jobSkills[j.ID])
	return j
}
