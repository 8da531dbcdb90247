package memory

import (
	"context"

	"job-connect/internal/domain/application"
	"job-connect/internal/domain/skill"
	"job-connect/internal/repository"

	"github.com/google/uuid"
)

type applicationRepo struct{ s *Store }

func (r applicationRepo) Create(_ context.Context, a application.Application) (application.Application, error) {
	defer r.s.lock()()
	if _, ok := r.s.data.applicants[a.ApplicantID]; !ok {
		return application.Application{}, repository.ErrReference
	}
	if _, ok := r.s.data.jobs[a.JobID]; !ok {
		return application.Application{}, repository.ErrReference
	}
	for _, existing := range r.s.data.applications {
		if existing.ID == a.ID || (existing.ApplicantID == a.ApplicantID && existing.JobID == a.JobID) {
			return application.Application{}, repository.ErrConflict
		}
	}
	if a.Status == "" {
		a.Status = application.StatusPending
	}
	now := r.s.clock.tick()
	a.AppliedAt, a.CreatedAt, a.UpdatedAt = now, now, now
	a.Skills = nil
	r.s.data.applications[a.ID] = a
	return r.hydrate(a), nil
}

func (r applicationRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	defer r.s.lock()()
	a, ok := r.s.data.applications[id]
	if !ok {
		return application.Application{}, repository.ErrNotFound
	}
	return r.hydrate(a), nil
}

func (r applicationRepo) FindByApplicantAndJob(_ context.Context, applicantID, jobID uuid.UUID) (application.Application, error) {
	defer r.s.lock()()
	for _, a := range r.s.data.applications {
		if a.ApplicantID == applicantID && a.JobID == jobID {
			return r.hydrate(a), nil
		}
	}
	return application.Application{}, repository.ErrNotFound
}

func (r applicationRepo) ReplaceSkills(_ context.Context, applicationID uuid.UUID, skillIDs []uuid.UUID) error {
	defer r.s.lock()()
	if _, ok := r.s.data.applications[applicationID]; !ok {
		return repository.ErrNotFound
	}
	ids := skill.UniqueIDs(skillIDs)
	if err := r.s.checkSkills(ids); err != nil {
		return err
	}
	r.s.data.applicationSkills[applicationID] = ids
	return nil
}

func (r applicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	defer r.s.lock()()
	a, ok := r.s.data.applications[id]
	if !ok {
		return application.Application{}, repository.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = r.s.clock.tick()
	r.s.data.applications[id] = a
	return r.hydrate(a), nil
}

func (r applicationRepo) ListByApplicant(_ context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	defer r.s.lock()()
	return r.filter(func(a application.Application) bool { return a.ApplicantID == applicantID }), nil
}

func (r applicationRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.Application, error) {
	defer r.s.lock()()
	return r.filter(func(a application.Application) bool { return a.JobID == jobID }), nil
}

func (r applicationRepo) ListByRecruiter(_ context.Context, recruiterID uuid.UUID) ([]application.Application, error) {
	defer r.s.lock()()
	return r.filter(func(a application.Application) bool {
		return r.s.data.jobs[a.JobID].RecruiterID == recruiterID
	}), nil
}

func (r applicationRepo) filter(keep func(application.Application) bool) []application.Application {
	out := make([]application.Application, 0)
	for _, a := range r.s.data.applications {
		if keep(a) {
			out = append(out, r.hydrate(a))
		}
	}
	application.SortByAppliedDesc(out)
	return out
}

func (r applicationRepo) hydrate(a application.Application) application.Application {
	j := r.s.data.jobs[a.JobID]
	a.JobTitle = j.Title
	a.RecruiterID = j.RecruiterID
	if p, ok := r.s.data.applicants[a.ApplicantID]; ok {
		a.ApplicantUsername = r.s.data.accounts[p.AccountID].Username
	}
	a.Skills = r.s.skillsFor(r.s.data.applicationSkills[a.ID])
	return a
}
