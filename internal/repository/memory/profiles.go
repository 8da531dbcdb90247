package memory

import (
	"context"
	"sort"

	"job-connect/internal/domain/profile"
	"job-connect/internal/domain/skill"
	"job-connect/internal/repository"

	"github.com/google/uuid"
)

type applicantRepo struct{ s *Store }

func (r applicantRepo) Create(_ context.Context, p profile.ApplicantProfile) error {
	defer r.s.lock()()
	if _, ok := r.s.data.accounts[p.AccountID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.applicants[p.ID]; ok {
		return repository.ErrConflict
	}
	for _, existing := range r.s.data.applicants {
		if existing.AccountID == p.AccountID {
			return repository.ErrConflict
		}
	}
	now := r.s.clock.tick()
	p.CreatedAt, p.UpdatedAt = now, now
	p.Skills, p.Experiences, p.Educations = nil, nil, nil
	r.s.data.applicants[p.ID] = p
	return nil
}

func (r applicantRepo) GetByID(_ context.Context, id uuid.UUID) (profile.ApplicantProfile, error) {
	defer r.s.lock()()
	p, ok := r.s.data.applicants[id]
	if !ok {
		return profile.ApplicantProfile{}, repository.ErrNotFound
	}
	return r.hydrate(p), nil
}

func (r applicantRepo) GetByAccountID(_ context.Context, accountID uuid.UUID) (profile.ApplicantProfile, error) {
	defer r.s.lock()()
	for _, p := range r.s.data.applicants {
		if p.AccountID == accountID {
			return r.hydrate(p), nil
		}
	}
	return profile.ApplicantProfile{}, repository.ErrNotFound
}

func (r applicantRepo) IDByAccountID(ctx context.Context, accountID uuid.UUID) (uuid.UUID, error) {
	p, err := r.GetByAccountID(ctx, accountID)
	if err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}

func (r applicantRepo) hydrate(p profile.ApplicantProfile) profile.ApplicantProfile {
	p.Skills = r.s.skillsFor(r.s.data.applicantSkills[p.ID])

	p.Experiences = make([]profile.Experience, 0)
	for _, e := range r.s.data.experiences {
		if e.ProfileID == p.ID {
			p.Experiences = append(p.Experiences, e)
		}
	}
	sort.SliceStable(p.Experiences, func(i, k int) bool {
		a, b := p.Experiences[i], p.Experiences[k]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	p.Educations = make([]profile.Education, 0)
	for _, e := range r.s.data.educations {
		if e.ProfileID == p.ID {
			p.Educations = append(p.Educations, e)
		}
	}
	sort.SliceStable(p.Educations, func(i, k int) bool {
		a, b := p.Educations[i], p.Educations[k]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return p
}

func (r applicantRepo) Update(_ context.Context, p profile.ApplicantProfile) error {
	defer r.s.lock()()
	cur, ok := r.s.data.applicants[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Headline = p.Headline
	cur.Summary = p.Summary
	cur.ResumeRef = p.ResumeRef
	cur.UpdatedAt = r.s.clock.tick()
	r.s.data.applicants[p.ID] = cur
	return nil
}

func (r applicantRepo) ReplaceSkills(_ context.Context, profileID uuid.UUID, skillIDs []uuid.UUID) error {
	defer r.s.lock()()
	if _, ok := r.s.data.applicants[profileID]; !ok {
		return repository.ErrNotFound
	}
	ids := skill.UniqueIDs(skillIDs)
	if err := r.s.checkSkills(ids); err != nil {
		return err
	}
	r.s.data.applicantSkills[profileID] = ids
	return nil
}

func (r applicantRepo) InsertExperience(_ context.Context, e profile.Experience) error {
	defer r.s.lock()()
	if _, ok := r.s.data.applicants[e.ProfileID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.experiences[e.ID]; ok {
		return repository.ErrConflict
	}
	now := r.s.clock.tick()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.data.experiences[e.ID] = e
	return nil
}

func (r applicantRepo) UpdateExperience(_ context.Context, e profile.Experience) error {
	defer r.s.lock()()
	cur, ok := r.s.data.experiences[e.ID]
	if !ok || cur.ProfileID != e.ProfileID {
		return repository.ErrNotFound
	}
	e.CreatedAt = cur.CreatedAt
	e.UpdatedAt = r.s.clock.tick()
	r.s.data.experiences[e.ID] = e
	return nil
}

func (r applicantRepo) DeleteExperience(_ context.Context, profileID, id uuid.UUID) error {
	defer r.s.lock()()
	cur, ok := r.s.data.experiences[id]
	if !ok || cur.ProfileID != profileID {
		return repository.ErrNotFound
	}
	delete(r.s.data.experiences, id)
	return nil
}

func (r applicantRepo) InsertEducation(_ context.Context, e profile.Education) error {
	defer r.s.lock()()
	if _, ok := r.s.data.applicants[e.ProfileID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.educations[e.ID]; ok {
		return repository.ErrConflict
	}
	now := r.s.clock.tick()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.data.educations[e.ID] = e
	return nil
}

func (r applicantRepo) UpdateEducation(_ context.Context, e profile.Education) error {
	defer r.s.lock()()
	cur, ok := r.s.data.educations[e.ID]
	if !ok || cur.ProfileID != e.ProfileID {
		return repository.ErrNotFound
	}
	e.CreatedAt = cur.CreatedAt
	e.UpdatedAt = r.s.clock.tick()
	r.s.data.educations[e.ID] = e
	return nil
}

func (r applicantRepo) DeleteEducation(_ context.Context, profileID, id uuid.UUID) error {
	defer r.s.lock()()
	cur, ok := r.s.data.educations[id]
	if !ok || cur.ProfileID != profileID {
		return repository.ErrNotFound
	}
	delete(r.s.data.educations, id)
	return nil
}

type recruiterRepo struct{ s *Store }

func (r recruiterRepo) Create(_ context.Context, p profile.RecruiterProfile) error {
	defer r.s.lock()()
	if _, ok := r.s.data.accounts[p.AccountID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.recruiters[p.ID]; ok {
		return repository.ErrConflict
	}
	for _, existing := range r.s.data.recruiters {
		if existing.AccountID == p.AccountID {
			return repository.ErrConflict
		}
	}
	now := r.s.clock.tick()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.data.recruiters[p.ID] = p
	return nil
}

func (r recruiterRepo) GetByID(_ context.Context, id uuid.UUID) (profile.RecruiterProfile, error) {
	defer r.s.lock()()
	p, ok := r.s.data.recruiters[id]
	if !ok {
		return profile.RecruiterProfile{}, repository.ErrNotFound
	}
	return p, nil
}

func (r recruiterRepo) GetByAccountID(_ context.Context, accountID uuid.UUID) (profile.RecruiterProfile, error) {
	defer r.s.lock()()
	for _, p := range r.s.data.recruiters {
		if p.AccountID == accountID {
			return p, nil
		}
	}
	return profile.RecruiterProfile{}, repository.ErrNotFound
}

func (r recruiterRepo) Update(_ context.Context, p profile.RecruiterProfile) error {
	defer r.s.lock()()
	cur, ok := r.s.data.recruiters[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.CompanyName = p.CompanyName
	cur.CompanyWebsite = p.CompanyWebsite
	cur.Description = p.Description
	cur.Location = p.Location
	cur.UpdatedAt = r.s.clock.tick()
	r.s.data.recruiters[p.ID] = cur
	return nil
}
