package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-connect/internal/access"
	"job-connect/internal/domain/account"
	"job-connect/internal/domain/job"
	"job-connect/internal/pkg/validation"
	"job-connect/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type JobInput struct {
	Title               string      `json:"title" validate:"notblank,max=255"`
	Description         string      `json:"description" validate:"notblank"`
	Requirements        string      `json:"requirements"`
	Location            string      `json:"location" validate:"notblank,max=255"`
	SalaryRange         string      `json:"salary_range" validate:"max=100"`
	EmploymentType      string      `json:"employment_type" validate:"max=100"`
	ApplicationDeadline string      `json:"application_deadline" validate:"date"`
	IsActive            *bool       `json:"is_active"`
	RequiredSkills      []uuid.UUID `json:"required_skills"`
}

func (in JobInput) apply(j *job.Job) {
	deadline, _ := validation.ParseDate(in.ApplicationDeadline)
	j.Title = strings.TrimSpace(in.Title)
	j.Description = strings.TrimSpace(in.Description)
	j.Requirements = strings.TrimSpace(in.Requirements)
	j.Location = strings.TrimSpace(in.Location)
	j.SalaryRange = strings.TrimSpace(in.SalaryRange)
	j.EmploymentType = strings.TrimSpace(in.EmploymentType)
	j.ApplicationDeadline = deadline
	j.IsActive = in.IsActive == nil || *in.IsActive
}

type JobUsecase interface {
	Create(ctx context.Context, actor *access.Actor, in JobInput) (job.Job, error)
	Update(ctx context.Context, actor *access.Actor, id uuid.UUID, in JobInput) (job.Job, error)
	Delete(ctx context.Context, actor *access.Actor, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (job.Job, error)
	Search(ctx context.Context, q string) ([]job.Job, error)
	ListForRecruiter(ctx context.Context, actor *access.Actor, activeOnly bool) ([]job.Job, error)
}

type Job struct {
	store  repository.Store
	cache  SearchCache
	notify Notifier
	logger *logrus.Logger
}

func NewJobUsecase(store repository.Store, cache SearchCache, notify Notifier, logger *logrus.Logger) *Job {
	return &Job{store: store, cache: cache, notify: notify, logger: logger}
}

func (u *Job) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := u.store.Jobs().GetByID(ctx, id)
	if err != nil {
		return job.Job{}, mapRepoError(err)
	}
	return j, nil
}

// Create posts a job for the calling recruiter. The owner always comes from
// the actor.
func (u *Job) Create(ctx context.Context, actor *access.Actor, in JobInput) (job.Job, error) {
	if err := requireRole(actor, account.RoleRecruiter, true); err != nil {
		return job.Job{}, err
	}

	skillIDs, err := u.validate(ctx, in)
	if err != nil {
		return job.Job{}, err
	}

	j := job.Job{ID: uuid.New(), RecruiterID: actor.Profile()}
	in.apply(&j)

	err = u.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Jobs().Create(ctx, j); err != nil {
			return err
		}
		return tx.Jobs().ReplaceSkills(ctx, j.ID, skillIDs)
	})
	if err != nil {
		return job.Job{}, u.writeError(err)
	}

	created, err := u.store.Jobs().GetByID(ctx, j.ID)
	if err != nil {
		return job.Job{}, ErrInternal
	}
	u.invalidateSearch(ctx)
	if u.notify != nil && created.IsActive {
		u.notify.JobPosted(created.ID, created.Title, created.CompanyName)
	}
	return created, nil
}

// Update fully replaces the editable fields and required skills. PostedAt
// and the owner never change.
func (u *Job) Update(ctx context.Context, actor *access.Actor, id uuid.UUID, in JobInput) (job.Job, error) {
	current, err := u.owned(ctx, actor, id)
	if err != nil {
		return job.Job{}, err
	}

	skillIDs, err := u.validate(ctx, in)
	if err != nil {
		return job.Job{}, err
	}

	next := current
	in.apply(&next)

	err = u.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Jobs().Update(ctx, next); err != nil {
			return err
		}
		return tx.Jobs().ReplaceSkills(ctx, next.ID, skillIDs)
	})
	if err != nil {
		return job.Job{}, u.writeError(err)
	}

	updated, err := u.store.Jobs().GetByID(ctx, id)
	if err != nil {
		return job.Job{}, ErrInternal
	}
	u.invalidateSearch(ctx)
	return updated, nil
}

func (u *Job) Delete(ctx context.Context, actor *access.Actor, id uuid.UUID) error {
	if _, err := u.owned(ctx, actor, id); err != nil {
		return err
	}
	if err := u.store.Jobs().Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	u.invalidateSearch(ctx)
	return nil
}

func (u *Job) ListForRecruiter(ctx context.Context, actor *access.Actor, activeOnly bool) ([]job.Job, error) {
	if err := requireRole(actor, account.RoleRecruiter, true); err != nil {
		return nil, err
	}
	items, err := u.store.Jobs().ListByRecruiter(ctx, actor.Profile(), activeOnly)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// Search returns jobs matching q, newest first. Results are cached until the
// next job mutation.
func (u *Job) Search(ctx context.Context, q string) ([]job.Job, error) {
	q = job.NormalizeQuery(q)
	cacheKey := JobsSearchCacheKey(q)

	lockKey := JobsSearchLockKey(cacheKey)
	locked := false
	if u.cache != nil {
		var cached []job.Job
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			u.debug("jobs search cache hit", cacheKey)
			return cached, nil
		}
		u.debug("jobs search cache miss", cacheKey)

		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		locked = err == nil && ok
		if err == nil && !ok {
			// Another request is filling this key; give it a moment.
			wait := 300*time.Millisecond + time.Duration(time.Now().UnixNano()%201)*time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
				return cached, nil
			}
		}
	}

	if locked {
		defer func() {
			if err := u.cache.Delete(context.WithoutCancel(ctx), lockKey); err != nil && u.logger != nil {
				u.logger.WithError(err).Warn("jobs search lock release failed")
			}
		}()
	}

	items, err := u.store.Jobs().Search(ctx, q)
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, items, 0); err != nil && u.logger != nil {
			u.logger.WithError(err).Warn("jobs search cache write failed")
		}
	}
	return items, nil
}

// owned loads a job for mutation. Missing ids are ErrNotFound; jobs of
// another recruiter are ErrForbidden.
func (u *Job) owned(ctx context.Context, actor *access.Actor, id uuid.UUID) (job.Job, error) {
	if err := requireRole(actor, account.RoleRecruiter, true); err != nil {
		return job.Job{}, err
	}
	j, err := u.store.Jobs().GetByID(ctx, id)
	if err != nil {
		return job.Job{}, mapRepoError(err)
	}
	if !j.OwnedBy(actor.Profile()) {
		return job.Job{}, ErrForbidden
	}
	return j, nil
}

func (u *Job) validate(ctx context.Context, in JobInput) ([]uuid.UUID, error) {
	errs := validation.Struct(in)
	skillIDs, err := resolveSkills(ctx, u.store, "required_skills", in.RequiredSkills, errs)
	if err != nil {
		return nil, err
	}
	if !errs.Empty() {
		return nil, errs
	}
	return skillIDs, nil
}

func (u *Job) writeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrReference):
		return validation.Errors{"required_skills": msgSkillChoice}
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	default:
		return ErrInternal
	}
}

func (u *Job) invalidateSearch(ctx context.Context) {
	invalidateJobSearch(ctx, u.cache, u.logger)
}

func (u *Job) debug(msg, key string) {
	if u.logger != nil {
		u.logger.WithField("key", key).Debug(msg)
	}
}
