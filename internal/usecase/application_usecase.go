package usecase

import (
	"context"
	"errors"
	"strings"

	"job-connect/internal/access"
	"job-connect/internal/domain/account"
	"job-connect/internal/domain/application"
	"job-connect/internal/domain/job"
	"job-connect/internal/infrastructure/storage"
	"job-connect/internal/pkg/validation"
	"job-connect/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ApplyInput struct {
	CoverLetter string      `json:"cover_letter"`
	Skills      []uuid.UUID `json:"skills"`
}

type StatusInput struct {
	Status string `json:"status"`
}

// ApplyResult carries the job alongside the application so an "already
// applied" answer can still show what was applied to.
type ApplyResult struct {
	Job         job.Job
	Application application.Application
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, actor *access.Actor, jobID uuid.UUID, in ApplyInput, resume *Upload) (ApplyResult, error)
	Confirmation(ctx context.Context, actor *access.Actor, jobID uuid.UUID) (job.Job, error)
	UpdateStatus(ctx context.Context, actor *access.Actor, id uuid.UUID, in StatusInput) (application.Application, error)
	Get(ctx context.Context, actor *access.Actor, id uuid.UUID) (application.Application, error)
	ListForApplicant(ctx context.Context, actor *access.Actor) ([]application.Application, error)
	ListForJob(ctx context.Context, actor *access.Actor, jobID uuid.UUID) (job.Job, []application.Application, error)
	ListForRecruiter(ctx context.Context, actor *access.Actor) ([]application.Application, error)
}

type Application struct {
	store  repository.Store
	files  FileStore
	notify Notifier
	logger *logrus.Logger
}

func NewApplicationUsecase(store repository.Store, files FileStore, notify Notifier, logger *logrus.Logger) *Application {
	return &Application{store: store, files: files, notify: notify, logger: logger}
}

// Apply submits the actor's application to jobID. A repeated submission
// returns the existing application with ErrAlreadyApplied.
func (u *Application) Apply(ctx context.Context, actor *access.Actor, jobID uuid.UUID, in ApplyInput, resume *Upload) (ApplyResult, error) {
	if err := requireRole(actor, account.RoleApplicant, true); err != nil {
		return ApplyResult{}, err
	}

	j, err := u.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return ApplyResult{}, mapRepoError(err)
	}
	res := ApplyResult{Job: j}

	if existing, err := u.store.Applications().FindByApplicantAndJob(ctx, actor.Profile(), jobID); err == nil {
		res.Application = existing
		return res, ErrAlreadyApplied
	} else if !errors.Is(err, repository.ErrNotFound) {
		return ApplyResult{}, ErrInternal
	}

	errs := validation.Errors{}
	if !resume.Present() {
		errs.Add("resume", msgRequired)
	}
	skillIDs, err := resolveSkills(ctx, u.store, "skills", in.Skills, errs)
	if err != nil {
		return ApplyResult{}, err
	}
	if !errs.Empty() {
		return res, errs
	}

	ref, err := storeDocument(ctx, u.files, storage.ApplicationPrefix, resume, errs)
	if err != nil {
		return res, err
	}

	a := application.Application{
		ID:          uuid.New(),
		ApplicantID: actor.Profile(),
		JobID:       jobID,
		ResumeRef:   ref,
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		Status:      application.StatusPending,
	}
	err = u.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Applications().Create(ctx, a); err != nil {
			return err
		}
		return tx.Applications().ReplaceSkills(ctx, a.ID, skillIDs)
	})
	if err != nil {
		discardFile(ctx, u.files, u.logger, ref)
		switch {
		case errors.Is(err, repository.ErrConflict):
			existing, ferr := u.store.Applications().FindByApplicantAndJob(ctx, actor.Profile(), jobID)
			if ferr == nil {
				res.Application = existing
			}
			return res, ErrAlreadyApplied
		case errors.Is(err, repository.ErrReference):
			return res, ErrNotFound
		default:
			return res, ErrInternal
		}
	}

	created, err := u.store.Applications().GetByID(ctx, a.ID)
	if err != nil {
		return res, ErrInternal
	}
	res.Application = created

	if u.notify != nil {
		if rp, err := u.store.RecruiterProfiles().GetByID(ctx, j.RecruiterID); err == nil {
			u.notify.ApplicationSubmitted(rp.AccountID, created.ID, j.ID, j.Title)
		}
	}
	if u.logger != nil {
		u.logger.WithFields(logrus.Fields{"application_id": created.ID, "job_id": j.ID}).Info("application submitted")
	}
	return res, nil
}

func (u *Application) Confirmation(ctx context.Context, actor *access.Actor, jobID uuid.UUID) (job.Job, error) {
	if !actor.Authenticated() {
		return job.Job{}, ErrUnauthorized
	}
	j, err := u.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return job.Job{}, mapRepoError(err)
	}
	return j, nil
}

// UpdateStatus lets the recruiter owning the job move an application to any
// valid status.
func (u *Application) UpdateStatus(ctx context.Context, actor *access.Actor, id uuid.UUID, in StatusInput) (application.Application, error) {
	if err := requireRole(actor, account.RoleRecruiter, true); err != nil {
		return application.Application{}, err
	}

	current, err := u.store.Applications().GetByID(ctx, id)
	if err != nil {
		return application.Application{}, mapRepoError(err)
	}
	if current.RecruiterID != actor.Profile() {
		return application.Application{}, ErrForbidden
	}

	status, err := application.ParseStatus(in.Status)
	if err != nil || !application.CanTransition(current.Status, status) {
		return application.Application{}, validation.Errors{"status": msgChoice}
	}

	updated, err := u.store.Applications().UpdateStatus(ctx, id, status)
	if err != nil {
		return application.Application{}, mapRepoError(err)
	}

	if u.notify != nil && current.Status != status {
		if ap, err := u.store.ApplicantProfiles().GetByID(ctx, updated.ApplicantID); err == nil {
			u.notify.ApplicationStatusChanged(ap.AccountID, updated.ID, updated.JobTitle, string(updated.Status))
		}
	}
	return updated, nil
}

// Get shows an application to its applicant and to the recruiter owning the
// job.
func (u *Application) Get(ctx context.Context, actor *access.Actor, id uuid.UUID) (application.Application, error) {
	if !actor.Authenticated() {
		return application.Application{}, ErrUnauthorized
	}
	a, err := u.store.Applications().GetByID(ctx, id)
	if err != nil {
		return application.Application{}, mapRepoError(err)
	}
	switch {
	case actor.HasProfile() && actor.Role == account.RoleApplicant && a.ApplicantID == actor.Profile():
	case actor.HasProfile() && actor.Role == account.RoleRecruiter && a.RecruiterID == actor.Profile():
	default:
		return application.Application{}, ErrForbidden
	}
	return a, nil
}

func (u *Application) ListForApplicant(ctx context.Context, actor *access.Actor) ([]application.Application, error) {
	if err := requireRole(actor, account.RoleApplicant, true); err != nil {
		return nil, err
	}
	items, err := u.store.Applications().ListByApplicant(ctx, actor.Profile())
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Application) ListForJob(ctx context.Context, actor *access.Actor, jobID uuid.UUID) (job.Job, []application.Application, error) {
	if err := requireRole(actor, account.RoleRecruiter, true); err != nil {
		return job.Job{}, nil, err
	}
	j, err := u.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return job.Job{}, nil, mapRepoError(err)
	}
	if !j.OwnedBy(actor.Profile()) {
		return job.Job{}, nil, ErrForbidden
	}
	items, err := u.store.Applications().ListByJob(ctx, jobID)
	if err != nil {
		return job.Job{}, nil, ErrInternal
	}
	return j, items, nil
}

func (u *Application) ListForRecruiter(ctx context.Context, actor *access.Actor) ([]application.Application, error) {
	if err := requireRole(actor, account.RoleRecruiter, true); err != nil {
		return nil, err
	}
	items, err := u.store.Applications().ListByRecruiter(ctx, actor.Profile())
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
