package usecase

import (
	"context"
	"errors"
	"strings"

	"job-connect/internal/access"
	"job-connect/internal/domain/account"
	"job-connect/internal/domain/application"
	"job-connect/internal/domain/job"
	"job-connect/internal/domain/profile"
	"job-connect/internal/pkg/validation"
	"job-connect/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type RecruiterProfileInput struct {
	CompanyName    string `json:"company_name" validate:"notblank,max=255"`
	CompanyWebsite string `json:"company_website" validate:"omitempty,url,max=200"`
	Description    string `json:"description" validate:"max=500"`
	Location       string `json:"location" validate:"max=255"`
}

func (in RecruiterProfileInput) trimmed() RecruiterProfileInput {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.CompanyWebsite = strings.TrimSpace(in.CompanyWebsite)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	return in
}

type Dashboard struct {
	Profile      profile.RecruiterProfile
	Jobs         []job.Job
	Applications []application.Application
}

type RecruiterProfileUsecase interface {
	Create(ctx context.Context, actor *access.Actor, in RecruiterProfileInput) (profile.RecruiterProfile, error)
	Update(ctx context.Context, actor *access.Actor, in RecruiterProfileInput) (profile.RecruiterProfile, error)
	Get(ctx context.Context, actor *access.Actor) (profile.RecruiterProfile, error)
	Dashboard(ctx context.Context, actor *access.Actor) (Dashboard, error)
}

type RecruiterProfile struct {
	store  repository.Store
	cache  SearchCache
	logger *logrus.Logger
}

func NewRecruiterProfileUsecase(store repository.Store, cache SearchCache, logger *logrus.Logger) *RecruiterProfile {
	return &RecruiterProfile{store: store, cache: cache, logger: logger}
}

func (u *RecruiterProfile) Get(ctx context.Context, actor *access.Actor) (profile.RecruiterProfile, error) {
	if err := requireRole(actor, account.RoleRecruiter, true); err != nil {
		return profile.RecruiterProfile{}, err
	}
	p, err := u.store.RecruiterProfiles().GetByID(ctx, actor.Profile())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return profile.RecruiterProfile{}, ErrProfileRequired
		}
		return profile.RecruiterProfile{}, ErrInternal
	}
	return p, nil
}

func (u *RecruiterProfile) Create(ctx context.Context, actor *access.Actor, in RecruiterProfileInput) (profile.RecruiterProfile, error) {
	if err := requireRole(actor, account.RoleRecruiter, false); err != nil {
		return profile.RecruiterProfile{}, err
	}
	if actor.HasProfile() {
		return profile.RecruiterProfile{}, ErrProfileExists
	}

	in = in.trimmed()
	if errs := validation.Struct(in); !errs.Empty() {
		return profile.RecruiterProfile{}, errs
	}

	p := profile.RecruiterProfile{
		ID:             uuid.New(),
		AccountID:      actor.AccountID,
		CompanyName:    in.CompanyName,
		CompanyWebsite: in.CompanyWebsite,
		Description:    in.Description,
		Location:       in.Location,
	}
	err := u.store.WithTx(ctx, func(tx repository.Store) error {
		return tx.RecruiterProfiles().Create(ctx, p)
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return profile.RecruiterProfile{}, ErrProfileExists
		}
		return profile.RecruiterProfile{}, ErrInternal
	}

	created, err := u.store.RecruiterProfiles().GetByID(ctx, p.ID)
	if err != nil {
		return profile.RecruiterProfile{}, ErrInternal
	}
	return created, nil
}

func (u *RecruiterProfile) Update(ctx context.Context, actor *access.Actor, in RecruiterProfileInput) (profile.RecruiterProfile, error) {
	current, err := u.Get(ctx, actor)
	if err != nil {
		return profile.RecruiterProfile{}, err
	}

	in = in.trimmed()
	if errs := validation.Struct(in); !errs.Empty() {
		return profile.RecruiterProfile{}, errs
	}

	current.CompanyName = in.CompanyName
	current.CompanyWebsite = in.CompanyWebsite
	current.Description = in.Description
	current.Location = in.Location
	if err := u.store.RecruiterProfiles().Update(ctx, current); err != nil {
		return profile.RecruiterProfile{}, mapRepoError(err)
	}
	// Cached search results carry the company name.
	invalidateJobSearch(ctx, u.cache, u.logger)
	updated, err := u.store.RecruiterProfiles().GetByID(ctx, current.ID)
	if err != nil {
		return profile.RecruiterProfile{}, ErrInternal
	}
	return updated, nil
}

// Dashboard loads the recruiter's postings and the applications they
// received concurrently.
func (u *RecruiterProfile) Dashboard(ctx context.Context, actor *access.Actor) (Dashboard, error) {
	p, err := u.Get(ctx, actor)
	if err != nil {
		return Dashboard{}, err
	}

	out := Dashboard{Profile: p}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		jobs, err := u.store.Jobs().ListByRecruiter(gctx, p.ID, false)
		out.Jobs = jobs
		return err
	})
	g.Go(func() error {
		apps, err := u.store.Applications().ListByRecruiter(gctx, p.ID)
		out.Applications = apps
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, ErrInternal
	}
	return out, nil
}
