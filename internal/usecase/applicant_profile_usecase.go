package usecase

import (
	"context"
	"errors"
	"strings"

	"job-connect/internal/access"
	"job-connect/internal/domain/account"
	"job-connect/internal/domain/profile"
	"job-connect/internal/formset"
	"job-connect/internal/infrastructure/storage"
	"job-connect/internal/pkg/validation"
	"job-connect/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	groupExperiences = "experiences"
	groupEducations  = "educations"
)

type ApplicantProfileFields struct {
	Headline string      `json:"headline" validate:"notblank,max=255"`
	Summary  string      `json:"summary" validate:"notblank,max=255"`
	Skills   []uuid.UUID `json:"skills"`
}

// ApplicantProfileInput is the full update submission: the parent fields
// plus both child groups.
type ApplicantProfileInput struct {
	ApplicantProfileFields
	RemoveResume bool                            `json:"remove_resume"`
	Experiences  formset.Group[ExperienceFields] `json:"experiences"`
	Educations   formset.Group[EducationFields]  `json:"educations"`
}

type ApplicantProfileUsecase interface {
	Create(ctx context.Context, actor *access.Actor, in ApplicantProfileFields, resume *Upload) (profile.ApplicantProfile, error)
	Update(ctx context.Context, actor *access.Actor, in ApplicantProfileInput, resume *Upload) (profile.ApplicantProfile, error)
	Get(ctx context.Context, actor *access.Actor) (profile.ApplicantProfile, error)
}

type ApplicantProfile struct {
	store  repository.Store
	files  FileStore
	logger *logrus.Logger
}

func NewApplicantProfileUsecase(store repository.Store, files FileStore, logger *logrus.Logger) *ApplicantProfile {
	return &ApplicantProfile{store: store, files: files, logger: logger}
}

func (u *ApplicantProfile) Get(ctx context.Context, actor *access.Actor) (profile.ApplicantProfile, error) {
	if err := requireRole(actor, account.RoleApplicant, true); err != nil {
		return profile.ApplicantProfile{}, err
	}
	p, err := u.store.ApplicantProfiles().GetByID(ctx, actor.Profile())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return profile.ApplicantProfile{}, ErrProfileRequired
		}
		return profile.ApplicantProfile{}, ErrInternal
	}
	return p, nil
}

func (u *ApplicantProfile) Create(ctx context.Context, actor *access.Actor, in ApplicantProfileFields, resume *Upload) (profile.ApplicantProfile, error) {
	if err := requireRole(actor, account.RoleApplicant, false); err != nil {
		return profile.ApplicantProfile{}, err
	}
	if actor.HasProfile() {
		return profile.ApplicantProfile{}, ErrProfileExists
	}

	errs := validation.Struct(in)
	skillIDs, err := resolveSkills(ctx, u.store, "skills", in.Skills, errs)
	if err != nil {
		return profile.ApplicantProfile{}, err
	}
	if !errs.Empty() {
		return profile.ApplicantProfile{}, errs
	}

	ref, err := u.storeResume(ctx, resume, errs)
	if err != nil {
		return profile.ApplicantProfile{}, err
	}

	p := profile.ApplicantProfile{
		ID:        uuid.New(),
		AccountID: actor.AccountID,
		Headline:  strings.TrimSpace(in.Headline),
		Summary:   strings.TrimSpace(in.Summary),
		ResumeRef: ref,
	}
	err = u.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.ApplicantProfiles().Create(ctx, p); err != nil {
			return err
		}
		return tx.ApplicantProfiles().ReplaceSkills(ctx, p.ID, skillIDs)
	})
	if err != nil {
		u.discard(ctx, ref)
		switch {
		case errors.Is(err, repository.ErrConflict):
			return profile.ApplicantProfile{}, ErrProfileExists
		case errors.Is(err, repository.ErrReference):
			return profile.ApplicantProfile{}, validation.Errors{"skills": msgSkillChoice}
		default:
			return profile.ApplicantProfile{}, ErrInternal
		}
	}

	return u.reload(ctx, p.ID)
}

// Update validates the parent and every child group, then writes all of it
// in one transaction. Any failure leaves the stored profile untouched.
func (u *ApplicantProfile) Update(ctx context.Context, actor *access.Actor, in ApplicantProfileInput, resume *Upload) (profile.ApplicantProfile, error) {
	if err := requireRole(actor, account.RoleApplicant, true); err != nil {
		return profile.ApplicantProfile{}, err
	}
	current, err := u.store.ApplicantProfiles().GetByID(ctx, actor.Profile())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return profile.ApplicantProfile{}, ErrProfileRequired
		}
		return profile.ApplicantProfile{}, ErrInternal
	}

	errs := validation.Struct(in.ApplicantProfileFields)
	skillIDs, err := resolveSkills(ctx, u.store, "skills", in.Skills, errs)
	if err != nil {
		return profile.ApplicantProfile{}, err
	}
	expOps, expErrs := formset.Plan(groupExperiences, in.Experiences, current.ExperienceIDs())
	errs.Merge("", expErrs)
	eduOps, eduErrs := formset.Plan(groupEducations, in.Educations, current.EducationIDs())
	errs.Merge("", eduErrs)
	if !errs.Empty() {
		return profile.ApplicantProfile{}, errs
	}

	newRef, err := u.storeResume(ctx, resume, errs)
	if err != nil {
		return profile.ApplicantProfile{}, err
	}

	next := current
	next.Headline = strings.TrimSpace(in.Headline)
	next.Summary = strings.TrimSpace(in.Summary)
	switch {
	case newRef != "":
		next.ResumeRef = newRef
	case in.RemoveResume:
		next.ResumeRef = ""
	}

	err = u.store.WithTx(ctx, func(tx repository.Store) error {
		repo := tx.ApplicantProfiles()
		if err := repo.Update(ctx, next); err != nil {
			return err
		}
		if err := repo.ReplaceSkills(ctx, next.ID, skillIDs); err != nil {
			return err
		}
		if err := applyExperienceOps(ctx, repo, next.ID, expOps); err != nil {
			return err
		}
		return applyEducationOps(ctx, repo, next.ID, eduOps)
	})
	if err != nil {
		u.discard(ctx, newRef)
		if u.logger != nil {
			u.logger.WithError(err).WithField("profile_id", next.ID).Warn("applicant profile update rolled back")
		}
		switch {
		case errors.Is(err, repository.ErrReference):
			return profile.ApplicantProfile{}, validation.Errors{"skills": msgSkillChoice}
		case errors.Is(err, repository.ErrNotFound):
			return profile.ApplicantProfile{}, ErrConflict
		default:
			return profile.ApplicantProfile{}, ErrInternal
		}
	}

	if current.ResumeRef != "" && current.ResumeRef != next.ResumeRef {
		u.discard(ctx, current.ResumeRef)
	}
	return u.reload(ctx, next.ID)
}

func applyExperienceOps(ctx context.Context, repo repository.ApplicantProfileRepository, profileID uuid.UUID, ops []formset.Op[ExperienceFields]) error {
	for _, op := range ops {
		switch op.Kind {
		case formset.OpDelete:
			if err := repo.DeleteExperience(ctx, profileID, op.ID); err != nil {
				return err
			}
		case formset.OpInsert, formset.OpUpdate:
			e := profile.Experience{ID: op.ID, ProfileID: profileID, Position: op.Position}
			op.Fields.apply(&e)
			var err error
			if op.Kind == formset.OpInsert {
				err = repo.InsertExperience(ctx, e)
			} else {
				err = repo.UpdateExperience(ctx, e)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func applyEducationOps(ctx context.Context, repo repository.ApplicantProfileRepository, profileID uuid.UUID, ops []formset.Op[EducationFields]) error {
	for _, op := range ops {
		switch op.Kind {
		case formset.OpDelete:
			if err := repo.DeleteEducation(ctx, profileID, op.ID); err != nil {
				return err
			}
		case formset.OpInsert, formset.OpUpdate:
			e := profile.Education{ID: op.ID, ProfileID: profileID, Position: op.Position}
			op.Fields.apply(&e)
			var err error
			if op.Kind == formset.OpInsert {
				err = repo.InsertEducation(ctx, e)
			} else {
				err = repo.UpdateEducation(ctx, e)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// storeResume writes an optional resume. Rejected files are reported on the
// "resume" field of errs.
func (u *ApplicantProfile) storeResume(ctx context.Context, resume *Upload, errs validation.Errors) (string, error) {
	if !resume.Present() {
		return "", nil
	}
	return storeDocument(ctx, u.files, storage.ResumePrefix, resume, errs)
}

func (u *ApplicantProfile) discard(ctx context.Context, ref string) {
	discardFile(ctx, u.files, u.logger, ref)
}

func (u *ApplicantProfile) reload(ctx context.Context, id uuid.UUID) (profile.ApplicantProfile, error) {
	p, err := u.store.ApplicantProfiles().GetByID(ctx, id)
	if err != nil {
		return profile.ApplicantProfile{}, ErrInternal
	}
	return p, nil
}

func storeDocument(ctx context.Context, files FileStore, prefix string, doc *Upload, errs validation.Errors) (string, error) {
	if files == nil {
		return "", ErrInternal
	}
	ref, err := files.Store(ctx, doc.Data, prefix, doc.Name)
	if err == nil {
		return ref, nil
	}
	switch {
	case errors.Is(err, storage.ErrEmptyFile):
		errs.Add("resume", "The submitted file is empty.")
	case errors.Is(err, storage.ErrFileTooLarge):
		errs.Add("resume", "The submitted file is too large.")
	case errors.Is(err, storage.ErrUnsupportedType):
		errs.Add("resume", "Upload a PDF, Word, RTF or plain text document.")
	default:
		return "", ErrInternal
	}
	return "", errs
}

func discardFile(ctx context.Context, files FileStore, logger *logrus.Logger, ref string) {
	if ref == "" || files == nil {
		return
	}
	if err := files.Delete(ctx, ref); err != nil && logger != nil {
		logger.WithError(err).WithField("ref", ref).Warn("file cleanup failed")
	}
}
