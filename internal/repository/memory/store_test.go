package memory

import (
	"context"
	"errors"
	"testing"

	"job-connect/internal/domain/account"
	"job-connect/internal/domain/application"
	"job-connect/internal/domain/job"
	"job-connect/internal/domain/profile"
	"job-connect/internal/domain/skill"
	"job-connect/internal/repository"

	"github.com/google/uuid"
)

func seedRecruiterJob(t *testing.T, s *Store) (profile.RecruiterProfile, job.Job) {
	t.Helper()
	ctx := context.Background()

	acc := account.Account{ID: uuid.New(), Username: "acme", Role: account.RoleRecruiter}
	if err := s.Accounts().Create(ctx, acc); err != nil {
		t.Fatalf("create account: %v", err)
	}
	rp := profile.RecruiterProfile{ID: uuid.New(), AccountID: acc.ID, CompanyName: "Acme"}
	if err := s.RecruiterProfiles().Create(ctx, rp); err != nil {
		t.Fatalf("create recruiter: %v", err)
	}
	j, err := s.Jobs().Create(ctx, job.Job{ID: uuid.New(), RecruiterID: rp.ID, Title: "Go Engineer", IsActive: true})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return rp, j
}

func seedApplicant(t *testing.T, s *Store, username string) profile.ApplicantProfile {
	t.Helper()
	ctx := context.Background()

	acc := account.Account{ID: uuid.New(), Username: username, Role: account.RoleApplicant}
	if err := s.Accounts().Create(ctx, acc); err != nil {
		t.Fatalf("create account: %v", err)
	}
	p := profile.ApplicantProfile{ID: uuid.New(), AccountID: acc.ID}
	if err := s.ApplicantProfiles().Create(ctx, p); err != nil {
		t.Fatalf("create applicant: %v", err)
	}
	return p
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	p := seedApplicant(t, s, "ana")

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx repository.Store) error {
		p.Headline = "changed"
		if err := tx.ApplicantProfiles().Update(ctx, p); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, err := s.ApplicantProfiles().GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Headline != "" {
		t.Fatalf("expected rollback, got headline %q", got.Headline)
	}
}

func TestWithTx_Commits(t *testing.T) {
	s := New()
	ctx := context.Background()
	p := seedApplicant(t, s, "ana")

	err := s.WithTx(ctx, func(tx repository.Store) error {
		p.Headline = "Backend developer"
		if err := tx.ApplicantProfiles().Update(ctx, p); err != nil {
			return err
		}
		return tx.ApplicantProfiles().InsertExperience(ctx, profile.Experience{
			ID: uuid.New(), ProfileID: p.ID, Title: "Dev", Company: "Acme",
		})
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, _ := s.ApplicantProfiles().GetByID(ctx, p.ID)
	if got.Headline != "Backend developer" || len(got.Experiences) != 1 {
		t.Fatalf("expected committed changes, got %+v", got)
	}
}

func TestApplications_UniquePerApplicantAndJob(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, j := seedRecruiterJob(t, s)
	p := seedApplicant(t, s, "ana")

	first, err := s.Applications().Create(ctx, application.Application{ID: uuid.New(), ApplicantID: p.ID, JobID: j.ID})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.Status != application.StatusPending {
		t.Fatalf("expected pending, got %s", first.Status)
	}
	if first.JobTitle != "Go Engineer" || first.ApplicantUsername != "ana" {
		t.Fatalf("expected hydrated application, got %+v", first)
	}

	_, err = s.Applications().Create(ctx, application.Application{ID: uuid.New(), ApplicantID: p.ID, JobID: j.ID})
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestJobs_DeleteCascadesApplications(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, j := seedRecruiterJob(t, s)
	p := seedApplicant(t, s, "ana")

	app, err := s.Applications().Create(ctx, application.Application{ID: uuid.New(), ApplicantID: p.ID, JobID: j.ID})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := s.Jobs().Delete(ctx, j.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := s.Applications().GetByID(ctx, app.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJobs_SearchMatchesSkillNames(t *testing.T) {
	s := New()
	ctx := context.Background()
	rp, j := seedRecruiterJob(t, s)

	sk, err := s.Skills().Create(ctx, skill.Skill{Name: "PostgreSQL"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := s.Jobs().ReplaceSkills(ctx, j.ID, []uuid.UUID{sk.ID}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := s.Jobs().Create(ctx, job.Job{ID: uuid.New(), RecruiterID: rp.ID, Title: "Designer"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, _ := s.Jobs().Search(ctx, "postgres")
	if len(got) != 1 || got[0].ID != j.ID {
		t.Fatalf("expected skill match, got %+v", got)
	}
	if got[0].CompanyName != "Acme" {
		t.Fatalf("expected company name, got %q", got[0].CompanyName)
	}

	all, _ := s.Jobs().Search(ctx, "  ")
	if len(all) != 2 || all[0].Title != "Designer" {
		t.Fatalf("expected newest first, got %+v", all)
	}
}

func TestSkills_ReplaceRejectsUnknown(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, j := seedRecruiterJob(t, s)

	err := s.Jobs().ReplaceSkills(ctx, j.ID, []uuid.UUID{uuid.New()})
	if !errors.Is(err, repository.ErrReference) {
		t.Fatalf("expected ErrReference, got %v", err)
	}
}
