package usecase

import (
	"errors"
	"testing"

	"job-connect/internal/domain/account"
	"job-connect/internal/domain/application"
	"job-connect/internal/pkg/validation"

	"github.com/google/uuid"
)

func TestApply_SecondAttemptReportsAlreadyApplied(t *testing.T) {
	f := newFixture(t)
	bob := f.recruiter("bob", "Bob Co")
	alice := f.applicant("alice", "H", "S")
	j := f.job(bob, JobInput{Title: "Dev", Description: "Build things", Location: "Remote"})

	res, err := f.apps.Apply(f.ctx, alice, j.ID, ApplyInput{CoverLetter: "hi"}, resumeUpload())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Application.Status != application.StatusPending {
		t.Fatalf("expected pending, got %s", res.Application.Status)
	}

	again, err := f.apps.Apply(f.ctx, alice, j.ID, ApplyInput{}, resumeUpload())
	if !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	if again.Application.ID != res.Application.ID || again.Job.ID != j.ID {
		t.Fatalf("expected existing application and job in result")
	}

	items, _ := f.apps.ListForApplicant(f.ctx, alice)
	if len(items) != 1 {
		t.Fatalf("expected 1 application, got %d", len(items))
	}
	if len(f.files.stored) != 1 {
		t.Fatalf("expected only the first resume stored, got %d", len(f.files.stored))
	}

	if len(f.notify.events) == 0 || f.notify.events[len(f.notify.events)-1].kind != "submitted" {
		t.Fatalf("expected recruiter notification, got %+v", f.notify.events)
	}
	if f.notify.events[len(f.notify.events)-1].accountID != bob.AccountID {
		t.Fatalf("expected bob to be notified")
	}
}

func TestApply_Gates(t *testing.T) {
	f := newFixture(t)
	bob := f.recruiter("bob", "Bob Co")
	alice := f.applicant("alice", "H", "S")
	j := f.job(bob, JobInput{Title: "Dev", Description: "d", Location: "Remote"})

	if _, err := f.apps.Apply(f.ctx, bob, j.ID, ApplyInput{}, resumeUpload()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for recruiter, got %v", err)
	}

	fresh := f.account("newbie", account.RoleApplicant)
	if _, err := f.apps.Apply(f.ctx, fresh, j.ID, ApplyInput{}, resumeUpload()); !errors.Is(err, ErrProfileRequired) {
		t.Fatalf("expected ErrProfileRequired, got %v", err)
	}

	if _, err := f.apps.Apply(f.ctx, alice, uuid.New(), ApplyInput{}, resumeUpload()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err := f.apps.Apply(f.ctx, alice, j.ID, ApplyInput{}, nil)
	ve, ok := validation.AsErrors(err)
	if !ok || ve["resume"] == "" {
		t.Fatalf("expected resume error, got %v", err)
	}
}

func TestUpdateStatus_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	bob := f.recruiter("bob", "Bob Co")
	carol := f.recruiter("carol", "Carol Co")
	alice := f.applicant("alice", "H", "S")
	j := f.job(bob, JobInput{Title: "Dev", Description: "d", Location: "Remote"})

	res, err := f.apps.Apply(f.ctx, alice, j.ID, ApplyInput{}, resumeUpload())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	updated, err := f.apps.UpdateStatus(f.ctx, bob, res.Application.ID, StatusInput{Status: "shortlisted"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != application.StatusShortlisted {
		t.Fatalf("expected shortlisted, got %s", updated.Status)
	}

	if _, err := f.apps.UpdateStatus(f.ctx, carol, res.Application.ID, StatusInput{Status: "rejected"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	got, _ := f.apps.Get(f.ctx, bob, res.Application.ID)
	if got.Status != application.StatusShortlisted {
		t.Fatalf("expected status unchanged, got %s", got.Status)
	}

	if _, err := f.apps.UpdateStatus(f.ctx, bob, uuid.New(), StatusInput{Status: "rejected"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = f.apps.UpdateStatus(f.ctx, bob, res.Application.ID, StatusInput{Status: "hired"})
	if ve, ok := validation.AsErrors(err); !ok || ve["status"] == "" {
		t.Fatalf("expected status error, got %v", err)
	}

	last := f.notify.events[len(f.notify.events)-1]
	if last.kind != "status" || last.accountID != alice.AccountID || last.detail != "shortlisted" {
		t.Fatalf("expected alice notified of shortlisted, got %+v", last)
	}
}

func TestApplicationVisibility(t *testing.T) {
	f := newFixture(t)
	bob := f.recruiter("bob", "Bob Co")
	carol := f.recruiter("carol", "Carol Co")
	alice := f.applicant("alice", "H", "S")
	dave := f.applicant("dave", "H", "S")
	j := f.job(bob, JobInput{Title: "Dev", Description: "d", Location: "Remote"})

	res, err := f.apps.Apply(f.ctx, alice, j.ID, ApplyInput{}, resumeUpload())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	id := res.Application.ID

	if _, err := f.apps.Get(f.ctx, alice, id); err != nil {
		t.Fatalf("applicant should see own application: %v", err)
	}
	if _, err := f.apps.Get(f.ctx, bob, id); err != nil {
		t.Fatalf("owning recruiter should see application: %v", err)
	}
	for _, actor := range []struct {
		name string
		err  error
		get  func() error
	}{
		{name: "other applicant", err: ErrForbidden, get: func() error { _, err := f.apps.Get(f.ctx, dave, id); return err }},
		{name: "other recruiter", err: ErrForbidden, get: func() error { _, err := f.apps.Get(f.ctx, carol, id); return err }},
	} {
		if err := actor.get(); !errors.Is(err, actor.err) {
			t.Fatalf("%s: expected %v, got %v", actor.name, actor.err, err)
		}
	}

	if _, _, err := f.apps.ListForJob(f.ctx, carol, j.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, _, err := f.apps.ListForJob(f.ctx, bob, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_, items, err := f.apps.ListForJob(f.ctx, bob, j.ID)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected 1 application, got %d err=%v", len(items), err)
	}

	all, err := f.apps.ListForRecruiter(f.ctx, bob)
	if err != nil || len(all) != 1 || all[0].ApplicantUsername != "alice" {
		t.Fatalf("unexpected recruiter listing: %+v err=%v", all, err)
	}
}
