package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"job-connect/internal/access"
	"job-connect/internal/domain/account"
	"job-connect/internal/domain/job"
	"job-connect/internal/domain/skill"
	"job-connect/internal/repository/memory"

	"github.com/google/uuid"
)

type fakeFiles struct {
	mu      sync.Mutex
	n       int
	stored  map[string][]byte
	deleted []string
	err     error
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{stored: map[string][]byte{}}
}

func (f *fakeFiles) Store(_ context.Context, data []byte, prefix, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.n++
	ref := fmt.Sprintf("%s/file-%d.pdf", prefix, f.n)
	f.stored[ref] = data
	return ref, nil
}

func (f *fakeFiles) Delete(_ context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.stored, ref)
	f.deleted = append(f.deleted, ref)
	return nil
}

type recordedEvent struct {
	kind      string
	accountID uuid.UUID
	detail    string
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *fakeNotifier) add(e recordedEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *fakeNotifier) ApplicationSubmitted(recruiterAccountID, _, _ uuid.UUID, jobTitle string) {
	n.add(recordedEvent{kind: "submitted", accountID: recruiterAccountID, detail: jobTitle})
}

func (n *fakeNotifier) ApplicationStatusChanged(applicantAccountID, _ uuid.UUID, _, status string) {
	n.add(recordedEvent{kind: "status", accountID: applicantAccountID, detail: status})
}

func (n *fakeNotifier) MessageReceived(recipientID, _ uuid.UUID, _, subject string) {
	n.add(recordedEvent{kind: "message", accountID: recipientID, detail: subject})
}

func (n *fakeNotifier) JobPosted(_ uuid.UUID, title, _ string) {
	n.add(recordedEvent{kind: "job", detail: title})
}

type fixture struct {
	t          *testing.T
	ctx        context.Context
	store      *memory.Store
	files      *fakeFiles
	notify     *fakeNotifier
	applicants *ApplicantProfile
	recruiters *RecruiterProfile
	jobs       *Job
	apps       *Application
	messages   *Message
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	files := newFakeFiles()
	notify := &fakeNotifier{}
	return &fixture{
		t:          t,
		ctx:        context.Background(),
		store:      store,
		files:      files,
		notify:     notify,
		applicants: NewApplicantProfileUsecase(store, files, nil),
		recruiters: NewRecruiterProfileUsecase(store, nil, nil),
		jobs:       NewJobUsecase(store, nil, notify, nil),
		apps:       NewApplicationUsecase(store, files, notify, nil),
		messages:   NewMessageUsecase(store, notify),
	}
}

func (f *fixture) account(username string, role account.Role) *access.Actor {
	f.t.Helper()
	acc := account.Account{ID: uuid.New(), Username: username, PasswordHash: "x", Role: role}
	if err := f.store.Accounts().Create(f.ctx, acc); err != nil {
		f.t.Fatalf("create account %s: %v", username, err)
	}
	return &access.Actor{AccountID: acc.ID, Username: username, Role: role}
}

func withProfile(actor *access.Actor, id uuid.UUID) *access.Actor {
	out := *actor
	out.ProfileID = &id
	return &out
}

func (f *fixture) applicant(username, headline, summary string) *access.Actor {
	f.t.Helper()
	actor := f.account(username, account.RoleApplicant)
	p, err := f.applicants.Create(f.ctx, actor, ApplicantProfileFields{Headline: headline, Summary: summary}, nil)
	if err != nil {
		f.t.Fatalf("create applicant profile: %v", err)
	}
	return withProfile(actor, p.ID)
}

func (f *fixture) recruiter(username, company string) *access.Actor {
	f.t.Helper()
	actor := f.account(username, account.RoleRecruiter)
	p, err := f.recruiters.Create(f.ctx, actor, RecruiterProfileInput{CompanyName: company})
	if err != nil {
		f.t.Fatalf("create recruiter profile: %v", err)
	}
	return withProfile(actor, p.ID)
}

func (f *fixture) job(actor *access.Actor, in JobInput) job.Job {
	f.t.Helper()
	j, err := f.jobs.Create(f.ctx, actor, in)
	if err != nil {
		f.t.Fatalf("create job: %v", err)
	}
	return j
}

func (f *fixture) skill(name string) skill.Skill {
	f.t.Helper()
	sk, err := f.store.Skills().Create(f.ctx, skill.Skill{ID: uuid.New(), Name: name})
	if err != nil {
		f.t.Fatalf("create skill: %v", err)
	}
	return sk
}

func resumeUpload() *Upload {
	return &Upload{Name: "resume.pdf", Data: []byte("%PDF-1.4 dummy")}
}
