package usecase

import (
	"errors"
	"testing"

	"job-connect/internal/pkg/validation"

	"github.com/google/uuid"
)

func TestMessage_ComposeAndRead(t *testing.T) {
	f := newFixture(t)
	bob := f.recruiter("bob", "Bob Co")
	alice := f.applicant("alice", "H", "S")
	dave := f.applicant("dave", "H", "S")

	m, err := f.messages.Compose(f.ctx, bob, ComposeInput{RecipientID: alice.AccountID, Subject: " Interview ", Body: "Tuesday?"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if m.Subject != "Interview" || m.Read || m.SenderUsername != "bob" {
		t.Fatalf("unexpected message: %+v", m)
	}
	last := f.notify.events[len(f.notify.events)-1]
	if last.kind != "message" || last.accountID != alice.AccountID {
		t.Fatalf("expected alice notified, got %+v", last)
	}

	inbox, _ := f.messages.Inbox(f.ctx, alice)
	sent, _ := f.messages.Sent(f.ctx, bob)
	if len(inbox) != 1 || len(sent) != 1 {
		t.Fatalf("expected 1 inbox and 1 sent, got %d and %d", len(inbox), len(sent))
	}

	if _, err := f.messages.View(f.ctx, dave, m.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	viewed, err := f.messages.View(f.ctx, bob, m.ID)
	if err != nil || viewed.Read {
		t.Fatalf("sender view must not mark read: %+v err=%v", viewed, err)
	}
	viewed, err = f.messages.View(f.ctx, alice, m.ID)
	if err != nil || !viewed.Read {
		t.Fatalf("recipient view must mark read: %+v err=%v", viewed, err)
	}
	inbox, _ = f.messages.Inbox(f.ctx, alice)
	if !inbox[0].Read {
		t.Fatalf("expected read flag persisted")
	}

	if _, err := f.messages.View(f.ctx, alice, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMessage_ComposeValidation(t *testing.T) {
	f := newFixture(t)
	bob := f.recruiter("bob", "Bob Co")

	_, err := f.messages.Compose(f.ctx, bob, ComposeInput{RecipientID: uuid.New(), Subject: "  "})
	ve, ok := validation.AsErrors(err)
	if !ok {
		t.Fatalf("expected validation errors, got %v", err)
	}
	for _, key := range []string{"recipient_id", "subject", "body"} {
		if ve[key] == "" {
			t.Fatalf("expected %s error in %v", key, ve)
		}
	}

	if _, err := f.messages.Inbox(f.ctx, nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
