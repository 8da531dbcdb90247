package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeSender struct {
	direct    map[uuid.UUID][][]byte
	broadcast [][]byte
}

func (f *fakeSender) SendTo(accountID uuid.UUID, message []byte) {
	if f.direct == nil {
		f.direct = map[uuid.UUID][][]byte{}
	}
	f.direct[accountID] = append(f.direct[accountID], message)
}

func (f *fakeSender) Broadcast(message []byte) {
	f.broadcast = append(f.broadcast, message)
}

func TestNotifier_ApplicationSubmitted(t *testing.T) {
	fs := &fakeSender{}
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	n := &Notifier{hub: fs, now: func() time.Time { return fixed }}

	recruiter, appID, jobID := uuid.New(), uuid.New(), uuid.New()
	n.ApplicationSubmitted(recruiter, appID, jobID, "Go Engineer")

	msgs := fs.direct[recruiter]
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	var evt Event
	if err := json.Unmarshal(msgs[0], &evt); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if evt.Type != EventApplicationSubmitted || evt.Data["application_id"] != appID.String() {
		t.Fatalf("unexpected event: %+v", evt)
	}
	if evt.Timestamp != "2024-05-01T10:00:00Z" {
		t.Fatalf("unexpected timestamp: %s", evt.Timestamp)
	}
}

func TestNotifier_NilIsNoop(t *testing.T) {
	var n *Notifier
	n.MessageReceived(uuid.New(), uuid.New(), "ana", "hi")
	n.JobPosted(uuid.New(), "t", "c")

	NewNotifier(nil).ApplicationStatusChanged(uuid.New(), uuid.New(), "t", "reviewed")
}

func TestHub_SendToTargetsAccount(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	alice, bob := uuid.New(), uuid.New()
	ca := &Client{hub: h, accountID: alice, send: make(chan []byte, 1)}
	cb := &Client{hub: h, accountID: bob, send: make(chan []byte, 1)}
	h.Register(ca)
	h.Register(cb)

	deadline := time.Now().Add(time.Second)
	for h.ClientCount() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("clients not registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	h.SendTo(alice, []byte("hello"))

	select {
	case got := <-ca.send:
		if string(got) != "hello" {
			t.Fatalf("unexpected message %q", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected message for alice")
	}

	select {
	case got := <-cb.send:
		t.Fatalf("bob should not receive %q", got)
	case <-time.After(50 * time.Millisecond):
	}
}
