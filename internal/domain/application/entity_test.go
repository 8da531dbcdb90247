package application

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		if err != nil || got != s {
			t.Fatalf("ParseStatus(%q) = %q, %v", s, got, err)
		}
	}
	if got, err := ParseStatus(" Shortlisted "); err != nil || got != StatusShortlisted {
		t.Fatalf("expected case-insensitive parse, got %q, %v", got, err)
	}
	if _, err := ParseStatus("hired"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestCanTransition_AnyToAny(t *testing.T) {
	for _, from := range Statuses() {
		for _, to := range Statuses() {
			if !CanTransition(from, to) {
				t.Fatalf("expected %s -> %s allowed", from, to)
			}
		}
	}
	if CanTransition(StatusPending, Status("hired")) {
		t.Fatalf("transition to unknown status must be rejected")
	}
}

func TestSortByAppliedDesc(t *testing.T) {
	now := time.Now()
	items := []Application{
		{ID: uuid.New(), AppliedAt: now.Add(-time.Minute)},
		{ID: uuid.New(), AppliedAt: now},
	}
	SortByAppliedDesc(items)
	if !items[0].AppliedAt.Equal(now) {
		t.Fatalf("expected newest first")
	}
}
