package job

import (
	"testing"
	"time"

	"job-connect/internal/domain/skill"

	"github.com/google/uuid"
)

func TestJob_Matches(t *testing.T) {
	j := Job{
		Title:          "Backend Developer",
		Description:    "Build APIs",
		Location:       "Remote",
		RequiredSkills: []skill.Skill{{Name: "Python"}},
	}

	cases := []struct {
		q    string
		want bool
	}{
		{q: "", want: true},
		{q: "   ", want: true},
		{q: "backend", want: true},
		{q: "APIS", want: true},
		{q: "remote", want: true},
		{q: "pYtHoN", want: true},
		{q: "java", want: false},
	}
	for _, tc := range cases {
		if got := j.Matches(tc.q); got != tc.want {
			t.Fatalf("Matches(%q)=%v, want %v", tc.q, got, tc.want)
		}
	}
}

func TestJob_MatchesKeepsInnerSpacing(t *testing.T) {
	j := Job{Title: "Senior  Engineer"}

	if !j.Matches("  senior  engineer ") {
		t.Fatalf("expected exact substring with double space to match")
	}
	if j.Matches("Senior Engineer") {
		t.Fatalf("single space is not a substring of %q", j.Title)
	}
	if got := NormalizeQuery("  Senior  Engineer\t"); got != "Senior  Engineer" {
		t.Fatalf("NormalizeQuery=%q", got)
	}
}

func TestJob_OwnedBy(t *testing.T) {
	owner := uuid.New()
	j := Job{RecruiterID: owner}
	if !j.OwnedBy(owner) {
		t.Fatalf("expected owner match")
	}
	if j.OwnedBy(uuid.New()) || j.OwnedBy(uuid.Nil) {
		t.Fatalf("unexpected owner match")
	}
}

func TestSortByPostedDesc(t *testing.T) {
	now := time.Now()
	items := []Job{
		{ID: uuid.New(), PostedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), PostedAt: now},
		{ID: uuid.New(), PostedAt: now.Add(-2 * time.Hour)},
	}
	SortByPostedDesc(items)
	for i := 1; i < len(items); i++ {
		if items[i].PostedAt.After(items[i-1].PostedAt) {
			t.Fatalf("items not in descending order at %d", i)
		}
	}
}
