package access

import (
	"testing"

	"job-connect/internal/domain/account"

	"github.com/google/uuid"
)

func actor(role account.Role, withProfile bool) *Actor {
	a := &Actor{AccountID: uuid.New(), Role: role}
	if withProfile {
		id := uuid.New()
		a.ProfileID = &id
	}
	return a
}

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name  string
		actor *Actor
		req   Requirement
		want  Decision
	}{
		{name: "anonymous", actor: nil, req: Requirement{Role: account.RoleRecruiter}, want: RedirectToLogin},
		{name: "zero actor", actor: &Actor{}, req: Requirement{}, want: RedirectToLogin},
		{name: "wrong role", actor: actor(account.RoleApplicant, true), req: Requirement{Role: account.RoleRecruiter, NeedsProfile: true}, want: Forbidden},
		{name: "missing profile", actor: actor(account.RoleRecruiter, false), req: Requirement{Role: account.RoleRecruiter, NeedsProfile: true}, want: RedirectToOnboarding},
		{name: "profile not needed", actor: actor(account.RoleRecruiter, false), req: Requirement{Role: account.RoleRecruiter}, want: Allow},
		{name: "any role", actor: actor(account.RoleApplicant, false), req: Requirement{}, want: Allow},
		{name: "allowed", actor: actor(account.RoleApplicant, true), req: Requirement{Role: account.RoleApplicant, NeedsProfile: true}, want: Allow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Authorize(tc.actor, tc.req); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestHasRole(t *testing.T) {
	a := actor(account.RoleApplicant, false)
	if !HasRole(a, account.RoleApplicant) || HasRole(a, account.RoleRecruiter) {
		t.Fatalf("unexpected role predicate result")
	}
	if HasRole(nil, account.RoleApplicant) {
		t.Fatalf("nil actor has no role")
	}
}

func TestDefinitions(t *testing.T) {
	for _, d := range Definitions() {
		if d.ProfileCreatePath == "" || d.DashboardPath == "" {
			t.Fatalf("incomplete definition: %+v", d)
		}
		if OnboardingPath(d.Role) != d.ProfileCreatePath {
			t.Fatalf("onboarding path mismatch for %s", d.Role)
		}
	}
	if OnboardingPath(account.Role("admin")) != LoginPath {
		t.Fatalf("unknown role should fall back to login")
	}
}
