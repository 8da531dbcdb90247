package account

import (
	"errors"
	"testing"
)

func TestRole_ExactlyOnePredicateHolds(t *testing.T) {
	for _, r := range []Role{RoleApplicant, RoleRecruiter} {
		a := Account{Role: r}
		if a.IsApplicant() == a.IsRecruiter() {
			t.Fatalf("role %q: IsApplicant and IsRecruiter must differ", r)
		}
	}
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "applicant", want: RoleApplicant},
		{in: " Recruiter ", want: RoleRecruiter},
		{in: "admin", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidRole) {
				t.Fatalf("%q: expected ErrInvalidRole, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q: got %q, %v", tc.in, got, err)
		}
	}
}
