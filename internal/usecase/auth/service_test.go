package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"job-connect/internal/domain/account"
	"job-connect/internal/pkg/validation"
	"job-connect/internal/repository/memory"
)

func newTestService() *Service {
	return NewService(memory.New().Accounts()).WithCost(bcrypt.MinCost)
}

func TestRegister_CreatesAccountWithRole(t *testing.T) {
	svc := newTestService()

	acc, err := svc.Register(context.Background(), account.RoleApplicant, RegisterInput{
		Username: "alice", Password: "s3cret-pass", PasswordConfirm: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !acc.IsApplicant() || acc.IsRecruiter() {
		t.Fatalf("expected applicant account, got role %q", acc.Role)
	}
	if acc.PasswordHash != "" {
		t.Fatalf("expected sanitized account")
	}
}

func TestRegister_FieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{name: "short password", in: RegisterInput{Username: "bob", Password: "abc", PasswordConfirm: "abc"}, field: "password"},
		{name: "numeric password", in: RegisterInput{Username: "bob", Password: "12345678", PasswordConfirm: "12345678"}, field: "password"},
		{name: "password equals username", in: RegisterInput{Username: "bobbobbob", Password: "BobBobBob", PasswordConfirm: "BobBobBob"}, field: "password"},
		{name: "mismatch", in: RegisterInput{Username: "bob", Password: "s3cret-pass", PasswordConfirm: "other-pass"}, field: "password_confirm"},
		{name: "bad username", in: RegisterInput{Username: "bo b", Password: "s3cret-pass", PasswordConfirm: "s3cret-pass"}, field: "username"},
		{name: "blank username", in: RegisterInput{Username: "  ", Password: "s3cret-pass", PasswordConfirm: "s3cret-pass"}, field: "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService().Register(context.Background(), account.RoleRecruiter, tt.in)
			ve, ok := validation.AsErrors(err)
			if !ok {
				t.Fatalf("expected validation errors, got %v", err)
			}
			if _, ok := ve[tt.field]; !ok {
				t.Fatalf("expected error on %s, got %v", tt.field, ve)
			}
		})
	}
}

func TestRegister_DuplicateUsernameCaseInsensitive(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	in := RegisterInput{Username: "alice", Password: "s3cret-pass", PasswordConfirm: "s3cret-pass"}

	if _, err := svc.Register(ctx, account.RoleApplicant, in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	in.Username = "ALICE"
	_, err := svc.Register(ctx, account.RoleRecruiter, in)
	ve, ok := validation.AsErrors(err)
	if !ok || ve["username"] != msgUsernameTaken {
		t.Fatalf("expected username taken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, account.RoleRecruiter, RegisterInput{
		Username: "bob", Password: "s3cret-pass", PasswordConfirm: "s3cret-pass",
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	acc, err := svc.Login(ctx, LoginInput{Username: "bob", Password: "s3cret-pass"})
	if err != nil || !acc.IsRecruiter() {
		t.Fatalf("expected recruiter login, got %+v err=%v", acc, err)
	}

	if _, err := svc.Login(ctx, LoginInput{Username: "bob", Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Username: "nobody", Password: "s3cret-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
