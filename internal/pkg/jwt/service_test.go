package jwt

import (
	"errors"
	"testing"
	"time"

	"job-connect/internal/domain/account"

	"github.com/google/uuid"
)

func testAccount() account.Account {
	return account.Account{ID: uuid.New(), Username: "alice", Role: account.RoleApplicant}
}

func TestHMACService_AccessRoundTrip(t *testing.T) {
	svc := NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)
	acc := testAccount()

	tok, err := svc.GenerateAccessToken(acc)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.AccountID != acc.ID || claims.Role != account.RoleApplicant || claims.Username != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.TokenID() == "" {
		t.Fatalf("expected token id")
	}
	if svc.IsRefreshToken(claims) {
		t.Fatalf("access token reported as refresh")
	}
}

func TestHMACService_RefreshToken(t *testing.T) {
	svc := NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)
	tok, err := svc.GenerateRefreshToken(testAccount())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !svc.IsRefreshToken(claims) {
		t.Fatalf("expected refresh token")
	}
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)
	past := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return past }
	tok, err := svc.GenerateAccessToken(testAccount())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecret(t *testing.T) {
	a := NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)
	b := NewHMACService("other", "other-r", time.Minute, time.Hour)

	tok, err := a.GenerateAccessToken(testAccount())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := b.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := a.ValidateToken("garbage"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}

func TestHMACService_NilAccount(t *testing.T) {
	svc := NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)
	if _, err := svc.GenerateAccessToken(account.Account{}); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
