package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"job-connect/internal/access"
	"job-connect/internal/domain/account"
	"job-connect/internal/pkg/logger"
	"job-connect/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fakeAuth struct {
	actors map[string]*access.Actor
}

func (f fakeAuth) Authenticate(_ context.Context, token string) (*access.Actor, error) {
	if a, ok := f.actors[token]; ok {
		return a, nil
	}
	return nil, usecase.ErrUnauthorized
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{})
	app.Use(NewErrorMiddleware(logger.Discard()).Middleware())
	return app
}

func call(t *testing.T, app *fiber.App, path, token string) (*http.Response, semanticResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return resp, sr
}

func TestErrorMiddleware_RendersErrors(t *testing.T) {
	app := newApp(t)
	app.Get("/conflict", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusConflict, "taken", nil, nil)
	})
	app.Get("/internal", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password leaked", nil, errors.New("boom"))
	})
	app.Get("/redirect", func(c fiber.Ctx) error {
		return NewRedirect("/somewhere", "go away")
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("kaboom")
	})

	resp, sr := call(t, app, "/conflict", "")
	if resp.StatusCode != fiber.StatusConflict || sr.Message != "taken" {
		t.Fatalf("unexpected conflict response: %d %+v", resp.StatusCode, sr)
	}

	resp, sr = call(t, app, "/internal", "")
	if resp.StatusCode != fiber.StatusInternalServerError || sr.Message != "internal server error" {
		t.Fatalf("5xx messages must be generic, got %d %q", resp.StatusCode, sr.Message)
	}

	resp, sr = call(t, app, "/redirect", "")
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get("Location") != "/somewhere" || sr.Status != fiber.StatusFound {
		t.Fatalf("unexpected redirect response: %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp, _ = call(t, app, "/panic", "")
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected panic to become 500, got %d", resp.StatusCode)
	}
}

func TestRequire(t *testing.T) {
	profileID := uuid.New()
	auth := fakeAuth{actors: map[string]*access.Actor{
		"applicant": {AccountID: uuid.New(), Role: account.RoleApplicant, ProfileID: &profileID},
		"recruiter": {AccountID: uuid.New(), Role: account.RoleRecruiter},
	}}

	app := newApp(t)
	app.Use(NewAuthMiddleware(auth).Middleware())
	app.Get("/recruiter-only", Require(access.Requirement{Role: account.RoleRecruiter, NeedsProfile: true}), func(c fiber.Ctx) error {
		return c.JSON(semanticResponse{Status: 200, Message: "ok"})
	})

	cases := []struct {
		name     string
		token    string
		status   int
		location string
	}{
		{name: "anonymous", token: "", status: fiber.StatusFound, location: access.LoginPath},
		{name: "unknown token", token: "forged", status: fiber.StatusUnauthorized},
		{name: "wrong role", token: "applicant", status: fiber.StatusForbidden},
		{name: "no profile", token: "recruiter", status: fiber.StatusFound, location: access.OnboardingPath(account.RoleRecruiter)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := call(t, app, "/recruiter-only", tc.token)
			if resp.StatusCode != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.StatusCode)
			}
			if tc.location != "" && resp.Header.Get("Location") != tc.location {
				t.Fatalf("expected location %q, got %q", tc.location, resp.Header.Get("Location"))
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	if tok, ok := BearerToken("Bearer abc"); !ok || tok != "abc" {
		t.Fatalf("unexpected: %q %v", tok, ok)
	}
	if tok, ok := BearerToken("bearer  xyz "); !ok || tok != "xyz" {
		t.Fatalf("scheme should be case-insensitive: %q %v", tok, ok)
	}
	for _, h := range []string{"", "Bearer", "Bearer   ", "Basic abc", "abc"} {
		if _, ok := BearerToken(h); ok {
			t.Fatalf("expected %q to be rejected", h)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, logger.Discard())

	app := newApp(t)
	app.Get("/login", rl.Middleware(), func(c fiber.Ctx) error {
		return c.JSON(semanticResponse{Status: 200, Message: "ok"})
	})

	for i := 0; i < 2; i++ {
		resp, _ := call(t, app, "/login", "")
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.StatusCode)
		}
	}
	resp, sr := call(t, app, "/login", "")
	if resp.StatusCode != fiber.StatusTooManyRequests || sr.Status != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, logger.Discard())
	if !rl.Allow("a") || rl.Allow("a") {
		t.Fatalf("expected key a to be limited after one request")
	}
	if !rl.Allow("b") {
		t.Fatalf("key b must have its own budget")
	}
}

func TestRateLimiter_SweepsIdleClientsPeriodically(t *testing.T) {
	rl := NewRateLimiter(1, 1, logger.Discard())
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := t0
	rl.now = func() time.Time { return clock }

	rl.Allow("a")
	clock = t0.Add(time.Minute)
	rl.Allow("x")

	clock = t0.Add(10*time.Minute + 30*time.Second)
	rl.Allow("b")
	if _, ok := rl.clients["a"]; ok || len(rl.clients) != 2 {
		t.Fatalf("expected a swept and x, b kept, got %d clients", len(rl.clients))
	}

	// x is now idle, but the last sweep was too recent to run another.
	clock = t0.Add(12 * time.Minute)
	rl.Allow("b")
	if _, ok := rl.clients["x"]; !ok {
		t.Fatalf("expected no sweep within idle/2 of the previous one")
	}

	clock = t0.Add(16 * time.Minute)
	rl.Allow("b")
	if _, ok := rl.clients["x"]; ok || len(rl.clients) != 1 {
		t.Fatalf("expected x swept, got %d clients", len(rl.clients))
	}
}

func TestRateLimiter_DisabledWithZeroRate(t *testing.T) {
	rl := NewRateLimiter(0, 1, logger.Discard())

	app := newApp(t)
	app.Get("/login", rl.Middleware(), func(c fiber.Ctx) error {
		return c.JSON(semanticResponse{Status: 200, Message: "ok"})
	})
	for i := 0; i < 5; i++ {
		if resp, _ := call(t, app, "/login", ""); resp.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, resp.StatusCode)
		}
	}
}
