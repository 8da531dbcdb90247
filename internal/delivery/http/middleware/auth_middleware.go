package middleware

import (
	"context"
	"errors"
	"strings"

	"job-connect/internal/access"
	"job-connect/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const CtxActorKey = "actor"

type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*access.Actor, error)
}

// AuthMiddleware resolves a Bearer token to an actor. Requests without a
// token continue anonymously and are turned away by Require where needed.
type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if strings.TrimSpace(header) == "" {
			return c.Next()
		}

		token, ok := BearerToken(header)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		actor, err := m.auth.Authenticate(c.Context(), token)
		if err != nil {
			if errors.Is(err, usecase.ErrUnauthorized) {
				return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
			}
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}

		c.Locals(CtxActorKey, actor)
		return c.Next()
	}
}

// Require applies access.Authorize to the current actor.
func Require(req access.Requirement) fiber.Handler {
	return func(c fiber.Ctx) error {
		actor := ActorFrom(c)
		switch access.Authorize(actor, req) {
		case access.Allow:
			return c.Next()
		case access.RedirectToLogin:
			return NewRedirect(access.LoginPath, "login required")
		case access.RedirectToOnboarding:
			return NewRedirect(access.OnboardingPath(actor.Role), "profile required")
		default:
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}
	}
}

// ActorFrom returns the authenticated actor or nil.
func ActorFrom(c fiber.Ctx) *access.Actor {
	actor, _ := c.Locals(CtxActorKey).(*access.Actor)
	return actor
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
