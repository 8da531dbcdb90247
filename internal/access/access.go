// Package access decides whether an actor may reach a role-scoped action.
package access

import (
	"job-connect/internal/domain/account"

	"github.com/google/uuid"
)

// Actor is the authenticated caller. ProfileID is nil until the role's
// profile has been created.
type Actor struct {
	AccountID uuid.UUID
	Username  string
	Role      account.Role
	ProfileID *uuid.UUID
}

func (a *Actor) Authenticated() bool {
	return a != nil && a.AccountID != uuid.Nil && a.Role.Valid()
}

func (a *Actor) HasProfile() bool {
	return a.Authenticated() && a.ProfileID != nil && *a.ProfileID != uuid.Nil
}

// Profile returns the profile id or uuid.Nil.
func (a *Actor) Profile() uuid.UUID {
	if !a.HasProfile() {
		return uuid.Nil
	}
	return *a.ProfileID
}

type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToOnboarding
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToOnboarding:
		return "redirect_to_onboarding"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Requirement describes what a handler needs. An empty Role accepts any
// authenticated actor.
type Requirement struct {
	Role         account.Role
	NeedsProfile bool
}

// Authorize is the single gate for role-scoped handlers. Unauthenticated
// callers go to login before any role check.
func Authorize(actor *Actor, req Requirement) Decision {
	if !actor.Authenticated() {
		return RedirectToLogin
	}
	if req.Role != "" && actor.Role != req.Role {
		return Forbidden
	}
	if req.NeedsProfile && !actor.HasProfile() {
		return RedirectToOnboarding
	}
	return Allow
}

// HasRole is the pure role predicate.
func HasRole(actor *Actor, role account.Role) bool {
	return actor.Authenticated() && actor.Role == role
}
