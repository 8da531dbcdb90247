package account

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleApplicant Role = "applicant"
	RoleRecruiter Role = "recruiter"
)

var ErrInvalidRole = errors.New("invalid role")

func (r Role) Valid() bool {
	return r == RoleApplicant || r == RoleRecruiter
}

func (r Role) String() string { return string(r) }

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Account is a login identity. Role is fixed at signup; nothing updates it.
type Account struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a Account) IsApplicant() bool { return a.Role == RoleApplicant }

func (a Account) IsRecruiter() bool { return a.Role == RoleRecruiter }

// NormalizeUsername is the comparison form used for uniqueness.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
