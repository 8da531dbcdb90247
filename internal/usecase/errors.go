package usecase

import (
	"context"
	"errors"

	"job-connect/internal/access"
	"job-connect/internal/domain/account"
	"job-connect/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("already exists")
	ErrProfileExists   = errors.New("profile already exists")
	ErrProfileRequired = errors.New("profile required")
	ErrAlreadyApplied  = errors.New("already applied")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInternal        = errors.New("internal error")

	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

const (
	msgSkillChoice = "Select a valid choice. One or more of the selected skills do not exist."
	msgRequired    = "This field is required."
	msgChoice      = "Select a valid choice. That choice is not one of the available choices."
)

// Upload is a file received with a form submission.
type Upload struct {
	Name string
	Data []byte
}

func (u *Upload) Present() bool {
	return u != nil && len(u.Data) > 0
}

// FileStore keeps uploaded documents.
type FileStore interface {
	Store(ctx context.Context, data []byte, prefix, suggestedName string) (string, error)
	Delete(ctx context.Context, ref string) error
}

// Notifier receives domain events for realtime delivery.
type Notifier interface {
	ApplicationSubmitted(recruiterAccountID, applicationID, jobID uuid.UUID, jobTitle string)
	ApplicationStatusChanged(applicantAccountID, applicationID uuid.UUID, jobTitle, status string)
	MessageReceived(recipientID, messageID uuid.UUID, senderUsername, subject string)
	JobPosted(jobID uuid.UUID, title, companyName string)
}

// requireRole maps an access decision onto usecase errors.
func requireRole(actor *access.Actor, role account.Role, needsProfile bool) error {
	switch access.Authorize(actor, access.Requirement{Role: role, NeedsProfile: needsProfile}) {
	case access.Allow:
		return nil
	case access.RedirectToLogin:
		return ErrUnauthorized
	case access.RedirectToOnboarding:
		return ErrProfileRequired
	default:
		return ErrForbidden
	}
}

func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	default:
		return ErrInternal
	}
}
