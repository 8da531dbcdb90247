package application

import (
	"errors"
	"sort"
	"strings"
	"time"

	"job-connect/internal/domain/skill"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending      Status = "pending"
	StatusReviewed     Status = "reviewed"
	StatusShortlisted  Status = "shortlisted"
	StatusInterviewing Status = "interviewing"
	StatusOffered      Status = "offered"
	StatusRejected     Status = "rejected"
)

var ErrInvalidStatus = errors.New("invalid application status")

var statuses = []Status{
	StatusPending,
	StatusReviewed,
	StatusShortlisted,
	StatusInterviewing,
	StatusOffered,
	StatusRejected,
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

func (s Status) Valid() bool {
	for _, v := range statuses {
		if s == v {
			return true
		}
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// CanTransition allows any valid status to move to any other valid status.
func CanTransition(from, to Status) bool {
	return from.Valid() && to.Valid()
}

type Application struct {
	ID          uuid.UUID
	ApplicantID uuid.UUID
	JobID       uuid.UUID
	AppliedAt   time.Time
	ResumeRef   string
	CoverLetter string
	Status      Status
	Skills      []skill.Skill
	CreatedAt   time.Time
	UpdatedAt   time.Time

	JobTitle          string
	RecruiterID       uuid.UUID
	ApplicantUsername string
}

// SortByAppliedDesc orders newest submissions first.
func SortByAppliedDesc(items []Application) {
	sort.SliceStable(items, func(i, k int) bool {
		if !items[i].AppliedAt.Equal(items[k].AppliedAt) {
			return items[i].AppliedAt.After(items[k].AppliedAt)
		}
		return items[i].ID.String() < items[k].ID.String()
	})
}
