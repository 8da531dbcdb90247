package job

import (
	"sort"
	"strings"
	"time"

	"job-connect/internal/domain/skill"

	"github.com/google/uuid"
)

type Job struct {
	ID                  uuid.UUID
	RecruiterID         uuid.UUID
	CompanyName         string
	Title               string
	Description         string
	Requirements        string
	Location            string
	SalaryRange         string
	EmploymentType      string
	PostedAt            time.Time
	ApplicationDeadline *time.Time
	IsActive            bool
	RequiredSkills      []skill.Skill
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (j Job) OwnedBy(recruiterID uuid.UUID) bool {
	return recruiterID != uuid.Nil && j.RecruiterID == recruiterID
}

func (j Job) SkillIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(j.RequiredSkills))
	for _, s := range j.RequiredSkills {
		out = append(out, s.ID)
	}
	return out
}

// NormalizeQuery trims surrounding whitespace; inner spacing is part of the
// substring being matched. An empty result means "all jobs".
func NormalizeQuery(q string) string {
	return strings.TrimSpace(q)
}

// Matches reports whether q occurs, case-insensitively, in the title,
// description, location or any required skill name. Empty q matches everything.
func (j Job) Matches(q string) bool {
	q = strings.ToLower(NormalizeQuery(q))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(j.Title), q) ||
		strings.Contains(strings.ToLower(j.Description), q) ||
		strings.Contains(strings.ToLower(j.Location), q) {
		return true
	}
	for _, s := range j.RequiredSkills {
		if strings.Contains(strings.ToLower(s.Name), q) {
			return true
		}
	}
	return false
}

// SortByPostedDesc orders newest first; ties break on id for a stable listing.
func SortByPostedDesc(items []Job) {
	sort.SliceStable(items, func(i, k int) bool {
		if !items[i].PostedAt.Equal(items[k].PostedAt) {
			return items[i].PostedAt.After(items[k].PostedAt)
		}
		return items[i].ID.String() < items[k].ID.String()
	})
}
