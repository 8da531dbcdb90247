package profile

import (
	"time"

	"job-connect/internal/domain/skill"

	"github.com/google/uuid"
)

type ApplicantProfile struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Headline    string
	Summary     string
	ResumeRef   string
	Skills      []skill.Skill
	Experiences []Experience
	Educations  []Education
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Experience rows are ordered by Position, then CreatedAt.
type Experience struct {
	ID          uuid.UUID
	ProfileID   uuid.UUID
	Position    int
	Title       string
	Company     string
	StartDate   time.Time
	EndDate     *time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Education struct {
	ID             uuid.UUID
	ProfileID      uuid.UUID
	Position       int
	Degree         string
	Institution    string
	GraduationDate *time.Time
	Major          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type RecruiterProfile struct {
	ID             uuid.UUID
	AccountID      uuid.UUID
	CompanyName    string
	CompanyWebsite string
	Description    string
	Location       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p ApplicantProfile) SkillIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(p.Skills))
	for _, s := range p.Skills {
		out = append(out, s.ID)
	}
	return out
}

func (p ApplicantProfile) ExperienceIDs() map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{}, len(p.Experiences))
	for _, e := range p.Experiences {
		out[e.ID] = struct{}{}
	}
	return out
}

func (p ApplicantProfile) EducationIDs() map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{}, len(p.Educations))
	for _, e := range p.Educations {
		out[e.ID] = struct{}{}
	}
	return out
}
