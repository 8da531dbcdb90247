package dto

import (
	"time"

	"job-connect/internal/domain/profile"
	"job-connect/internal/pkg/validation"

	"github.com/google/uuid"
)

type ExperienceResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date,omitempty"`
	Description string    `json:"description,omitempty"`
}

type EducationResponse struct {
	ID             uuid.UUID `json:"id"`
	Degree         string    `json:"degree"`
	Institution    string    `json:"institution"`
	GraduationDate string    `json:"graduation_date,omitempty"`
	Major          string    `json:"major,omitempty"`
}

type ApplicantProfileResponse struct {
	ID          uuid.UUID            `json:"id"`
	AccountID   uuid.UUID            `json:"account_id"`
	Headline    string               `json:"headline"`
	Summary     string               `json:"summary"`
	Resume      string               `json:"resume,omitempty"`
	Skills      []SkillResponse      `json:"skills"`
	Experiences []ExperienceResponse `json:"experiences"`
	Educations  []EducationResponse  `json:"educations"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func NewApplicantProfileResponse(p profile.ApplicantProfile) ApplicantProfileResponse {
	out := ApplicantProfileResponse{
		ID:          p.ID,
		AccountID:   p.AccountID,
		Headline:    p.Headline,
		Summary:     p.Summary,
		Resume:      p.ResumeRef,
		Skills:      NewSkillResponses(p.Skills),
		Experiences: make([]ExperienceResponse, 0, len(p.Experiences)),
		Educations:  make([]EducationResponse, 0, len(p.Educations)),
		UpdatedAt:   p.UpdatedAt,
	}
	for _, e := range p.Experiences {
		start := e.StartDate
		out.Experiences = append(out.Experiences, ExperienceResponse{
			ID:          e.ID,
			Title:       e.Title,
			Company:     e.Company,
			StartDate:   validation.FormatDate(&start),
			EndDate:     validation.FormatDate(e.EndDate),
			Description: e.Description,
		})
	}
	for _, e := range p.Educations {
		out.Educations = append(out.Educations, EducationResponse{
			ID:             e.ID,
			Degree:         e.Degree,
			Institution:    e.Institution,
			GraduationDate: validation.FormatDate(e.GraduationDate),
			Major:          e.Major,
		})
	}
	return out
}

type RecruiterProfileResponse struct {
	ID             uuid.UUID `json:"id"`
	AccountID      uuid.UUID `json:"account_id"`
	CompanyName    string    `json:"company_name"`
	CompanyWebsite string    `json:"company_website,omitempty"`
	Description    string    `json:"description,omitempty"`
	Location       string    `json:"location,omitempty"`
}

func NewRecruiterProfileResponse(p profile.RecruiterProfile) RecruiterProfileResponse {
	return RecruiterProfileResponse{
		ID:             p.ID,
		AccountID:      p.AccountID,
		CompanyName:    p.CompanyName,
		CompanyWebsite: p.CompanyWebsite,
		Description:    p.Description,
		Location:       p.Location,
	}
}
