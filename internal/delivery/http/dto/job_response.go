package dto

import (
	"time"

	"job-connect/internal/domain/job"
	"job-connect/internal/pkg/validation"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID                  uuid.UUID       `json:"id"`
	RecruiterID         uuid.UUID       `json:"recruiter_id"`
	CompanyName         string          `json:"company_name"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Requirements        string          `json:"requirements,omitempty"`
	Location            string          `json:"location"`
	SalaryRange         string          `json:"salary_range,omitempty"`
	EmploymentType      string          `json:"employment_type,omitempty"`
	ApplicationDeadline string          `json:"application_deadline,omitempty"`
	IsActive            bool            `json:"is_active"`
	RequiredSkills      []SkillResponse `json:"required_skills"`
	PostedAt            string          `json:"posted_at"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:                  j.ID,
		RecruiterID:         j.RecruiterID,
		CompanyName:         j.CompanyName,
		Title:               j.Title,
		Description:         j.Description,
		Requirements:        j.Requirements,
		Location:            j.Location,
		SalaryRange:         j.SalaryRange,
		EmploymentType:      j.EmploymentType,
		ApplicationDeadline: validation.FormatDate(j.ApplicationDeadline),
		IsActive:            j.IsActive,
		RequiredSkills:      NewSkillResponses(j.RequiredSkills),
		PostedAt:            j.PostedAt.UTC().Format(time.RFC3339),
	}
}

func NewJobResponses(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewJobResponse(it))
	}
	return out
}
