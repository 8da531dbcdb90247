package dto

import (
	"time"

	"job-connect/internal/domain/application"
	"job-connect/internal/domain/job"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID                uuid.UUID       `json:"id"`
	JobID             uuid.UUID       `json:"job_id"`
	JobTitle          string          `json:"job_title"`
	ApplicantID       uuid.UUID       `json:"applicant_id"`
	ApplicantUsername string          `json:"applicant_username"`
	Status            string          `json:"status"`
	CoverLetter       string          `json:"cover_letter,omitempty"`
	Resume            string          `json:"resume"`
	Skills            []SkillResponse `json:"skills"`
	AppliedAt         string          `json:"applied_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                a.ID,
		JobID:             a.JobID,
		JobTitle:          a.JobTitle,
		ApplicantID:       a.ApplicantID,
		ApplicantUsername: a.ApplicantUsername,
		Status:            string(a.Status),
		CoverLetter:       a.CoverLetter,
		Resume:            a.ResumeRef,
		Skills:            NewSkillResponses(a.Skills),
		AppliedAt:         a.AppliedAt.UTC().Format(time.RFC3339),
	}
}

func NewApplicationResponses(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewApplicationResponse(it))
	}
	return out
}

// AlreadyAppliedResponse is returned instead of a form error when the
// applicant has applied to the job before.
type AlreadyAppliedResponse struct {
	Job           JobResponse `json:"job"`
	ApplicationID uuid.UUID   `json:"application_id"`
}

type JobApplicationsResponse struct {
	Job          JobResponse           `json:"job"`
	Applications []ApplicationResponse `json:"applications"`
}

func NewJobApplicationsResponse(j job.Job, items []application.Application) JobApplicationsResponse {
	return JobApplicationsResponse{Job: NewJobResponse(j), Applications: NewApplicationResponses(items)}
}

type DashboardResponse struct {
	Profile      RecruiterProfileResponse `json:"profile"`
	Jobs         []JobResponse            `json:"jobs"`
	Applications []ApplicationResponse    `json:"applications"`
}
