package v1

import (
	"job-connect/internal/delivery/http/handler"
	"job-connect/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Handlers is everything mounted under /api/v1. Nil entries are skipped.
type Handlers struct {
	Auth             *handler.AuthHandler
	Skill            *handler.SkillHandler
	Job              *handler.JobHandler
	ApplicantProfile *handler.ApplicantProfileHandler
	RecruiterProfile *handler.RecruiterProfileHandler
	Application      *handler.ApplicationHandler
	Message          *handler.MessageHandler
	Notifications    *ws.Handler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Skill != nil {
		h.Skill.RegisterRoutes(r)
	}
	if h.Job != nil {
		h.Job.RegisterRoutes(r)
	}
	if h.Application != nil {
		h.Application.RegisterRoutes(r)
	}
	if h.ApplicantProfile != nil {
		h.ApplicantProfile.RegisterRoutes(r.Group("/applicant"))
	}

	recruiter := r.Group("/recruiter")
	if h.RecruiterProfile != nil {
		h.RecruiterProfile.RegisterRoutes(recruiter)
	}
	if h.Job != nil {
		h.Job.RegisterRecruiterRoutes(recruiter)
	}

	if h.Message != nil {
		h.Message.RegisterRoutes(r)
	}
	if h.Notifications != nil {
		h.Notifications.RegisterRoutes(r)
	}
}
