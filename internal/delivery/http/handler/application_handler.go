package handler

import (
	"errors"

	"job-connect/internal/access"
	"job-connect/internal/delivery/http/dto"
	"job-connect/internal/delivery/http/middleware"
	"job-connect/internal/domain/account"
	"job-connect/internal/pkg/response"
	"job-connect/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	applicant := middleware.Require(access.Requirement{Role: account.RoleApplicant, NeedsProfile: true})
	recruiter := middleware.Require(access.Requirement{Role: account.RoleRecruiter, NeedsProfile: true})
	anyone := middleware.Require(access.Requirement{})

	r.Post("/jobs/:id/apply", applicant, h.Apply)
	r.Get("/jobs/:id/apply/confirmation", anyone, h.Confirmation)
	r.Get("/applications/:id", anyone, h.Get)
	r.Get("/applicant/applications", applicant, h.ListMine)
	r.Get("/recruiter/applications", recruiter, h.ListReceived)
	r.Get("/recruiter/jobs/:id/applications", recruiter, h.ListForJob)
	r.Put("/recruiter/applications/:id/status", recruiter, h.UpdateStatus)
}

// Apply takes a multipart form: the resume file plus optional JSON in "data".
func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req usecase.ApplyInput
	resume, err := bindForm(c, &req, resumeField)
	if err != nil {
		return err
	}

	res, err := h.uc.Apply(c.Context(), middleware.ActorFrom(c), jobID, req, resume)
	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyApplied) {
			return response.Success(c, fiber.StatusOK, response.MessageAlreadyApplied, dto.AlreadyAppliedResponse{
				Job:           dto.NewJobResponse(res.Job),
				ApplicationID: res.Application.ID,
			})
		}
		return respond(c, err, req)
	}
	return response.Redirect(c, confirmationPath(jobID), "Application submitted successfully", dto.NewApplicationResponse(res.Application))
}

func (h *ApplicationHandler) Confirmation(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	j, err := h.uc.Confirmation(c.Context(), middleware.ActorFrom(c), jobID)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"job": dto.NewJobResponse(j)})
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	a, err := h.uc.Get(c.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	items, err := h.uc.ListForApplicant(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(items))
}

func (h *ApplicationHandler) ListReceived(c fiber.Ctx) error {
	items, err := h.uc.ListForRecruiter(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(items))
}

func (h *ApplicationHandler) ListForJob(c fiber.Ctx) error {
	jobID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	j, items, err := h.uc.ListForJob(c.Context(), middleware.ActorFrom(c), jobID)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobApplicationsResponse(j, items))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req usecase.StatusInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	a, err := h.uc.UpdateStatus(c.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		return respond(c, err, req)
	}
	return response.Redirect(c, access.APIPrefix+"/applications/"+a.ID.String(), "Status updated successfully", dto.NewApplicationResponse(a))
}

func confirmationPath(jobID uuid.UUID) string {
	return jobDetailPath(jobID) + "/apply/confirmation"
}
