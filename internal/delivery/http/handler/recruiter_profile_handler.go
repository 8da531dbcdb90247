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
)

type RecruiterProfileHandler struct {
	uc usecase.RecruiterProfileUsecase
}

func NewRecruiterProfileHandler(uc usecase.RecruiterProfileUsecase) *RecruiterProfileHandler {
	return &RecruiterProfileHandler{uc: uc}
}

// RegisterRoutes expects the /recruiter group.
func (h *RecruiterProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	onboarding := middleware.Require(access.Requirement{Role: account.RoleRecruiter})
	member := middleware.Require(access.Requirement{Role: account.RoleRecruiter, NeedsProfile: true})

	r.Get("/profile/create", onboarding, h.New)
	r.Post("/profile", onboarding, h.Create)
	r.Get("/profile", member, h.Get)
	r.Put("/profile", member, h.Update)
	r.Get("/dashboard", member, h.Dashboard)
}

func (h *RecruiterProfileHandler) New(c fiber.Ctx) error {
	if middleware.ActorFrom(c).HasProfile() {
		return response.Redirect(c, profileViewPath(account.RoleRecruiter), "", nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"form": usecase.RecruiterProfileInput{}})
}

func (h *RecruiterProfileHandler) Create(c fiber.Ctx) error {
	var req usecase.RecruiterProfileInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.Create(c.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		if errors.Is(err, usecase.ErrProfileExists) {
			return response.Redirect(c, profileViewPath(account.RoleRecruiter), "Profile already exists", nil)
		}
		return respond(c, err, req)
	}
	return response.Redirect(c, profileViewPath(account.RoleRecruiter), "Profile created successfully", dto.NewRecruiterProfileResponse(p))
}

func (h *RecruiterProfileHandler) Get(c fiber.Ctx) error {
	p, err := h.uc.Get(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecruiterProfileResponse(p))
}

func (h *RecruiterProfileHandler) Update(c fiber.Ctx) error {
	var req usecase.RecruiterProfileInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.Update(c.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		return respond(c, err, req)
	}
	return response.Redirect(c, profileViewPath(account.RoleRecruiter), "Profile updated successfully", dto.NewRecruiterProfileResponse(p))
}

func (h *RecruiterProfileHandler) Dashboard(c fiber.Ctx) error {
	d, err := h.uc.Dashboard(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.DashboardResponse{
		Profile:      dto.NewRecruiterProfileResponse(d.Profile),
		Jobs:         dto.NewJobResponses(d.Jobs),
		Applications: dto.NewApplicationResponses(d.Applications),
	})
}
