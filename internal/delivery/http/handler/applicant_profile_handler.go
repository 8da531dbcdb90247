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

type ApplicantProfileHandler struct {
	uc     usecase.ApplicantProfileUsecase
	skills usecase.SkillUsecase
}

func NewApplicantProfileHandler(uc usecase.ApplicantProfileUsecase, skills usecase.SkillUsecase) *ApplicantProfileHandler {
	return &ApplicantProfileHandler{uc: uc, skills: skills}
}

// RegisterRoutes expects the /applicant group.
func (h *ApplicantProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	onboarding := middleware.Require(access.Requirement{Role: account.RoleApplicant})
	member := middleware.Require(access.Requirement{Role: account.RoleApplicant, NeedsProfile: true})

	r.Get("/profile/create", onboarding, h.New)
	r.Post("/profile", onboarding, h.Create)
	r.Get("/profile", member, h.Get)
	r.Put("/profile", member, h.Update)
}

// New returns the blank creation form, or redirects when the profile exists.
func (h *ApplicantProfileHandler) New(c fiber.Ctx) error {
	if middleware.ActorFrom(c).HasProfile() {
		return response.Redirect(c, profileViewPath(account.RoleApplicant), "", nil)
	}
	skills, err := h.skills.ListSkills(c.Context())
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"form":   usecase.ApplicantProfileFields{},
		"skills": dto.NewSkillResponses(skills),
	})
}

func (h *ApplicantProfileHandler) Create(c fiber.Ctx) error {
	var req usecase.ApplicantProfileFields
	resume, err := bindForm(c, &req, resumeField)
	if err != nil {
		return err
	}

	p, err := h.uc.Create(c.Context(), middleware.ActorFrom(c), req, resume)
	if err != nil {
		if errors.Is(err, usecase.ErrProfileExists) {
			return response.Redirect(c, profileViewPath(account.RoleApplicant), "Profile already exists", nil)
		}
		return respond(c, err, req)
	}
	return response.Redirect(c, profileViewPath(account.RoleApplicant), "Profile created successfully", dto.NewApplicantProfileResponse(p))
}

func (h *ApplicantProfileHandler) Get(c fiber.Ctx) error {
	p, err := h.uc.Get(c.Context(), middleware.ActorFrom(c))
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicantProfileResponse(p))
}

// Update saves the profile together with its experience and education
// groups in one step.
func (h *ApplicantProfileHandler) Update(c fiber.Ctx) error {
	var req usecase.ApplicantProfileInput
	resume, err := bindForm(c, &req, resumeField)
	if err != nil {
		return err
	}

	p, err := h.uc.Update(c.Context(), middleware.ActorFrom(c), req, resume)
	if err != nil {
		return respond(c, err, req)
	}
	return response.Redirect(c, profileViewPath(account.RoleApplicant), "Profile updated successfully", dto.NewApplicantProfileResponse(p))
}

func profileViewPath(role account.Role) string {
	d, ok := access.DefinitionFor(role)
	if !ok {
		return access.LoginPath
	}
	return d.ProfileViewPath
}
