package handler

import (
	"strconv"

	"job-connect/internal/access"
	"job-connect/internal/delivery/http/dto"
	"job-connect/internal/delivery/http/middleware"
	"job-connect/internal/domain/account"
	"job-connect/internal/pkg/response"
	"job-connect/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterRoutes mounts the public catalog.
func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/jobs", h.Search)
	r.Get("/jobs/:id", h.Get)
}

// RegisterRecruiterRoutes expects the /recruiter group.
func (h *JobHandler) RegisterRecruiterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/jobs", middleware.Require(access.Requirement{Role: account.RoleRecruiter, NeedsProfile: true}))
	grp.Get("/", h.ListMine)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *JobHandler) Search(c fiber.Ctx) error {
	q := c.Query("q")
	items, err := h.uc.Search(c.Context(), q)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"query": q,
		"jobs":  dto.NewJobResponses(items),
	})
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) ListMine(c fiber.Ctx) error {
	activeOnly := false
	if raw := c.Query("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		activeOnly = v
	}

	items, err := h.uc.ListForRecruiter(c.Context(), middleware.ActorFrom(c), activeOnly)
	if err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(items))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	var req usecase.JobInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.uc.Create(c.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		return respond(c, err, req)
	}
	return response.Redirect(c, jobDetailPath(j.ID), "Job created successfully", dto.NewJobResponse(j))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req usecase.JobInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.uc.Update(c.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		return respond(c, err, req)
	}
	return response.Redirect(c, jobDetailPath(j.ID), "Job updated successfully", dto.NewJobResponse(j))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), middleware.ActorFrom(c), id); err != nil {
		return mapUsecaseError(c, err)
	}
	return response.Redirect(c, access.APIPrefix+"/recruiter/jobs", "Job deleted successfully", nil)
}

func jobDetailPath(id uuid.UUID) string {
	return access.APIPrefix + "/jobs/" + id.String()
}
