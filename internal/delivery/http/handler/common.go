package handler

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"job-connect/internal/access"
	"job-connect/internal/domain/account"
	"job-connect/internal/delivery/http/middleware"
	"job-connect/internal/pkg/response"
	"job-connect/internal/pkg/validation"
	"job-connect/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	formDataField = "data"
	resumeField   = "resume"
)

func parseIDParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	}
	return id, nil
}

// bindForm decodes a JSON body, or for multipart requests the JSON in the
// "data" field plus the optional file in fileField.
func bindForm(c fiber.Ctx, out any, fileField string) (*usecase.Upload, error) {
	if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		if len(c.Body()) == 0 {
			return nil, nil
		}
		if err := c.Bind().Body(out); err != nil {
			return nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		return nil, nil
	}

	if raw := strings.TrimSpace(c.FormValue(formDataField)); raw != "" {
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			return nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}
	if fileField == "" {
		return nil, nil
	}

	fh, err := c.FormFile(fileField)
	if err != nil {
		// A multipart request without the file is a form without an upload.
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return &usecase.Upload{Name: fh.Filename, Data: data}, nil
}

// respond renders a usecase error. Field errors re-render the form with a
// 200; gate errors become redirects.
func respond(c fiber.Ctx, err error, form any) error {
	if ve, ok := validation.AsErrors(err); ok {
		return response.InvalidForm(c, ve, form)
	}
	return mapUsecaseError(c, err)
}

func mapUsecaseError(c fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewRedirect(access.LoginPath, "login required")
	case errors.Is(err, usecase.ErrProfileRequired):
		var role account.Role
		if actor := middleware.ActorFrom(c); actor != nil {
			role = actor.Role
		}
		return middleware.NewRedirect(access.OnboardingPath(role), "profile required")
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Conflict", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
