package handler

import (
	"errors"

	"job-connect/internal/delivery/http/dto"
	"job-connect/internal/delivery/http/middleware"
	"job-connect/internal/domain/account"
	"job-connect/internal/pkg/response"
	"job-connect/internal/usecase"
	ucauth "job-connect/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

const msgInvalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

type AuthHandler struct {
	uc      usecase.AuthUsecase
	limiter fiber.Handler
}

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// NewAuthHandler wires the auth endpoints. limiter, when set, guards
// signup and login.
func NewAuthHandler(uc usecase.AuthUsecase, limiter fiber.Handler) *AuthHandler {
	if limiter == nil {
		limiter = func(c fiber.Ctx) error { return c.Next() }
	}
	return &AuthHandler{uc: uc, limiter: limiter}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/signup/applicant", h.limiter, h.SignupApplicant)
	r.Post("/signup/recruiter", h.limiter, h.SignupRecruiter)
	r.Post("/login", h.limiter, h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/logout", h.Logout)
}

func (h *AuthHandler) SignupApplicant(c fiber.Ctx) error {
	return h.signup(c, account.RoleApplicant)
}

func (h *AuthHandler) SignupRecruiter(c fiber.Ctx) error {
	return h.signup(c, account.RoleRecruiter)
}

func (h *AuthHandler) signup(c fiber.Ctx, role account.Role) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	s, err := h.uc.Register(c.Context(), role, ucauth.RegisterInput{
		Username:        req.Username,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		// Never echo passwords back.
		return respond(c, err, fiber.Map{"username": req.Username})
	}
	return response.Redirect(c, s.RedirectTo, "Account created successfully", sessionResponse(s))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	s, err := h.uc.Login(c.Context(), ucauth.LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		form := fiber.Map{"username": req.Username}
		if errors.Is(err, ucauth.ErrInvalidCredentials) {
			return response.InvalidForm(c, map[string]string{"__all__": msgInvalidLogin}, form)
		}
		return respond(c, err, form)
	}
	return response.Redirect(c, s.RedirectTo, "Logged in successfully", sessionResponse(s))
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		var req refreshRequest
		if len(c.Body()) > 0 {
			if err := c.Bind().Body(&req); err != nil {
				return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
			}
		}
		tok = req.RefreshToken
	}
	if tok == "" {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	s, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		if errors.Is(err, usecase.ErrRefreshTokenExpired) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		}
		if errors.Is(err, usecase.ErrInvalidRefreshToken) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		}
		if errors.Is(err, usecase.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, sessionResponse(s))
}

// Logout revokes the bearer access token and, when given, the refresh token.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	var req logoutRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}
	accessTok, _ := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))

	if err := h.uc.Logout(c.Context(), accessTok, req.RefreshToken); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Redirect(c, "/", "Logged out successfully", nil)
}

func sessionResponse(s usecase.Session) dto.SessionResponse {
	return dto.SessionResponse{
		Account:      dto.NewAccountResponse(s.Account),
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}
}
