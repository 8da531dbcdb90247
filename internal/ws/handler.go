package ws

import (
	"context"
	"net/http"
	"strings"

	"job-connect/internal/access"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*access.Actor, error)
}

type Handler struct {
	hub    *Hub
	auth   Authenticator
	logger *logrus.Logger
}

func NewHandler(hub *Hub, auth Authenticator, logger *logrus.Logger) *Handler {
	return &Handler{hub: hub, auth: auth, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/notifications", h.HandleNotifications)
}

// HandleNotifications upgrades an authenticated request. Browsers cannot set
// headers on websocket requests, so the token may come from ?token=.
func (h *Handler) HandleNotifications(c fiber.Ctx) error {
	if h == nil || h.hub == nil || h.auth == nil {
		return fiber.ErrServiceUnavailable
	}

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if len(authz) > 7 && strings.EqualFold(authz[:7], "Bearer ") {
			token = strings.TrimSpace(authz[7:])
		}
	}
	if token == "" {
		return fiber.ErrUnauthorized
	}

	actor, err := h.auth.Authenticate(c.Context(), token)
	if err != nil || !actor.Authenticated() {
		return fiber.ErrUnauthorized
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.WithError(err).Warn("ws upgrade failed")
			}
			return
		}

		client := NewClient(h.hub, conn, actor.AccountID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
