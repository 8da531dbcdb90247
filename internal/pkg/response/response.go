package response

import "github.com/gofiber/fiber/v3"

type SemanticResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
	MessageFound               = "found"
	MessageInvalidInput        = "invalid input"
	MessageAlreadyApplied      = "already applied"
	MessageTooManyRequests     = "too many requests"
)

// FormData is the payload of a rejected form: field errors plus the submitted
// values so the client can re-render.
type FormData struct {
	Errors map[string]string `json:"errors"`
	Form   interface{}       `json:"form"`
}

func Success(c fiber.Ctx, status int, message string, data interface{}) error {
	st := normalizeStatus(status)
	msg := normalizeMessage(message, st)
	return c.Status(st).JSON(SemanticResponse{Status: st, Message: msg, Data: data})
}

func Error(c fiber.Ctx, status int, message string, data interface{}) error {
	st := normalizeStatus(status)
	msg := normalizeMessage(message, st)
	return c.Status(st).JSON(SemanticResponse{Status: st, Message: msg, Data: data})
}

// Redirect answers 302 with a Location header and the usual envelope.
func Redirect(c fiber.Ctx, location string, message string, data interface{}) error {
	c.Set(fiber.HeaderLocation, location)
	if message == "" {
		message = MessageFound
	}
	return c.Status(fiber.StatusFound).JSON(SemanticResponse{Status: fiber.StatusFound, Message: message, Data: data})
}

// InvalidForm re-renders a form with its errors. The status stays 200.
func InvalidForm(c fiber.Ctx, errs map[string]string, form interface{}) error {
	return Success(c, fiber.StatusOK, MessageInvalidInput, FormData{Errors: errs, Form: form})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func normalizeMessage(message string, status int) string {
	if message != "" {
		return message
	}
	return defaultMessageForStatus(status)
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusOK:
		return MessageOK
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	case fiber.StatusFound:
		return MessageFound
	case fiber.StatusTooManyRequests:
		return MessageTooManyRequests
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
