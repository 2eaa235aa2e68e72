// Package response writes the JSON envelope every endpoint answers with.
package response

import "github.com/gofiber/fiber/v3"

// SemanticResponse is the body of every API response. Data is null when a
// call has nothing to return.
type SemanticResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	MessageOK                  = "ok"
	MessageCreated             = "created"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageRequestTooLarge     = "request entity too large"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageInternalServerError = "internal server error"
	MessageServiceUnavailable  = "service unavailable"
	MessageGatewayTimeout      = "gateway timeout"
	MessageError               = "error"
)

var defaultMessages = map[int]string{
	fiber.StatusOK:                    MessageOK,
	fiber.StatusCreated:               MessageCreated,
	fiber.StatusBadRequest:            MessageBadRequest,
	fiber.StatusUnauthorized:          MessageUnauthorized,
	fiber.StatusForbidden:             MessageForbidden,
	fiber.StatusNotFound:              MessageNotFound,
	fiber.StatusConflict:              MessageConflict,
	fiber.StatusRequestEntityTooLarge: MessageRequestTooLarge,
	fiber.StatusUnprocessableEntity:   MessageUnprocessableEntity,
	fiber.StatusServiceUnavailable:    MessageServiceUnavailable,
	fiber.StatusGatewayTimeout:        MessageGatewayTimeout,
}

// DefaultMessage is the message sent for status when the caller gives none.
func DefaultMessage(status int) string {
	if msg, ok := defaultMessages[status]; ok {
		return msg
	}
	switch {
	case status >= 500:
		return MessageInternalServerError
	case status >= 400:
		return MessageError
	default:
		return MessageOK
	}
}

func Success(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data)
}

func Error(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data)
}

func write(c fiber.Ctx, status int, message string, data any) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = DefaultMessage(status)
	}
	return c.Status(status).JSON(SemanticResponse{Status: status, Message: message, Data: data})
}
