package presenter

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationErrorResponse carries one message per violated field.
type ValidationErrorResponse struct {
	Detail map[string]string `json:"detail"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, detail string) error {
	return JSON(c, status, ErrorResponse{Detail: detail})
}

func ValidationError(c *fiber.Ctx, fields map[string]string) error {
	return JSON(c, http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: fields})
}
