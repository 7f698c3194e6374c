package handler

import (
	"github.com/labstack/echo/v4"
)

// Envelope is the body shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Envelope{Success: true, Message: message, Data: data})
}
