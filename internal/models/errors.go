package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the static response shape every endpoint returns.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// StatusFor maps an application error to its HTTP status code.
// Unknown errors map to 500 so no internal detail is chosen for the client.
func StatusFor(err error) int {
	appErr, ok := err.(*AppError)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case "VALIDATION_ERROR":
		return fiber.StatusBadRequest
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	case "FORBIDDEN":
		return fiber.StatusForbidden
	case "NOT_FOUND":
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes the standard failure envelope. Internal errors are
// reduced to a generic message; the wrapped cause stays server-side for logs.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	response := Envelope{Success: false}

	if appErr, ok := err.(*AppError); ok {
		response.Message = appErr.Message
		response.Code = appErr.Code
	} else {
		response.Message = "Internal server error"
		response.Code = "INTERNAL_ERROR"
	}

	return c.Status(status).JSON(response)
}

// RespondWithData writes the standard success envelope around a payload.
func RespondWithData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Envelope{Success: true, Data: data})
}

// RespondWithMessage writes a success envelope that carries no payload.
func RespondWithMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: true, Message: message})
}
