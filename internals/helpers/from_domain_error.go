package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cyberassess_backend/internals/helpers/errs"
)

// FromDomainError maps the domain error taxonomy onto the JSON envelope.
// Fiber errors pass through with their own status code.
func FromDomainError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}

	switch {
	case errors.Is(err, errs.ErrValidation):
		return Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrPermission):
		return Error(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		return Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrTransient):
		return Error(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, errs.ErrReconcile):
		// Surfaced loudly: a partial write needs operator attention.
		return Error(c, fiber.StatusInternalServerError, err.Error())
	default:
		return Error(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
