package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"dessertshop/internal/models"
)

// statusForError maps a domain error to its HTTP status code.
func statusForError(err error) int {
	var validationErr *models.ValidationError
	var notFoundErr *models.NotFoundError
	var stateErr *models.InvalidStateError
	var transitionErr *models.InvalidTransitionError

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound
	case errors.As(err, &stateErr):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &transitionErr):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// domainError writes a domain error as a JSON response with the mapped
// status code.
func domainError(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
