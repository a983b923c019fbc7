package server

import (
	"errors"
	"log/slog"

	"ripple/internal/middleware"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user's id, set by the auth guard.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// respondPostLookupError maps a failed store lookup to an API response.
// A malformed id and a missing post are deliberately indistinguishable to
// the caller; anything else is an opaque server error.
func respondPostLookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, models.ErrPostNotFound) || errors.Is(err, models.ErrInvalidPostID) {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Post"))
	}
	return respondServerError(c, err)
}

// respondServerError logs the underlying failure and returns an opaque 500.
func respondServerError(c *fiber.Ctx, err error) error {
	middleware.Logger.Error("handler error",
		slog.String("path", c.Path()),
		slog.String("method", c.Method()),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}
