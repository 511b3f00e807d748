package server

import (
	"github.com/gofiber/fiber/v2"

	"campusmarket/internal/models"
)

// GetUser returns a user's public profile. The password hash never
// leaves the server; the model tags it out of JSON.
func (s *Server) GetUser(c *fiber.Ctx) error {
	user, err := s.users.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser applies a partial profile update. The patch struct has no
// password field, so a password sent in the body is silently dropped.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	var patch models.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.users.UpdateProfile(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
