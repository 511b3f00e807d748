package server

import (
	"github.com/gofiber/fiber/v2"

	"campusmarket/internal/models"
	"campusmarket/internal/service"
)

// ListRoommateProfiles returns all active roommate profiles.
func (s *Server) ListRoommateProfiles(c *fiber.Ctx) error {
	profiles, err := s.roommates.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profiles)
}

func (s *Server) GetRoommateProfile(c *fiber.Ctx) error {
	profile, err := s.roommates.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// GetUserRoommateProfile finds a user's profile regardless of its
// active flag, so owners can see and reactivate a hidden profile.
func (s *Server) GetUserRoommateProfile(c *fiber.Ctx) error {
	profile, err := s.roommates.GetByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (s *Server) CreateRoommateProfile(c *fiber.Ctx) error {
	var in service.NewRoommateInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.roommates.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (s *Server) UpdateRoommateProfile(c *fiber.Ctx) error {
	var patch models.RoommatePatch
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.roommates.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (s *Server) DeleteRoommateProfile(c *fiber.Ctx) error {
	if err := s.roommates.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Roommate profile deleted"})
}
