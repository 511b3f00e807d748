package server

import (
	"github.com/gofiber/fiber/v2"

	"campusmarket/internal/models"
	"campusmarket/internal/service"
)

// BrowseListings returns active listings, optionally filtered by the
// category and university query parameters.
func (s *Server) BrowseListings(c *fiber.Ctx) error {
	listings, err := s.listings.Browse(c.UserContext(),
		c.Query("category"), c.Query("university"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listings)
}

func (s *Server) GetListing(c *fiber.Ctx) error {
	listing, err := s.listings.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// GetUserListings returns every listing owned by a user, including
// inactive ones, so owners can manage delisted items.
func (s *Server) GetUserListings(c *fiber.Ctx) error {
	listings, err := s.listings.ListByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listings)
}

func (s *Server) CreateListing(c *fiber.Ctx) error {
	var in service.NewListingInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	listing, err := s.listings.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

func (s *Server) UpdateListing(c *fiber.Ctx) error {
	var patch models.ListingPatch
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	listing, err := s.listings.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

func (s *Server) DeleteListing(c *fiber.Ctx) error {
	if err := s.listings.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Listing deleted"})
}
