package server

import (
	"github.com/gofiber/fiber/v2"

	"campusmarket/internal/models"
	"campusmarket/internal/service"
)

// GetUserMessages returns every message a user sent or received,
// oldest first.
func (s *Server) GetUserMessages(c *fiber.Ctx) error {
	msgs, err := s.messages.Inbox(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(msgs)
}

// GetConversation returns the message thread between two users. The
// order of the two IDs in the path does not matter.
func (s *Server) GetConversation(c *fiber.Ctx) error {
	msgs, err := s.messages.Conversation(c.UserContext(),
		c.Params("userId1"), c.Params("userId2"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(msgs)
}

func (s *Server) SendMessage(c *fiber.Ctx) error {
	var in service.NewMessageInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.messages.Send(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(msg)
}

func (s *Server) MarkMessageRead(c *fiber.Ctx) error {
	if _, err := s.messages.MarkRead(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Message marked as read"})
}
