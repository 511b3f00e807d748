package service

import (
	"context"

	"campusmarket/internal/models"
	"campusmarket/internal/observability"
	"campusmarket/internal/storage"
	"campusmarket/internal/validation"
)

type MessageService struct {
	store storage.Storage
}

func NewMessageService(store storage.Storage) *MessageService {
	return &MessageService{store: store}
}

// NewMessageInput is the payload for sending a direct message.
type NewMessageInput struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	IsRead     *bool  `json:"isRead"`
}

// Send validates and stores a direct message. Messages start unread
// unless the sender explicitly marks them otherwise.
func (s *MessageService) Send(ctx context.Context, in NewMessageInput) (*models.Message, error) {
	if err := validation.Required("senderId", in.SenderID); err != nil {
		return nil, err
	}
	if err := validation.Required("receiverId", in.ReceiverID); err != nil {
		return nil, err
	}
	if err := validation.Required("content", in.Content); err != nil {
		return nil, err
	}

	isRead := false
	if in.IsRead != nil {
		isRead = *in.IsRead
	}

	message := &models.Message{
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Content:    in.Content,
		IsRead:     isRead,
	}
	if err := s.store.CreateMessage(ctx, message); err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.MessagesSent.Inc()
	return message, nil
}

// Inbox returns every message a user sent or received, oldest first.
func (s *MessageService) Inbox(ctx context.Context, userID string) ([]models.Message, error) {
	messages, err := s.store.ListMessagesForUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// Conversation returns the thread between two users in chronological
// order. The order of the two ids does not matter.
func (s *MessageService) Conversation(ctx context.Context, userA, userB string) ([]models.Message, error) {
	messages, err := s.store.GetConversation(ctx, userA, userB)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// MarkRead flags a message as read. Unknown ids report not found.
func (s *MessageService) MarkRead(ctx context.Context, id string) (*models.Message, error) {
	message, err := s.store.MarkMessageRead(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if message == nil {
		return nil, models.NewNotFoundError("Message", id)
	}
	return message, nil
}
