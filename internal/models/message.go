package models

import "time"

// Message is a direct message between two users.
type Message struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	SenderID   string    `gorm:"size:36;not null;index" json:"senderId"`
	ReceiverID string    `gorm:"size:36;not null;index" json:"receiverId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsRead     bool      `gorm:"not null" json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (Message) TableName() string {
	return "messages"
}
