package models

import "time"

// Conversation pairs two users. One conversation per match in practice,
// though the schema does not enforce it.
type Conversation struct {
	BaseModel
	UserAID       string `gorm:"column:user_a_id;not null;index"`
	UserBID       string `gorm:"column:user_b_id;not null;index"`
	LastMessageAt *time.Time

	Messages []ChatMessage `gorm:"foreignKey:ConversationID"`
}

// HasParticipant reports whether userID belongs to the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.UserAID == userID || c.UserBID == userID
}

type ChatMessage struct {
	BaseModel
	ConversationID string `gorm:"not null;index"`
	SenderID       string `gorm:"not null;index"`
	ReceiverID     string `gorm:"not null;index"`
	Content        string `gorm:"type:text;not null"`
	IsRead         bool   `gorm:"default:false"`
	ReadAt         *time.Time
}
