package dto

import "time"

type ConversationResponse struct {
	ID            string     `json:"id"`
	PartnerID     string     `json:"partner_id"`
	PartnerName   string     `json:"partner_name"`
	PartnerAvatar string     `json:"partner_avatar,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	UnreadCount   int64      `json:"unread_count"`
}

type ConversationListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type MessageResponse struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversation_id"`
	SenderID       string     `json:"sender_id"`
	Content        string     `json:"content"`
	IsRead         bool       `json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	SentAt         time.Time  `json:"sent_at"`
}

type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
}
