package services

import (
	"context"
	"errors"

	"unimatch_backend/internal/logger"
	"unimatch_backend/internal/models"
	"unimatch_backend/internal/repositories"
	"unimatch_backend/internal/services/dto"
	"unimatch_backend/pkg/apperrors"
)

const messagePageSize = 50

type ChatService interface {
	ListConversations(ctx context.Context, userID string) (*dto.ConversationListResponse, error)
	GetMessages(ctx context.Context, userID, conversationID string, limit, offset int) (*dto.MessageListResponse, error)
	SendMessage(ctx context.Context, userID, conversationID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	MarkRead(ctx context.Context, userID, conversationID string) error
	DeleteMessage(ctx context.Context, userID, messageID string) error
}

type ChatServiceImpl struct {
	chatRepo    repositories.ChatRepository
	profileRepo repositories.ProfileRepository
}

func NewChatService(chatRepo repositories.ChatRepository, profileRepo repositories.ProfileRepository) ChatService {
	return &ChatServiceImpl{
		chatRepo:    chatRepo,
		profileRepo: profileRepo,
	}
}

func (s *ChatServiceImpl) ListConversations(ctx context.Context, userID string) (*dto.ConversationListResponse, error) {
	convs, err := s.chatRepo.FindConversationsByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	partnerIDs := make([]string, 0, len(convs))
	for i := range convs {
		partnerIDs = append(partnerIDs, otherParticipant(&convs[i], userID))
	}

	profilesByUser := make(map[string]*models.Profile, len(partnerIDs))
	profiles, err := s.profileRepo.FindByUserIDs(partnerIDs)
	if err != nil {
		logger.CtxWarn(ctx, "failed to batch-load conversation partners", "error", err, "user_id", userID)
	} else {
		for i := range profiles {
			profilesByUser[profiles[i].UserID] = &profiles[i]
		}
	}

	resp := &dto.ConversationListResponse{
		Conversations: make([]dto.ConversationResponse, 0, len(convs)),
	}
	for i := range convs {
		c := &convs[i]
		partnerID := otherParticipant(c, userID)

		unread, err := s.chatRepo.CountUnread(c.ID, userID)
		if err != nil {
			logger.CtxWarn(ctx, "failed to count unread messages", "error", err, "conversation_id", c.ID)
		}

		item := dto.ConversationResponse{
			ID:            c.ID,
			PartnerID:     partnerID,
			PartnerName:   "Anonymous",
			LastMessageAt: c.LastMessageAt,
			UnreadCount:   unread,
		}
		if p := profilesByUser[partnerID]; p != nil {
			item.PartnerName = p.AnonymousName
			item.PartnerAvatar = p.AvatarGlyph
		}
		resp.Conversations = append(resp.Conversations, item)
	}
	return resp, nil
}

func (s *ChatServiceImpl) GetMessages(ctx context.Context, userID, conversationID string, limit, offset int) (*dto.MessageListResponse, error) {
	conv, err := s.loadConversationFor(userID, conversationID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > messagePageSize {
		limit = messagePageSize
	}
	msgs, err := s.chatRepo.FindMessagesByConversation(conv.ID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.MessageListResponse{Messages: make([]dto.MessageResponse, 0, len(msgs))}
	for i := range msgs {
		resp.Messages = append(resp.Messages, toMessageResponse(&msgs[i]))
	}
	return resp, nil
}

func (s *ChatServiceImpl) SendMessage(ctx context.Context, userID, conversationID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	conv, err := s.loadConversationFor(userID, conversationID)
	if err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		ConversationID: conv.ID,
		SenderID:       userID,
		ReceiverID:     otherParticipant(conv, userID),
		Content:        req.Content,
	}
	if err := s.chatRepo.CreateMessage(msg); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := toMessageResponse(msg)
	return &resp, nil
}

func (s *ChatServiceImpl) MarkRead(ctx context.Context, userID, conversationID string) error {
	if _, err := s.loadConversationFor(userID, conversationID); err != nil {
		return err
	}
	if _, err := s.chatRepo.MarkConversationRead(conversationID, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// DeleteMessage removes a message the caller sent. Anyone else, including
// the receiver, gets a 403 and the row stays.
func (s *ChatServiceImpl) DeleteMessage(ctx context.Context, userID, messageID string) error {
	msg, err := s.chatRepo.FindMessageByID(messageID)
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			return apperrors.ErrMessageNotFound
		}
		return apperrors.InternalError(err)
	}

	if msg.SenderID != userID {
		return apperrors.ErrNotMessageSender
	}

	if err := s.chatRepo.DeleteMessage(messageID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "message deleted", "message_id", messageID, "user_id", userID)
	return nil
}

func (s *ChatServiceImpl) loadConversationFor(userID, conversationID string) (*models.Conversation, error) {
	conv, err := s.chatRepo.FindConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !conv.HasParticipant(userID) {
		return nil, apperrors.ErrNotParticipant
	}
	return conv, nil
}

func otherParticipant(c *models.Conversation, userID string) string {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

func toMessageResponse(m *models.ChatMessage) dto.MessageResponse {
	return dto.MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		ReadAt:         m.ReadAt,
		SentAt:         m.CreatedAt,
	}
}
