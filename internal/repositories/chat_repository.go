package repositories

import (
	"errors"
	"time"

	"unimatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
)

type ChatRepository interface {
	CreateConversation(conv *models.Conversation) error
	FindConversationByID(id string) (*models.Conversation, error)
	FindConversationByUsers(userA, userB string) (*models.Conversation, error)
	FindConversationsByUser(userID string) ([]models.Conversation, error)

	CreateMessage(msg *models.ChatMessage) error
	FindMessageByID(id string) (*models.ChatMessage, error)
	FindMessagesByConversation(conversationID string, limit, offset int) ([]models.ChatMessage, error)
	CountUnread(conversationID, userID string) (int64, error)
	// MarkConversationRead marks every unread message received by userID
	// in the conversation as read.
	MarkConversationRead(conversationID, userID string) (int64, error)
	DeleteMessage(id string) error
}

type ChatRepositoryImpl struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &ChatRepositoryImpl{db: db}
}

func (r *ChatRepositoryImpl) CreateConversation(conv *models.Conversation) error {
	return r.db.Create(conv).Error
}

func (r *ChatRepositoryImpl) FindConversationByID(id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.First(&conv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepositoryImpl) FindConversationByUsers(userA, userB string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.
		Where("(user_a_id = ? AND user_b_id = ?) OR (user_a_id = ? AND user_b_id = ?)",
			userA, userB, userB, userA).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepositoryImpl) FindConversationsByUser(userID string) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("last_message_at DESC NULLS LAST").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *ChatRepositoryImpl) CreateMessage(msg *models.ChatMessage) error {
	if err := r.db.Create(msg).Error; err != nil {
		return err
	}
	now := time.Now()
	return r.db.Model(&models.Conversation{}).
		Where("id = ?", msg.ConversationID).
		Update("last_message_at", &now).Error
}

func (r *ChatRepositoryImpl) FindMessageByID(id string) (*models.ChatMessage, error) {
	var msg models.ChatMessage
	err := r.db.First(&msg, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

func (r *ChatRepositoryImpl) FindMessagesByConversation(conversationID string, limit, offset int) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := r.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *ChatRepositoryImpl) CountUnread(conversationID, userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ChatMessage{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = false", conversationID, userID).
		Count(&count).Error
	return count, err
}

func (r *ChatRepositoryImpl) MarkConversationRead(conversationID, userID string) (int64, error) {
	now := time.Now()
	result := r.db.Model(&models.ChatMessage{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = false", conversationID, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": &now,
		})
	return result.RowsAffected, result.Error
}

func (r *ChatRepositoryImpl) DeleteMessage(id string) error {
	result := r.db.Delete(&models.ChatMessage{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}
