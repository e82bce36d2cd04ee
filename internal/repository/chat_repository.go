package repository

import (
	"crackit_backend/internal/model"

	"gorm.io/gorm"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) Create(c *model.ChatConversation) error {
	return r.DB.Create(c).Error
}

func (r *ChatRepository) Save(c *model.ChatConversation) error {
	return r.DB.Save(c).Error
}

func (r *ChatRepository) FindByConversationID(userID uint, conversationID string) (*model.ChatConversation, error) {
	var conv model.ChatConversation
	err := r.DB.Where("user_id = ? AND conversation_id = ?", userID, conversationID).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListByUser returns the user's most recent conversations, capped at limit.
func (r *ChatRepository) ListByUser(userID uint, limit int) ([]model.ChatConversation, error) {
	var convs []model.ChatConversation
	err := r.DB.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&convs).Error
	return convs, err
}

func (r *ChatRepository) Delete(userID uint, conversationID string) error {
	return r.DB.Where("user_id = ? AND conversation_id = ?", userID, conversationID).
		Delete(&model.ChatConversation{}).Error
}
