package repository

import (
	"github.com/mindfulpath/backend/internal/model"
	"gorm.io/gorm"
)

type ConversationRepository interface {
	Create(conversation *model.Conversation) error
	FindAll() ([]model.Conversation, error)
	FindByID(id uint) (*model.Conversation, error)
	FindByIDWithMessages(id uint) (*model.Conversation, error)
	CreateMessage(message *model.Message) error
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(conversation *model.Conversation) error {
	return r.db.Create(conversation).Error
}

func (r *conversationRepository) FindAll() ([]model.Conversation, error) {
	var conversations []model.Conversation
	// Metadata only; messages are loaded per conversation.
	err := r.db.Order("created_at DESC").Find(&conversations).Error
	return conversations, err
}

func (r *conversationRepository) FindByID(id uint) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.db.First(&conversation, id).Error
	return &conversation, err
}

func (r *conversationRepository) FindByIDWithMessages(id uint) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("messages.id ASC")
	}).First(&conversation, id).Error
	return &conversation, err
}

func (r *conversationRepository) CreateMessage(message *model.Message) error {
	return r.db.Create(message).Error
}
