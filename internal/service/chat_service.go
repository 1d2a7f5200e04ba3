package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/mindfulpath/backend/internal/dto"
	"github.com/mindfulpath/backend/internal/model"
	"github.com/mindfulpath/backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("message content is required")
)

type ChatService interface {
	CreateConversation(req dto.ConversationCreateRequest) (*dto.ConversationSummaryResponse, error)
	ListConversations() ([]dto.ConversationSummaryResponse, error)
	GetConversation(id uint) (*dto.ConversationDetailResponse, error)
	// PostMessage persists the user message, obtains a reply, streams it via
	// emit, persists the assistant message and only then returns. The caller
	// must not signal completion before PostMessage returns nil.
	PostMessage(ctx context.Context, conversationID uint, content string, emit func(chunk string) error) error
}

type chatService struct {
	conversationRepo repository.ConversationRepository
	responder        Responder
}

func NewChatService(conversationRepo repository.ConversationRepository, responder Responder) ChatService {
	return &chatService{conversationRepo: conversationRepo, responder: responder}
}

func (s *chatService) CreateConversation(req dto.ConversationCreateRequest) (*dto.ConversationSummaryResponse, error) {
	conversation := model.Conversation{Title: req.Title}
	if err := s.conversationRepo.Create(&conversation); err != nil {
		log.Error().Err(err).Msg("CreateConversation: failed to create conversation")
		return nil, fmt.Errorf("error creating conversation: %w", err)
	}

	var resp dto.ConversationSummaryResponse
	if err := copier.Copy(&resp, &conversation); err != nil {
		return nil, fmt.Errorf("error preparing conversation response: %w", err)
	}
	return &resp, nil
}

func (s *chatService) ListConversations() ([]dto.ConversationSummaryResponse, error) {
	conversations, err := s.conversationRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("ListConversations: failed to fetch conversations")
		return nil, fmt.Errorf("error fetching conversations: %w", err)
	}

	responses := make([]dto.ConversationSummaryResponse, 0, len(conversations))
	if err := copier.Copy(&responses, &conversations); err != nil {
		return nil, fmt.Errorf("error preparing conversation list response: %w", err)
	}
	return responses, nil
}

func (s *chatService) GetConversation(id uint) (*dto.ConversationDetailResponse, error) {
	conversation, err := s.conversationRepo.FindByIDWithMessages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		log.Error().Err(err).Uint("conversationID", id).Msg("GetConversation: failed to fetch conversation")
		return nil, fmt.Errorf("error fetching conversation: %w", err)
	}

	resp := dto.ConversationDetailResponse{
		ID:        conversation.ID,
		Title:     conversation.Title,
		Messages:  make([]dto.ChatMessageResponse, 0, len(conversation.Messages)),
		CreatedAt: conversation.CreatedAt,
	}
	if err := copier.Copy(&resp.Messages, &conversation.Messages); err != nil {
		return nil, fmt.Errorf("error preparing conversation detail response: %w", err)
	}
	return &resp, nil
}

func (s *chatService) PostMessage(ctx context.Context, conversationID uint, content string, emit func(chunk string) error) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyMessage
	}

	// Both validation checks run before any write.
	if _, err := s.conversationRepo.FindByID(conversationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConversationNotFound
		}
		return fmt.Errorf("error fetching conversation: %w", err)
	}

	userMessage := model.Message{
		ConversationID: conversationID,
		Role:           model.RoleUser,
		Content:        content,
	}
	if err := s.conversationRepo.CreateMessage(&userMessage); err != nil {
		log.Error().Err(err).Uint("conversationID", conversationID).Msg("PostMessage: failed to store user message")
		return fmt.Errorf("error storing user message: %w", err)
	}

	reply, err := s.responder.Reply(ctx, content)
	if err != nil {
		log.Error().Err(err).Uint("conversationID", conversationID).Msg("PostMessage: responder failed")
		return fmt.Errorf("error generating reply: %w", err)
	}

	if err := emit(reply); err != nil {
		// The client went away mid-stream; stop writing but keep the process
		// healthy. The assistant message is not persisted for an undelivered
		// reply.
		log.Warn().Err(err).Uint("conversationID", conversationID).Msg("PostMessage: stream write failed")
		return fmt.Errorf("error streaming reply: %w", err)
	}

	assistantMessage := model.Message{
		ConversationID: conversationID,
		Role:           model.RoleAssistant,
		Content:        reply,
	}
	if err := s.conversationRepo.CreateMessage(&assistantMessage); err != nil {
		// The user message is already committed; report the failure instead
		// of swallowing it. No compensating rollback.
		log.Error().Err(err).Uint("conversationID", conversationID).Msg("PostMessage: failed to store assistant message")
		return fmt.Errorf("error storing assistant message: %w", err)
	}

	return nil
}
