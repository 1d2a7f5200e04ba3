package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mindfulpath/backend/internal/dto"
	"github.com/mindfulpath/backend/internal/service"
	"github.com/rs/zerolog/log"
)

type ChatController struct {
	chatService service.ChatService
}

func NewChatController(chatService service.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// CreateConversation godoc
// @Summary Start a new conversation
// @Tags Chat
// @Accept json
// @Produce json
// @Param conversation body dto.ConversationCreateRequest true "Conversation title"
// @Success 201 {object} dto.ConversationSummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /conversations [post]
func (c *ChatController) CreateConversation(ctx *gin.Context) {
	var req dto.ConversationCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, bindingError(err))
		return
	}

	conversation, err := c.chatService.CreateConversation(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateConversation: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create conversation"})
		return
	}
	ctx.JSON(http.StatusCreated, conversation)
}

// ListConversations godoc
// @Summary List conversations (metadata only, no messages)
// @Tags Chat
// @Produce json
// @Success 200 {array} dto.ConversationSummaryResponse
// @Router /conversations [get]
func (c *ChatController) ListConversations(ctx *gin.Context) {
	conversations, err := c.chatService.ListConversations()
	if err != nil {
		log.Error().Err(err).Msg("ListConversations: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve conversations"})
		return
	}
	ctx.JSON(http.StatusOK, conversations)
}

// GetConversation godoc
// @Summary Get a conversation with its messages in chronological order
// @Tags Chat
// @Produce json
// @Param id path int true "Conversation ID"
// @Success 200 {object} dto.ConversationDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /conversations/{id} [get]
func (c *ChatController) GetConversation(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid conversation ID", Field: "id"})
		return
	}

	conversation, err := c.chatService.GetConversation(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Conversation not found"})
			return
		}
		log.Error().Err(err).Uint64("conversationID", id).Msg("GetConversation: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve conversation"})
		return
	}
	ctx.JSON(http.StatusOK, conversation)
}

// PostMessage godoc
// @Summary Send a message and stream the assistant reply
// @Description Persists the user message, streams the reply as server-sent events ({"content": ...} then {"done": true}), persisting the assistant message before the done event.
// @Tags Chat
// @Accept json
// @Produce text/event-stream
// @Param id path int true "Conversation ID"
// @Param message body dto.ChatMessagePostRequest true "Message content"
// @Success 200 {string} string "SSE stream"
// @Failure 400 {object} dto.ErrorResponse "Empty content"
// @Failure 404 {object} dto.ErrorResponse "Unknown conversation"
// @Router /conversations/{id}/messages [post]
func (c *ChatController) PostMessage(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid conversation ID", Field: "id"})
		return
	}

	var req dto.ChatMessagePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Message content is required", Field: "content"})
		return
	}

	streaming := false
	emit := func(chunk string) error {
		if !streaming {
			ctx.Header("Content-Type", "text/event-stream")
			ctx.Header("Cache-Control", "no-cache")
			ctx.Header("Connection", "keep-alive")
			streaming = true
		}
		return writeStreamEvent(ctx, dto.ChatStreamEvent{Content: chunk})
	}

	err = c.chatService.PostMessage(ctx.Request.Context(), uint(id), req.Content, emit)
	if err != nil {
		if !streaming {
			// Nothing on the wire yet; answer with a plain JSON status.
			switch {
			case errors.Is(err, service.ErrEmptyMessage):
				ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Message content is required", Field: "content"})
			case errors.Is(err, service.ErrConversationNotFound):
				ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Conversation not found"})
			default:
				log.Error().Err(err).Uint64("conversationID", id).Msg("PostMessage: service error")
				ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to send message"})
			}
			return
		}
		// Output already started: degrade to a terminal error event and close.
		log.Error().Err(err).Uint64("conversationID", id).Msg("PostMessage: error after stream start")
		_ = writeStreamEvent(ctx, dto.ChatStreamEvent{Error: "Failed to send message"})
		return
	}

	// Completion only after the assistant message is persisted.
	if err := writeStreamEvent(ctx, dto.ChatStreamEvent{Done: true}); err != nil {
		log.Warn().Err(err).Uint64("conversationID", id).Msg("PostMessage: failed to write done event")
	}
}

func writeStreamEvent(ctx *gin.Context, event dto.ChatStreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(ctx.Writer, "data: %s\n\n", data); err != nil {
		return err
	}
	ctx.Writer.Flush()
	return nil
}
