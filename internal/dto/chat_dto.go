package dto

import "time"

type ConversationCreateRequest struct {
	Title string `json:"title" binding:"required"`
}

// ConversationSummaryResponse lists conversation metadata without messages.
type ConversationSummaryResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

type ConversationDetailResponse struct {
	ID        uint                  `json:"id"`
	Title     string                `json:"title"`
	Messages  []ChatMessageResponse `json:"messages"`
	CreatedAt time.Time             `json:"createdAt"`
}

type ChatMessageResponse struct {
	ID        uint      `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatMessagePostRequest struct {
	Content string `json:"content"`
}

// ChatStreamEvent is one SSE data frame of a chat reply. Exactly one of the
// fields is set per event: zero or more content chunks, then either a done
// marker or a terminal error.
type ChatStreamEvent struct {
	Content string `json:"content,omitempty"`
	Done    bool   `json:"done,omitempty"`
	Error   string `json:"error,omitempty"`
}
