package dto

import "time"

// QuizSubmitRequest is the body of a quiz submission. Score and category are
// accepted for wire compatibility with the quiz client but the server
// recomputes both from the raw responses and elapsed time before storing.
type QuizSubmitRequest struct {
	Score     int            `json:"score"`
	Category  string         `json:"category"`
	TimeTaken int            `json:"timeTaken" binding:"min=0"`
	Responses map[string]int `json:"responses" binding:"required"`
}

type QuizResultResponse struct {
	ID        uint           `json:"id"`
	UserID    *uint          `json:"userId,omitempty"`
	Score     int            `json:"score"`
	Category  string         `json:"category"`
	TimeTaken int            `json:"timeTaken"`
	Responses map[string]int `json:"responses"`
	CreatedAt time.Time      `json:"createdAt"`
}
