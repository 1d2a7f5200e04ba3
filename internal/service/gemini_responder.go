package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mindfulpath/backend/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const assistantPrompt = `You are the MindfulPath assistant, a supportive companion in a
mental-health self-assessment app. Answer briefly and warmly. Encourage the user to
take the assessment or browse the wellness tips when it fits, and recommend
professional help for anything beyond self-care. User message:

%s`

// geminiResponder generates replies with Gemini. It is only selected when an
// API key is configured; the scripted responder stays the default policy.
type geminiResponder struct {
	model *genai.GenerativeModel
}

func NewGeminiResponder(cfg *config.Config) (Responder, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiResponder{model: client.GenerativeModel("gemini-1.5-flash")}, nil
}

// NewResponder picks the reply strategy for the chat service: Gemini when a
// key is configured and the client comes up, the scripted table otherwise.
func NewResponder(cfg *config.Config) Responder {
	if cfg.GeminiApiKey == "" {
		return NewScriptedResponder()
	}
	responder, err := NewGeminiResponder(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Gemini responder unavailable, falling back to scripted replies")
		return NewScriptedResponder()
	}
	log.Info().Msg("Chat responder: Gemini")
	return responder
}

func (r *geminiResponder) Reply(ctx context.Context, content string) (string, error) {
	resp, err := r.model.GenerateContent(ctx, genai.Text(fmt.Sprintf(assistantPrompt, content)))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", fmt.Errorf("gemini returned empty reply")
	}
	return reply, nil
}
