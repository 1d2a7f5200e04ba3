package service

import (
	"context"
	"strings"
)

// Responder turns one user message into the assistant reply. The transport
// does not care which implementation is behind it, so a generative backend
// can replace the scripted table without touching persistence or framing.
type Responder interface {
	Reply(ctx context.Context, content string) (string, error)
}

const (
	greetingReply = "Hi, user! How may I help you?"
	fallbackReply = "Welcome to MindfulPath! Take assessment to monitor your mental health."
)

// scriptedResponder matches the trimmed message case-insensitively against a
// fixed phrase table and falls back to a generic reply.
type scriptedResponder struct{}

func NewScriptedResponder() Responder {
	return &scriptedResponder{}
}

func (r *scriptedResponder) Reply(_ context.Context, content string) (string, error) {
	if strings.EqualFold(strings.TrimSpace(content), "hi") {
		return greetingReply, nil
	}
	return fallbackReply, nil
}
