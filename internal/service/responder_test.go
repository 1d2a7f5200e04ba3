package service

import (
	"context"
	"testing"
)

func TestScriptedResponder(t *testing.T) {
	responder := NewScriptedResponder()

	tests := []struct {
		content string
		want    string
	}{
		{content: "hi", want: greetingReply},
		{content: "Hi", want: greetingReply},
		{content: "  HI  ", want: greetingReply},
		{content: "hello", want: fallbackReply},
		{content: "hi there", want: fallbackReply},
		{content: "I feel anxious", want: fallbackReply},
	}

	for _, tt := range tests {
		reply, err := responder.Reply(context.Background(), tt.content)
		if err != nil {
			t.Fatalf("Reply(%q): %v", tt.content, err)
		}
		if reply != tt.want {
			t.Errorf("Reply(%q) = %q, want %q", tt.content, reply, tt.want)
		}
	}
}
