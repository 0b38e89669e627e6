package application

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/linskybing/formify-go/internal/assistant"
)

const (
	MaxChatResponse = 4000

	chatUnavailable = "I'm currently experiencing technical difficulties. Please try again in a moment or contact support if the issue persists."
	chatFailed      = "I apologize, but I'm unable to process your request right now. Please try again later."
)

const chatPrompt = `You are a helpful assistant for Formify, a web app for building, publishing and managing forms.
Features: a drag-and-drop builder with text, email, textarea, select, radio, checkbox and number elements; AI form generation from a prompt; publishing with a share URL or embed code; a submissions inbox with XLSX and Google Sheets export; integrations such as webhooks, Slack, Discord and email.
Be friendly, concise and focused on the app. When asked for a form, suggest elements with a type, label and whether they are required.`

// ChatService answers questions about the product.
type ChatService struct {
	AI assistant.Completer
}

func NewChatService(ai assistant.Completer) *ChatService {
	return &ChatService{AI: ai}
}

// Reply never fails: model errors are logged and turned into a canned answer.
func (s *ChatService) Reply(ctx context.Context, message string) string {
	if s.AI == nil {
		return chatUnavailable
	}
	out, err := s.AI.Complete(ctx, chatPrompt, message)
	if err != nil {
		log.Printf("[Chat] completion failed: %v", err)
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "404") || strings.Contains(lower, "not found") {
			return chatUnavailable
		}
		return chatFailed
	}
	return truncate(out, MaxChatResponse)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}
