// Package chat keeps an in-memory conversation with the CBT assistant.
// Conversations are not persisted.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/mindcalm/internal/constants"
	"github.com/julianstephens/mindcalm/internal/models"
)

// Responder answers a message given the prior conversation.
type Responder interface {
	Chat(ctx context.Context, message string, history []models.ChatMessage) string
}

type Session struct {
	responder Responder
	now       func() time.Time
	messages  []models.ChatMessage
}

// New starts a conversation with the assistant's greeting.
func New(r Responder) *Session {
	s := &Session{responder: r, now: time.Now}
	s.messages = append(s.messages, s.message(models.RoleAssistant, constants.ChatGreeting))
	return s
}

func (s *Session) message(role models.ChatRole, content string) models.ChatMessage {
	return models.ChatMessage{ID: uuid.NewString(), Role: role, Content: content, Timestamp: s.now()}
}

func (s *Session) Messages() []models.ChatMessage {
	return append([]models.ChatMessage(nil), s.messages...)
}

// Suggestions are offered until the user sends their first message.
func (s *Session) Suggestions() []string {
	if len(s.messages) > 1 {
		return nil
	}
	return constants.ChatSuggestions
}

// Send records the user's message, asks for a reply with the earlier
// history, and records the reply. Blank input is ignored.
func (s *Session) Send(ctx context.Context, text string) (models.ChatMessage, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, false
	}
	history := s.Messages()
	s.messages = append(s.messages, s.message(models.RoleUser, text))

	reply := s.message(models.RoleAssistant, s.responder.Chat(ctx, text, history))
	s.messages = append(s.messages, reply)
	return reply, true
}
