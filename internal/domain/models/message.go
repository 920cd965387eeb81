// Package models contains domain models for the widget runtime.
package models

import "time"

// MessageRole represents the role of a transcript entry.
type MessageRole string

const (
	// RoleUser represents a message typed by the visitor.
	RoleUser MessageRole = "user"
	// RoleAssistant represents a message from the answering service,
	// including synthesized greeting and error messages.
	RoleAssistant MessageRole = "assistant"
)

// Message represents one turn in a widget transcript.
type Message struct {
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewUserMessage creates a user message with the current timestamp.
func NewUserMessage(text string) Message {
	return Message{
		Role:      RoleUser,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}

// NewAssistantMessage creates an assistant message with the current timestamp.
func NewAssistantMessage(text string) Message {
	return Message{
		Role:      RoleAssistant,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}
