package models

import "time"

// ChatType distinguishes one-to-one from group chats.
type ChatType string

const (
	ChatDirect ChatType = "direct"
	ChatGroup  ChatType = "group"
)

// AttachedResource links a chat message to a shared study resource.
type AttachedResource struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ChatMessage is a single message in a chat.
type ChatMessage struct {
	ID               string            `json:"id"`
	SenderID         string            `json:"senderId"`
	SenderName       string            `json:"senderName"`
	Content          string            `json:"content"`
	Timestamp        time.Time         `json:"timestamp"`
	AttachedResource *AttachedResource `json:"attachedResource,omitempty"`
}

// Chat is a conversation with its messages embedded in order.
type Chat struct {
	ID           string        `json:"id"`
	Name         string        `json:"name,omitempty"`
	Participants []User        `json:"participants"`
	Messages     []ChatMessage `json:"messages"`
	LastActivity time.Time     `json:"lastActivity"`
	Type         ChatType      `json:"type"`
}

func (c Chat) EntityID() string { return c.ID }

func (c Chat) SearchFields() []string {
	fields := []string{c.Name}
	for _, p := range c.Participants {
		fields = append(fields, p.Name)
	}
	return fields
}
