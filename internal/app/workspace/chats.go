package workspace

import (
	"time"

	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/collection"
)

// ChatDraft is a new conversation.
type ChatDraft struct {
	Name         string
	Type         models.ChatType
	Participants []models.User
}

// MessageDraft is a message as typed into a chat.
type MessageDraft struct {
	Content          string
	AttachedResource *models.AttachedResource
}

// CreateChat opens a conversation. The owner is always a participant.
func (w *Workspace) CreateChat(d ChatDraft) models.Chat {
	w.mu.Lock()
	defer w.mu.Unlock()

	participants := []models.User{w.profile}
	for _, p := range d.Participants {
		if p.ID != w.ownerID {
			participants = append(participants, p)
		}
	}
	kind := d.Type
	if kind == "" {
		kind = models.ChatDirect
		if len(participants) > 2 {
			kind = models.ChatGroup
		}
	}

	return w.chats.Create(func(id string, now time.Time) models.Chat {
		return models.Chat{
			ID:           id,
			Name:         d.Name,
			Participants: participants,
			Messages:     []models.ChatMessage{},
			LastActivity: now,
			Type:         kind,
		}
	})
}

// Chats lists conversations matching q, newest first.
func (w *Workspace) Chats(q collection.Query[models.Chat]) []models.Chat {
	w.mu.Lock()
	defer w.mu.Unlock()

	return q.Apply(w.chats.Items())
}

// Chat returns a single conversation with its messages.
func (w *Workspace) Chat(id string) (models.Chat, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	c, ok := w.chats.Find(id)
	if !ok {
		return models.Chat{}, apperrors.ErrChatNotFound
	}
	return c, nil
}

// SendMessage appends a message from the owner and bumps the chat's last
// activity. Registered message listeners are told after the append.
func (w *Workspace) SendMessage(chatID string, d MessageDraft) (models.ChatMessage, error) {
	w.mu.Lock()
	msg, err := w.appendMessageLocked(chatID, d)
	listener := w.onMessage
	w.mu.Unlock()

	if err != nil {
		return models.ChatMessage{}, err
	}
	if listener != nil {
		listener(w.ownerID, chatID, msg)
	}
	return msg, nil
}

func (w *Workspace) appendMessageLocked(chatID string, d MessageDraft) (models.ChatMessage, error) {
	msg := models.ChatMessage{
		ID:               w.ids.NewID(),
		SenderID:         w.ownerID,
		SenderName:       w.profile.Name,
		Content:          d.Content,
		Timestamp:        w.now(),
		AttachedResource: d.AttachedResource,
	}
	_, ok := w.chats.Update(chatID, func(c models.Chat) models.Chat {
		messages := make([]models.ChatMessage, 0, len(c.Messages)+1)
		messages = append(messages, c.Messages...)
		c.Messages = append(messages, msg)
		c.LastActivity = msg.Timestamp
		return c
	})
	if !ok {
		return models.ChatMessage{}, apperrors.ErrChatNotFound
	}
	return msg, nil
}

// DeleteChat removes a conversation. Missing ids are ignored.
func (w *Workspace) DeleteChat(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.chats.Delete(id)
}
