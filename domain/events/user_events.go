package events

import "time"

// Event type suffixes; the application namespace from configuration is
// prepended by the constructors.
const (
	TypeUserRegistered    = "user.registered"
	TypeConversationEnded = "conversation.ended"
)

// UserRegistered is raised the first time an identity contacts the chat
// service, right after its conversation thread has been created.
type UserRegistered struct {
	BaseEvent
	Email    string `json:"email"`
	ThreadID string `json:"thread_id"`
}

// NewUserRegistered creates a UserRegistered event.
func NewUserRegistered(source, namespace, email, threadID string) UserRegistered {
	return UserRegistered{
		BaseEvent: NewBaseEvent(source, namespace+TypeUserRegistered, email),
		Email:     email,
		ThreadID:  threadID,
	}
}

// ConversationEnded is raised when an assistant reply carries the
// end-of-conversation sentinel.
type ConversationEnded struct {
	BaseEvent
	Email    string    `json:"email"`
	ThreadID string    `json:"thread_id"`
	EndedAt  time.Time `json:"ended_at"`
}

// NewConversationEnded creates a ConversationEnded event.
func NewConversationEnded(source, namespace, email, threadID string) ConversationEnded {
	ev := ConversationEnded{
		BaseEvent: NewBaseEvent(source, namespace+TypeConversationEnded, email),
		Email:     email,
		ThreadID:  threadID,
	}
	ev.EndedAt = ev.Time
	return ev
}
