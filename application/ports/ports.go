// Package ports defines the interfaces the application layer depends on.
// Infrastructure packages provide the implementations.
package ports

import (
	"context"

	"chatrelay/domain/chat"
	"chatrelay/domain/events"
)

// ThreadStore persists the identity to thread-id mapping.
type ThreadStore interface {
	// Get returns the record for an identity, or chat.ErrThreadNotFound.
	Get(ctx context.Context, identity chat.Identity) (chat.ThreadRecord, error)

	// Create stores a record for a previously unseen identity. The thread
	// id is immutable once stored: if a record already exists the store
	// must keep it and return chat.ErrThreadExists.
	Create(ctx context.Context, record chat.ThreadRecord) error

	// SetReadAlong toggles the read-along flag for an existing identity.
	SetReadAlong(ctx context.Context, identity chat.Identity, readAlong bool) error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

// ThreadCache is a read-through cache in front of the thread store. The
// mapping is immutable after creation, so cached records never go stale.
type ThreadCache interface {
	Get(ctx context.Context, identity chat.Identity) (chat.ThreadRecord, bool)
	Set(ctx context.Context, record chat.ThreadRecord, ttlSeconds int) error
}

// Assistant is the vendor-hosted conversational backend. It owns all
// conversation state; the middle tier only holds thread ids.
type Assistant interface {
	// CreateThread starts a new conversation and returns its opaque id.
	CreateThread(ctx context.Context) (string, error)

	// SendMessage appends a user message to the thread, runs the
	// assistant and returns the reply text.
	SendMessage(ctx context.Context, threadID, prompt string) (string, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// EventBus publishes notification events to the external event bus.
// Publishing is fire-and-forget from the caller's point of view.
type EventBus interface {
	Publish(ctx context.Context, event events.NotificationEvent) error
	PublishBatch(ctx context.Context, batch []events.NotificationEvent) error
}
