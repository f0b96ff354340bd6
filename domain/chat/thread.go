package chat

import (
	"errors"
	"time"
)

// Domain errors shared across storage implementations.
var (
	ErrEmptyIdentity   = errors.New("identity is empty")
	ErrInvalidIdentity = errors.New("identity is not a valid email address")
	ErrThreadNotFound  = errors.New("thread not found")
	ErrThreadExists    = errors.New("thread already exists for identity")
)

// ThreadRecord associates an identity with the conversation thread the
// assistant backend issued for it. The thread id is written once on first
// contact and never changes afterwards; ReadAlong is the only mutable field.
type ThreadRecord struct {
	Identity  Identity  `json:"identity"`
	ThreadID  string    `json:"thread_id"`
	ReadAlong bool      `json:"read_along"`
	CreatedAt time.Time `json:"created_at"`
}

// NewThreadRecord creates the record stored on first contact.
func NewThreadRecord(identity Identity, threadID string) ThreadRecord {
	return ThreadRecord{
		Identity:  identity,
		ThreadID:  threadID,
		CreatedAt: time.Now().UTC(),
	}
}
