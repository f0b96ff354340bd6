// Package memory provides in-process implementations of the persistence
// ports, used by the local dev server and in tests.
package memory

import (
	"context"
	"sync"

	"chatrelay/application/ports"
	"chatrelay/domain/chat"
)

// ThreadStore is a mutex-guarded map implementation of ports.ThreadStore.
type ThreadStore struct {
	mu      sync.RWMutex
	records map[chat.Identity]chat.ThreadRecord
}

// NewThreadStore creates an empty in-memory thread store.
func NewThreadStore() *ThreadStore {
	return &ThreadStore{
		records: make(map[chat.Identity]chat.ThreadRecord),
	}
}

var _ ports.ThreadStore = (*ThreadStore)(nil)

// Get returns the record for an identity.
func (s *ThreadStore) Get(ctx context.Context, identity chat.Identity) (chat.ThreadRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[identity]
	if !ok {
		return chat.ThreadRecord{}, chat.ErrThreadNotFound
	}
	return record, nil
}

// Create stores a record unless one already exists.
func (s *ThreadStore) Create(ctx context.Context, record chat.ThreadRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[record.Identity]; ok {
		return chat.ErrThreadExists
	}
	s.records[record.Identity] = record
	return nil
}

// SetReadAlong toggles the read-along flag for an existing identity.
func (s *ThreadStore) SetReadAlong(ctx context.Context, identity chat.Identity, readAlong bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[identity]
	if !ok {
		return chat.ErrThreadNotFound
	}
	record.ReadAlong = readAlong
	s.records[identity] = record
	return nil
}

// Ping always succeeds for the in-memory store.
func (s *ThreadStore) Ping(ctx context.Context) error {
	return nil
}
