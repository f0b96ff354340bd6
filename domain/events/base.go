package events

import (
	"time"

	"github.com/google/uuid"
)

// SpecVersion is the CloudEvents specification version of the envelope.
const SpecVersion = "1.0"

// NotificationEvent is the interface all outbound notification events
// implement. Events are fire-and-forget records describing something that
// has already happened.
type NotificationEvent interface {
	GetID() string
	GetSource() string
	GetType() string
	GetTime() time.Time
	GetSubject() string
}

// BaseEvent carries the CloudEvents envelope fields shared by all events.
type BaseEvent struct {
	SpecVersion string    `json:"specversion"`
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Type        string    `json:"type"`
	Subject     string    `json:"subject,omitempty"`
	Time        time.Time `json:"time"`
}

// NewBaseEvent fills the envelope for a freshly raised event.
func NewBaseEvent(source, eventType, subject string) BaseEvent {
	return BaseEvent{
		SpecVersion: SpecVersion,
		ID:          uuid.New().String(),
		Source:      source,
		Type:        eventType,
		Subject:     subject,
		Time:        time.Now().UTC(),
	}
}

func (e BaseEvent) GetID() string      { return e.ID }
func (e BaseEvent) GetSource() string  { return e.Source }
func (e BaseEvent) GetType() string    { return e.Type }
func (e BaseEvent) GetTime() time.Time { return e.Time }
func (e BaseEvent) GetSubject() string { return e.Subject }
