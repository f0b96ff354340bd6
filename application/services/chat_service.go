package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatrelay/application/ports"
	"chatrelay/domain/chat"
	"chatrelay/domain/events"
	apperrors "chatrelay/pkg/errors"
	"chatrelay/pkg/observability"

	"go.uber.org/zap"
)

// threadCacheTTL bounds how long a mapping is served from cache. Records
// are immutable, the TTL only caps memory held across warm invocations.
const threadCacheTTL = 3600

// ChatService relays a user message to the assistant backend and returns
// the reply. It owns the identity to thread-id mapping and raises the
// lifecycle notification events.
type ChatService struct {
	threads   ports.ThreadStore
	cache     ports.ThreadCache
	assistant ports.Assistant
	bus       ports.EventBus
	metrics   *observability.Metrics
	tracer    *observability.Tracer
	logger    *zap.Logger

	eventSource    string
	eventNamespace string
}

// NewChatService creates a chat service.
func NewChatService(
	threads ports.ThreadStore,
	cache ports.ThreadCache,
	assistant ports.Assistant,
	bus ports.EventBus,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
	eventSource string,
	eventNamespace string,
) *ChatService {
	return &ChatService{
		threads:        threads,
		cache:          cache,
		assistant:      assistant,
		bus:            bus,
		metrics:        metrics,
		tracer:         tracer,
		logger:         logger,
		eventSource:    eventSource,
		eventNamespace: eventNamespace,
	}
}

// ChatRequest carries one user message through the relay.
type ChatRequest struct {
	Name   string
	Email  string
	Prompt string
}

// Chat looks up (or creates) the thread for the request's identity,
// forwards the composed prompt to the assistant and returns the reply
// text. Returned errors are *apperrors.AppError values carrying the HTTP
// status the original middle tier used: 500 for assistant-side run
// failures, 509 when the relay itself could not drive the backend.
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) (string, error) {
	start := time.Now()
	outcome := "success"
	defer func() {
		s.metrics.RecordChatRequest(ctx, outcome, time.Since(start))
	}()

	identity, err := chat.NewIdentity(req.Email)
	if err != nil {
		outcome = "invalid"
		return "", apperrors.NewValidationError(err.Error())
	}

	record, err := s.getOrCreateThread(ctx, identity)
	if err != nil {
		outcome = "store_error"
		return "", err
	}

	prompt := chat.ComposePrompt(req.Name, req.Prompt, time.Now())

	var reply string
	err = s.tracer.Trace(ctx, "assistant.send_message", func(ctx context.Context) error {
		var sendErr error
		reply, sendErr = s.assistant.SendMessage(ctx, record.ThreadID, prompt)
		return sendErr
	})
	if err != nil {
		outcome = "assistant_error"
		s.logger.Error("assistant call failed",
			zap.String("threadID", record.ThreadID),
			zap.Error(err),
		)
		if _, ok := apperrors.GetAppError(err); ok {
			return "", err
		}
		return "", apperrors.NewAssistantUnavailableError(err)
	}

	if chat.EndsConversation(reply) {
		s.publish(ctx, events.NewConversationEnded(
			s.eventSource, s.eventNamespace, identity.String(), record.ThreadID))
	}

	return reply, nil
}

// Status reports the health of the downstream dependencies.
type Status struct {
	Assistant string `json:"openai"`
	Database  string `json:"database"`
}

// CheckStatus pings the assistant backend and the thread store.
func (s *ChatService) CheckStatus(ctx context.Context) Status {
	status := Status{Assistant: "good", Database: "good"}

	if err := s.assistant.Ping(ctx); err != nil {
		s.logger.Warn("assistant ping failed", zap.Error(err))
		status.Assistant = "bad"
	}
	if err := s.threads.Ping(ctx); err != nil {
		s.logger.Warn("thread store ping failed", zap.Error(err))
		status.Database = "bad"
	}
	return status
}

// getOrCreateThread resolves the thread for an identity. First contact
// creates a thread at the assistant backend, stores the mapping and
// publishes user.registered. A create race is resolved in favor of the
// record that won the conditional write.
func (s *ChatService) getOrCreateThread(ctx context.Context, identity chat.Identity) (chat.ThreadRecord, error) {
	if record, ok := s.cache.Get(ctx, identity); ok {
		return record, nil
	}

	record, err := s.threads.Get(ctx, identity)
	if err == nil {
		s.cacheRecord(ctx, record)
		return record, nil
	}
	if !errors.Is(err, chat.ErrThreadNotFound) {
		return chat.ThreadRecord{}, apperrors.NewDatabaseError("failed to read thread mapping").WithCause(err)
	}

	threadID, err := s.assistant.CreateThread(ctx)
	if err != nil {
		return chat.ThreadRecord{}, apperrors.NewAssistantUnavailableError(
			fmt.Errorf("failed to create thread: %w", err))
	}

	record = chat.NewThreadRecord(identity, threadID)
	if err := s.threads.Create(ctx, record); err != nil {
		if errors.Is(err, chat.ErrThreadExists) {
			// Another request won the race; its thread id is the one
			// that sticks for this identity.
			existing, getErr := s.threads.Get(ctx, identity)
			if getErr != nil {
				return chat.ThreadRecord{}, apperrors.NewDatabaseError("failed to read thread mapping").WithCause(getErr)
			}
			s.cacheRecord(ctx, existing)
			return existing, nil
		}
		return chat.ThreadRecord{}, apperrors.NewDatabaseError("failed to store thread mapping").WithCause(err)
	}

	s.logger.Info("registered new conversation thread",
		zap.String("identity", identity.String()),
		zap.String("threadID", threadID),
	)
	s.metrics.RecordThreadCreated(ctx)
	s.publish(ctx, events.NewUserRegistered(
		s.eventSource, s.eventNamespace, identity.String(), threadID))

	s.cacheRecord(ctx, record)
	return record, nil
}

func (s *ChatService) cacheRecord(ctx context.Context, record chat.ThreadRecord) {
	if err := s.cache.Set(ctx, record, threadCacheTTL); err != nil {
		s.logger.Warn("failed to cache thread record", zap.Error(err))
	}
}

// publish sends a notification event without letting a bus failure leak
// into the chat path.
func (s *ChatService) publish(ctx context.Context, event events.NotificationEvent) {
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish notification event",
			zap.String("eventType", event.GetType()),
			zap.Error(err),
		)
	}
}
