package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chatrelay/application/ports"
	"chatrelay/domain/events"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

// Publisher implements the EventBus interface using AWS EventBridge.
type Publisher struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewPublisher creates a new EventBridge publisher.
func NewPublisher(client *eventbridge.Client, eventBusName string, logger *zap.Logger) ports.EventBus {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

// Publish sends a single event to EventBridge.
func (p *Publisher) Publish(ctx context.Context, event events.NotificationEvent) error {
	return p.PublishBatch(ctx, []events.NotificationEvent{event})
}

// PublishBatch sends multiple events to EventBridge.
func (p *Publisher) PublishBatch(ctx context.Context, batch []events.NotificationEvent) error {
	if len(batch) == 0 {
		return nil
	}

	// EventBridge limits to 10 events per PutEvents call
	const batchSize = 10

	for i := 0; i < len(batch); i += batchSize {
		end := i + batchSize
		if end > len(batch) {
			end = len(batch)
		}
		if err := p.publishWithRetry(ctx, batch[i:end]); err != nil {
			return err
		}
	}

	return nil
}

// publishBatch publishes a batch of events (max 10).
func (p *Publisher) publishBatch(ctx context.Context, batch []events.NotificationEvent) error {
	entries := make([]types.PutEventsRequestEntry, 0, len(batch))

	for _, event := range batch {
		detail, err := json.Marshal(event)
		if err != nil {
			p.logger.Error("failed to marshal event",
				zap.Error(err),
				zap.String("eventType", event.GetType()),
			)
			continue
		}

		entries = append(entries, types.PutEventsRequestEntry{
			EventBusName: aws.String(p.eventBusName),
			Source:       aws.String(event.GetSource()),
			DetailType:   aws.String(event.GetType()),
			Detail:       aws.String(string(detail)),
			Time:         aws.Time(event.GetTime()),
		})
	}

	if len(entries) == 0 {
		return nil
	}

	result, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("failed to publish events to EventBridge: %w", err)
	}

	if result.FailedEntryCount > 0 {
		for i, entry := range result.Entries {
			if entry.ErrorCode != nil {
				p.logger.Error("failed to publish event",
					zap.String("eventType", batch[i].GetType()),
					zap.String("errorCode", *entry.ErrorCode),
					zap.String("errorMessage", aws.ToString(entry.ErrorMessage)),
				)
			}
		}
		return fmt.Errorf("%d events failed to publish", result.FailedEntryCount)
	}

	p.logger.Debug("events published to EventBridge",
		zap.Int("count", len(entries)),
		zap.String("eventBus", p.eventBusName),
	)

	return nil
}

// publishWithRetry publishes events with bounded exponential backoff.
func (p *Publisher) publishWithRetry(ctx context.Context, batch []events.NotificationEvent) error {
	const maxRetries = 3
	backoff := 100 * time.Millisecond

	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = p.publishBatch(ctx, batch)
		if err == nil {
			return nil
		}

		if attempt < maxRetries-1 {
			p.logger.Warn("retrying event publication",
				zap.Int("attempt", attempt+1),
				zap.Error(err),
				zap.Duration("backoff", backoff),
			)

			select {
			case <-time.After(backoff):
				backoff *= 2
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("failed to publish events after %d attempts: %w", maxRetries, err)
}
