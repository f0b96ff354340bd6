package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes operational metrics to CloudWatch. When disabled (or
// constructed without a client) every method is a no-op, so callers never
// have to guard their instrumentation.
type Metrics struct {
	client    *cloudwatch.Client
	namespace string
	enabled   bool
	logger    *zap.Logger
}

// NewMetrics creates a CloudWatch metrics publisher.
func NewMetrics(client *cloudwatch.Client, namespace string, enabled bool, logger *zap.Logger) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		enabled:   enabled && client != nil,
		logger:    logger,
	}
}

// RecordChatRequest records one chat invocation with its outcome and
// end-to-end latency.
func (m *Metrics) RecordChatRequest(ctx context.Context, outcome string, latency time.Duration) {
	if !m.enabled {
		return
	}

	dims := []types.Dimension{
		{Name: aws.String("Outcome"), Value: aws.String(outcome)},
	}

	m.put(ctx,
		types.MetricDatum{
			MetricName: aws.String("ChatRequests"),
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(time.Now()),
			Dimensions: dims,
		},
		types.MetricDatum{
			MetricName: aws.String("ChatLatency"),
			Value:      aws.Float64(float64(latency.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(time.Now()),
			Dimensions: dims,
		},
	)
}

// RecordThreadCreated records that a new conversation thread was minted.
func (m *Metrics) RecordThreadCreated(ctx context.Context) {
	if !m.enabled {
		return
	}
	m.put(ctx, types.MetricDatum{
		MetricName: aws.String("ThreadsCreated"),
		Value:      aws.Float64(1),
		Unit:       types.StandardUnitCount,
		Timestamp:  aws.Time(time.Now()),
	})
}

func (m *Metrics) put(ctx context.Context, data ...types.MetricDatum) {
	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	})
	if err != nil && m.logger != nil {
		// Metrics are best effort; losing a datapoint is not a failure.
		m.logger.Warn("failed to publish metrics", zap.Error(err))
	}
}
