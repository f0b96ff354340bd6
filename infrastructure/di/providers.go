package di

import (
	"context"

	"chatrelay/application/ports"
	"chatrelay/application/services"
	openaiassistant "chatrelay/infrastructure/assistant/openai"
	"chatrelay/infrastructure/assistant/tools"
	"chatrelay/infrastructure/config"
	"chatrelay/infrastructure/messaging/eventbridge"
	dynamostore "chatrelay/infrastructure/persistence/dynamodb"
	"chatrelay/infrastructure/persistence/memory"
	"chatrelay/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// Container holds all application dependencies.
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	ThreadStore ports.ThreadStore
	ThreadCache ports.ThreadCache
	Assistant   ports.Assistant
	EventBus    ports.EventBus
	Metrics     *observability.Metrics
	Tracer      *observability.Tracer
	ChatService *services.ChatService
}

// ProvideLogger creates a new logger instance.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client.
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client.
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client.
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideThreadStore creates the thread store selected by configuration.
func ProvideThreadStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ThreadStore {
	if cfg.ThreadStoreBackend == "memory" {
		logger.Warn("using in-memory thread store; mappings are lost on restart")
		return memory.NewThreadStore()
	}
	return dynamostore.NewThreadRepository(client, cfg.ThreadsTable, logger)
}

// ProvideThreadCache creates the in-process thread record cache.
func ProvideThreadCache() ports.ThreadCache {
	return memory.NewThreadCache()
}

// ProvideToolRegistry creates the tool registry with the built-in tools.
func ProvideToolRegistry(store ports.ThreadStore, logger *zap.Logger) (*tools.Registry, error) {
	registry := tools.NewRegistry(logger)
	if err := tools.RegisterReadAlong(registry, store, logger); err != nil {
		return nil, err
	}
	return registry, nil
}

// ProvideAssistant creates the OpenAI assistant client.
func ProvideAssistant(cfg *config.Config, registry *tools.Registry, logger *zap.Logger) (ports.Assistant, error) {
	client, err := openaiassistant.NewClient(openaiassistant.Options{
		APIKey:       cfg.OpenAIAPIKey,
		BaseURL:      cfg.OpenAIBaseURL,
		AssistantID:  cfg.OpenAIAssistantID,
		PollInterval: cfg.RunPollInterval,
		RunTimeout:   cfg.RunTimeout,
	}, registry, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ProvideEventBus creates the notification event publisher.
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the CloudWatch metrics publisher.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	return observability.NewMetrics(client, cfg.MetricsNamespace, cfg.EnableMetrics, logger)
}

// ProvideTracer creates the X-Ray tracer.
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer("chatrelay", cfg.EnableTracing)
}

// ProvideChatService creates the chat relay service.
func ProvideChatService(
	store ports.ThreadStore,
	cache ports.ThreadCache,
	assistant ports.Assistant,
	bus ports.EventBus,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	cfg *config.Config,
	logger *zap.Logger,
) *services.ChatService {
	return services.NewChatService(
		store,
		cache,
		assistant,
		bus,
		metrics,
		tracer,
		logger,
		cfg.EventSource,
		cfg.EventNamespace,
	)
}
