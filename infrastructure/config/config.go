package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion    string
	ThreadsTable string
	EventBusName string

	// ThreadStoreBackend selects the thread store implementation:
	// "dynamodb" (default) or "memory" for local runs.
	ThreadStoreBackend string

	// Event envelope configuration
	EventSource    string
	EventNamespace string

	// Assistant backend configuration
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIAssistantID string
	RunPollInterval   time.Duration
	RunTimeout        time.Duration

	// Lambda configuration
	IsLambda bool

	// Logging and features
	LogLevel         string
	MetricsNamespace string
	EnableMetrics    bool
	EnableTracing    bool
	EnableCORS       bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		AWSRegion:    getEnv("AWS_REGION", "us-west-2"),
		ThreadsTable: getEnv("THREADS_TABLE", "UserThreads"),
		EventBusName: getEnv("EVENT_BUS_NAME", "chatrelay-events"),

		ThreadStoreBackend: getEnv("THREAD_STORE", "dynamodb"),

		EventSource:    getEnv("EVENT_SOURCE", "chatrelay"),
		EventNamespace: getEnv("APP_NAMESPACE", "chatrelay."),

		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		OpenAIAssistantID: getEnv("OPENAI_MAIN_ASSISTANT_ID", ""),
		RunPollInterval:   getEnvDuration("RUN_POLL_INTERVAL", time.Second),
		RunTimeout:        getEnvDuration("RUN_TIMEOUT", 2*time.Minute),

		IsLambda: getEnvBool("IS_LAMBDA", os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""),

		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "ChatRelay"),
		EnableMetrics:    getEnvBool("ENABLE_METRICS", false),
		EnableTracing:    getEnvBool("ENABLE_TRACING", false),
		EnableCORS:       getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present.
func (c *Config) Validate() error {
	if c.RunPollInterval <= 0 {
		return fmt.Errorf("RUN_POLL_INTERVAL must be positive")
	}
	if c.Environment == "production" {
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required in production")
		}
		if c.OpenAIAssistantID == "" {
			return fmt.Errorf("OPENAI_MAIN_ASSISTANT_ID is required in production")
		}
		if c.ThreadsTable == "" {
			return fmt.Errorf("THREADS_TABLE is required")
		}
		if c.EventBusName == "" {
			return fmt.Errorf("EVENT_BUS_NAME is required")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
