package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "UserThreads", cfg.ThreadsTable)
	assert.Equal(t, "dynamodb", cfg.ThreadStoreBackend)
	assert.Equal(t, "chatrelay.", cfg.EventNamespace)
	assert.Equal(t, time.Second, cfg.RunPollInterval)
	assert.Equal(t, 2*time.Minute, cfg.RunTimeout)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("THREAD_STORE", "memory")
	t.Setenv("RUN_POLL_INTERVAL", "250ms")
	t.Setenv("APP_NAMESPACE", "demo.")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.ThreadStoreBackend)
	assert.Equal(t, 250*time.Millisecond, cfg.RunPollInterval)
	assert.Equal(t, "demo.", cfg.EventNamespace)
}

func TestValidate_ProductionRequiresCredentials(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("OPENAI_API_KEY", "key")
	t.Setenv("OPENAI_MAIN_ASSISTANT_ID", "asst-1")

	_, err = LoadConfig()
	assert.NoError(t, err)
}
