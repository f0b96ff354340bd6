package tools

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"

	"chatrelay/domain/chat"
	"chatrelay/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegistry_RegisterTwice(t *testing.T) {
	registry := NewRegistry(zap.NewNop())

	require.NoError(t, registry.Register("echo", func(ctx context.Context, args json.RawMessage) (string, error) {
		return string(args), nil
	}))
	assert.Error(t, registry.Register("echo", func(ctx context.Context, args json.RawMessage) (string, error) {
		return "", nil
	}))
}

func TestRegistry_ExecuteConcurrently(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	var executions int32

	require.NoError(t, registry.Register("count", func(ctx context.Context, args json.RawMessage) (string, error) {
		atomic.AddInt32(&executions, 1)
		return "done", nil
	}))

	calls := []Call{
		{ID: "call-1", Name: "count", Arguments: "{}"},
		{ID: "call-2", Name: "count", Arguments: "{}"},
		{ID: "call-3", Name: "count", Arguments: "{}"},
	}
	outputs := registry.Execute(context.Background(), calls)

	require.Len(t, outputs, 3, "every call gets exactly one output")
	assert.Equal(t, int32(3), atomic.LoadInt32(&executions))

	seen := make(map[string]bool)
	for _, out := range outputs {
		seen[out.CallID] = true
		assert.Equal(t, "done", out.Value)
	}
	assert.Len(t, seen, 3)
}

func TestRegistry_UnknownTool(t *testing.T) {
	registry := NewRegistry(zap.NewNop())

	outputs := registry.Execute(context.Background(), []Call{
		{ID: "call-1", Name: "does_not_exist", Arguments: "{}"},
	})

	require.Len(t, outputs, 1)
	assert.Equal(t, "call-1", outputs[0].CallID)
	assert.Contains(t, outputs[0].Value, "not found")
}

func TestReadAlongTool(t *testing.T) {
	ctx := context.Background()
	store := memory.NewThreadStore()
	require.NoError(t, store.Create(ctx, chat.NewThreadRecord("ada@example.com", "thread-1")))

	registry := NewRegistry(zap.NewNop())
	require.NoError(t, RegisterReadAlong(registry, store, zap.NewNop()))

	outputs := registry.Execute(ctx, []Call{{
		ID:        "call-1",
		Name:      ReadAlongToolName,
		Arguments: `{"email":"ada@example.com","read_along":"1"}`,
	}})

	require.Len(t, outputs, 1)
	assert.Contains(t, outputs[0].Value, "enabled")

	record, err := store.Get(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, record.ReadAlong)
}

func TestReadAlongTool_NoChangeNeeded(t *testing.T) {
	ctx := context.Background()
	store := memory.NewThreadStore()
	require.NoError(t, store.Create(ctx, chat.NewThreadRecord("ada@example.com", "thread-1")))

	registry := NewRegistry(zap.NewNop())
	require.NoError(t, RegisterReadAlong(registry, store, zap.NewNop()))

	outputs := registry.Execute(ctx, []Call{{
		ID:        "call-1",
		Name:      ReadAlongToolName,
		Arguments: `{"email":"ada@example.com","read_along":"0"}`,
	}})

	require.Len(t, outputs, 1)
	assert.Contains(t, outputs[0].Value, "Nothing to change")
}

func TestReadAlongTool_InvalidToggle(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	require.NoError(t, RegisterReadAlong(registry, memory.NewThreadStore(), zap.NewNop()))

	outputs := registry.Execute(context.Background(), []Call{{
		ID:        "call-1",
		Name:      ReadAlongToolName,
		Arguments: `{"email":"ada@example.com","read_along":"maybe"}`,
	}})

	require.Len(t, outputs, 1)
	assert.Contains(t, outputs[0].Value, "Please use 0 or 1")
}
