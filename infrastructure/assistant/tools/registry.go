// Package tools dispatches assistant function calls to registered Go
// functions. The assistant declares the functions on the vendor side; this
// package only executes them and hands the outputs back.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Call is one function call requested by the assistant.
type Call struct {
	ID        string
	Name      string
	Arguments string
}

// Output is the result of one executed call. Every call gets exactly one
// output, errors included, so the run can always be resumed.
type Output struct {
	CallID string
	Value  string
}

// Func executes a single tool call. Arguments arrive as the raw JSON the
// assistant produced.
type Func func(ctx context.Context, args json.RawMessage) (string, error)

// Registry maps tool names to their implementations.
type Registry struct {
	mu     sync.RWMutex
	funcs  map[string]Func
	logger *zap.Logger
}

// NewRegistry creates an empty tool registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		funcs:  make(map[string]Func),
		logger: logger,
	}
}

// Register adds a tool implementation under its declared name.
func (r *Registry) Register(name string, fn Func) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.funcs[name] = fn
	return nil
}

// Execute runs all requested calls concurrently and collects their
// outputs. Unknown tools and tool errors become error outputs rather than
// failing the batch; the assistant decides what to do with them.
func (r *Registry) Execute(ctx context.Context, calls []Call) []Output {
	results := make(chan Output, len(calls))

	var wg sync.WaitGroup
	for _, call := range calls {
		wg.Add(1)
		go func(call Call) {
			defer wg.Done()
			results <- r.execute(ctx, call)
		}(call)
	}
	wg.Wait()
	close(results)

	outputs := make([]Output, 0, len(calls))
	for out := range results {
		outputs = append(outputs, out)
	}
	return outputs
}

func (r *Registry) execute(ctx context.Context, call Call) Output {
	r.mu.RLock()
	fn, ok := r.funcs[call.Name]
	r.mu.RUnlock()

	if !ok {
		r.logger.Error("assistant requested unknown tool",
			zap.String("tool", call.Name),
			zap.String("callID", call.ID),
		)
		return Output{
			CallID: call.ID,
			Value:  fmt.Sprintf("Error: function %s not found.", call.Name),
		}
	}

	r.logger.Info("executing tool call",
		zap.String("tool", call.Name),
		zap.String("callID", call.ID),
	)

	value, err := fn(ctx, json.RawMessage(call.Arguments))
	if err != nil {
		r.logger.Error("tool call failed",
			zap.String("tool", call.Name),
			zap.String("callID", call.ID),
			zap.Error(err),
		)
		return Output{
			CallID: call.ID,
			Value:  fmt.Sprintf("Error: %v", err),
		}
	}

	return Output{CallID: call.ID, Value: value}
}
