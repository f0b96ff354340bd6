// Package openai drives the vendor assistant backend through its
// thread/run/message primitives.
package openai

import (
	"context"
	"fmt"
	"time"

	"chatrelay/application/ports"
	"chatrelay/infrastructure/assistant/tools"
	apperrors "chatrelay/pkg/errors"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Client implements the Assistant port against the OpenAI Assistants API.
type Client struct {
	api          *openai.Client
	assistantID  string
	pollInterval time.Duration
	runTimeout   time.Duration
	tools        *tools.Registry
	logger       *zap.Logger
}

// Options configures the assistant client.
type Options struct {
	APIKey       string
	BaseURL      string
	AssistantID  string
	PollInterval time.Duration
	RunTimeout   time.Duration
}

// NewClient creates an assistant client.
func NewClient(opts Options, registry *tools.Registry, logger *zap.Logger) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if opts.AssistantID == "" {
		return nil, fmt.Errorf("OPENAI_MAIN_ASSISTANT_ID is not set")
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	return &Client{
		api:          openai.NewClientWithConfig(cfg),
		assistantID:  opts.AssistantID,
		pollInterval: opts.PollInterval,
		runTimeout:   opts.RunTimeout,
		tools:        registry,
		logger:       logger,
	}, nil
}

var _ ports.Assistant = (*Client)(nil)

// CreateThread starts a new conversation thread at the backend.
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.api.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", fmt.Errorf("failed to create thread: %w", err)
	}

	c.logger.Info("created assistant thread", zap.String("threadID", thread.ID))
	return thread.ID, nil
}

// SendMessage appends the prompt to the thread, runs the assistant and
// returns the newest reply text once the run completes.
func (c *Client) SendMessage(ctx context.Context, threadID, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.runTimeout)
	defer cancel()

	_, err := c.api.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create message: %w", err)
	}

	run, err := c.api.CreateRun(ctx, threadID, openai.RunRequest{
		AssistantID: c.assistantID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}

	if err := c.waitForRun(ctx, threadID, run.ID); err != nil {
		return "", err
	}

	return c.latestMessageText(ctx, threadID)
}

// waitForRun polls the run until it completes, executing tool calls when
// the assistant asks for them. Non-completed terminal statuses are
// returned as assistant run errors.
func (c *Client) waitForRun(ctx context.Context, threadID, runID string) error {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		run, err := c.api.RetrieveRun(ctx, threadID, runID)
		if err != nil {
			return fmt.Errorf("failed to retrieve run: %w", err)
		}

		switch run.Status {
		case openai.RunStatusCompleted:
			return nil

		case openai.RunStatusRequiresAction:
			if err := c.submitToolOutputs(ctx, threadID, runID, run); err != nil {
				return err
			}
			continue

		case openai.RunStatusQueued, openai.RunStatusInProgress, openai.RunStatusCancelling:
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return fmt.Errorf("run %s abandoned: %w", runID, ctx.Err())
			}

		default:
			// failed, cancelled or expired
			c.logger.Error("assistant run did not complete",
				zap.String("threadID", threadID),
				zap.String("runID", runID),
				zap.String("status", string(run.Status)),
			)
			return apperrors.NewAssistantRunError(string(run.Status))
		}
	}
}

// submitToolOutputs executes the requested function calls and hands their
// outputs back so the run can resume.
func (c *Client) submitToolOutputs(ctx context.Context, threadID, runID string, run openai.Run) error {
	if run.RequiredAction == nil || run.RequiredAction.SubmitToolOutputs == nil {
		return fmt.Errorf("run %s requires action but carries no tool calls", runID)
	}

	calls := make([]tools.Call, 0, len(run.RequiredAction.SubmitToolOutputs.ToolCalls))
	for _, tc := range run.RequiredAction.SubmitToolOutputs.ToolCalls {
		if tc.Type != openai.ToolTypeFunction {
			return fmt.Errorf("tool call type %q is not supported", tc.Type)
		}
		calls = append(calls, tools.Call{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	outputs := c.tools.Execute(ctx, calls)

	toolOutputs := make([]openai.ToolOutput, 0, len(outputs))
	for _, out := range outputs {
		toolOutputs = append(toolOutputs, openai.ToolOutput{
			ToolCallID: out.CallID,
			Output:     out.Value,
		})
	}

	_, err := c.api.SubmitToolOutputs(ctx, threadID, runID, openai.SubmitToolOutputsRequest{
		ToolOutputs: toolOutputs,
	})
	if err != nil {
		return fmt.Errorf("failed to submit tool outputs: %w", err)
	}
	return nil
}

// latestMessageText returns the text of the newest message on the thread.
func (c *Client) latestMessageText(ctx context.Context, threadID string) (string, error) {
	limit := 1
	list, err := c.api.ListMessage(ctx, threadID, &limit, nil, nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to list messages: %w", err)
	}

	if len(list.Messages) == 0 || len(list.Messages[0].Content) == 0 {
		return "No response message found.", nil
	}

	for _, part := range list.Messages[0].Content {
		if part.Text != nil {
			return part.Text.Value, nil
		}
	}
	return "No response message found.", nil
}

// Ping verifies the backend accepts authenticated requests.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("assistant backend unreachable: %w", err)
	}
	return nil
}
