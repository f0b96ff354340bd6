package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"chatrelay/application/ports"
	"chatrelay/domain/chat"

	"go.uber.org/zap"
)

// ReadAlongToolName is the function name declared on the assistant.
const ReadAlongToolName = "set_read_along"

type readAlongArgs struct {
	Email     string `json:"email"`
	ReadAlong string `json:"read_along"`
}

// RegisterReadAlong wires the set_read_along tool to the thread store.
// The assistant passes read_along as "0" or "1".
func RegisterReadAlong(registry *Registry, store ports.ThreadStore, logger *zap.Logger) error {
	return registry.Register(ReadAlongToolName, func(ctx context.Context, raw json.RawMessage) (string, error) {
		var args readAlongArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}

		toggle, err := strconv.Atoi(args.ReadAlong)
		if err != nil || (toggle != 0 && toggle != 1) {
			return "Invalid value for read along. Please use 0 or 1.", nil
		}
		enabled := toggle == 1

		identity, err := chat.NewIdentity(args.Email)
		if err != nil {
			return "", err
		}

		record, err := store.Get(ctx, identity)
		if err != nil {
			return "", err
		}

		if record.ReadAlong == enabled {
			logger.Info("read-along already at requested state",
				zap.String("identity", identity.String()),
				zap.Bool("readAlong", enabled),
			)
			return fmt.Sprintf("Nothing to change, read-along was already %s for %s.",
				onOff(enabled), identity), nil
		}

		if err := store.SetReadAlong(ctx, identity, enabled); err != nil {
			return "", err
		}

		logger.Info("read-along updated",
			zap.String("identity", identity.String()),
			zap.Bool("readAlong", enabled),
		)
		return fmt.Sprintf("Read-along is now %s for %s.", onOff(enabled), identity), nil
	})
}

func onOff(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
