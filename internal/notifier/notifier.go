package notifier

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier delivers alert messages to the configured channel.
type Notifier interface {
	Send(ctx context.Context, text string) error
	Name() string
}

// ConsoleNotifier logs messages instead of delivering them. Used when no
// Telegram credentials are configured.
type ConsoleNotifier struct {
	logger zerolog.Logger
}

func NewConsoleNotifier(logger zerolog.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{logger: logger.With().Str("component", "notifier").Logger()}
}

func (c *ConsoleNotifier) Name() string { return "console" }

func (c *ConsoleNotifier) Send(ctx context.Context, text string) error {
	c.logger.Info().Msg("notification:\n" + text)
	return nil
}
