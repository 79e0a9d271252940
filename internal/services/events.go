package services

import (
	"context"
	"log/slog"

	"finledger/internal/amqp"
)

// publishEvent sends a ledger event if a broker client is configured. Event
// delivery is best-effort: the write already committed, so a publish failure
// is logged and swallowed.
func publishEvent(ctx context.Context, client *amqp.Client, event *amqp.LedgerEvent) {
	if client == nil {
		return
	}
	if err := client.PublishEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"type", event.Type,
			"user_id", event.UserID,
			"error", err)
	}
}
