package events

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier writes every emitted event to a structured log, giving
// operators a trail of cart and stock changes without any extra transport.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements Notifier.
func (l LogNotifier) Notify(_ context.Context, event Event) error {
	l.Logger.Info().
		Str("topic", event.Topic).
		Str("aggregate_id", event.AggregateID).
		RawJSON("payload", event.Payload).
		Time("occurred_at", event.OccurredAt).
		Msg("domain_event")
	return nil
}
