package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/libitemsflow/pkg/app"
	"github.com/ghuser/libitemsflow/pkg/logger"
	lendingEvents "github.com/ghuser/libitemsflow/services/lending/domain/events"
)

// itemTopics are the events after which an item's cached read model is stale.
var itemTopics = []string{
	lendingEvents.TopicItemCreated,
	lendingEvents.TopicLoanCreated,
	lendingEvents.TopicLoanReturned,
}

type itemRefresher interface {
	Refresh(ctx context.Context, id uuid.UUID) error
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application, items itemRefresher) error {
	for _, topic := range itemTopics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handleItemEvent(a.Logger, topic, items))
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", itemTopics)
	return nil
}

// handleItemEvent rewrites the cached item named by any lending event.
// Handlers must be idempotent; the EventBus retries up to 3 times on failure.
// A payload that cannot be decoded is logged and acked, since retrying it
// can never succeed.
func handleItemEvent(log logger.Logger, topic string, items itemRefresher) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var ref lendingEvents.ItemRef
		if err := json.Unmarshal(msg.Payload, &ref); err != nil || ref.ItemID == uuid.Nil {
			log.ErrorContext(ctx, "dropping malformed event",
				"topic", topic, "message_id", msg.UUID, "error", err)
			return nil
		}

		if err := items.Refresh(ctx, ref.ItemID); err != nil {
			return fmt.Errorf("refresh item %s: %w", ref.ItemID, err)
		}
		log.InfoContext(ctx, "item cache refreshed",
			"topic", topic, "item_id", ref.ItemID, "event_id", ref.EventID)
		return nil
	}
}
