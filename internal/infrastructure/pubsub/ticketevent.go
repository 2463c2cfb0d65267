package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/goroutine"
	"helpdesk/internal/shared/logger"
)

const ticketChangeChannel = "helpdesk:ticket:change"

const publishTimeout = 5 * time.Second

// TicketChangeMessage is the wire shape delivered to the notification
// collaborator over redis pub/sub.
type TicketChangeMessage struct {
	Type      string `json:"type"`
	TicketID  uint   `json:"ticket_id"`
	EntityID  uint   `json:"entity_id"`
	ActorID   uint   `json:"actor_id"`
	Field     string `json:"field"`
	NewValue  string `json:"new_value"`
	Timestamp int64  `json:"timestamp"`
}

// TicketChangeHandler is a callback for consuming ticket change messages.
type TicketChangeHandler func(ctx context.Context, msg TicketChangeMessage)

// RedisTicketEventBus bridges in-process change events onto redis pub/sub
// for other service instances and the notification collaborator. It
// subscribes to the in-memory dispatcher like any other handler.
type RedisTicketEventBus struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisTicketEventBus(client *redis.Client, logger logger.Interface) *RedisTicketEventBus {
	return &RedisTicketEventBus{
		client: client,
		logger: logger,
	}
}

// notifiedEventTypes are the change events the notification collaborator
// cares about.
var notifiedEventTypes = []string{
	ticket.EventTicketCreated,
	ticket.EventTicketStatusChanged,
	ticket.EventTicketAssigned,
	ticket.EventCommentCreated,
}

// RegisterWith subscribes the bus to the externally visible event types.
func (b *RedisTicketEventBus) RegisterWith(subscriber events.EventSubscriber) error {
	for _, eventType := range notifiedEventTypes {
		if err := subscriber.Subscribe(eventType, b); err != nil {
			return fmt.Errorf("failed to subscribe event bus to %s: %w", eventType, err)
		}
	}
	return nil
}

// Handle forwards a change event to redis. Internal notes never leave the
// process, and an actor changing their own ticket produces no notification.
func (b *RedisTicketEventBus) Handle(event events.DomainEvent) error {
	change, ok := event.(ticket.ChangeEvent)
	if !ok {
		return nil
	}
	if change.Internal {
		return nil
	}
	if change.Actor.ID == change.TicketOwnerID {
		return nil
	}

	msg := TicketChangeMessage{
		Type:      change.Type,
		TicketID:  change.TicketID,
		EntityID:  change.EntityID,
		ActorID:   change.Actor.ID,
		Field:     change.Field,
		NewValue:  change.NewValue,
		Timestamp: change.OccurredAt.Unix(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket change message: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := b.client.Publish(ctx, ticketChangeChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish ticket change message",
			"ticket_id", msg.TicketID,
			"type", msg.Type,
			"error", err,
		)
		return fmt.Errorf("failed to publish ticket change message: %w", err)
	}

	b.logger.Debugw("ticket change message published",
		"ticket_id", msg.TicketID,
		"type", msg.Type,
	)
	return nil
}

func (b *RedisTicketEventBus) CanHandle(eventType string) bool {
	for _, t := range notifiedEventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

// Subscribe consumes ticket change messages published by other instances,
// calling the handler for each. It blocks until ctx is cancelled.
func (b *RedisTicketEventBus) Subscribe(ctx context.Context, handler TicketChangeHandler) error {
	pubsub := b.client.Subscribe(ctx, ticketChangeChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	b.logger.Infow("subscribed to ticket change events", "channel", ticketChangeChannel)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("ticket event subscriber stopped", "reason", ctx.Err())
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("ticket change channel closed")
				return nil
			}

			var change TicketChangeMessage
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				b.logger.Warnw("failed to unmarshal ticket change message",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}

			// Handled in the background so a slow consumer never stalls
			// the pub/sub loop.
			goroutine.SafeGo(b.logger, "ticket-change-handler", func() {
				handler(context.Background(), change)
			})
		}
	}
}
