// Package redis publishes best-effort item events for live board updates.
// Subscribers (the frontend push layer) are decoupled from the request path:
// a publish failure is logged and dropped, never surfaced to the caller.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/lu-nia/lostfound/internal/domain"
)

// Channel carries all item events.
const Channel = "lostfound.items"

// Event is the wire format published to Channel.
type Event struct {
	Type      string             `json:"type"` // "created", "status_changed", "deleted"
	ItemID    uuid.UUID          `json:"item_id"`
	Status    *domain.ItemStatus `json:"status,omitempty"`
	OldStatus *domain.ItemStatus `json:"old_status,omitempty"`
	At        time.Time          `json:"at"`
}

type Events struct {
	client *redis.Client
}

func New(ctx context.Context, addr, password string, db int) (*Events, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &Events{client: client}, nil
}

func (e *Events) Close() error {
	if err := e.client.Close(); err != nil {
		return fmt.Errorf("redis.Events.Close: %w", err)
	}
	return nil
}

func (e *Events) ItemCreated(ctx context.Context, item *domain.Item) {
	e.publish(ctx, Event{Type: "created", ItemID: item.ID, Status: &item.Status, At: item.CreatedAt})
}

func (e *Events) ItemStatusChanged(ctx context.Context, item *domain.Item, old domain.ItemStatus) {
	e.publish(ctx, Event{Type: "status_changed", ItemID: item.ID, Status: &item.Status, OldStatus: &old, At: item.UpdatedAt})
}

func (e *Events) ItemDeleted(ctx context.Context, itemID uuid.UUID) {
	e.publish(ctx, Event{Type: "deleted", ItemID: itemID, At: time.Now().UTC()})
}

func (e *Events) publish(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Warn().Err(err).Str("type", ev.Type).Msg("redis: marshal item event")
		return
	}

	if err := e.client.Publish(ctx, Channel, payload).Err(); err != nil {
		log.Warn().Err(err).Str("type", ev.Type).Str("item_id", ev.ItemID.String()).Msg("redis: publish item event")
	}
}

// Subscribe streams item events until ctx is cancelled. The returned cleanup
// must be called to release the underlying subscription.
func (e *Events) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	sub := e.client.Subscribe(ctx, Channel)

	// Wait for subscription confirmation.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("redis.Events.Subscribe: receive confirmation: %w", err)
	}

	out := make(chan Event, 64)
	redisCh := sub.Channel()

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-redisCh:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Warn().Err(err).Msg("redis: decode item event")
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	cleanup := func() {
		_ = sub.Close()
	}

	return out, cleanup, nil
}
