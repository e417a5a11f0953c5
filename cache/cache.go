package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blockpass-backend/logger"
	"blockpass-backend/model"

	"github.com/go-redis/redis"
)

const defaultTTL = 5 * time.Minute

// Events is a best-effort read cache of event lookups. A miss or a redis
// error falls through to the database; writes go through the registry and
// invalidate the key. A nil *Events disables caching.
type Events struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEvents(client *redis.Client, ttl time.Duration) *Events {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Events{client: client, ttl: ttl}
}

func key(eventID uint64) string {
	return fmt.Sprintf("event-%d", eventID)
}

func (c *Events) Get(ctx context.Context, eventID uint64) (*model.Event, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(key(eventID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warnf(ctx, "cache: error fetching event %d: %+v", eventID, err)
		return nil, false
	}

	var ev model.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		logger.Warnf(ctx, "cache: error unmarshalling event %d: %+v", eventID, err)
		return nil, false
	}
	return &ev, true
}

func (c *Events) Set(ctx context.Context, ev *model.Event) {
	if c == nil {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		logger.Warnf(ctx, "cache: error marshalling event %d: %+v", ev.EventID, err)
		return
	}
	if err := c.client.Set(key(ev.EventID), data, c.ttl).Err(); err != nil {
		logger.Warnf(ctx, "cache: error storing event %d: %+v", ev.EventID, err)
	}
}

func (c *Events) Invalidate(ctx context.Context, eventID uint64) {
	if c == nil {
		return
	}

	if err := c.client.Del(key(eventID)).Err(); err != nil {
		logger.Warnf(ctx, "cache: error invalidating event %d: %+v", eventID, err)
	}
}
