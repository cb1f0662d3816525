package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
)

type InventoryCache interface {
	SetEvent(ctx context.Context, event *entity.EventWithVenue) error
	GetEvent(ctx context.Context, eventID int64) (*entity.EventWithVenue, error)
	DeleteEvent(ctx context.Context, eventID int64) error
}

type inventoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewInventoryCache(client *redis.Client, ttl time.Duration) InventoryCache {
	return &inventoryCache{
		client: client,
		ttl:    ttl,
	}
}

func eventKey(eventID int64) string {
	return "event:" + strconv.FormatInt(eventID, 10)
}

func (c *inventoryCache) SetEvent(ctx context.Context, event *entity.EventWithVenue) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, eventKey(event.ID), data, c.ttl).Err()
}

func (c *inventoryCache) GetEvent(ctx context.Context, eventID int64) (*entity.EventWithVenue, error) {
	data, err := c.client.Get(ctx, eventKey(eventID)).Result()
	if err != nil {
		return nil, err
	}

	var event entity.EventWithVenue
	err = json.Unmarshal([]byte(data), &event)
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (c *inventoryCache) DeleteEvent(ctx context.Context, eventID int64) error {
	return c.client.Del(ctx, eventKey(eventID)).Err()
}
