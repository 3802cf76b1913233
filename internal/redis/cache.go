package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/stillpoint/wellness-server-go/internal/model"
)

const publicListingKey = "sessions:public"

// ListingCache caches the public session listing. Every operation is
// failure-open: a broken Redis degrades to a database read, never an error.
type ListingCache struct {
	client *Client
	ttl    time.Duration
}

func NewListingCache(client *Client, ttl time.Duration) *ListingCache {
	return &ListingCache{client: client, ttl: ttl}
}

func (c *ListingCache) GetPublicListing(ctx context.Context) ([]model.Session, bool) {
	data, err := c.client.Get(ctx, publicListingKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			log.Warn().Err(err).Msg("public listing cache read failed")
		}
		return nil, false
	}

	var sessions []model.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		log.Warn().Err(err).Msg("public listing cache entry corrupt, dropping")
		c.InvalidatePublicListing(ctx)
		return nil, false
	}

	return sessions, true
}

func (c *ListingCache) SetPublicListing(ctx context.Context, sessions []model.Session) {
	data, err := json.Marshal(sessions)
	if err != nil {
		log.Warn().Err(err).Msg("public listing cache encode failed")
		return
	}

	if err := c.client.Set(ctx, publicListingKey, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("public listing cache write failed")
	}
}

func (c *ListingCache) InvalidatePublicListing(ctx context.Context) {
	if err := c.client.Del(ctx, publicListingKey).Err(); err != nil {
		log.Warn().Err(err).Msg("public listing cache invalidation failed")
	}
}
