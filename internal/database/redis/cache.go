package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// TeamMemberCache keeps a last-known-good copy of each equipe's membership.
// Postgres stays the only source read on the happy path; this copy is read
// exclusively when that lookup fails, so a stale entry can never widen the
// recipient set while the database is healthy.
type TeamMemberCache interface {
	GetMembers(ctx context.Context, equipeID string) ([]string, error)
	SetMembers(ctx context.Context, equipeID string, userIDs []string) error
}

type teamMemberCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTeamMemberCache(client *redis.Client, ttl time.Duration) TeamMemberCache {
	return &teamMemberCache{client: client, ttl: ttl}
}

func (c *teamMemberCache) GetMembers(ctx context.Context, equipeID string) ([]string, error) {
	data, err := c.client.Get(ctx, "equipe_members:"+equipeID).Result()
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *teamMemberCache) SetMembers(ctx context.Context, equipeID string, userIDs []string) error {
	data, err := json.Marshal(userIDs)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "equipe_members:"+equipeID, data, c.ttl).Err()
}
