// cancel.go
// run cancellation flags

package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cancelPrefix = "run:cancel:"
)

// SetCancelFlag sets 0 or 1 for a run id.
func (c *Client) SetCancelFlag(ctx context.Context, runID string, flag int) error {
	key := cancelPrefix + runID
	// Flags outlive any reasonable run by a wide margin.
	return c.rdb.Set(ctx, key, flag, time.Hour).Err()
}

// GetCancelFlag returns 0 or 1, defaults to 0 if not found.
func (c *Client) GetCancelFlag(ctx context.Context, runID string) (int, error) {
	key := cancelPrefix + runID
	val, err := c.rdb.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}
