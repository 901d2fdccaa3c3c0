// results.go
// finished-run result cache

package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vamshi737/smartestimator/data"
)

const (
	resultPrefix = "run:result:"
)

// SetResult caches a finished run record for quick retrieval without
// touching the archive on disk.
func (c *Client) SetResult(ctx context.Context, runID string, result *data.EstimateResult) error {
	key := resultPrefix + runID
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, time.Hour).Err()
}

// GetResult returns a cached run record, or an error when absent.
func (c *Client) GetResult(ctx context.Context, runID string) (*data.EstimateResult, error) {
	key := resultPrefix + runID
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var result data.EstimateResult
	err = json.Unmarshal(raw, &result)
	return &result, err
}
