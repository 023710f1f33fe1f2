package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const (
	resultsKey = "results"
	statsKey   = "results:stats"
)

var ErrInvalidLimit = errors.New("limit must be positive")

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	Recent(ctx context.Context, limit int64) ([]*entity.Result, error)
	Stats(ctx context.Context) (map[string]int64, error)
}

type dbResult struct {
	client  *redis.Client
	history int64
}

// NewResultRepository keeps at most history results in the recent list; the totals are never trimmed.
func NewResultRepository(client *redis.Client, history int64) ResultRepository {
	return &dbResult{
		client:  client,
		history: history,
	}
}

func (that *dbResult) Save(ctx context.Context, result *entity.Result) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, resultsKey, resultJSON)
		pipe.LTrim(ctx, resultsKey, 0, that.history-1)
		pipe.HIncrBy(ctx, statsKey, result.Outcome(), 1)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (that *dbResult) Recent(ctx context.Context, limit int64) ([]*entity.Result, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	response, err := that.client.LRange(ctx, resultsKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}

	results := make([]*entity.Result, 0, len(response))
	for _, raw := range response {
		var result entity.Result
		if err = json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}

		results = append(results, &result)
	}

	return results, nil
}

func (that *dbResult) Stats(ctx context.Context) (map[string]int64, error) {
	response, err := that.client.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	stats := make(map[string]int64, len(response))
	for outcome, raw := range response {
		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid counter for %s: %w", outcome, err)
		}

		stats[outcome] = count
	}

	return stats, nil
}
