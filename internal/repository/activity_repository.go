package repository

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/ops-console/internal/domain"
)

// ActivityRepository stores the recent activity feed.
type ActivityRepository interface {
	Push(ctx context.Context, activity domain.Activity) error
	Recent(ctx context.Context, limit int64) ([]domain.Activity, error)
}

type activityRepository struct {
	client   redis.Cmdable
	key      string
	maxItems int64
}

// NewActivityRepository returns a feed kept in a capped Redis list under key.
func NewActivityRepository(client redis.Cmdable, key string, maxItems int64) ActivityRepository {
	if maxItems <= 0 {
		maxItems = 50
	}
	return &activityRepository{client: client, key: key, maxItems: maxItems}
}

func (r *activityRepository) Push(ctx context.Context, activity domain.Activity) error {
	payload, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.key, payload)
	pipe.LTrim(ctx, r.key, 0, r.maxItems-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *activityRepository) Recent(ctx context.Context, limit int64) ([]domain.Activity, error) {
	if limit <= 0 || limit > r.maxItems {
		limit = r.maxItems
	}
	raw, err := r.client.LRange(ctx, r.key, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}
	result := make([]domain.Activity, 0, len(raw))
	for _, item := range raw {
		var activity domain.Activity
		if err := json.Unmarshal([]byte(item), &activity); err != nil {
			continue
		}
		result = append(result, activity)
	}
	return result, nil
}
