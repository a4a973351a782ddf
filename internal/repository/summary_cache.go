package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const summaryTTL = 7 * 24 * time.Hour

// SummaryCache 在 Redis 中缓存后台生成的会话摘要。
type SummaryCache interface {
	Get(ctx context.Context, conversationID uint) (string, error)
	GetMany(ctx context.Context, conversationIDs []uint) (map[uint]string, error)
	Set(ctx context.Context, conversationID uint, summary string) error
}

type redisSummaryCache struct {
	redisClient *redis.Client
}

// NewSummaryCache 创建一个新的 SummaryCache 实例。
func NewSummaryCache(redisClient *redis.Client) SummaryCache {
	return &redisSummaryCache{redisClient: redisClient}
}

func summaryKey(conversationID uint) string {
	return fmt.Sprintf("conversation:%d:summary", conversationID)
}

// Get 未命中时返回空字符串和 nil。
func (r *redisSummaryCache) Get(ctx context.Context, conversationID uint) (string, error) {
	summary, err := r.redisClient.Get(ctx, summaryKey(conversationID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get conversation summary: %w", err)
	}
	return summary, nil
}

// GetMany 批量读取，只返回命中的条目。
func (r *redisSummaryCache) GetMany(ctx context.Context, conversationIDs []uint) (map[uint]string, error) {
	result := make(map[uint]string, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return result, nil
	}
	keys := make([]string, len(conversationIDs))
	for i, id := range conversationIDs {
		keys[i] = summaryKey(id)
	}
	values, err := r.redisClient.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation summaries: %w", err)
	}
	for i, v := range values {
		if s, ok := v.(string); ok && s != "" {
			result[conversationIDs[i]] = s
		}
	}
	return result, nil
}

func (r *redisSummaryCache) Set(ctx context.Context, conversationID uint, summary string) error {
	if err := r.redisClient.Set(ctx, summaryKey(conversationID), summary, summaryTTL).Err(); err != nil {
		return fmt.Errorf("failed to set conversation summary: %w", err)
	}
	return nil
}
