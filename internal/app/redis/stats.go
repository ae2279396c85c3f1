package redis

import (
	"Contact-Search/internal/app/ds"
	"context"
	"fmt"
	"strings"
)

const (
	// Sorted set: member - нормализованный запрос, score - число поисков
	queryStatsKey = "search:queries"

	DefaultTopQueries = 10
)

// NormalizeQuery приводит запрос к виду, в котором он учитывается в статистике
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// IncrQuery увеличивает счётчик поискового запроса
func (c *Client) IncrQuery(ctx context.Context, query string) error {
	member := NormalizeQuery(query)
	if member == "" {
		return nil
	}
	if err := c.client.ZIncrBy(ctx, queryStatsKey, 1, member).Err(); err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}
	return nil
}

// TopQueries возвращает самые частые запросы по убыванию
func (c *Client) TopQueries(ctx context.Context, limit int) ([]ds.QueryStat, error) {
	if limit <= 0 {
		limit = DefaultTopQueries
	}

	entries, err := c.client.ZRevRangeWithScores(ctx, queryStatsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read query stats: %w", err)
	}

	stats := make([]ds.QueryStat, 0, len(entries))
	for _, entry := range entries {
		member, ok := entry.Member.(string)
		if !ok {
			continue
		}
		stats = append(stats, ds.QueryStat{Query: member, Count: int64(entry.Score)})
	}
	return stats, nil
}

// ResetQueryStats удаляет накопленную статистику
func (c *Client) ResetQueryStats(ctx context.Context) error {
	return c.Delete(ctx, queryStatsKey)
}
