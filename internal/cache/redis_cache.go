package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// RedisCache caches match classifications and league rankings in Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 30 * time.Minute
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

// classificationKey is signal:match:{league}:{match_id}
func classificationKey(league, matchID string) string {
	return fmt.Sprintf("signal:match:%s:%s", league, matchID)
}

// rankingKey is signal:ranking:{strategy}
func rankingKey(strategy models.Strategy) string {
	return fmt.Sprintf("signal:ranking:%s", strategy)
}

// SetClassification caches one classification
func (c *RedisCache) SetClassification(ctx context.Context, cl *models.Classification) error {
	key := classificationKey(cl.Championship, cl.MatchID)

	data, err := json.Marshal(cl)
	if err != nil {
		return fmt.Errorf("failed to marshal classification: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.ttl).
		Msg("cached classification")

	return nil
}

// GetClassification retrieves a cached classification
func (c *RedisCache) GetClassification(ctx context.Context, league, matchID string) (*models.Classification, error) {
	key := classificationKey(league, matchID)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("classification %s/%s: %w", league, matchID, models.ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var cl models.Classification
	if err := json.Unmarshal(data, &cl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal classification: %w", err)
	}

	return &cl, nil
}

// SetClassifications caches a batch of classifications in one pipeline.
// Entries without a match ID or league are skipped.
func (c *RedisCache) SetClassifications(ctx context.Context, list []*models.Classification) error {
	if len(list) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()

	queued := 0
	for _, cl := range list {
		if cl == nil || cl.MatchID == "" || cl.Championship == "" {
			continue
		}
		data, err := json.Marshal(cl)
		if err != nil {
			c.logger.Error().Err(err).Str("match_id", cl.MatchID).Msg("failed to marshal classification")
			continue
		}
		pipe.Set(ctx, classificationKey(cl.Championship, cl.MatchID), data, c.ttl)
		queued++
	}

	if queued == 0 {
		return nil
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute pipeline: %w", err)
	}

	c.logger.Info().
		Int("count", queued).
		Msg("cached batch of classifications")

	return nil
}

// GetByLeague retrieves all cached classifications of a league
func (c *RedisCache) GetByLeague(ctx context.Context, league string) ([]*models.Classification, error) {
	pattern := fmt.Sprintf("signal:match:%s:*", escapeGlob(league))

	var cursor uint64
	var keys []string

	for {
		var scanKeys []string
		var err error
		scanKeys, cursor, err = c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}

		keys = append(keys, scanKeys...)

		if cursor == 0 {
			break
		}
	}

	list := make([]*models.Classification, 0, len(keys))
	for _, key := range keys {
		data, err := c.client.Get(ctx, key).Bytes()
		if err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to get key")
			continue
		}

		var cl models.Classification
		if err := json.Unmarshal(data, &cl); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to unmarshal classification")
			continue
		}

		// A league containing ':' shares its key prefix with longer league names
		if cl.Championship != league {
			continue
		}

		list = append(list, &cl)
	}

	return list, nil
}

// escapeGlob escapes the characters SCAN treats as pattern syntax
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SetRankings replaces the cached league rankings of a strategy
func (c *RedisCache) SetRankings(ctx context.Context, strategy models.Strategy, rankings []models.LeagueRanking) error {
	key := rankingKey(strategy)

	data, err := json.Marshal(rankings)
	if err != nil {
		return fmt.Errorf("failed to marshal rankings: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Int("leagues", len(rankings)).
		Msg("cached rankings")

	return nil
}

// GetRankings retrieves the cached league rankings of a strategy
func (c *RedisCache) GetRankings(ctx context.Context, strategy models.Strategy) ([]models.LeagueRanking, error) {
	data, err := c.client.Get(ctx, rankingKey(strategy)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s rankings: %w", strategy, models.ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var rankings []models.LeagueRanking
	if err := json.Unmarshal(data, &rankings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rankings: %w", err)
	}

	return rankings, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
