package overrides

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zpam/bayes-classifier/pkg/classifier"
)

// RedisConfig holds Redis override source configuration.
type RedisConfig struct {
	// Redis connection
	RedisURL    string `json:"redis_url" yaml:"redis_url"`
	KeyPrefix   string `json:"key_prefix" yaml:"key_prefix"`
	DatabaseNum int    `json:"database_num" yaml:"database_num"`

	// Per-lookup timeout
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// DefaultRedisConfig returns default Redis configuration.
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		RedisURL:  "redis://localhost:6379",
		KeyPrefix: "bayes:overrides",
		Timeout:   500 * time.Millisecond,
	}
}

// RedisSource serves override probabilities from Redis, so a table
// mined on one host can refine scoring on another. Lookup failures
// (connection loss, missing keys, malformed values) surface as errors
// and the classifier falls back to its own estimates, so an unhealthy
// Redis degrades accuracy rather than availability.
type RedisSource struct {
	client *redis.Client
	config *RedisConfig
	ctx    context.Context
}

// NewRedisSource connects to Redis and verifies the connection.
func NewRedisSource(config *RedisConfig) (*RedisSource, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %v", err)
	}

	opt.DB = config.DatabaseNum
	client := redis.NewClient(opt)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis connection failed: %v", err)
	}

	return &RedisSource{
		client: client,
		config: config,
		ctx:    ctx,
	}, nil
}

// IsFrequent reports whether the feature's frequent flag is set in
// Redis. Any lookup failure counts as not frequent.
func (rs *RedisSource) IsFrequent(f classifier.Feature) bool {
	ctx, cancel := rs.lookupContext()
	defer cancel()

	val, err := rs.client.Get(ctx, rs.frequentKey(f)).Result()
	if err != nil {
		return false
	}
	return val == "1"
}

// Probability fetches the override probability for (l, f).
func (rs *RedisSource) Probability(l classifier.Label, f classifier.Feature) (float64, error) {
	ctx, cancel := rs.lookupContext()
	defer cancel()

	val, err := rs.client.Get(ctx, rs.probKey(l, f)).Result()
	if err == redis.Nil {
		return 0, fmt.Errorf("p(%s|%s): %w", f, l, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("fetch p(%s|%s): %v", f, l, err)
	}

	p, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed p(%s|%s)=%q: %v", f, l, val, err)
	}
	return p, nil
}

// Publish stores a mined override table in Redis, replacing flags and
// probabilities entry by entry.
func (rs *RedisSource) Publish(t *Table) error {
	ctx, cancel := context.WithTimeout(rs.ctx, 10*rs.timeout())
	defer cancel()

	pipe := rs.client.Pipeline()
	for _, f := range t.FrequentFeatures() {
		pipe.Set(ctx, rs.frequentKey(f), "1", 0)
	}
	for key, p := range t.Probs() {
		pipe.Set(ctx, rs.probKey(key.Label, key.Feature), strconv.FormatFloat(p, 'g', -1, 64), 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish overrides: %v", err)
	}
	return nil
}

// Close closes the Redis connection.
func (rs *RedisSource) Close() error {
	return rs.client.Close()
}

func (rs *RedisSource) lookupContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(rs.ctx, rs.timeout())
}

// timeout returns the configured per-lookup timeout, falling back to the
// default so a zero value never produces an already-expired context.
func (rs *RedisSource) timeout() time.Duration {
	if rs.config.Timeout <= 0 {
		return DefaultRedisConfig().Timeout
	}
	return rs.config.Timeout
}

func (rs *RedisSource) frequentKey(f classifier.Feature) string {
	return fmt.Sprintf("%s:frequent:%s", rs.config.KeyPrefix, f)
}

func (rs *RedisSource) probKey(l classifier.Label, f classifier.Feature) string {
	return fmt.Sprintf("%s:prob:%s:%s", rs.config.KeyPrefix, l, f)
}

var _ classifier.OverrideSource = (*RedisSource)(nil)
