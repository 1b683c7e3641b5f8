package overrides

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/zpam/bayes-classifier/pkg/classifier"
)

func testRedisSource(t *testing.T) *RedisSource {
	t.Helper()

	cfg := DefaultRedisConfig()
	cfg.KeyPrefix = fmt.Sprintf("bayes:test:%d", time.Now().UnixNano())

	src, err := NewRedisSource(cfg)
	if err != nil {
		t.Skipf("Redis not available, skipping test: %v", err)
	}
	t.Cleanup(func() {
		keys, err := src.client.Keys(src.ctx, cfg.KeyPrefix+":*").Result()
		if err == nil && len(keys) > 0 {
			src.client.Del(src.ctx, keys...)
		}
		src.Close()
	})
	return src
}

func TestRedisSourcePublishAndLookup(t *testing.T) {
	src := testRedisSource(t)

	table := NewTable()
	table.SetFrequent("w")
	if err := table.Set("spam", "w", 0.8); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := table.Set("ham", "w", 0.25); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := src.Publish(table); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if !src.IsFrequent("w") {
		t.Error("IsFrequent(w) = false, want true")
	}
	if src.IsFrequent("never-published") {
		t.Error("IsFrequent(never-published) = true, want false")
	}

	p, err := src.Probability("spam", "w")
	if err != nil {
		t.Fatalf("Probability failed: %v", err)
	}
	if math.Abs(p-0.8) > 1e-12 {
		t.Errorf("Probability(spam, w) = %g, want 0.8", p)
	}
}

func TestRedisSourceMissingEntry(t *testing.T) {
	src := testRedisSource(t)

	if _, err := src.Probability("spam", "absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Probability error = %v, want ErrNotFound", err)
	}
}

func TestRedisSourceMalformedValue(t *testing.T) {
	src := testRedisSource(t)

	if err := src.client.Set(src.ctx, src.probKey("spam", "w"), "not-a-float", 0).Err(); err != nil {
		t.Fatalf("failed to seed malformed value: %v", err)
	}

	// A malformed entry must surface as an error, which the classifier
	// absorbs via its fallback contract.
	if _, err := src.Probability("spam", "w"); err == nil {
		t.Error("expected error for malformed value")
	}

	model, err := classifier.Train([]classifier.Example{
		{Features: classifier.FeatureSet{"w": "buy"}, Label: "spam"},
		{Features: classifier.FeatureSet{"w": "hello"}, Label: "ham"},
	})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if err := src.client.Set(src.ctx, src.frequentKey("w"), "1", 0).Err(); err != nil {
		t.Fatalf("failed to seed frequent flag: %v", err)
	}

	got, err := model.ClassifyWith(classifier.FeatureSet{"w": "buy"}, src)
	if err != nil {
		t.Fatalf("ClassifyWith failed: %v", err)
	}
	if got != "spam" {
		t.Errorf("ClassifyWith = %q, want spam", got)
	}
}

func TestRedisSourceTimeoutFloor(t *testing.T) {
	// A zero or negative configured timeout must fall back to the
	// default; otherwise Publish and lookups would run against an
	// already-expired context.
	for _, configured := range []time.Duration{0, -time.Second} {
		rs := &RedisSource{config: &RedisConfig{Timeout: configured}}
		if got := rs.timeout(); got != DefaultRedisConfig().Timeout {
			t.Errorf("timeout() with %v configured = %v, want default %v",
				configured, got, DefaultRedisConfig().Timeout)
		}
	}

	rs := &RedisSource{config: &RedisConfig{Timeout: 2 * time.Second}}
	if got := rs.timeout(); got != 2*time.Second {
		t.Errorf("timeout() = %v, want 2s", got)
	}
}

func TestRedisSourceInvalidURL(t *testing.T) {
	cfg := DefaultRedisConfig()
	cfg.RedisURL = "not-a-url"

	if _, err := NewRedisSource(cfg); err == nil {
		t.Fatal("expected error for invalid Redis URL")
	}
}
