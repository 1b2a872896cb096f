package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter on a manual clock without the cleanup goroutine
func newTestLimiter(cfg *Config) (*Limiter, *time.Time) {
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }
	return l, &clock
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 1, 3))
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("127.0.0.1", "/api/keywords", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/api/keywords", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, time.Second, info.RetryAfter)
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(NewConfig(true, 1, 1))
	defer l.Stop()

	allowed, _ := l.Allow("c", "/api/match", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("c", "/api/match", "POST")
	require.False(t, allowed)

	*clock = clock.Add(time.Second)
	allowed, _ = l.Allow("c", "/api/match", "POST")
	assert.True(t, allowed)
}

func TestLimiter_SeparateBuckets(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 1, 1))
	defer l.Stop()

	ok1, _ := l.Allow("a", "/api/keywords", "POST")
	ok2, _ := l.Allow("b", "/api/keywords", "POST")
	ok3, _ := l.Allow("a", "/api/skill-gap", "POST")
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.True(t, ok3)
	assert.Equal(t, 3, l.Len())
}

func TestLimiter_WhitelistBlacklistDisabled(t *testing.T) {
	cfg := NewConfig(true, 1, 1)
	cfg.Whitelist = ParseIPList("10.0.0.1, 10.0.0.2")
	cfg.Blacklist = ParseIPList("192.168.1.9")
	l, _ := newTestLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.2", "/api/keywords", "POST")
		assert.True(t, allowed)
	}

	allowed, _ := l.Allow("192.168.1.9", "/health", "GET")
	assert.False(t, allowed)

	disabled, _ := newTestLimiter(NewConfig(false, 1, 1))
	for i := 0; i < 5; i++ {
		allowed, info := disabled.Allow("x", "/analyze", "POST")
		assert.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	l, _ := newTestLimiter(NewConfig(true, 100, 100))
	defer l.Stop()

	// /analyze has its own, stricter burst
	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("c", "/analyze", "POST")
		require.True(t, allowed)
	}
	allowed, info := l.Allow("c", "/analyze", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 5, info.Limit)
	assert.InDelta(t, 3*time.Second, info.RetryAfter, float64(10*time.Millisecond))

	// health is unlimited
	for i := 0; i < 200; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		require.True(t, allowed)
	}
	assert.Equal(t, 1, l.Len())
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/analyze", Method: "POST", RPS: 1},
		{Path: "/api/analyses/", Method: "GET", RPS: 2},
		{Path: "/", Method: "GET"},
	}

	assert.Equal(t, 1.0, MatchEndpoint("/analyze", "POST", configs).RPS)
	assert.Nil(t, MatchEndpoint("/analyze", "GET", configs))
	assert.Equal(t, 2.0, MatchEndpoint("/api/analyses/123", "GET", configs).RPS)
	assert.NotNil(t, MatchEndpoint("/", "GET", configs))
	// "/" is exact only
	assert.Nil(t, MatchEndpoint("/api/keywords", "GET", configs))
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(NewConfig(true, 1, 1))
	defer l.Stop()

	l.Allow("old", "/api/keywords", "POST")
	*clock = clock.Add(2 * time.Hour)
	l.Allow("new", "/api/keywords", "POST")
	require.Equal(t, 2, l.Len())

	l.cleanupBuckets()
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Concurrent(t *testing.T) {
	cfg := NewConfig(true, 0.001, 50)
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	defer l.Stop()

	var allowedCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/api/keywords", "POST"); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(50), allowedCount.Load())
}

func TestNewLimiter_NilConfigAndStop(t *testing.T) {
	l := NewLimiter(nil)
	allowed, _ := l.Allow("c", "/api/keywords", "POST")
	assert.True(t, allowed)

	l.Stop()
	l.Stop()
}
