package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  5,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.2": true},
		EndpointConfigs: []EndpointConfig{
			{Path: "/health", Method: "GET"},
			{Path: "/api/analyze-resume", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
			{Path: "/api/jobs/", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 3},
		},
	}
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *time.Time) {
	t.Helper()
	l := NewLimiter(cfg)
	t.Cleanup(l.Stop)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l, _ := newTestLimiter(t, testConfig())

	for i := 0; i < 2; i++ {
		ok, info := l.Allow("1.2.3.4", "/api/analyze-resume", "POST")
		require.True(t, ok, "request %d", i+1)
		assert.Equal(t, 2, info.Limit)
		assert.Equal(t, 1-i, info.Remaining)
	}

	ok, info := l.Allow("1.2.3.4", "/api/analyze-resume", "POST")
	assert.False(t, ok)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, 30*time.Minute, info.RetryAfter.Round(time.Second))
}

func TestLimiter_Refill(t *testing.T) {
	l, now := newTestLimiter(t, testConfig())

	for i := 0; i < 3; i++ {
		l.Allow("c", "/api/jobs/abc", "PUT")
	}
	ok, _ := l.Allow("c", "/api/jobs/abc", "PUT")
	require.False(t, ok)

	*now = now.Add(time.Second)
	ok, _ = l.Allow("c", "/api/jobs/abc", "PUT")
	assert.True(t, ok, "one token per second should refill")
}

func TestLimiter_SeparateClientsAndTiers(t *testing.T) {
	l, _ := newTestLimiter(t, testConfig())

	for i := 0; i < 2; i++ {
		l.Allow("a", "/api/analyze-resume", "POST")
	}
	ok, _ := l.Allow("a", "/api/analyze-resume", "POST")
	assert.False(t, ok)

	ok, _ = l.Allow("b", "/api/analyze-resume", "POST")
	assert.True(t, ok, "other clients have their own bucket")

	ok, info := l.Allow("a", "/api/jobs", "GET")
	assert.True(t, ok, "default tier is separate")
	assert.Equal(t, 5, info.Limit)
}

func TestLimiter_PrefixTierSharesBucket(t *testing.T) {
	l, _ := newTestLimiter(t, testConfig())

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("c", fmt.Sprintf("/api/jobs/%d", i), "PUT")
		require.True(t, ok)
	}
	ok, _ := l.Allow("c", "/api/jobs/99", "PUT")
	assert.False(t, ok)
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_ListsAndUnlimited(t *testing.T) {
	l, _ := newTestLimiter(t, testConfig())

	for i := 0; i < 10; i++ {
		ok, _ := l.Allow("10.0.0.1", "/api/analyze-resume", "POST")
		assert.True(t, ok)
		ok, _ = l.Allow("x", "/health", "GET")
		assert.True(t, ok)
	}
	ok, _ := l.Allow("10.0.0.2", "/api/jobs", "GET")
	assert.False(t, ok)
	assert.Equal(t, 0, l.Len())
}

func TestLimiter_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	l, _ := newTestLimiter(t, cfg)

	for i := 0; i < 20; i++ {
		ok, _ := l.Allow("c", "/api/analyze-resume", "POST")
		require.True(t, ok)
	}
}

func TestLimiter_CleanupRemovesIdleBuckets(t *testing.T) {
	cfg := testConfig()
	cfg.IdleTimeout = time.Minute
	l, now := newTestLimiter(t, cfg)

	l.Allow("old", "/api/jobs", "GET")
	*now = now.Add(2 * time.Minute)
	l.Allow("new", "/api/jobs", "GET")

	l.cleanupBuckets()
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Concurrent(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 100
	l := NewLimiter(cfg)
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 150; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/api/jobs", "GET"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.GreaterOrEqual(t, allowed, 100)
	assert.Less(t, allowed, 150)
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	cfg := testConfig()
	cfg.CleanupInterval = time.Millisecond
	l := NewLimiter(cfg)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path, method string
		wantPath     string
		unlimited    bool
	}{
		{"/health", "GET", "/health", true},
		{"/metrics", "GET", "/metrics", true},
		{"/api/analyze-resume", "POST", "/api/analyze-resume", false},
		{"/api/jobs", "POST", "/api/jobs", false},
		{"/api/jobs/123", "DELETE", "/api/jobs/", false},
		{"/api/users/login", "POST", "/api/users/login", false},
		{"/api/jobs", "GET", "", false},
		{"/api/analyze-resume", "GET", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantPath == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.unlimited, got.Unlimited())
		})
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(true, 50, time.Minute, 0, []string{"1.1.1.1, 2.2.2.2"}, nil)
	assert.True(t, cfg.Whitelist["1.1.1.1"])
	assert.True(t, cfg.Whitelist["2.2.2.2"])
	assert.Empty(t, cfg.Blacklist)
	assert.NotEmpty(t, cfg.EndpointConfigs)
}
