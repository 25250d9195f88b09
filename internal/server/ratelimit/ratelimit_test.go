package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/careerview/internal/config"
)

// frozen returns a limiter whose clock only moves when advance is called.
func frozen(cfg *Config) (*Limiter, func(time.Duration)) {
	limiter := NewLimiter(cfg)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	limiter.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	return limiter, func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter, _ := frozen(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	// Should allow requests up to limit
	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/stored-career-paths", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", info.Limit)
		}
		if info.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, info.Remaining)
		}
	}

	// 11th request should be denied
	allowed, info := limiter.Allow("127.0.0.1", "/stored-career-paths", "GET")
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if info.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", info.Remaining)
	}
	if info.RetryAfter < 5*time.Second || info.RetryAfter > 6*time.Second {
		t.Errorf("Expected retry after about 6s, got %v", info.RetryAfter)
	}
}

func TestLimiter_Refill(t *testing.T) {
	limiter, advance := frozen(&Config{
		Enabled:       true,
		DefaultLimit:  60,
		DefaultBurst:  1,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("c", "/personas", "GET"); !allowed {
		t.Fatal("Expected first request to be allowed")
	}
	if allowed, _ := limiter.Allow("c", "/personas", "GET"); allowed {
		t.Fatal("Expected second request to be denied")
	}

	advance(time.Second)
	if allowed, _ := limiter.Allow("c", "/personas", "GET"); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	// When disabled, all requests should be allowed
	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/upload-resume", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed when disabled", i+1)
		}
		if info.Limit != 0 {
			t.Errorf("Expected limit 0 when disabled, got %d", info.Limit)
		}
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter, _ := frozen(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/career-path/", Method: "GET", Limit: 5, Window: time.Hour, Burst: 5},
		},
	})
	defer limiter.Stop()

	// Prefix-matched paths share one bucket
	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", fmt.Sprintf("/career-path/career_%d", i), "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 5 {
			t.Errorf("Expected limit 5, got %d", info.Limit)
		}
	}

	allowed, _ := limiter.Allow("127.0.0.1", "/career-path/another", "GET")
	if allowed {
		t.Error("Expected 6th request to be denied")
	}

	// Different endpoint should use default limit
	allowed, info := limiter.Allow("127.0.0.1", "/personas", "GET")
	if !allowed {
		t.Error("Expected different endpoint to be allowed")
	}
	if info.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", info.Limit)
	}

	// Other clients have their own buckets
	if allowed, _ := limiter.Allow("10.0.0.2", "/career-path/x", "GET"); !allowed {
		t.Error("Expected another client to be allowed")
	}
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter, _ := frozen(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		if allowed, _ := limiter.Allow("c", "/health", "GET"); !allowed {
			t.Fatalf("Expected health request %d to be allowed", i+1)
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter, _ := frozen(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	allowedCount := 0
	var mu sync.Mutex

	// Make 200 concurrent requests (should only allow 100)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := limiter.Allow("127.0.0.1", "/personas", "GET")
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	limiter, advance := frozen(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	limiter.Allow("idle", "/personas", "GET")
	advance(30 * time.Minute)
	limiter.Allow("active", "/personas", "GET")
	advance(45 * time.Minute)

	limiter.cleanupBuckets()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.buckets["idle|default"]; ok {
		t.Error("Expected idle bucket to be removed")
	}
	if _, ok := limiter.buckets["active|default"]; !ok {
		t.Error("Expected active bucket to be kept")
	}
}

func TestLimiter_Burst(t *testing.T) {
	limiter, _ := frozen(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/upload-resume", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	})
	defer limiter.Stop()

	// Should allow burst of 5 requests immediately
	for i := 0; i < 5; i++ {
		if allowed, _ := limiter.Allow("c", "/upload-resume", "POST"); !allowed {
			t.Errorf("Expected burst request %d to be allowed", i+1)
		}
	}

	// 6th request should be denied (burst exhausted, no refill yet)
	if allowed, _ := limiter.Allow("c", "/upload-resume", "POST"); allowed {
		t.Error("Expected request after burst to be denied")
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/personas", "GET")
	if !allowed {
		t.Error("Expected request to be allowed with default config")
	}
	if info.Limit != 120 {
		t.Errorf("Expected default limit 120, got %d", info.Limit)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(config.RateLimitConfig{
		Enabled:      true,
		DefaultRPM:   120,
		DefaultBurst: 20,
		LLMRPM:       20,
		LLMBurst:     5,
		UploadRPM:    10,
		UploadBurst:  3,
	})
	if !cfg.Enabled || cfg.DefaultLimit != 120 || cfg.DefaultBurst != 20 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	upload := MatchEndpoint("/upload-resume", "POST", cfg.EndpointConfigs)
	if upload == nil || upload.Limit != 10 || upload.Burst != 3 {
		t.Errorf("unexpected upload tier: %+v", upload)
	}
	chat := MatchEndpoint("/voice-chat/nurse", "POST", cfg.EndpointConfigs)
	if chat == nil || chat.Limit != 20 || chat.Burst != 5 {
		t.Errorf("unexpected model tier: %+v", chat)
	}
	if MatchEndpoint("/personas", "GET", cfg.EndpointConfigs) != nil {
		t.Error("Expected reads to fall through to the default limit")
	}

	if FromConfig(config.RateLimitConfig{Enabled: false}).Enabled {
		t.Error("Expected disabled config")
	}
}
