// Package ratelimit provides per-client rate limiting using a token bucket.
// Generation endpoints get tighter limits than read endpoints because each
// request costs a model call.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// tokenBucket refills at a steady rate up to a burst capacity
type tokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// allow consumes a token if one is available
func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.tokens = min(float64(tb.capacity), tb.tokens+now.Sub(tb.lastRefill).Seconds()*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// status reports remaining tokens without consuming one
func (tb *tokenBucket) status() (remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.tokens = min(float64(tb.capacity), tb.tokens+now.Sub(tb.lastRefill).Seconds()*tb.refillRate)
	tb.lastRefill = now

	remaining = int(tb.tokens)
	if tb.tokens < float64(tb.capacity) && tb.refillRate > 0 {
		missing := float64(tb.capacity) - tb.tokens
		resetTime = now.Add(time.Duration(missing/tb.refillRate) * time.Second)
	} else {
		resetTime = now
	}
	return remaining, resetTime
}

// Rule is a rate limit for a path prefix
type Rule struct {
	Prefix string
	Limit  int
	Window time.Duration
	Burst  int
}

// Info describes the rate limit state returned with every decision
type Info struct {
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter applies per-client, per-rule token buckets
type Limiter struct {
	cfg     *Config
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	done    chan struct{}
}

// NewLimiter creates a limiter and starts its idle-bucket cleanup loop
func NewLimiter(cfg *Config) *Limiter {
	l := &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*tokenBucket),
		done:    make(chan struct{}),
	}
	if cfg.Enabled {
		go l.cleanupLoop()
	}
	return l
}

// Stop terminates the cleanup goroutine
func (l *Limiter) Stop() {
	close(l.done)
}

// Allow reports whether the client may make this request
func (l *Limiter) Allow(clientID, path string) (bool, Info) {
	if !l.cfg.Enabled {
		return true, Info{}
	}

	rule := l.ruleFor(path)
	bucket := l.bucketFor(clientID + "|" + rule.Prefix)

	allowed := bucket.allow()
	remaining, resetTime := bucket.status()
	info := Info{
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: resetTime,
	}
	if !allowed {
		info.RetryAfter = time.Until(resetTime)
		if info.RetryAfter < 0 {
			info.RetryAfter = 0
		}
	}
	return allowed, info
}

// ruleFor picks the most specific matching rule, falling back to the default
func (l *Limiter) ruleFor(path string) Rule {
	best := Rule{Prefix: "", Limit: l.cfg.DefaultLimit, Window: l.cfg.DefaultWindow}
	for _, rule := range l.cfg.Rules {
		if strings.HasPrefix(path, rule.Prefix) && len(rule.Prefix) > len(best.Prefix) {
			best = rule
		}
	}
	return best
}

func (l *Limiter) bucketFor(key string) *tokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[key]
	if !ok {
		rule := l.ruleFor(strings.SplitN(key, "|", 2)[1])
		burst := rule.Burst
		if burst == 0 {
			burst = rule.Limit
		}
		bucket = newTokenBucket(burst, float64(rule.Limit)/rule.Window.Seconds())
		l.buckets[key] = bucket
	}
	return bucket
}

// cleanupLoop drops full buckets periodically so idle clients do not
// accumulate.
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.mu.Lock()
			for key, bucket := range l.buckets {
				remaining, _ := bucket.status()
				if remaining >= bucket.capacity {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
