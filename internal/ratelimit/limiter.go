// Package ratelimit throttles outbound calls per upstream API.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

type UpstreamLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

func NewUpstreamLimiter(config Config) *UpstreamLimiter {
	return &UpstreamLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func NewUpstreamLimiterWithDefaults() *UpstreamLimiter {
	return NewUpstreamLimiter(DefaultConfig())
}

func (l *UpstreamLimiter) GetLimiter(upstream string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[upstream]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[upstream]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize)
	l.limiters[upstream] = limiter
	return limiter
}

func (l *UpstreamLimiter) SetUpstreamLimit(upstream string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[upstream] = rate.NewLimiter(rate.Limit(rps), burst)
}

func (l *UpstreamLimiter) Wait(ctx context.Context, upstream string) error {
	return l.GetLimiter(upstream).Wait(ctx)
}
