// Package ratelimit throttles model-backed HTTP routes per client.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info describes the outcome of one Allow check.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per client, route and method.
type Limiter struct {
	config *Config

	mu      sync.Mutex
	entries map[string]*entry

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter and starts its idle-entry sweeper.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    600,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			IdleTTL:         time.Hour,
		}
	}

	l := &Limiter{
		config:  config,
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go l.sweep(config.CleanupInterval)
	}
	return l
}

// Allow reports whether a request from clientID may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	cfg := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if cfg == nil {
		cfg = &EndpointConfig{Limit: l.config.DefaultLimit, Window: l.config.DefaultWindow}
	}
	if cfg.Limit <= 0 || cfg.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := time.Now()
	lim := l.limiterFor(clientID+" "+method+" "+path, cfg, now)

	allowed := lim.AllowN(now, 1)
	tokens := lim.TokensAt(now)

	info := Info{
		Allowed:   allowed,
		Limit:     cfg.Limit,
		Remaining: max(int(math.Floor(tokens)), 0),
	}
	if !allowed {
		info.RetryAfter = time.Duration((1 - tokens) / float64(lim.Limit()) * float64(time.Second))
	}
	return allowed, info
}

func (l *Limiter) limiterFor(key string, cfg *EndpointConfig, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		burst := cfg.Burst
		if burst <= 0 {
			burst = cfg.Limit
		}
		perSecond := rate.Limit(float64(cfg.Limit) / cfg.Window.Seconds())
		e = &entry{limiter: rate.NewLimiter(perSecond, burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

func (l *Limiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			l.evictIdle(now)
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops entries not seen within IdleTTL.
func (l *Limiter) evictIdle(now time.Time) {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := now.Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}

// Stop ends the sweeper goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
