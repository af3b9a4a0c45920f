package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

const (
	sweepInterval = 10 * time.Minute
	idleTimeout   = 30 * time.Minute
)

// ipLimiter is a per-client bucket and the last time it was used
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TwoTierRateLimiter implements both global and per-IP rate limiting
type TwoTierRateLimiter struct {
	global     *rate.Limiter
	perIPRate  rate.Limit
	perIPBurst int
	clock      clockwork.Clock

	mutex sync.Mutex
	ips   map[string]*ipLimiter

	stop     chan struct{}
	stopOnce sync.Once
}

// NewTwoTierRateLimiter creates a limiter allowing globalRate requests per second
// overall and perIPRate per client, each with the given burst
func NewTwoTierRateLimiter(globalRate, globalBurst, perIPRate, perIPBurst int) *TwoTierRateLimiter {
	return NewTwoTierRateLimiterWithClock(clockwork.NewRealClock(), globalRate, globalBurst, perIPRate, perIPBurst)
}

// NewTwoTierRateLimiterWithClock creates a limiter that reads time from clock
func NewTwoTierRateLimiterWithClock(clock clockwork.Clock, globalRate, globalBurst, perIPRate, perIPBurst int) *TwoTierRateLimiter {
	limiter := &TwoTierRateLimiter{
		global:     rate.NewLimiter(rate.Limit(globalRate), globalBurst),
		perIPRate:  rate.Limit(perIPRate),
		perIPBurst: perIPBurst,
		clock:      clock,
		ips:        make(map[string]*ipLimiter),
		stop:       make(chan struct{}),
	}

	go limiter.sweep()

	return limiter
}

// Allow checks both limits. A request refused by its per-IP bucket gives its global token back.
func (l *TwoTierRateLimiter) Allow(clientIP string) bool {
	now := l.clock.Now()

	global := l.global.ReserveN(now, 1)
	if !global.OK() || global.DelayFrom(now) > 0 {
		global.CancelAt(now)
		return false
	}

	if !l.limiterFor(clientIP, now).AllowN(now, 1) {
		global.CancelAt(now)
		return false
	}

	return true
}

// Wait blocks until both limits admit the request or ctx is done
func (l *TwoTierRateLimiter) Wait(ctx context.Context, clientIP string) error {
	if err := l.global.Wait(ctx); err != nil {
		return err
	}
	return l.limiterFor(clientIP, l.clock.Now()).Wait(ctx)
}

// Close stops the idle limiter sweeper
func (l *TwoTierRateLimiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Tracked returns the number of clients with a live limiter
func (l *TwoTierRateLimiter) Tracked() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.ips)
}

func (l *TwoTierRateLimiter) limiterFor(clientIP string, now time.Time) *rate.Limiter {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	entry, ok := l.ips[clientIP]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.perIPRate, l.perIPBurst)}
		l.ips[clientIP] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep drops limiters of clients that have been idle for idleTimeout
func (l *TwoTierRateLimiter) sweep() {
	ticker := l.clock.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.Chan():
			l.removeIdle(l.clock.Now().Add(-idleTimeout))
		}
	}
}

func (l *TwoTierRateLimiter) removeIdle(cutoff time.Time) int {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	removed := 0
	for ip, entry := range l.ips {
		if entry.lastSeen.Before(cutoff) {
			delete(l.ips, ip)
			removed++
		}
	}
	return removed
}
