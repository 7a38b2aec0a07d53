package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	ActionSendMessage = "send_message"
	ActionStartChat   = "start_chat"
	ActionLogin       = "login"
)

// Policy is the sustained rate and burst for one action.
type Policy struct {
	Every time.Duration
	Burst int
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per user and action.
type RateLimiter struct {
	policies map[string]Policy
	fallback Policy
	buckets  map[string]*entry
	mutex    sync.Mutex
	now      func() time.Time
}

// NewRateLimiter creates a limiter allowing messagesPerMinute sends per user.
func NewRateLimiter(messagesPerMinute int) *RateLimiter {
	if messagesPerMinute <= 0 {
		messagesPerMinute = 30
	}
	return &RateLimiter{
		policies: map[string]Policy{
			ActionSendMessage: {Every: time.Minute / time.Duration(messagesPerMinute), Burst: messagesPerMinute},
			ActionStartChat:   {Every: 2 * time.Minute, Burst: 10},
			ActionLogin:       {Every: 12 * time.Second, Burst: 5},
		},
		fallback: Policy{Every: 3 * time.Second, Burst: 20},
		buckets:  make(map[string]*entry),
		now:      time.Now,
	}
}

// SetPolicy overrides the policy for action. Existing buckets keep theirs.
func (rl *RateLimiter) SetPolicy(action string, p Policy) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.policies[action] = p
}

// Allow consumes a token for key/action. When none is available it reports
// how long until one will be.
func (rl *RateLimiter) Allow(key, action string) (bool, time.Duration) {
	rl.mutex.Lock()
	now := rl.now()
	bucketKey := key + ":" + action
	e, ok := rl.buckets[bucketKey]
	if !ok {
		p, found := rl.policies[action]
		if !found {
			p = rl.fallback
		}
		e = &entry{limiter: rate.NewLimiter(rate.Every(p.Every), p.Burst)}
		rl.buckets[bucketKey] = e
	}
	e.lastSeen = now
	rl.mutex.Unlock()

	r := e.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 0
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for key, e := range rl.buckets {
		if now.Sub(e.lastSeen) > maxIdle {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) Size() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return len(rl.buckets)
}

// StartCleanupRoutine runs Cleanup every interval until done is closed.
func (rl *RateLimiter) StartCleanupRoutine(interval time.Duration, done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			case <-done:
				return
			}
		}
	}()
}
