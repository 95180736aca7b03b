package services

import (
	"fmt"
	"sync"
	"time"
)

const (
	maxLoginAttempts = 5
	blockDuration    = 15 * time.Minute
	attemptWindow    = 30 * time.Minute
)

type loginAttempt struct {
	at      time.Time
	success bool
}

// LoginAttemptTracker throttles repeated failed logins per email+IP pair.
// Every attempt is kept with its outcome; a pair is blocked while it has
// maxLoginAttempts or more failures inside blockDuration. A successful
// login is recorded like any other attempt and does not erase earlier
// failures. State is in-memory and resets on restart.
type LoginAttemptTracker struct {
	mu       sync.Mutex
	attempts map[string][]loginAttempt
	now      func() time.Time
}

// NewLoginAttemptTracker creates a tracker using the wall clock.
func NewLoginAttemptTracker() *LoginAttemptTracker {
	return &LoginAttemptTracker{
		attempts: make(map[string][]loginAttempt),
		now:      time.Now,
	}
}

func attemptKey(email, ip string) string {
	return fmt.Sprintf("%s:%s", email, ip)
}

// prune drops attempts older than attemptWindow and returns what is left.
// Callers must hold the mutex.
func (t *LoginAttemptTracker) prune(key string, now time.Time) []loginAttempt {
	attempts := t.attempts[key]
	kept := attempts[:0]
	for _, attempt := range attempts {
		if now.Sub(attempt.at) < attemptWindow {
			kept = append(kept, attempt)
		}
	}
	if len(kept) == 0 {
		delete(t.attempts, key)
		return nil
	}
	t.attempts[key] = kept
	return kept
}

// recentFailures counts failed attempts inside blockDuration and returns
// the time of the newest one.
func recentFailures(attempts []loginAttempt, now time.Time) (int, time.Time) {
	count := 0
	var last time.Time
	for _, attempt := range attempts {
		if !attempt.success && now.Sub(attempt.at) < blockDuration {
			count++
			if attempt.at.After(last) {
				last = attempt.at
			}
		}
	}
	return count, last
}

// IsBlocked reports whether the pair is currently blocked and, if so, how
// many whole minutes remain (rounded up, at least 1).
func (t *LoginAttemptTracker) IsBlocked(email, ip string) (bool, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	count, last := recentFailures(t.prune(attemptKey(email, ip), now), now)
	if count < maxLoginAttempts {
		return false, 0
	}
	remaining := blockDuration - now.Sub(last)
	minutes := int(remaining.Minutes())
	if remaining%time.Minute != 0 || minutes == 0 {
		minutes++
	}
	return true, minutes
}

// RecordFailure stores a failed attempt and returns true when the pair just
// crossed the threshold and is now blocked.
func (t *LoginAttemptTracker) RecordFailure(email, ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := attemptKey(email, ip)
	now := t.now()
	t.attempts[key] = append(t.attempts[key], loginAttempt{at: now})
	count, _ := recentFailures(t.prune(key, now), now)
	return count >= maxLoginAttempts
}

// RecordSuccess stores a successful attempt. Earlier failures stay in the
// window; five failures still block even with a success in between.
func (t *LoginAttemptTracker) RecordSuccess(email, ip string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := attemptKey(email, ip)
	now := t.now()
	t.attempts[key] = append(t.attempts[key], loginAttempt{at: now, success: true})
	t.prune(key, now)
}

// RemainingAttempts returns how many more failures the pair can afford
// before being blocked.
func (t *LoginAttemptTracker) RemainingAttempts(email, ip string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	count, _ := recentFailures(t.prune(attemptKey(email, ip), now), now)
	if count >= maxLoginAttempts {
		return 0
	}
	return maxLoginAttempts - count
}

// BlockTimeRemaining returns how long until the newest failure ages out of
// the block, zero when there is none.
func (t *LoginAttemptTracker) BlockTimeRemaining(email, ip string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	var last time.Time
	for _, attempt := range t.prune(attemptKey(email, ip), now) {
		if !attempt.success && attempt.at.After(last) {
			last = attempt.at
		}
	}
	if last.IsZero() {
		return 0
	}
	remaining := blockDuration - now.Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Sweep drops stale records. Called periodically from the cron scheduler.
func (t *LoginAttemptTracker) Sweep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	for key := range t.attempts {
		t.prune(key, now)
	}
}
