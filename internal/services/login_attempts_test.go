package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTrackerAt(start time.Time) (*LoginAttemptTracker, *time.Time) {
	now := start
	tracker := NewLoginAttemptTracker()
	tracker.now = func() time.Time { return now }
	return tracker, &now
}

func TestTrackerBlocksAfterFiveFailures(t *testing.T) {
	tracker, _ := newTrackerAt(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))

	for i := 0; i < 4; i++ {
		assert.False(t, tracker.RecordFailure("ana@example.com", "1.2.3.4"))
	}
	assert.True(t, tracker.RecordFailure("ana@example.com", "1.2.3.4"))

	blocked, minutes := tracker.IsBlocked("ana@example.com", "1.2.3.4")
	assert.True(t, blocked)
	assert.Equal(t, 15, minutes)
}

func TestTrackerKeysByEmailAndIP(t *testing.T) {
	tracker, _ := newTrackerAt(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))

	for i := 0; i < 5; i++ {
		tracker.RecordFailure("ana@example.com", "1.2.3.4")
	}
	blocked, _ := tracker.IsBlocked("ana@example.com", "5.6.7.8")
	assert.False(t, blocked)
	blocked, _ = tracker.IsBlocked("outra@example.com", "1.2.3.4")
	assert.False(t, blocked)
}

func TestTrackerUnblocksAfterDuration(t *testing.T) {
	tracker, now := newTrackerAt(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))

	for i := 0; i < 5; i++ {
		tracker.RecordFailure("ana@example.com", "1.2.3.4")
	}
	*now = now.Add(14 * time.Minute)
	blocked, minutes := tracker.IsBlocked("ana@example.com", "1.2.3.4")
	assert.True(t, blocked)
	assert.Equal(t, 1, minutes)

	*now = now.Add(2 * time.Minute)
	blocked, _ = tracker.IsBlocked("ana@example.com", "1.2.3.4")
	assert.False(t, blocked)
}

func TestTrackerWindowResetsCounter(t *testing.T) {
	tracker, now := newTrackerAt(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))

	for i := 0; i < 4; i++ {
		tracker.RecordFailure("ana@example.com", "1.2.3.4")
	}
	// Past the window the old failures no longer count.
	*now = now.Add(31 * time.Minute)
	assert.False(t, tracker.RecordFailure("ana@example.com", "1.2.3.4"))
	blocked, _ := tracker.IsBlocked("ana@example.com", "1.2.3.4")
	assert.False(t, blocked)
}

func TestTrackerSuccessDoesNotEraseFailures(t *testing.T) {
	tracker, now := newTrackerAt(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))

	for i := 0; i < 4; i++ {
		tracker.RecordFailure("ana@example.com", "1.2.3.4")
		*now = now.Add(time.Minute)
	}
	tracker.RecordSuccess("ana@example.com", "1.2.3.4")
	assert.Equal(t, 1, tracker.RemainingAttempts("ana@example.com", "1.2.3.4"))

	// A fifth failure inside the window blocks despite the interleaved
	// success.
	*now = now.Add(time.Minute)
	assert.True(t, tracker.RecordFailure("ana@example.com", "1.2.3.4"))
	blocked, _ := tracker.IsBlocked("ana@example.com", "1.2.3.4")
	assert.True(t, blocked)
}

func TestTrackerRemainingAttempts(t *testing.T) {
	tracker, _ := newTrackerAt(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, 5, tracker.RemainingAttempts("ana@example.com", "1.2.3.4"))
	tracker.RecordFailure("ana@example.com", "1.2.3.4")
	tracker.RecordFailure("ana@example.com", "1.2.3.4")
	assert.Equal(t, 3, tracker.RemainingAttempts("ana@example.com", "1.2.3.4"))

	for i := 0; i < 3; i++ {
		tracker.RecordFailure("ana@example.com", "1.2.3.4")
	}
	assert.Equal(t, 0, tracker.RemainingAttempts("ana@example.com", "1.2.3.4"))
}

func TestTrackerBlockTimeRemaining(t *testing.T) {
	tracker, now := newTrackerAt(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Duration(0), tracker.BlockTimeRemaining("ana@example.com", "1.2.3.4"))

	tracker.RecordFailure("ana@example.com", "1.2.3.4")
	*now = now.Add(5 * time.Minute)
	assert.Equal(t, 10*time.Minute, tracker.BlockTimeRemaining("ana@example.com", "1.2.3.4"))

	*now = now.Add(11 * time.Minute)
	assert.Equal(t, time.Duration(0), tracker.BlockTimeRemaining("ana@example.com", "1.2.3.4"))
}

func TestTrackerSweepDropsStaleEntries(t *testing.T) {
	tracker, now := newTrackerAt(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))

	tracker.RecordFailure("ana@example.com", "1.2.3.4")
	*now = now.Add(time.Hour)
	tracker.Sweep()

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	assert.Empty(t, tracker.attempts)
}
