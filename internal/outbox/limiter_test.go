// SPDX-License-Identifier: MIT

package outbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openLimiter() (*Limiter, time.Time) {
	cfg := RateConfig{
		GlobalRate:  1000,
		GlobalBurst: 1000,
		PerMinute:   30,
		PerDay:      1000,
	}
	return NewLimiter(cfg), time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func TestLimiterPerMinuteCap(t *testing.T) {
	l, now := openLimiter()

	for i := 0; i < 30; i++ {
		delay, _ := l.Reserve("919800000001", now)
		require.Zero(t, delay, "send %d should pass", i)
	}

	delay, scope := l.Reserve("919800000001", now)
	require.Equal(t, time.Minute, delay)
	require.Equal(t, ScopeRecipient, scope)

	// A different recipient is unaffected.
	delay, _ = l.Reserve("919800000002", now)
	require.Zero(t, delay)

	// Once the oldest send leaves the rolling window, capacity returns.
	delay, _ = l.Reserve("919800000001", now.Add(61*time.Second))
	require.Zero(t, delay)
}

func TestLimiterRollingWindow(t *testing.T) {
	l, now := openLimiter()

	// 15 sends, then 15 more thirty seconds later. The window now holds
	// 30; the next send must wait until the first batch ages out.
	for i := 0; i < 15; i++ {
		delay, _ := l.Reserve("u", now)
		require.Zero(t, delay)
	}
	later := now.Add(30 * time.Second)
	for i := 0; i < 15; i++ {
		delay, _ := l.Reserve("u", later)
		require.Zero(t, delay)
	}

	delay, scope := l.Reserve("u", later)
	require.Equal(t, ScopeRecipient, scope)
	require.Equal(t, 30*time.Second, delay)
}

func TestLimiterDailyCap(t *testing.T) {
	l, now := openLimiter()
	l.Update(RateConfig{GlobalRate: 1000, GlobalBurst: 1000, PerMinute: 1000, PerDay: 3})

	for i := 0; i < 3; i++ {
		delay, _ := l.Reserve("u", now.Add(time.Duration(i)*time.Hour))
		require.Zero(t, delay)
	}

	delay, scope := l.Reserve("u", now.Add(3*time.Hour))
	require.Equal(t, ScopeDaily, scope)
	require.Equal(t, 21*time.Hour, delay)

	// Next day the counter resets.
	delay, _ = l.Reserve("u", now.Add(24*time.Hour))
	require.Zero(t, delay)
}

func TestLimiterGlobalBucket(t *testing.T) {
	l, now := openLimiter()
	l.Update(RateConfig{GlobalRate: 1, GlobalBurst: 2, PerMinute: 1000, PerDay: 1000})

	delay, _ := l.Reserve("a", now)
	require.Zero(t, delay)
	delay, _ = l.Reserve("b", now)
	require.Zero(t, delay)

	delay, scope := l.Reserve("c", now)
	require.Equal(t, ScopeGlobal, scope)
	require.Greater(t, delay, time.Duration(0))

	// A failed reservation spends nothing: the same token is available
	// once the bucket refills.
	delay, _ = l.Reserve("c", now.Add(time.Second))
	require.Zero(t, delay)
}

func TestLimiterUpdateTightensCap(t *testing.T) {
	l, now := openLimiter()

	for i := 0; i < 10; i++ {
		delay, _ := l.Reserve("u", now)
		require.Zero(t, delay)
	}

	// Tightening below the already-spent count throttles immediately.
	l.Update(RateConfig{GlobalRate: 1000, GlobalBurst: 1000, PerMinute: 5, PerDay: 1000})
	delay, scope := l.Reserve("u", now)
	require.Equal(t, ScopeRecipient, scope)
	require.Greater(t, delay, time.Duration(0))
}
