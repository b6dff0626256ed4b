// SPDX-License-Identifier: MIT

package outbox

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateConfig holds the delivery throughput caps.
type RateConfig struct {
	GlobalRate  float64 // sends per second across all recipients
	GlobalBurst int
	PerMinute   int // per-recipient rolling-minute cap
	PerDay      int // per-recipient day cap
}

// Limiter enforces a global token bucket plus per-recipient minute and
// day caps. All checks and the spend happen under one lock, so two
// workers can never double-spend the same token.
type Limiter struct {
	mu     sync.Mutex
	cfg    RateConfig
	global *rate.Limiter

	recipients map[string]*recipientWindow
	lastSweep  time.Time
}

// recipientWindow tracks one recipient's recent sends: a sliding log for
// the minute cap and a fixed window for the day cap.
type recipientWindow struct {
	minute   []time.Time
	dayStart time.Time
	dayCount int
}

// Throttle scopes reported by Reserve.
const (
	ScopeGlobal    = "global"
	ScopeRecipient = "recipient"
	ScopeDaily     = "daily"
)

// NewLimiter creates a limiter with the given caps.
func NewLimiter(cfg RateConfig) *Limiter {
	return &Limiter{
		cfg:        cfg,
		global:     rate.NewLimiter(rate.Limit(cfg.GlobalRate), cfg.GlobalBurst),
		recipients: map[string]*recipientWindow{},
	}
}

// Update swaps in new caps. In-flight reservations are unaffected;
// recipient windows are kept so tightening a cap applies to recent sends.
func (l *Limiter) Update(cfg RateConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg = cfg
	l.global.SetLimit(rate.Limit(cfg.GlobalRate))
	l.global.SetBurst(cfg.GlobalBurst)
}

// Reserve atomically spends one send token for recipient at instant now.
// A zero delay means the send may proceed immediately. A non-zero delay
// means nothing was spent and the caller should retry no earlier than
// now+delay; scope names the exhausted limit.
func (l *Limiter) Reserve(recipient string, now time.Time) (delay time.Duration, scope string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.recipients[recipient]
	if w == nil {
		w = &recipientWindow{dayStart: now}
		l.recipients[recipient] = w
	}

	// Day window.
	if now.Sub(w.dayStart) >= 24*time.Hour {
		w.dayStart = now
		w.dayCount = 0
	}
	if w.dayCount >= l.cfg.PerDay {
		return w.dayStart.Add(24 * time.Hour).Sub(now), ScopeDaily
	}

	// Minute window: prune entries older than one rolling minute.
	cutoff := now.Add(-time.Minute)
	kept := w.minute[:0]
	for _, t := range w.minute {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	w.minute = kept
	if len(w.minute) >= l.cfg.PerMinute {
		return w.minute[0].Add(time.Minute).Sub(now), ScopeRecipient
	}

	// Global bucket last, so a throttled recipient does not burn global
	// tokens.
	rsv := l.global.ReserveN(now, 1)
	if d := rsv.DelayFrom(now); d > 0 {
		rsv.CancelAt(now)
		return d, ScopeGlobal
	}

	w.minute = append(w.minute, now)
	w.dayCount++
	l.maybeSweep(now)
	return 0, ""
}

// maybeSweep drops recipient windows that have been idle for over a day.
// Called with l.mu held.
func (l *Limiter) maybeSweep(now time.Time) {
	if now.Sub(l.lastSweep) < time.Hour {
		return
	}
	l.lastSweep = now
	for id, w := range l.recipients {
		if len(w.minute) == 0 && now.Sub(w.dayStart) >= 48*time.Hour {
			delete(l.recipients, id)
		}
	}
}
