// SPDX-License-Identifier: MIT

package outbox

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taxsetu/waflow/internal/log"
	"github.com/taxsetu/waflow/internal/metrics"
)

// Sender is the external messaging gateway's send capability. A nil
// error means delivered; failures are classified via ErrPermanent /
// ErrTransient wrapping.
type Sender interface {
	Send(ctx context.Context, recipient string, p Payload) error
}

// RetryConfig bounds the transient-failure retry budget.
type RetryConfig struct {
	MaxAttempts int
	Base        time.Duration
	Cap         time.Duration
}

// Config configures the pipeline.
type Config struct {
	Workers   int
	QueueSize int
	Rate      RateConfig
	Retry     RetryConfig
}

// Pipeline is the outbound delivery pipeline. Producers enqueue without
// blocking; a fixed worker pool dequeues in FIFO order, consults the
// rate limiter, sends, and retries or dead-letters on failure.
type Pipeline struct {
	q       *queue
	limiter *Limiter
	sender  Sender
	dl      *DeadLetterStore
	mlog    *MessageLog
	clock   Clock
	logger  zerolog.Logger

	workers int

	retryMu sync.Mutex
	retry   RetryConfig

	ctx       context.Context
	cancel    context.CancelFunc
	ready     chan *Message
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithClock injects a clock. Used by tests.
func WithClock(c Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// New creates a stopped pipeline. mlog may be nil to disable the audit
// trail.
func New(cfg Config, sender Sender, dl *DeadLetterStore, mlog *MessageLog, opts ...Option) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pipeline{
		q:       newQueue(cfg.QueueSize),
		limiter: NewLimiter(cfg.Rate),
		sender:  sender,
		dl:      dl,
		mlog:    mlog,
		clock:   RealClock(),
		logger:  log.WithComponent("outbox"),
		workers: cfg.Workers,
		retry:   cfg.Retry,
		ctx:     ctx,
		cancel:  cancel,
		ready:   make(chan *Message),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the dispatcher and worker pool.
func (p *Pipeline) Start() {
	p.startOnce.Do(func() {
		p.wg.Add(1)
		go p.dispatch()

		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.worker()
		}
		p.logger.Info().Int("workers", p.workers).Msg("delivery pipeline started")
	})
}

// Stop halts dispatching and waits for in-flight sends to finish.
// Messages still queued stay in memory and are lost on process exit;
// undelivered user-visible responses surface as dead letters only after
// they have entered the send path.
func (p *Pipeline) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
		p.logger.Info().Int("queued_remaining", p.q.len()).Msg("delivery pipeline stopped")
	})
}

// Enqueue adds a message for recipient and returns its id. It never
// blocks; when the queue is full it returns ErrQueueFull.
func (p *Pipeline) Enqueue(recipient string, payload Payload) (string, error) {
	msg := &Message{
		ID:         uuid.NewString(),
		Recipient:  recipient,
		Payload:    payload,
		Status:     StatusQueued,
		EnqueuedAt: p.clock.Now(),
	}
	if err := p.q.push(msg, time.Time{}); err != nil {
		metrics.IncEnqueueRejected()
		return "", err
	}
	metrics.SetQueueDepth(p.q.len())
	return msg.ID, nil
}

// UpdateTunables applies new rate caps and retry budget, typically from
// a config hot reload. Running workers pick them up on the next message.
func (p *Pipeline) UpdateTunables(rate RateConfig, retry RetryConfig) {
	p.limiter.Update(rate)
	p.retryMu.Lock()
	p.retry = retry
	p.retryMu.Unlock()
}

// QueueDepth reports messages queued or awaiting retry.
func (p *Pipeline) QueueDepth() int { return p.q.len() }

// ListDeadLetters exposes the dead-letter store to operators.
func (p *Pipeline) ListDeadLetters(filter ListFilter) ([]DeadLetterEntry, error) {
	return p.dl.List(filter)
}

// RecentMessages exposes the delivery audit trail to operators. It
// returns nothing when the audit log is disabled.
func (p *Pipeline) RecentMessages(ctx context.Context, limit int) ([]LogEntry, error) {
	if p.mlog == nil {
		return nil, nil
	}
	return p.mlog.Recent(ctx, limit)
}

// Replay builds a fresh Queued message from a dead-lettered snapshot and
// enqueues it with attempt 0. The stored entry is retained for audit.
func (p *Pipeline) Replay(id string) (string, error) {
	entry, err := p.dl.Get(id)
	if err != nil {
		return "", err
	}
	newID, err := p.Enqueue(entry.Recipient, entry.Payload)
	if err != nil {
		return "", err
	}
	metrics.IncReplay()
	p.logger.Info().
		Str("dead_letter_id", id).
		Str(log.FieldOutboxID, newID).
		Str(log.FieldRecipient, entry.Recipient).
		Msg("dead letter replayed")
	return newID, nil
}

// dispatch moves eligible messages from the time-ordered queue to the
// worker channel, sleeping until the next message becomes ready.
func (p *Pipeline) dispatch() {
	defer p.wg.Done()
	for {
		msg, wait := p.q.pop(p.clock.Now())
		if msg != nil {
			select {
			case p.ready <- msg:
			case <-p.ctx.Done():
				return
			}
			continue
		}

		var timer <-chan time.Time
		if wait > 0 {
			timer = p.clock.After(wait)
		}
		select {
		case <-p.ctx.Done():
			return
		case <-p.q.wake:
		case <-timer:
		}
	}
}

func (p *Pipeline) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case msg := <-p.ready:
			p.process(msg)
		}
	}
}

func (p *Pipeline) process(msg *Message) {
	now := p.clock.Now()

	// Both buckets must have capacity before the send; otherwise the
	// message is rescheduled for the earliest instant capacity returns.
	if delay, scope := p.limiter.Reserve(msg.Recipient, now); delay > 0 {
		metrics.IncThrottle(scope)
		msg.Status = StatusQueued
		p.requeue(msg, now.Add(delay))
		return
	}

	msg.Status = StatusSending
	err := p.sender.Send(p.ctx, msg.Recipient, msg.Payload)
	now = p.clock.Now()

	switch {
	case err == nil:
		msg.Status = StatusDelivered
		metrics.IncSend("delivered")
		p.record(msg, "")
		p.logger.Debug().
			Str(log.FieldOutboxID, msg.ID).
			Str(log.FieldRecipient, msg.Recipient).
			Int(log.FieldAttempt, msg.Attempt).
			Msg("message delivered")

	case IsPermanent(err):
		metrics.IncSend("permanent")
		p.deadLetter(msg, "permanent_failure: "+err.Error(), "permanent", now)

	default:
		metrics.IncSend("transient")
		msg.Attempt++
		retry := p.retryConfig()
		if msg.Attempt < retry.MaxAttempts {
			backoff := backoffFor(retry, msg.Attempt)
			msg.Status = StatusRetryScheduled
			msg.NextRetryAt = now.Add(backoff)
			metrics.IncRetryScheduled()
			p.logger.Warn().Err(err).
				Str(log.FieldOutboxID, msg.ID).
				Str(log.FieldRecipient, msg.Recipient).
				Int(log.FieldAttempt, msg.Attempt).
				Time(log.FieldRetryAt, msg.NextRetryAt).
				Msg("transient send failure, retry scheduled")
			p.requeue(msg, msg.NextRetryAt)
		} else {
			p.deadLetter(msg, "max_retries_exceeded: "+err.Error(), "max_retries", now)
		}
	}
	metrics.SetQueueDepth(p.q.len())
}

func (p *Pipeline) retryConfig() RetryConfig {
	p.retryMu.Lock()
	defer p.retryMu.Unlock()
	return p.retry
}

// backoffFor computes base * 2^attempt, capped.
func backoffFor(retry RetryConfig, attempt int) time.Duration {
	backoff := retry.Base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff >= retry.Cap {
			return retry.Cap
		}
	}
	return backoff
}

// requeue puts a popped message back, bypassing the capacity bound so a
// rate-limited or retrying message is never dropped.
func (p *Pipeline) requeue(msg *Message, readyAt time.Time) {
	p.q.forcePush(msg, readyAt)
}

func (p *Pipeline) deadLetter(msg *Message, reason, reasonLabel string, now time.Time) {
	entry := DeadLetterEntry{
		ID:             msg.ID,
		Recipient:      msg.Recipient,
		Payload:        msg.Payload,
		FailureReason:  reason,
		RetryCount:     msg.Attempt,
		EnqueuedAt:     msg.EnqueuedAt,
		DeadLetteredAt: now,
	}
	if err := p.dl.Add(entry); err != nil {
		// The message is already lost to the user; at minimum keep the
		// evidence in the logs.
		p.logger.Error().Err(err).
			Str(log.FieldOutboxID, msg.ID).
			Msg("failed to persist dead letter")
	}
	msg.Status = StatusDeadLettered
	metrics.IncDeadLetter(reasonLabel)
	p.record(msg, reason)
	p.logger.Error().
		Str(log.FieldOutboxID, msg.ID).
		Str(log.FieldRecipient, msg.Recipient).
		Int("retry_count", msg.Attempt).
		Str(log.FieldReason, reason).
		Msg("message dead-lettered")
}

// record appends a terminal outcome to the audit log, when enabled.
func (p *Pipeline) record(msg *Message, errText string) {
	if p.mlog == nil {
		return
	}
	text := msg.Payload.Text
	if text == "" {
		text = msg.Payload.Caption
	}
	entry := LogEntry{
		MessageID: msg.ID,
		Recipient: msg.Recipient,
		Text:      text,
		Status:    msg.Status,
		Error:     errText,
		Attempt:   msg.Attempt,
		CreatedAt: p.clock.Now(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.mlog.Record(ctx, entry); err != nil {
		p.logger.Warn().Err(err).Str(log.FieldOutboxID, msg.ID).Msg("audit log write failed")
	}
}
