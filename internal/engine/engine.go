// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taxsetu/waflow/internal/i18n"
	"github.com/taxsetu/waflow/internal/log"
	"github.com/taxsetu/waflow/internal/metrics"
	"github.com/taxsetu/waflow/internal/outbox"
	"github.com/taxsetu/waflow/internal/session"
	"github.com/taxsetu/waflow/internal/session/store"
)

// Enqueuer is the outbound pipeline's producer side.
type Enqueuer interface {
	Enqueue(recipient string, p outbox.Payload) (string, error)
}

// Config holds the engine tunables.
type Config struct {
	SessionTTL time.Duration
	DedupeTTL  time.Duration

	// ResumeAfter is how long a session may idle mid-flow before the next
	// event triggers the resume prompt instead of normal routing. Zero
	// disables the prompt.
	ResumeAfter time.Duration

	// ConfirmTTL bounds how long a sensitive confirmation screen stays
	// answerable. Zero disables expiry.
	ConfirmTTL time.Duration
}

// saveRetries bounds reprocessing on optimistic-save conflicts.
const saveRetries = 3

// Engine routes inbound events through the interceptor, handler chain
// and fallback table, and commits sessions with optimistic concurrency.
type Engine struct {
	repo     store.Repository
	dedupe   store.Deduper
	registry *Registry
	out      Enqueuer
	cfg      Config
	locks    *userLocks
	logger   zerolog.Logger

	now func() time.Time
}

// New wires an engine. dedupe may be nil when the gateway guarantees
// at-most-once delivery.
func New(repo store.Repository, dedupe store.Deduper, registry *Registry, out Enqueuer, cfg Config) *Engine {
	return &Engine{
		repo:     repo,
		dedupe:   dedupe,
		registry: registry,
		out:      out,
		cfg:      cfg,
		locks:    newUserLocks(),
		logger:   log.WithComponent("engine"),
		now:      time.Now,
	}
}

// sensitiveConfirmStates expire after ConfirmTTL of inactivity so a stale
// "1 = yes, file it" reply cannot trigger a filing.
var sensitiveConfirmStates = map[session.State]struct{}{
	session.StateGSTFilingConfirm: {},
	session.StateNilFilingConfirm: {},
}

// ProcessInbound handles one gateway event end to end. Redelivered
// events (same MessageID) are dropped; processing for one user is
// serialized; a version conflict on save reprocesses the event against
// the freshly loaded session.
func (e *Engine) ProcessInbound(ctx context.Context, ev Event) error {
	ctx = log.ContextWithUserID(ctx, ev.SenderID)
	ctx = log.ContextWithMessageID(ctx, ev.MessageID)
	logger := log.WithContext(ctx, e.logger)

	if e.dedupe != nil && ev.MessageID != "" {
		seen, err := e.dedupe.Seen(ctx, ev.MessageID, e.cfg.DedupeTTL)
		if err != nil {
			// Prefer availability: process the event anyway.
			logger.Warn().Err(err).Msg("dedupe check failed, processing anyway")
		} else if seen {
			metrics.IncInbound("duplicate")
			logger.Debug().Msg("duplicate event dropped")
			return nil
		}
	}

	e.locks.acquire(ev.SenderID)
	defer e.locks.release(ev.SenderID)

	for attempt := 0; attempt < saveRetries; attempt++ {
		done, err := e.processOnce(ctx, ev, logger)
		if err != nil {
			metrics.IncInbound("error")
			return err
		}
		if done {
			metrics.IncInbound("handled")
			return nil
		}
		// Version conflict: another delivery won the race. Reprocess
		// against the stored session rather than surfacing the conflict.
		metrics.IncVersionConflict()
	}

	metrics.IncInbound("error")
	lang := session.LangEnglish
	if s, err := e.repo.Load(ctx, ev.SenderID); err == nil {
		lang = s.Language
	}
	e.sendAll(ev.SenderID, Text(i18n.T(lang, i18n.KeyGenericError)), logger)
	return fmt.Errorf("engine: process %s: %w", ev.MessageID, store.ErrVersionConflict)
}

// processOnce runs one transition attempt. It returns done=false only on
// a version conflict, which the caller retries.
func (e *Engine) processOnce(ctx context.Context, ev Event, logger zerolog.Logger) (bool, error) {
	now := e.now()

	s, created, err := e.loadOrCreate(ctx, ev)
	if err != nil {
		e.sendAll(ev.SenderID, Text(i18n.T(session.LangEnglish, i18n.KeyGenericError)), logger)
		return true, fmt.Errorf("engine: load session: %w", err)
	}
	oldState := s.State

	resp, source, mutated := e.route(ctx, s, ev, now, logger)
	if resp == nil {
		// Handler error: transition aborted, session left unchanged.
		e.sendAll(ev.SenderID, Text(i18n.T(s.Language, i18n.KeyGenericError)), logger)
		return true, nil
	}

	if created {
		welcome := outbox.Payload{Text: i18n.T(s.Language, i18n.KeyWelcome)}
		resp.Messages = append([]outbox.Payload{welcome}, resp.Messages...)
	}

	if mutated || created {
		s.Touch(now)
		if err := e.repo.Save(ctx, s, e.cfg.SessionTTL); err != nil {
			if errors.Is(err, store.ErrVersionConflict) {
				return false, nil
			}
			e.sendAll(ev.SenderID, Text(i18n.T(s.Language, i18n.KeyGenericError)), logger)
			return true, fmt.Errorf("engine: save session: %w", err)
		}
	}

	metrics.IncTransition(source)
	logger.Debug().
		Str(log.FieldOldState, string(oldState)).
		Str(log.FieldNewState, string(s.State)).
		Str("source", source).
		Msg("transition")

	e.sendAll(ev.SenderID, resp, logger)
	return true, nil
}

// route decides what handles the event: idle checks, the command
// interceptor, the handler chain, then the fallback table. A nil response
// means a handler failed and the transition must be aborted. mutated is
// false only for help, which by contract changes nothing.
func (e *Engine) route(ctx context.Context, s *session.Session, ev Event, now time.Time, logger zerolog.Logger) (resp *Response, source string, mutated bool) {
	idle := time.Duration(0)
	if !s.LastActive.IsZero() {
		idle = now.Sub(s.LastActive)
	}

	// Stale sensitive confirmations expire before anything else runs.
	if _, sensitive := sensitiveConfirmStates[s.State]; sensitive &&
		e.cfg.ConfirmTTL > 0 && idle > e.cfg.ConfirmTTL {
		s.State = session.StateConfirmExpired
		return Text(i18n.T(s.Language, i18n.KeyConfirmExpired)), "expiry", true
	}

	// A long-idle mid-flow session gets the resume prompt; the triggering
	// event is consumed by it.
	if e.cfg.ResumeAfter > 0 && idle > e.cfg.ResumeAfter &&
		s.State != session.StateMainMenu && s.State != session.StateResumePrompt {
		s.Data[DataKeyResumeState] = string(s.State)
		s.State = session.StateResumePrompt
		return Text(i18n.T(s.Language, i18n.KeyResumePrompt)), "resume", true
	}

	if cmd, ok := matchCommand(ev.Text); ok {
		metrics.IncInterceptor(string(cmd))
		return applyCommand(cmd, s), "interceptor", cmd != CmdHelp
	}

	name, resp, err := e.registry.Dispatch(ctx, s, ev)
	if err != nil {
		logger.Error().Err(err).
			Str(log.FieldHandler, name).
			Str(log.FieldState, string(s.State)).
			Msg("handler failed, transition aborted")
		return nil, "handler", false
	}
	if resp != nil {
		return resp, "handler", true
	}
	return dispatchFallback(s, ev), "fallback", true
}

func (e *Engine) loadOrCreate(ctx context.Context, ev Event) (*session.Session, bool, error) {
	s, err := e.repo.Load(ctx, ev.SenderID)
	if err == nil {
		return s, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	s = session.New(ev.SenderID)
	if ev.LangHint != "" {
		s.Language = i18n.MatchTag(ev.LangHint)
	}
	return s, true, nil
}

// sendAll enqueues the response messages. A full queue is logged, not
// surfaced: the inbound event was processed and must not be retried.
func (e *Engine) sendAll(recipient string, resp *Response, logger zerolog.Logger) {
	for _, p := range resp.Messages {
		if _, err := e.out.Enqueue(recipient, p); err != nil {
			logger.Error().Err(err).
				Str(log.FieldRecipient, recipient).
				Msg("outbound enqueue failed")
		}
	}
}
