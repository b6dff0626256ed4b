// SPDX-License-Identifier: MIT

// Package api exposes the HTTP surface: the messaging gateway webhook,
// health and metrics endpoints, and the operator dead-letter API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/taxsetu/waflow/internal/engine"
	"github.com/taxsetu/waflow/internal/log"
	"github.com/taxsetu/waflow/internal/outbox"
)

// Processor is the engine's inbound entry point.
type Processor interface {
	ProcessInbound(ctx context.Context, ev engine.Event) error
}

// PipelineOps is the delivery pipeline's operator surface.
type PipelineOps interface {
	ListDeadLetters(filter outbox.ListFilter) ([]outbox.DeadLetterEntry, error)
	Replay(id string) (string, error)
	RecentMessages(ctx context.Context, limit int) ([]outbox.LogEntry, error)
}

// Server handles the HTTP surface.
type Server struct {
	engine      Processor
	ops         PipelineOps
	verifyToken string
	health      func(ctx context.Context) error
	logger      zerolog.Logger
}

// New builds a Server. health may be nil; it then always reports OK.
func New(eng Processor, ops PipelineOps, verifyToken string, health func(ctx context.Context) error) *Server {
	return &Server{
		engine:      eng,
		ops:         ops,
		verifyToken: verifyToken,
		health:      health,
		logger:      log.WithComponent("api"),
	}
}

// Router assembles the chi router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/webhook", s.handleVerify)
	r.Post("/webhook", s.handleWebhook)

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(60, time.Minute))
		r.Get("/deadletters", s.handleListDeadLetters)
		r.Post("/deadletters/{id}/replay", s.handleReplay)
		r.Get("/messages", s.handleRecentMessages)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVerify answers the gateway's subscription handshake: echo
// hub.challenge when the verify token matches.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") != "subscribe" || q.Get("hub.verify_token") != s.verifyToken {
		http.Error(w, "verification failed", http.StatusForbidden)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(q.Get("hub.challenge")))
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var env envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	// The gateway expects a fast 200 regardless of processing outcome;
	// failures are logged and must not trigger a redelivery storm.
	ctx := log.ContextWithRequestID(r.Context(), middleware.GetReqID(r.Context()))
	for _, ev := range env.events() {
		if err := s.engine.ProcessInbound(ctx, ev); err != nil {
			logger := log.WithComponentFromContext(ctx, "api")
			logger.Error().Err(err).
				Str(log.FieldMessageID, ev.MessageID).
				Msg("inbound event failed")
		}
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleListDeadLetters(w http.ResponseWriter, r *http.Request) {
	filter := outbox.ListFilter{
		Recipient: r.URL.Query().Get("recipient"),
		Limit:     100,
	}
	entries, err := s.ops.ListDeadLetters(filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []outbox.DeadLetterEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	newID, err := s.ops.Replay(id)
	if err != nil {
		if errors.Is(err, outbox.ErrNotFound) {
			http.Error(w, "dead letter not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"new_message_id": newID})
}

func (s *Server) handleRecentMessages(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	entries, err := s.ops.RecentMessages(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []outbox.LogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
