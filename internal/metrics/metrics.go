// SPDX-License-Identifier: MIT

// Package metrics defines the Prometheus collectors for the engine and
// the outbound delivery pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	inboundEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "waflow",
		Name:      "inbound_events_total",
		Help:      "Inbound events by processing outcome",
	}, []string{"outcome"}) // outcome=handled|duplicate|error

	interceptorHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "waflow",
		Name:      "interceptor_hits_total",
		Help:      "Global command interceptor matches by command",
	}, []string{"command"})

	transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "waflow",
		Name:      "transitions_total",
		Help:      "State transitions by source",
	}, []string{"source"}) // source=interceptor|handler|fallback

	versionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waflow",
		Name:      "session_version_conflicts_total",
		Help:      "Optimistic save conflicts that triggered a reprocess",
	})

	sends = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "waflow",
		Name:      "outbound_sends_total",
		Help:      "Outbound send attempts by outcome",
	}, []string{"outcome"}) // outcome=delivered|transient|permanent

	retriesScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waflow",
		Name:      "outbound_retries_scheduled_total",
		Help:      "Outbound messages re-enqueued with backoff",
	})

	deadLetters = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "waflow",
		Name:      "dead_letters_total",
		Help:      "Messages moved to the dead letter store by reason",
	}, []string{"reason"}) // reason=max_retries|permanent

	replays = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waflow",
		Name:      "dead_letter_replays_total",
		Help:      "Operator replays of dead-lettered messages",
	})

	throttles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "waflow",
		Name:      "ratelimit_throttles_total",
		Help:      "Sends deferred for rate-limiter capacity by scope",
	}, []string{"scope"}) // scope=global|recipient|daily

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "waflow",
		Name:      "outbox_queue_depth",
		Help:      "Messages currently queued or awaiting retry",
	})

	enqueueRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waflow",
		Name:      "outbox_enqueue_rejected_total",
		Help:      "Enqueue attempts rejected because the queue was full",
	})
)

func IncInbound(outcome string)     { inboundEvents.WithLabelValues(outcome).Inc() }
func IncInterceptor(command string) { interceptorHits.WithLabelValues(command).Inc() }
func IncTransition(source string)   { transitions.WithLabelValues(source).Inc() }
func IncVersionConflict()           { versionConflicts.Inc() }

func IncSend(outcome string)      { sends.WithLabelValues(outcome).Inc() }
func IncRetryScheduled()          { retriesScheduled.Inc() }
func IncDeadLetter(reason string) { deadLetters.WithLabelValues(reason).Inc() }
func IncReplay()                  { replays.Inc() }
func IncThrottle(scope string)    { throttles.WithLabelValues(scope).Inc() }

func SetQueueDepth(n int) { queueDepth.Set(float64(n)) }
func IncEnqueueRejected() { enqueueRejected.Inc() }
