// Package observability holds Prometheus metrics and OpenTelemetry tracing
// setup shared across the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QuestionsCreated counts questions successfully posted.
	QuestionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nxtround_questions_created_total",
		Help: "Total number of questions created",
	})

	// VotesCast counts vote operations by type (upvote, downvote, retract).
	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nxtround_votes_cast_total",
		Help: "Total number of vote operations by type",
	}, []string{"type"})

	// ViewsRecorded counts question view increments by viewer kind.
	// Authenticated viewers increment at most once per question, anonymous
	// readers on every read, so the two series are not comparable.
	ViewsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nxtround_views_recorded_total",
		Help: "Total number of counted question views by viewer kind",
	}, []string{"viewer"})

	// CacheHits counts cache-aside hits by key namespace.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nxtround_cache_hits_total",
		Help: "Total number of cache hits by key namespace",
	}, []string{"namespace"})

	// CacheMisses counts cache-aside misses by key namespace.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nxtround_cache_misses_total",
		Help: "Total number of cache misses by key namespace",
	}, []string{"namespace"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nxtround_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
