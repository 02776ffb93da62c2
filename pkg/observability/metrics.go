package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/chainalign/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chainalign"

// Metrics holds the Prometheus collectors of a chainalign process.
type Metrics struct {
	registry *prometheus.Registry

	sessions prometheus.Counter
	matchups prometheus.Counter
	chains   prometheus.Histogram
	votes    *prometheus.CounterVec
	commits  prometheus.Counter
	batches  *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Total number of comparison sessions started",
		}),
		matchups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matchups_played_total",
			Help:      "Total number of matchups played",
		}),
		chains: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_chains",
			Help:      "Number of chains submitted per session",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12},
		}),
		votes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Total number of recorded votes",
		}, []string{"vote"}),
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chain_commits_total",
			Help:      "Total number of chain commits emitted by editors",
		}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transition_batches_total",
			Help:      "Total number of transition batches by outcome",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(m.sessions, m.matchups, m.chains, m.votes, m.commits, m.batches)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// SessionStarted implements session.Recorder.
func (m *Metrics) SessionStarted(chains int) {
	m.sessions.Inc()
	m.chains.Observe(float64(chains))
}

// MatchupPlayed implements session.Recorder.
func (m *Metrics) MatchupPlayed() {
	m.matchups.Inc()
}

// VoteRecorded implements session.Recorder.
func (m *Metrics) VoteRecorded(vote domain.Vote) {
	m.votes.WithLabelValues(string(vote)).Inc()
}

// Hooks returns editor lifecycle hooks feeding the commit and batch counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(context.Context, *domain.CommitEvent) {
			m.commits.Inc()
		},
		OnBatchStart: func(context.Context, *domain.BatchEvent) {
			m.batches.WithLabelValues("started").Inc()
		},
		OnBatchSettled: func(_ context.Context, e *domain.BatchEvent) {
			if e.Abandoned {
				m.batches.WithLabelValues("abandoned").Inc()
				return
			}
			m.batches.WithLabelValues("settled").Inc()
		},
	}
}
