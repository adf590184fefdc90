// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "live_interpreter"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Connection metrics
	ConnectionsTotal   prometheus.Counter
	ConnectionsActive  prometheus.Gauge
	ConnectionsClosed  *prometheus.CounterVec
	ConnectionDuration prometheus.Histogram

	// Session metrics
	SessionsCreated prometheus.Counter
	SessionsResumed prometheus.Counter
	SessionsClosed  prometheus.Counter

	// Chunk metrics
	AudioBytesReceived  prometheus.Counter
	AudioChunksReceived prometheus.Counter
	ChunksSkipped       *prometheus.CounterVec

	// Transcript metrics
	TranscriptsEmitted   prometheus.Counter
	TranscriptsPersisted prometheus.Counter
	TranscriptWriteFails prometheus.Counter

	// Provider metrics
	ProviderLatency     *prometheus.HistogramVec
	ProviderUnavailable *prometheus.CounterVec
	TranslationFallback prometheus.Counter

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		// Connection metrics
		ConnectionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Total number of interpretation connections accepted",
		}),
		ConnectionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of currently active interpretation connections",
		}),
		ConnectionsClosed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_closed_total",
			Help:      "Total number of closed connections by close reason",
		}, []string{"reason"}),
		ConnectionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "connection_duration_seconds",
			Help:      "Duration of interpretation connections in seconds",
			Buckets:   []float64{1, 5, 15, 60, 300, 900, 1800, 3600},
		}),

		// Session metrics
		SessionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Total number of interpretation sessions created",
		}),
		SessionsResumed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_resumed_total",
			Help:      "Total number of existing sessions rebound to a connection",
		}),
		SessionsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_closed_total",
			Help:      "Total number of sessions closed",
		}),

		// Chunk metrics
		AudioBytesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_bytes_received_total",
			Help:      "Total audio bytes received",
		}),
		AudioChunksReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_chunks_received_total",
			Help:      "Total audio chunks received",
		}),
		ChunksSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_chunks_skipped_total",
			Help:      "Total audio chunks that produced no transcript",
		}, []string{"reason"}),

		// Transcript metrics
		TranscriptsEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcripts_emitted_total",
			Help:      "Total transcription events emitted to clients",
		}),
		TranscriptsPersisted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcripts_persisted_total",
			Help:      "Total transcripts written to the store",
		}),
		TranscriptWriteFails: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcript_write_failures_total",
			Help:      "Total transcript writes that failed and were skipped",
		}),

		// Provider metrics
		ProviderLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_latency_seconds",
			Help:      "External provider call latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"provider", "operation"}),
		ProviderUnavailable: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_unavailable_total",
			Help:      "Total provider calls that failed or timed out",
		}, []string{"provider", "operation"}),
		TranslationFallback: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translation_fallback_total",
			Help:      "Total translations served by a non-primary provider",
		}),

		// Kafka publish metrics
		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),
	}
}

// RecordConnectionStart records a new connection being accepted.
func (m *Metrics) RecordConnectionStart() {
	m.ConnectionsTotal.Inc()
	m.ConnectionsActive.Inc()
}

// RecordConnectionEnd records a connection closing with the given reason.
func (m *Metrics) RecordConnectionEnd(reason string, durationSeconds float64) {
	m.ConnectionsActive.Dec()
	m.ConnectionDuration.Observe(durationSeconds)
	m.ConnectionsClosed.WithLabelValues(reason).Inc()
}

// RecordSessionBound records a session being bound to a connection.
func (m *Metrics) RecordSessionBound(resumed bool) {
	if resumed {
		m.SessionsResumed.Inc()
	} else {
		m.SessionsCreated.Inc()
	}
}

// RecordSessionClosed records a session being closed.
func (m *Metrics) RecordSessionClosed() {
	m.SessionsClosed.Inc()
}

// RecordAudioReceived records audio bytes and chunks received.
func (m *Metrics) RecordAudioReceived(bytes int) {
	m.AudioBytesReceived.Add(float64(bytes))
	m.AudioChunksReceived.Inc()
}

// RecordChunkSkipped records a chunk that produced no transcript.
func (m *Metrics) RecordChunkSkipped(reason string) {
	m.ChunksSkipped.WithLabelValues(reason).Inc()
}

// RecordTranscriptEmitted records a transcription event sent to a client.
func (m *Metrics) RecordTranscriptEmitted() {
	m.TranscriptsEmitted.Inc()
}

// RecordTranscriptPersisted records a transcript write outcome.
func (m *Metrics) RecordTranscriptPersisted(err error) {
	if err != nil {
		m.TranscriptWriteFails.Inc()
		return
	}
	m.TranscriptsPersisted.Inc()
}

// RecordProviderCall records an external provider call outcome.
func (m *Metrics) RecordProviderCall(provider, operation string, err error, latencySeconds float64) {
	m.ProviderLatency.WithLabelValues(provider, operation).Observe(latencySeconds)
	if err != nil {
		m.ProviderUnavailable.WithLabelValues(provider, operation).Inc()
	}
}

// RecordTranslationFallback records a translation served by a fallback provider.
func (m *Metrics) RecordTranslationFallback() {
	m.TranslationFallback.Inc()
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic).Inc()
	}
}
