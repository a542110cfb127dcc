// Package metrics defines the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gauges
var (
	RegistrySounds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "linguafx_registry_sounds",
		Help: "Number of sounds in the registry",
	})
	MasterVolume = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "linguafx_master_volume",
		Help: "Current playback volume level",
	})
)

// Counters
var (
	SoundsPlayedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linguafx_sounds_played_total",
		Help: "Sounds dispatched to the playback output, by sound name",
	}, []string{"sound"})
	PlayMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linguafx_play_misses_total",
		Help: "Play requests naming an unregistered sound",
	})
	PlaybackErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linguafx_playback_errors_total",
		Help: "Sounds the playback output failed to accept",
	})
	TranscriptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linguafx_transcriptions_total",
		Help: "Transcription requests by outcome",
	}, []string{"outcome"})
)

// Histograms
var (
	TranscriptionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "linguafx_transcription_duration_seconds",
		Help:    "Wall time spent proxying a transcription request",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
	})
)
