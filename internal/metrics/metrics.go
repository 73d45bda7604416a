package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// Snapshot sources
const (
	SourceHTTP  = "http"
	SourceKafka = "kafka"
)

var (
	classificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_signal_classifications_total",
			Help: "Matches classified, by quality grade",
		},
		[]string{"grade"},
	)

	noBetTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_signal_no_bet_total",
			Help: "Matches classified as NO BET",
		},
	)

	snapshotsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_signal_snapshots_processed_total",
			Help: "Snapshots classified and ranked, by source",
		},
		[]string{"source"},
	)

	rankedPicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_signal_ranked_picks_total",
			Help: "Picks selected by the league ranker, by kind",
		},
		[]string{"kind"},
	)

	cacheErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_signal_cache_errors_total",
			Help: "Cache operations that failed, by operation",
		},
		[]string{"op"},
	)

	messageFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_signal_kafka_message_failures_total",
			Help: "Kafka messages left uncommitted after a processing failure",
		},
	)
)

// RecordClassification counts one classified match
func RecordClassification(c *models.Classification) {
	if c == nil {
		return
	}
	classificationsTotal.WithLabelValues(string(c.Grade)).Inc()
	if c.NoBet {
		noBetTotal.Inc()
	}
}

// RecordRankings counts the picks of every league ranking
func RecordRankings(rankings []models.LeagueRanking) {
	for _, r := range rankings {
		for _, row := range r.Rows {
			rankedPicksTotal.WithLabelValues(string(row.Kind)).Inc()
		}
	}
}

// RecordSnapshot counts one processed snapshot
func RecordSnapshot(source string) {
	snapshotsProcessedTotal.WithLabelValues(source).Inc()
}

// RecordCacheError counts one failed cache operation
func RecordCacheError(op string) {
	cacheErrorsTotal.WithLabelValues(op).Inc()
}

// RecordMessageFailure counts one Kafka message that was not committed
func RecordMessageFailure() {
	messageFailuresTotal.Inc()
}
