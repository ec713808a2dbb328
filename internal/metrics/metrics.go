package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"helpdesk/internal/db"
)

var (
	knowledgeUsageDesc = prometheus.NewDesc(
		"helpdesk_knowledge_usage_total",
		"Times each knowledge entry answered a question",
		[]string{"entry_id", "question"},
		nil,
	)

	requestStatusDesc = prometheus.NewDesc(
		"helpdesk_requests",
		"Help requests by status",
		[]string{"status"},
		nil,
	)

	callsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_calls_total",
			Help: "Simulated calls by outcome",
		},
		[]string{"outcome"},
	)

	expiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "helpdesk_requests_expired_total",
			Help: "Pending requests expired by the timeout sweeper",
		},
	)
)

// Collector is a custom Prometheus collector that reads knowledge usage
// counts and request status counts from the database on each scrape.
type Collector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- knowledgeUsageDesc
	ch <- requestStatusDesc
}

// Collect queries the database and emits current values.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx := context.Background()

	entries, err := c.db.GetAllKnowledgeEntries(ctx)
	if err != nil {
		slog.Error("failed to collect knowledge usage metrics", "error", err)
	} else {
		for _, e := range entries {
			ch <- prometheus.MustNewConstMetric(
				knowledgeUsageDesc,
				prometheus.CounterValue,
				float64(e.UsageCount),
				e.ID.String(),
				e.Question,
			)
		}
	}

	counts, err := c.db.CountRequestsByStatus(ctx)
	if err != nil {
		slog.Error("failed to collect request status metrics", "error", err)
		return
	}
	for status, count := range counts {
		ch <- prometheus.MustNewConstMetric(
			requestStatusDesc,
			prometheus.GaugeValue,
			float64(count),
			status,
		)
	}
}

var initOnce sync.Once

// Init registers the collectors. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&Collector{db: database})
		prometheus.MustRegister(callsTotal, expiredTotal)
	})
}

// RecordCall records a simulated call outcome
// ("business_info", "knowledge_base", or "escalated").
func RecordCall(outcome string) {
	callsTotal.WithLabelValues(outcome).Inc()
}

// RecordExpired records a pending request expired by the sweeper.
func RecordExpired() {
	expiredTotal.Inc()
}
