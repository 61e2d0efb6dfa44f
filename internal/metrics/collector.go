// Package netkitmetrics wires netkit's Prometheus instrumentation.
package netkitmetrics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "netkit"
)

// Label names.
const (
	labelSource  = "source"
	labelDecoder = "decoder"
)

// Collector holds all netkit Prometheus metrics.
//
// Metrics cover the three places work actually happens at scale: OUI
// registry ingestion, OUI lookup, and packet decoding.
type Collector struct {
	// IngestDuration observes how long a single OUI source file took to
	// parse and upsert into the store.
	IngestDuration *prometheus.HistogramVec

	// IngestRecords counts well-formed records parsed per source file;
	// malformed records are counted in IngestSkipped instead.
	IngestRecords *prometheus.CounterVec

	// IngestSkipped counts malformed records skipped during ingestion,
	// per source file.
	IngestSkipped *prometheus.CounterVec

	// LookupDuration observes OUI store lookup latency.
	LookupDuration prometheus.Histogram

	// DecodeTotal counts packets decoded, labeled by decoder
	// (ethernet, ipv4, icmpv4, tcp).
	DecodeTotal *prometheus.CounterVec
}

// NewCollector creates a Collector with all netkit metrics registered
// against reg. If reg is nil, prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.IngestDuration,
		c.IngestRecords,
		c.IngestSkipped,
		c.LookupDuration,
		c.DecodeTotal,
	)

	return c
}

func newMetrics() *Collector {
	return &Collector{
		IngestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "oui",
			Name:      "ingest_duration_seconds",
			Help:      "Time to parse and upsert one OUI source file.",
			Buckets:   prometheus.DefBuckets,
		}, []string{labelSource}),

		IngestRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oui",
			Name:      "ingest_records_total",
			Help:      "Total OUI records parsed per source file.",
		}, []string{labelSource}),

		IngestSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oui",
			Name:      "ingest_skipped_total",
			Help:      "Total malformed OUI records skipped per source file.",
		}, []string{labelSource}),

		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "oui",
			Name:      "lookup_duration_seconds",
			Help:      "OUI store lookup latency.",
			Buckets:   prometheus.DefBuckets,
		}),

		DecodeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "decode",
			Name:      "packets_total",
			Help:      "Total packets decoded, per decoder.",
		}, []string{labelDecoder}),
	}
}

// ObserveIngest records one source file's ingestion outcome.
func (c *Collector) ObserveIngest(source string, seconds float64, records, skipped int) {
	c.IngestDuration.WithLabelValues(source).Observe(seconds)
	c.IngestRecords.WithLabelValues(source).Add(float64(records))
	c.IngestSkipped.WithLabelValues(source).Add(float64(skipped))
}

// ObserveLookup records one OUI store lookup's latency.
func (c *Collector) ObserveLookup(seconds float64) {
	c.LookupDuration.Observe(seconds)
}

// IncDecode increments the decode counter for the given decoder name
// (ethernet, ipv4, icmpv4, tcp).
func (c *Collector) IncDecode(decoder string) {
	c.DecodeTotal.WithLabelValues(decoder).Inc()
}
