package netkitmetrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	netkitmetrics "github.com/netkit-go/netkit/internal/metrics"
)

func TestNewCollector(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := netkitmetrics.NewCollector(reg)

	if c.IngestDuration == nil {
		t.Error("IngestDuration is nil")
	}
	if c.IngestRecords == nil {
		t.Error("IngestRecords is nil")
	}
	if c.IngestSkipped == nil {
		t.Error("IngestSkipped is nil")
	}
	if c.LookupDuration == nil {
		t.Error("LookupDuration is nil")
	}
	if c.DecodeTotal == nil {
		t.Error("DecodeTotal is nil")
	}
}

func TestCollectorObserveIngest(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := netkitmetrics.NewCollector(reg)

	c.ObserveIngest("oui.csv", 0.25, 10, 2)

	if got := counterValue(t, c.IngestRecords, "oui.csv"); got != 10 {
		t.Errorf("IngestRecords[oui.csv] = %v, want 10", got)
	}
	if got := counterValue(t, c.IngestSkipped, "oui.csv"); got != 2 {
		t.Errorf("IngestSkipped[oui.csv] = %v, want 2", got)
	}
}

func TestCollectorIncDecode(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := netkitmetrics.NewCollector(reg)

	c.IncDecode("ethernet")
	c.IncDecode("ethernet")
	c.IncDecode("tcp")

	if got := counterValue(t, c.DecodeTotal, "ethernet"); got != 2 {
		t.Errorf("DecodeTotal[ethernet] = %v, want 2", got)
	}
	if got := counterValue(t, c.DecodeTotal, "tcp"); got != 1 {
		t.Errorf("DecodeTotal[tcp] = %v, want 1", got)
	}
}

func TestCollectorObserveLookup(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := netkitmetrics.NewCollector(reg)

	c.ObserveLookup(0.001)

	m := &dto.Metric{}
	if err := c.LookupDuration.Write(m); err != nil {
		t.Fatalf("Write metric: %v", err)
	}
	if m.GetHistogram().GetSampleCount() != 1 {
		t.Errorf("LookupDuration sample count = %d, want 1", m.GetHistogram().GetSampleCount())
	}
}

// -------------------------------------------------------------------------
// Helpers
// -------------------------------------------------------------------------

// counterValue reads the current value of a CounterVec with the given labels.
func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()

	counter, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues(%v): %v", labels, err)
	}

	m := &dto.Metric{}
	if err := counter.Write(m); err != nil {
		t.Fatalf("Write metric: %v", err)
	}

	return m.GetCounter().GetValue()
}
