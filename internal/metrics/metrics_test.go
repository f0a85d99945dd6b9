package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.IncTracked()
	m.IncDropped(DropReasonBufferFull)
	m.SetBufferDepth(5)
	m.IncFlushOutcome(FlushOutcomeOK)
	m.SetConsecutiveFailures(2)
	m.IncSpillWrite()
	m.AddSpillLoaded(3)
}

func TestNewWithNilRegistererReturnsNil(t *testing.T) {
	if New(nil) != nil {
		t.Fatal("New(nil) should return a nil *Metrics")
	}
}

func TestCountersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncTracked()
	m.IncTracked()
	m.IncDropped(DropReasonOversized)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	var trackedVal float64
	for _, f := range families {
		if f.GetName() == "peekapi_events_tracked_total" {
			trackedVal = f.Metric[0].GetCounter().GetValue()
		}
	}
	if trackedVal != 2 {
		t.Fatalf("peekapi_events_tracked_total = %v, want 2", trackedVal)
	}
}
