package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordSimulation(t *testing.T) {
	r := NewRegistry()

	r.RecordSimulation("sequential", "ok", 120*time.Millisecond, 1000, 3000)
	r.RecordSimulation("parallel", "ok", 80*time.Millisecond, 1000, 3000)
	r.RecordSimulation("sequential", "error", time.Millisecond, 0, 0)

	if got := testutil.ToFloat64(r.SimulationRunsTotal.WithLabelValues("sequential", "ok")); got != 1 {
		t.Errorf("sequential/ok runs = %g, want 1", got)
	}
	if got := testutil.ToFloat64(r.SimulationRunsTotal.WithLabelValues("sequential", "error")); got != 1 {
		t.Errorf("sequential/error runs = %g, want 1", got)
	}
	if got := testutil.ToFloat64(r.SimulationIterationsTotal); got != 2000 {
		t.Errorf("iterations = %g, want 2000", got)
	}
	if got := testutil.ToFloat64(r.ResultRowsTotal); got != 6000 {
		t.Errorf("result rows = %g, want 6000", got)
	}
}

func TestNetworkMetrics(t *testing.T) {
	r := NewRegistry()

	r.UpdateNetworkSize(4, 3)
	r.RecordDisruption()
	r.RecordDisruption()
	r.RecordPathQuery("ok")
	r.RecordPathQuery("no_path")

	if got := testutil.ToFloat64(r.NetworkNodesTotal); got != 4 {
		t.Errorf("nodes gauge = %g, want 4", got)
	}
	if got := testutil.ToFloat64(r.NetworkEdgesTotal); got != 3 {
		t.Errorf("edges gauge = %g, want 3", got)
	}
	if got := testutil.ToFloat64(r.DisruptionsTotal); got != 2 {
		t.Errorf("disruptions = %g, want 2", got)
	}
	if got := testutil.ToFloat64(r.PathQueriesTotal.WithLabelValues("no_path")); got != 1 {
		t.Errorf("no_path queries = %g, want 1", got)
	}
}

func TestDefaultRegistry_Singleton(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry returned different instances")
	}
}
