package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
	metric:
		for _, m := range fam.GetMetric() {
			for _, pair := range m.GetLabel() {
				if labels[pair.GetName()] != pair.GetValue() {
					continue metric
				}
			}
			if m.GetCounter() != nil {
				return m.GetCounter().GetValue()
			}
			return float64(m.GetHistogram().GetSampleCount())
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordRuleRun("level_relationship", "ok")
	r.RecordRuleRun("level_relationship", "ok")
	r.RecordRuleRun("fifty_fifty", "error")
	r.RecordWindows(5, 2)
	r.RecordRunDuration("level_relationship", 250*time.Millisecond)

	assert.Equal(t, 2.0, gatherValue(t, reg, "allocrun_rule_runs_total",
		map[string]string{"rule": "level_relationship", "status": "ok"}))
	assert.Equal(t, 1.0, gatherValue(t, reg, "allocrun_rule_runs_total",
		map[string]string{"rule": "fifty_fifty", "status": "error"}))
	assert.Equal(t, 5.0, gatherValue(t, reg, "allocrun_windows_total",
		map[string]string{"status": "fitted"}))
	assert.Equal(t, 2.0, gatherValue(t, reg, "allocrun_windows_total",
		map[string]string{"status": "degenerate"}))
	assert.Equal(t, 1.0, gatherValue(t, reg, "allocrun_run_duration_seconds",
		map[string]string{"rule": "level_relationship"}))
}
