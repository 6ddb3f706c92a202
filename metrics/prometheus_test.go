// SPDX-License-Identifier: MIT

package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/radial/metrics"
)

func TestPrometheus_Values(t *testing.T) {
	t.Parallel()

	p := metrics.NewPrometheus(nil, "")
	p.RecordRun("success")
	p.RecordRun("success")
	p.RecordRun("failure")
	p.SetParticipants(12)
	p.SetGroupSize("A", 2)
	p.SetExplainedVariance(0, 0.75)
	p.SetOffset(3)
	p.ObserveStage("partition", 0.002)

	expected := `
# HELP radial_pipeline_runs_total Finished runs by result (success,failure).
# TYPE radial_pipeline_runs_total counter
radial_pipeline_runs_total{result="failure"} 1
radial_pipeline_runs_total{result="success"} 2
`
	require.NoError(t, testutil.GatherAndCompare(p.Registry(), strings.NewReader(expected), "radial_pipeline_runs_total"))

	n, err := testutil.GatherAndCount(p.Registry())
	require.NoError(t, err)
	assert.Equal(t, 7, n) // two run results plus five single series
}

func TestPrometheus_WriteTextfile(t *testing.T) {
	t.Parallel()

	p := metrics.NewPrometheus(nil, "radial_test")
	p.SetParticipants(5)
	path := filepath.Join(t.TempDir(), "radial.prom")
	require.NoError(t, p.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "radial_test_partition_participants 5")
}

func TestPrometheus_Push(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Contains(t, r.URL.Path, "/metrics/job/radial")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := metrics.NewPrometheus(nil, "")
	p.RecordRun("success")
	require.NoError(t, p.Push(context.Background(), srv.URL, "radial"))
	assert.Equal(t, int32(1), hits.Load())
}

func TestNop(t *testing.T) {
	t.Parallel()

	var r metrics.Recorder = metrics.NewNop()
	r.RecordRun("success")
	r.ObserveStage("x", 1)
	r.SetParticipants(1)
	r.SetGroupSize("A", 1)
	r.SetExplainedVariance(0, 1)
	r.SetOffset(0)
}
