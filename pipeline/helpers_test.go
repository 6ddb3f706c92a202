// SPDX-License-Identifier: MIT

package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/radial/metrics"
)

// runsTotal reads radial_pipeline_runs_total{result=...} from rec's registry.
func runsTotal(t *testing.T, rec *metrics.Prometheus, result string) float64 {
	t.Helper()
	mfs, err := rec.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "radial_pipeline_runs_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "result" && lp.GetValue() == result {
					return m.GetCounter().GetValue()
				}
			}
		}
	}

	return 0
}
