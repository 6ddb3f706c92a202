// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/radial/config"
	"github.com/katalvlaran/radial/store"
)

const votes = `participant_id,q1,q2,q3,q4
p01,yes,yes,no,no
p02,yes,no,no,yes
p03,no,no,yes,yes
p04,no,yes,yes,no
p05,yes,yes,yes,no
p06,,no,yes,yes
p07,no,,no,yes
p08,yes,yes,,no
p09,no,yes,no,
p10,yes,no,yes,no
p11,no,no,no,no
p12,yes,yes,yes,yes
p13,,yes,no,yes
`

var memberRow = regexp.MustCompile(`│ p\d\d `)

// execute runs the command tree with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestRunListShow(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "votes.csv")
	require.NoError(t, os.WriteFile(input, []byte(votes), 0o600))
	cfgPath := filepath.Join(dir, "missing.yaml")
	db := filepath.Join(dir, "runs.db")
	outCSV := filepath.Join(dir, "assignments.csv")
	outPNG := filepath.Join(dir, "chart.png")
	prom := filepath.Join(dir, "radial.prom")

	out, err := execute(t, "run", input,
		"--config", cfgPath,
		"--groups", "4",
		"--out-csv", outCSV,
		"--out-png", outPNG,
		"--db", db,
		"--metrics-file", prom,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "radial partition")
	assert.Contains(t, out, "13")
	assert.Contains(t, out, outCSV)
	assert.FileExists(t, outCSV)
	assert.FileExists(t, outPNG)

	metricsText, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(metricsText), `radial_pipeline_runs_total{result="success"} 1`)

	st, err := store.Open(context.Background(), db)
	require.NoError(t, err)
	runs, err := st.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.Len(t, runs, 1)
	id := runs[0].ID
	assert.Contains(t, out, id)

	out, err = execute(t, "runs", "--config", cfgPath, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "votes.csv")

	out, err = execute(t, "show", id, "--config", cfgPath, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "run "+id)
	for _, pid := range []string{"p01", "p07", "p13"} {
		assert.Contains(t, out, pid)
	}
	assert.Equal(t, 13, len(memberRow.FindAllString(out, -1)), "one member row per participant")
}

func TestRuns_Empty(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "runs",
		"--config", filepath.Join(dir, "none.yaml"),
		"--db", filepath.Join(dir, "runs.db"))
	require.NoError(t, err)
	assert.Equal(t, "no runs stored\n", out)
}

func TestShow_Errors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "none.yaml")
	t.Setenv("RADIAL_DB", "")

	_, err := execute(t, "show", "nope", "--config", cfgPath)
	assert.ErrorIs(t, err, errNoDatabase)

	_, err = execute(t, "show", "nope", "--config", cfgPath, "--db", filepath.Join(dir, "runs.db"))
	assert.ErrorIs(t, err, store.ErrRunNotFound)

	_, err = execute(t, "show", "--config", cfgPath)
	assert.Error(t, err)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "none.yaml")

	_, err := execute(t, "run", "--config", cfgPath)
	assert.Error(t, err, "input argument is required")

	_, err = execute(t, "run", filepath.Join(dir, "absent.csv"),
		"--config", cfgPath,
		"--out-csv", "", "--out-png", "", "--db", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline: read")

	_, err = execute(t, "run", filepath.Join(dir, "absent.csv"), "--config", cfgPath, "--groups", "0")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "radial.yaml")

	out, err := execute(t, "init-config", path, "--config", filepath.Join(dir, "none.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Groups, cfg.Groups)
}

func TestVerboseForcesDebug(t *testing.T) {
	dir := t.TempDir()
	a := &app{}
	root := a.rootCmd()
	root.SetArgs([]string{"runs", "-v", "--config", filepath.Join(dir, "none.yaml"), "--db", filepath.Join(dir, "runs.db")})
	root.SetOut(&bytes.Buffer{})
	require.NoError(t, root.Execute())
	assert.Equal(t, "debug", a.cfg.Logging.Level)
	assert.True(t, a.logger.SugaredLogger.Desugar().Core().Enabled(zapcore.DebugLevel))
}
