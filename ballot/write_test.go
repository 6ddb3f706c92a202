// SPDX-License-Identifier: MIT

package ballot_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/radial/ballot"
	"github.com/katalvlaran/radial/sector"
)

func TestWriteAssignments(t *testing.T) {
	t.Parallel()

	a := sector.Assignment{"p2": "B", "p1": "A", "p3": "A"}
	var buf bytes.Buffer
	require.NoError(t, ballot.WriteAssignments(&buf, []string{"p1", "p2", "p3"}, a))
	assert.Equal(t, "pid,group\np1,A\np2,B\np3,A\n", buf.String())

	err := ballot.WriteAssignments(&bytes.Buffer{}, []string{"p9"}, a)
	assert.ErrorIs(t, err, ballot.ErrLengthMismatch)
}

func TestWriteAssignmentsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ballot.WriteAssignmentsFile(path, []string{"x"}, sector.Assignment{"x": "C"}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pid,group\nx,C\n", string(b))
}
