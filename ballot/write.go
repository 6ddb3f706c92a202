// SPDX-License-Identifier: MIT

package ballot

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/radial/sector"
)

// assignmentHeader is the header row of an assignments file.
var assignmentHeader = []string{"pid", "group"}

// WriteAssignments writes "pid,group" rows in the order of ids.
//
// Errors: ErrLengthMismatch when an id has no entry in a, or the csv writer error.
func WriteAssignments(w io.Writer, ids []string, a sector.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(assignmentHeader); err != nil {
		return fmt.Errorf("WriteAssignments: %w", err)
	}
	for _, id := range ids {
		label, ok := a[id]
		if !ok {
			return fmt.Errorf("WriteAssignments: id %q: %w", id, ErrLengthMismatch)
		}
		if err := cw.Write([]string{id, string(label)}); err != nil {
			return fmt.Errorf("WriteAssignments: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("WriteAssignments: %w", err)
	}

	return nil
}

// WriteAssignmentsFile creates (or truncates) path and writes the assignments.
func WriteAssignmentsFile(path string, ids []string, a sector.Assignment) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("WriteAssignmentsFile: %w", err)
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("WriteAssignmentsFile: %w", cErr)
		}
	}()

	return WriteAssignments(f, ids, a)
}
