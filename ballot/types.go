// SPDX-License-Identifier: MIT

package ballot

import (
	"errors"

	"github.com/katalvlaran/radial/matrix"
)

var (
	// ErrUnknownResponse is returned for a cell token the encoding cannot map.
	ErrUnknownResponse = errors.New("ballot: unknown response token")

	// ErrBadParticipant is returned for an empty or duplicate participant id.
	ErrBadParticipant = errors.New("ballot: bad participant id")

	// ErrNoRows is returned when the input has a header but no data rows.
	ErrNoRows = errors.New("ballot: no participant rows")

	// ErrNoQuestions is returned when the header has no question columns.
	ErrNoQuestions = errors.New("ballot: no question columns")

	// ErrLengthMismatch is returned by WriteAssignments when an id has no group.
	ErrLengthMismatch = errors.New("ballot: participant without assignment")
)

// Encoding maps answer tokens to numbers.
type Encoding struct {
	// Yes and No list the accepted spellings (compared case-insensitively).
	Yes, No []string

	// Missing is the value of an empty cell.
	Missing float64

	// Lenient maps unknown tokens to Missing instead of failing.
	Lenient bool
}

// DefaultEncoding returns yes→1, no→0, empty→0.5, strict.
func DefaultEncoding() Encoding {
	return Encoding{
		Yes:     []string{"yes"},
		No:      []string{"no"},
		Missing: 0.5,
	}
}

// Table is a parsed ballot: IDs[i] answered row i of Responses.
type Table struct {
	IDs       []string
	Questions []string
	Responses *matrix.Dense
}
