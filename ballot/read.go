// SPDX-License-Identifier: MIT

package ballot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/radial/matrix"
)

// Read parses a ballot CSV from r.
//
// Rows may be shorter than the header; absent trailing cells count as empty.
// Rows longer than the header are rejected by the CSV reader.
//
// Errors: ErrNoQuestions, ErrNoRows, ErrBadParticipant, ErrUnknownResponse
// (with 1-based line and the question name), or the underlying csv error.
func Read(r io.Reader, enc Encoding) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("Read: %w", ErrNoQuestions)
	}
	if err != nil {
		return nil, fmt.Errorf("Read: header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("Read: %w", ErrNoQuestions)
	}
	questions := make([]string, len(header)-1)
	for j, h := range header[1:] {
		questions[j] = strings.TrimSpace(h)
	}
	c := len(questions)

	lookup := enc.tokens()
	var (
		ids  []string
		data []float64
		seen = make(map[string]int)
	)
	for {
		rec, rErr := cr.Read()
		if errors.Is(rErr, io.EOF) {
			break
		}
		if rErr != nil {
			return nil, fmt.Errorf("Read: %w", rErr)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) > c+1 {
			return nil, fmt.Errorf("Read: line %d: %d fields for %d columns: %w",
				line, len(rec), c+1, csv.ErrFieldCount)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}

		id := strings.TrimSpace(rec[0])
		if id == "" {
			return nil, fmt.Errorf("Read: line %d: empty id: %w", line, ErrBadParticipant)
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("Read: line %d: id %q already on line %d: %w",
				line, id, prev, ErrBadParticipant)
		}
		seen[id] = line
		ids = append(ids, id)

		for j := 0; j < c; j++ {
			cell := ""
			if j+1 < len(rec) {
				cell = rec[j+1]
			}
			v, ok := enc.value(lookup, cell)
			if !ok {
				return nil, fmt.Errorf("Read: line %d, question %q: token %q: %w",
					line, questions[j], cell, ErrUnknownResponse)
			}
			data = append(data, v)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("Read: %w", ErrNoRows)
	}

	resp, err := matrix.NewDenseFrom(len(ids), c, data)
	if err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}

	return &Table{IDs: ids, Questions: questions, Responses: resp}, nil
}

// ReadFile opens path and calls Read.
func ReadFile(path string, enc Encoding) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadFile: %w", err)
	}
	defer f.Close()

	return Read(f, enc)
}

// tokens builds the lower-cased lookup for Yes/No spellings.
func (e Encoding) tokens() map[string]float64 {
	m := make(map[string]float64, len(e.Yes)+len(e.No))
	for _, s := range e.No {
		m[strings.ToLower(strings.TrimSpace(s))] = 0
	}
	for _, s := range e.Yes {
		m[strings.ToLower(strings.TrimSpace(s))] = 1
	}

	return m
}

// value maps one cell. Numeric cells must be 0, 0.5 or 1.
func (e Encoding) value(lookup map[string]float64, cell string) (float64, bool) {
	tok := strings.ToLower(strings.TrimSpace(cell))
	if tok == "" {
		return e.Missing, true
	}
	if v, ok := lookup[tok]; ok {
		return v, true
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil && (f == 0 || f == 0.5 || f == 1) {
		return f, true
	}
	if e.Lenient {
		return e.Missing, true
	}

	return 0, false
}
