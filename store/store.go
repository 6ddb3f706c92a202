// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/radial/sector"
)

// ErrRunNotFound is returned by LoadRun for an unknown id.
var ErrRunNotFound = errors.New("store: run not found")

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	input TEXT NOT NULL DEFAULT '',
	input_digest TEXT NOT NULL DEFAULT '',
	group_count INTEGER NOT NULL,
	participants INTEGER NOT NULL,
	offset_deg REAL NOT NULL,
	centroid_x REAL NOT NULL,
	centroid_y REAL NOT NULL,
	explained TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

CREATE TABLE IF NOT EXISTS assignments (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	participant TEXT NOT NULL,
	label TEXT NOT NULL,
	x REAL NOT NULL,
	y REAL NOT NULL,
	angle REAL NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE TABLE IF NOT EXISTS boundaries (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	after_label TEXT NOT NULL,
	before_label TEXT NOT NULL,
	angle REAL NOT NULL,
	PRIMARY KEY (run_id, position)
);
`

// Member is one participant row of a stored run.
type Member struct {
	ID    string
	Group sector.Label
	X, Y  float64
	Angle float64 // partition-frame angle at the run's offset
}

// Run is a complete stored partition.
type Run struct {
	ID          string
	CreatedAt   time.Time
	Input       string // source path, informational
	InputDigest string // content hash of the source ballot
	Groups      int
	Offset      float64
	CentroidX   float64
	CentroidY   float64
	Explained   []float64 // explained-variance ratio per component
	Members     []Member
	Boundaries  []sector.Boundary
}

// Summary is the listing view of a run.
type Summary struct {
	ID           string
	CreatedAt    time.Time
	Input        string
	InputDigest  string
	Groups       int
	Participants int
	Offset       float64
}

// Store wraps the SQLite handle.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates (if needed) the database at path and its schema.
// ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// One connection keeps :memory: state consistent and avoids SQLITE_BUSY
	// between our own writers.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.initialize(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// dsn enables foreign keys on every connection the pool opens, so
// DeleteRun cascades even after a connection is replaced.
func dsn(path string) string {
	return path + "?_pragma=foreign_keys(1)"
}

func (s *Store) initialize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("store: create schema: %w", err)
	}

	return nil
}

// Path returns the database path given to Open.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts r and its members and boundaries in one transaction.
// An empty r.ID gets a fresh UUID and a zero CreatedAt gets the current time;
// both are written back into r. Returns the run id.
func (s *Store) SaveRun(ctx context.Context, r *Run) (id string, err error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	explained, err := json.Marshal(nonNil(r.Explained))
	if err != nil {
		return "", fmt.Errorf("store: encode explained variance: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, input, input_digest, group_count, participants, offset_deg, centroid_x, centroid_y, explained)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(timeLayout), r.Input, r.InputDigest, r.Groups,
		len(r.Members), r.Offset, r.CentroidX, r.CentroidY, string(explained),
	); err != nil {
		return "", fmt.Errorf("store: insert run: %w", err)
	}

	memberStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO assignments (run_id, position, participant, label, x, y, angle) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("store: prepare assignments: %w", err)
	}
	defer memberStmt.Close()
	for i, m := range r.Members {
		if _, err = memberStmt.ExecContext(ctx, r.ID, i, m.ID, string(m.Group), m.X, m.Y, m.Angle); err != nil {
			return "", fmt.Errorf("store: insert assignment %q: %w", m.ID, err)
		}
	}

	boundaryStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO boundaries (run_id, position, after_label, before_label, angle) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("store: prepare boundaries: %w", err)
	}
	defer boundaryStmt.Close()
	for i, b := range r.Boundaries {
		if _, err = boundaryStmt.ExecContext(ctx, r.ID, i, string(b.After), string(b.Before), b.Angle); err != nil {
			return "", fmt.Errorf("store: insert boundary %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit: %w", err)
	}

	return r.ID, nil
}

// LoadRun reads a run with its members (input order) and boundaries.
func (s *Store) LoadRun(ctx context.Context, id string) (*Run, error) {
	var (
		r         = &Run{ID: id}
		created   string
		explained string
		n         int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at, input, input_digest, group_count, participants, offset_deg, centroid_x, centroid_y, explained
		 FROM runs WHERE id = ?`, id,
	).Scan(&created, &r.Input, &r.InputDigest, &r.Groups, &n, &r.Offset, &r.CentroidX, &r.CentroidY, &explained)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: %q: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load run: %w", err)
	}
	if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("store: run %q created_at: %w", id, err)
	}
	if err = json.Unmarshal([]byte(explained), &r.Explained); err != nil {
		return nil, fmt.Errorf("store: run %q explained: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT participant, label, x, y, angle FROM assignments WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("store: load assignments: %w", err)
	}
	r.Members = make([]Member, 0, n)
	for rows.Next() {
		var (
			m     Member
			label string
		)
		if err = rows.Scan(&m.ID, &label, &m.X, &m.Y, &m.Angle); err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: scan assignment: %w", err)
		}
		m.Group = sector.Label(label)
		r.Members = append(r.Members, m)
	}
	if err = closeRows(rows); err != nil {
		return nil, fmt.Errorf("store: load assignments: %w", err)
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT after_label, before_label, angle FROM boundaries WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("store: load boundaries: %w", err)
	}
	for rows.Next() {
		var after, before string
		var angle float64
		if err = rows.Scan(&after, &before, &angle); err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: scan boundary: %w", err)
		}
		r.Boundaries = append(r.Boundaries, sector.Boundary{After: sector.Label(after), Before: sector.Label(before), Angle: angle})
	}
	if err = closeRows(rows); err != nil {
		return nil, fmt.Errorf("store: load boundaries: %w", err)
	}

	return r, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, input, input_digest, group_count, participants, offset_deg
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	var out []Summary
	for rows.Next() {
		var (
			sm      Summary
			created string
		)
		if err = rows.Scan(&sm.ID, &created, &sm.Input, &sm.InputDigest, &sm.Groups, &sm.Participants, &sm.Offset); err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		if sm.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: run %q created_at: %w", sm.ID, err)
		}
		out = append(out, sm)
	}
	if err = closeRows(rows); err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}

	return out, nil
}

// DeleteRun removes a run; members and boundaries cascade.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: %q: %w", id, ErrRunNotFound)
	}

	return nil
}

// closeRows reports the iteration error first, then the close error.
func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}

	return rows.Close()
}

func nonNil(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}

	return v
}
