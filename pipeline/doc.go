// Package pipeline wires the stages of a radial partitioning run:
//
//	read ballot → project (pca) → partition (sector) → boundaries
//	→ assignments CSV → PNG chart → SQLite run record
//
// Every stage logs one structured line, reports its duration to a
// metrics.Recorder, and wraps its error with the stage name so callers can
// still match sentinels with errors.Is. Outputs with an empty path in the
// configuration are skipped.
package pipeline
