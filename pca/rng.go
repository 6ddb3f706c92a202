// SPDX-License-Identifier: MIT
// Package pca - deterministic randomness for the power solver.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe; Project creates one per call.

package pca

import "math/rand"

// defaultRNGSeed replaces a zero Options.Seed.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the provided seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}
