// SPDX-License-Identifier: MIT

package sector

import "golang.org/x/sync/errgroup"

// searchParallel evaluates offsets in ascending batches of `workers`
// candidates. Within a batch every candidate is evaluated concurrently; the
// batch result is reduced by ascending offset, so the returned trial is the
// same one searchSequential would return.
func searchParallel(base []float64, k, resolution, workers int) (*trial, error) {
	for start := 0; start < resolution; start += workers {
		end := min(start+workers, resolution)
		batch := make([]*trial, end-start)

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				// each goroutine writes only its own slot
				batch[i-start] = evaluate(base, offsetAt(i, resolution), k)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for _, t := range batch {
			if t != nil {
				return t, nil
			}
		}
	}

	return nil, nil
}
