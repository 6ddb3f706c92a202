// SPDX-License-Identifier: MIT

package sector_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/radial/sector"
)

// pointAt places a participant on the unit circle so that its partition
// angle (centroid at the origin, offset 0) equals deg.
func pointAt(id string, deg float64) sector.Participant {
	rad := -deg * math.Pi / 180

	return sector.Participant{ID: id, X: math.Cos(rad), Y: math.Sin(rad)}
}

// ring returns n participants evenly spaced on the unit circle, starting at start degrees.
func ring(n int, start float64) []sector.Participant {
	ps := make([]sector.Participant, n)
	step := sector.FullTurn / float64(n)
	for i := 0; i < n; i++ {
		ps[i] = pointAt(fmt.Sprintf("p%02d", i), start+float64(i)*step)
	}

	return ps
}

// scatter returns n pseudo-random participants from a fixed seed.
func scatter(n int, seed int64) []sector.Participant {
	rng := rand.New(rand.NewSource(seed))
	ps := make([]sector.Participant, n)
	for i := range ps {
		ps[i] = sector.Participant{
			ID: fmt.Sprintf("id-%d", i),
			X:  rng.NormFloat64() * 3,
			Y:  rng.NormFloat64(),
		}
	}

	return ps
}

// requireBalanced asserts the size invariant and exact cover of res over ps.
func requireBalanced(t *testing.T, ps []sector.Participant, k int, res *sector.Result) {
	t.Helper()
	n := len(ps)
	q, rem := n/k, n%k

	require.Len(t, res.Labels, k)
	require.Len(t, res.Sizes, k)
	require.Len(t, res.Assignment, n, "every participant must be assigned exactly once")

	counts := make(map[sector.Label]int, k)
	for _, p := range ps {
		l, ok := res.Assignment[p.ID]
		require.True(t, ok, "participant %s missing", p.ID)
		counts[l]++
	}

	sum, larger := 0, 0
	for g, l := range res.Labels {
		size := counts[l]
		assert.Equal(t, res.Sizes[g], size, "Sizes must match assignment for %s", l)
		assert.GreaterOrEqual(t, size, q)
		assert.LessOrEqual(t, size, q+1)
		if size == q+1 {
			larger++
		}
		sum += size
	}
	assert.Equal(t, n, sum)
	if rem > 0 {
		assert.Equal(t, rem, larger, "exactly n mod k groups carry the extra member")
	}
}

func TestPartition_BalanceSweep(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 40; n++ {
		ps := scatter(n, int64(n))
		for k := 1; k <= n; k++ {
			res, err := sector.Partition(ps, k, nil)
			require.NoError(t, err, "n=%d k=%d", n, k)
			requireBalanced(t, ps, k, res)
		}
	}
}

func TestPartition_TwelveBySix(t *testing.T) {
	t.Parallel()

	ps := ring(12, 5)
	res, err := sector.Partition(ps, 6, nil)
	require.NoError(t, err)
	requireBalanced(t, ps, 6, res)
	for g := range res.Labels {
		assert.Equal(t, 2, res.Sizes[g])
	}

	// Runs follow angular order: p00,p01 → A; p02,p03 → B; …
	want := []sector.Label{"A", "A", "B", "B", "C", "C", "D", "D", "E", "E", "F", "F"}
	for i, p := range ps {
		assert.Equal(t, want[i], res.Assignment[p.ID], "participant %s", p.ID)
	}

	cuts, err := res.Boundaries()
	require.NoError(t, err)
	require.Len(t, cuts, 6)
	wantCuts := []float64{50, 110, 170, 230, 290, 350}
	for i, c := range cuts {
		assert.InDelta(t, wantCuts[i], c.Angle, 1e-9, "cut %d", i)
	}
	assert.Equal(t, sector.Label("F"), cuts[5].After)
	assert.Equal(t, sector.Label("A"), cuts[5].Before)
}

func TestPartition_ThirteenBySix(t *testing.T) {
	t.Parallel()

	ps := scatter(13, 99)
	res, err := sector.Partition(ps, 6, nil)
	require.NoError(t, err)
	requireBalanced(t, ps, 6, res)

	// The extra member always lands in the first run.
	assert.Equal(t, []int{3, 2, 2, 2, 2, 2}, res.Sizes)
}

func TestPartition_SingleGroup(t *testing.T) {
	t.Parallel()

	ps := scatter(9, 3)
	res, err := sector.Partition(ps, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Offset)
	for _, p := range ps {
		assert.Equal(t, sector.Label("A"), res.Assignment[p.ID])
	}
}

func TestPartition_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ps   []sector.Participant
		k    int
		opts *sector.Options
		want error
	}{
		{"empty input", nil, 6, nil, sector.ErrEmptyInput},
		{"zero groups", scatter(4, 1), 0, nil, sector.ErrInvalidGroupCount},
		{"zero groups and empty", nil, 0, nil, sector.ErrInvalidGroupCount},
		{"negative groups", scatter(4, 1), -2, nil, sector.ErrInvalidGroupCount},
		{"more groups than participants", scatter(3, 1), 6, nil, sector.ErrInvalidGroupCount},
		{"duplicate id", []sector.Participant{{ID: "a"}, {ID: "a", X: 1}}, 1, nil, sector.ErrDuplicateID},
		{"nan coordinate", []sector.Participant{{ID: "a", X: math.NaN()}}, 1, nil, sector.ErrNonFinite},
		{"inf coordinate", []sector.Participant{{ID: "a", Y: math.Inf(-1)}}, 1, nil, sector.ErrNonFinite},
		{"label count", scatter(4, 1), 2, &sector.Options{Labels: []sector.Label{"x"}}, sector.ErrLabelCount},
		{"duplicate labels", scatter(4, 1), 2, &sector.Options{Labels: []sector.Label{"x", "x"}}, sector.ErrLabelCount},
		{"negative resolution", scatter(4, 1), 2, &sector.Options{Resolution: -1}, sector.ErrBadResolution},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := sector.Partition(tc.ps, tc.k, tc.opts)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, res, "failures never return partial results")
		})
	}
}

func TestPartition_Deterministic(t *testing.T) {
	t.Parallel()

	ps := scatter(57, 11)
	a, err := sector.Partition(ps, 6, nil)
	require.NoError(t, err)
	b, err := sector.Partition(ps, 6, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Offset, b.Offset)
	assert.Equal(t, a.Assignment, b.Assignment)
	assert.Equal(t, a.Order, b.Order)
}

// The split is structural, so the very first candidate always wins.
func TestPartition_OffsetZeroAlwaysWins(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 25; seed++ {
		ps := scatter(5+int(seed)*3, seed)
		for _, k := range []int{1, 2, 3, 5} {
			res, err := sector.Partition(ps, k, nil)
			require.NoError(t, err)
			assert.Equal(t, 0.0, res.Offset, "seed=%d k=%d", seed, k)
		}
	}
}

// Coincident points share an angle and keep input order.
func TestPartition_TiesKeepInputOrder(t *testing.T) {
	t.Parallel()

	ps := []sector.Participant{
		{ID: "d", X: 1, Y: 1},
		{ID: "c", X: 1, Y: 1},
		{ID: "b", X: 1, Y: 1},
		{ID: "a", X: 1, Y: 1},
	}
	res, err := sector.Partition(ps, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, res.Order)
	assert.Equal(t, sector.Assignment{"d": "A", "c": "A", "b": "B", "a": "B"}, res.Assignment)
}

func TestPartition_CustomLabels(t *testing.T) {
	t.Parallel()

	labels := []sector.Label{"north", "south", "east"}
	ps := ring(7, 10)
	res, err := sector.Partition(ps, 3, &sector.Options{Labels: labels})
	require.NoError(t, err)
	assert.Equal(t, labels, res.Labels)
	assert.Equal(t, sector.Label("north"), res.Assignment["p00"])
	assert.Equal(t, sector.Label("east"), res.Assignment["p06"])
	assert.Equal(t, []int{3, 2, 2}, res.Sizes)
}

func TestPartition_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{2, 7, 64, 500} {
		ps := scatter(41, int64(workers))
		seq, err := sector.Partition(ps, 6, nil)
		require.NoError(t, err)
		par, err := sector.Partition(ps, 6, &sector.Options{Resolution: 360, Workers: workers})
		require.NoError(t, err)

		assert.Equal(t, seq.Offset, par.Offset, "workers=%d", workers)
		assert.Equal(t, seq.Assignment, par.Assignment, "workers=%d", workers)
	}
}

func TestPartition_MembersFollowOrder(t *testing.T) {
	t.Parallel()

	ps := ring(10, 3)
	res, err := sector.Partition(ps, 3, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3}, res.Members(0))
	assert.Equal(t, []int{4, 5, 6}, res.Members(1))
	assert.Equal(t, []int{7, 8, 9}, res.Members(2))
	assert.Equal(t, 1, res.GroupOf(5))
}

func TestGenerateLabels(t *testing.T) {
	t.Parallel()

	assert.Nil(t, sector.GenerateLabels(0))
	assert.Equal(t, []sector.Label{"A", "B", "C"}, sector.GenerateLabels(3))

	l := sector.GenerateLabels(703)
	assert.Equal(t, sector.Label("Z"), l[25])
	assert.Equal(t, sector.Label("AA"), l[26])
	assert.Equal(t, sector.Label("AB"), l[27])
	assert.Equal(t, sector.Label("ZZ"), l[701])
	assert.Equal(t, sector.Label("AAA"), l[702])
}

func TestAngleFrames(t *testing.T) {
	t.Parallel()

	origin := sector.Point{}
	// A point at plane angle 30° sits at −30° in the mirrored frame.
	p := sector.Point{X: math.Cos(math.Pi / 6), Y: math.Sin(math.Pi / 6)}
	a := sector.Angle(p, origin, 45)
	assert.InDelta(t, 15, a, 1e-9)
	assert.InDelta(t, 30, sector.PlaneAngle(a, 45), 1e-9)

	assert.Equal(t, 0.0, sector.Normalize(360))
	assert.Equal(t, 350.0, sector.Normalize(-10))
	assert.Equal(t, 20.0, sector.Normalize(740))
}

func TestPartition_HugeCoordinates(t *testing.T) {
	t.Parallel()

	ps := []sector.Participant{
		{ID: "a", X: 1e308, Y: 1e308},
		{ID: "b", X: 1e308, Y: -1e308},
		{ID: "c", X: -1e308, Y: 0},
	}
	c := sector.Centroid(ps)
	require.False(t, math.IsInf(c.X, 0) || math.IsNaN(c.X), "centroid x=%v", c.X)
	assert.InEpsilon(t, 1e308/3, c.X, 1e-12)
	assert.Equal(t, 0.0, c.Y)

	res, err := sector.Partition(ps, 3, nil)
	require.NoError(t, err)
	assert.InDelta(t, 303.690, res.Angles[0], 1e-3)
	assert.InDelta(t, 56.310, res.Angles[1], 1e-3)
	assert.InDelta(t, 180.0, res.Angles[2], 1e-9)
	assert.Equal(t, []int{1, 1, 1}, res.Sizes)
	assert.Equal(t, sector.Assignment{"a": "C", "b": "A", "c": "B"}, res.Assignment)
}

func TestAngle_DifferenceOverflow(t *testing.T) {
	t.Parallel()

	// 1.7e308 − (−5.67e307) overflows float64; the angle must still be 0.
	ps := []sector.Participant{
		{ID: "a", X: 1.7e308, Y: 0},
		{ID: "b", X: -1.7e308, Y: 1},
		{ID: "c", X: -1.7e308, Y: -1},
	}
	c := sector.Centroid(ps)
	assert.InDelta(t, 0, sector.Angle(sector.Point{X: ps[0].X, Y: ps[0].Y}, c, 0), 1e-9)

	res, err := sector.Partition(ps, 3, nil)
	require.NoError(t, err)
	for i, a := range res.Angles {
		assert.False(t, math.IsNaN(a), "angle %d", i)
	}
	assert.InDelta(t, 0, res.Angles[0], 1e-9)
	assert.Equal(t, sector.Label("A"), res.Assignment["a"])
}
