// SPDX-License-Identifier: MIT
// Package tt_test contains test helpers
//
// Purpose:
//   • Build deterministic random factors and chains for property tests.
//   • Provide a brute-force reference reconstruction independent of Full.

package tt_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/tensortrain/tensor"
	"github.com/katalvlaran/tensortrain/tt"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

// rngFor returns a deterministic source for seed.
func rngFor(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

// randomFactor returns a factor of the given shape filled from rng.
func randomFactor(t testing.TB, rng *rand.Rand, shape ...int) *tensor.Dense {
	t.Helper()
	n := 1
	for _, d := range shape {
		n *= d
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	d, err := tensor.FromData(data, shape)
	require.NoError(t, err)

	return d
}

// plainFactors builds factors (r_k, n_k, r_{k+1}) for modes and inner ranks
// (len(ranks) == len(modes)-1); boundary ranks are 1.
func plainFactors(t testing.TB, seed int64, modes, inner []int) []*tensor.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	r := boundaryRanks(inner)
	out := make([]*tensor.Dense, len(modes))
	for k, n := range modes {
		out[k] = randomFactor(t, rng, r[k], n, r[k+1])
	}

	return out
}

// matrixFactors builds factors (r_k, rows_k, cols_k, r_{k+1}).
func matrixFactors(t testing.TB, seed int64, rows, cols, inner []int) []*tensor.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	r := boundaryRanks(inner)
	out := make([]*tensor.Dense, len(rows))
	for k := range rows {
		out[k] = randomFactor(t, rng, r[k], rows[k], cols[k], r[k+1])
	}

	return out
}

func boundaryRanks(inner []int) []int {
	r := append([]int{1}, inner...)

	return append(r, 1)
}

// mustChain wraps tt.NewChain.
func mustChain(t testing.TB, cores []*tensor.Dense, opts ...tt.Option) *tt.Chain {
	t.Helper()
	c, err := tt.NewChain(cores, opts...)
	require.NoError(t, err)

	return c
}

// mustFull wraps Chain.Full.
func mustFull(t testing.TB, c *tt.Chain) *tensor.Dense {
	t.Helper()
	d, err := c.Full()
	require.NoError(t, err)

	return d
}

// entryPlain evaluates one entry of a plain chain by multiplying the
// (r_k × r_{k+1}) slices G_k[:, i_k, :] left to right.
func entryPlain(t testing.TB, cores []*tensor.Dense, idx []int) float64 {
	t.Helper()
	vec := []float64{1}
	for k, g := range cores {
		sh := g.Shape()
		next := make([]float64, sh[2])
		for a := 0; a < sh[0]; a++ {
			for b := 0; b < sh[2]; b++ {
				v, err := g.At(a, idx[k], b)
				require.NoError(t, err)
				next[b] += vec[a] * v
			}
		}
		vec = next
	}

	return vec[0]
}

// entryMatrix evaluates operator entry (rowIdx, colIdx) of a TT-matrix given
// per-factor row and col indices.
func entryMatrix(t testing.TB, cores []*tensor.Dense, rowIdx, colIdx []int) float64 {
	t.Helper()
	vec := []float64{1}
	for k, g := range cores {
		sh := g.Shape()
		next := make([]float64, sh[3])
		for a := 0; a < sh[0]; a++ {
			for b := 0; b < sh[3]; b++ {
				v, err := g.At(a, rowIdx[k], colIdx[k], b)
				require.NoError(t, err)
				next[b] += vec[a] * v
			}
		}
		vec = next
	}

	return vec[0]
}

// unflatten splits a row-major flat index over sizes.
func unflatten(flat int, sizes []int) []int {
	idx := make([]int, len(sizes))
	for k := len(sizes) - 1; k >= 0; k-- {
		idx[k] = flat % sizes[k]
		flat /= sizes[k]
	}

	return idx
}

func prodInts(xs []int) int {
	p := 1
	for _, x := range xs {
		p *= x
	}

	return p
}
