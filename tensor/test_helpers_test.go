// SPDX-License-Identifier: MIT
// Package tensor_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for kernels and layout ops.
//   • Keep all data finite to avoid numeric-policy interference.

package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/tensortrain/tensor"
	"github.com/stretchr/testify/require"
)

// MustDense ALLOCATES a zero array of the given shape or fails the test.
func MustDense(t testing.TB, shape ...int) *tensor.Dense {
	t.Helper()
	m, err := tensor.New(shape)
	require.NoError(t, err, "New(%v)", shape)

	return m
}

// MustFromData wraps tensor.FromData and fails the test on error.
func MustFromData(t testing.TB, data []float64, shape ...int) *tensor.Dense {
	t.Helper()
	m, err := tensor.FromData(data, shape)
	require.NoError(t, err, "FromData(%v)", shape)

	return m
}

// Arange returns 0,1,...,n-1 as float64.
func Arange(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}

	return out
}

// RandomDense FILLS a new array with uniform values in [-1,1) from a fixed seed.
func RandomDense(t testing.TB, seed int64, shape ...int) *tensor.Dense {
	t.Helper()
	n := 1
	for _, d := range shape {
		n *= d
	}
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n)
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}

	return MustFromData(t, data, shape...)
}

// naiveMatMul is a reference triple loop over row-major slices.
func naiveMatMul(a, b []float64, r, n, c int) []float64 {
	out := make([]float64, r*c)
	var i, j, k int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			for k = 0; k < n; k++ {
				out[i*c+j] += a[i*n+k] * b[k*c+j]
			}
		}
	}

	return out
}
