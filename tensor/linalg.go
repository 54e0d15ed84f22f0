// SPDX-License-Identifier: MIT
// Package tensor - contraction kernels.
//
// Purpose:
//   - MatMul: C = A × B for rank-2 operands.
//   - BatchMatMul: C[b] = A[b] × B[b] for rank-3 operands; axis 0 is a batch
//     axis and is never summed over.
//
// Notes:
//   - The inner product is delegated to gonum's mat.Dense.Mul, which wraps our
//     row-major buffers without copying (gonum uses the same layout).
//   - gonum panics on shape mismatch; every kernel validates first so callers
//     get ErrDimensionMismatch instead.

package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// validateMulOperands checks presence, rank and inner dimensions shared by MatMul and BatchMatMul.
func validateMulOperands(a, b *Dense, rank int) error {
	if a == nil || b == nil {
		return ErrNilTensor
	}
	if len(a.shape) != rank || len(b.shape) != rank {
		return fmt.Errorf("want rank %d operands, got %v and %v: %w", rank, a.shape, b.shape, ErrRank)
	}
	if a.shape[rank-1] != b.shape[rank-2] {
		return fmt.Errorf("inner dims %v × %v: %w", a.shape, b.shape, ErrDimensionMismatch)
	}

	return nil
}

// MatMul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: validate A,B non-nil, rank 2, and A.cols == B.rows.
//   - Stage 2: wrap both buffers as gonum *mat.Dense and multiply into a fresh buffer.
//
// Inputs:
//   - a: shape (r × n); b: shape (n × c).
//
// Returns:
//   - *Dense with shape (r × c), inheriting a's policy and device.
//
// Errors:
//   - ErrNilTensor, ErrRank, ErrDimensionMismatch.
//
// Determinism:
//   - gonum's kernel runs in a fixed order for fixed shapes; repeated calls are bit-identical.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func MatMul(a, b *Dense) (*Dense, error) {
	if err := validateMulOperands(a, b, 2); err != nil {
		return nil, tensorErrorf(opMatMul, err)
	}
	r, n, c := a.shape[0], a.shape[1], b.shape[1]
	out := make([]float64, r*c)
	mulInto(out, a.data, b.data, r, n, c)

	return a.like([]int{r, c}, out), nil
}

// BatchMatMul contracts the shared inner axis independently per batch element:
// C[p] = A[p] × B[p] for p in [0, batch).
// Implementation:
//   - Stage 1: validate rank 3, equal batch sizes, and matching inner dims.
//   - Stage 2: for each batch element, multiply the disjoint sub-slices with gonum.
//
// Behavior highlights:
//   - Batch elements never mix: each product reads only its own slab of A and B
//     and writes only its own slab of C.
//
// Inputs:
//   - a: shape (batch × r × n); b: shape (batch × n × c).
//
// Returns:
//   - *Dense with shape (batch × r × c).
//
// Errors:
//   - ErrNilTensor, ErrRank, ErrDimensionMismatch (inner dims or batch sizes).
//
// Complexity:
//   - Time O(batch*r*n*c), Space O(batch*r*c).
func BatchMatMul(a, b *Dense) (*Dense, error) {
	if err := validateMulOperands(a, b, 3); err != nil {
		return nil, tensorErrorf(opBatchMatMul, err)
	}
	if a.shape[0] != b.shape[0] {
		return nil, tensorErrorf(opBatchMatMul,
			fmt.Errorf("batch sizes %d and %d: %w", a.shape[0], b.shape[0], ErrDimensionMismatch))
	}
	batch, r, n, c := a.shape[0], a.shape[1], a.shape[2], b.shape[2]
	out := make([]float64, batch*r*c)
	sa, sb, sc := r*n, n*c, r*c
	for p := 0; p < batch; p++ {
		mulInto(out[p*sc:(p+1)*sc], a.data[p*sa:(p+1)*sa], b.data[p*sb:(p+1)*sb], r, n, c)
	}

	return a.like([]int{batch, r, c}, out), nil
}

// mulInto writes the (r×n)·(n×c) product of row-major slabs a and b into dst.
// dst must not overlap a or b.
func mulInto(dst, a, b []float64, r, n, c int) {
	am := mat.NewDense(r, n, a)
	bm := mat.NewDense(n, c, b)
	cm := mat.NewDense(r, c, dst)
	cm.Mul(am, bm)
}

// ToMatrix exposes a rank-2 array as a gonum *mat.Dense holding a copy of the data.
// Errors: ErrNilTensor, ErrRank.
func (m *Dense) ToMatrix() (*mat.Dense, error) {
	if m == nil {
		return nil, tensorErrorf(opToMatrix, ErrNilTensor)
	}
	if len(m.shape) != 2 {
		return nil, tensorErrorf(opToMatrix, fmt.Errorf("shape %v: %w", m.shape, ErrRank))
	}

	return mat.NewDense(m.shape[0], m.shape[1], m.Data()), nil
}
