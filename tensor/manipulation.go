// SPDX-License-Identifier: MIT
// Package tensor - layout manipulation: Reshape and Permute.
//
// Purpose:
//   - Reshape reinterprets the row-major buffer under a new shape (one -1 allowed).
//   - Permute reorders axes and materializes the result contiguously.
//
// Notes:
//   - Both return fresh storage. A reshaped array never aliases its source, so a
//     consumer that mutates the result cannot corrupt the operand.

package tensor

import "fmt"

// Operation name constants for unified error wrapping.
const (
	opReshape     = "Reshape"
	opPermute     = "Permute"
	opMatMul      = "MatMul"
	opBatchMatMul = "BatchMatMul"
	opAllClose    = "AllClose"
	opFromNested  = "FromNested"
	opFromMatrix  = "FromMatrix"
	opToMatrix    = "ToMatrix"
	opStack       = "Stack"
	opIndex       = "Index"
)

// tensorErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func tensorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Reshape returns a copy of m with the given shape.
// MAIN DESCRIPTION:
//   - Row-major reinterpretation: element order is preserved, only the index map changes.
//
// Implementation:
//   - Stage 1: resolve a single -1 placeholder against Size().
//   - Stage 2: copy the buffer under the new shape.
//
// Errors:
//   - ErrNilTensor for a nil receiver.
//   - ErrBadShape for invalid dims; ErrSizeMismatch when the element count differs.
//
// Complexity:
//   - Time O(n), Space O(n).
func (m *Dense) Reshape(shape ...int) (*Dense, error) {
	if m == nil {
		return nil, tensorErrorf(opReshape, ErrNilTensor)
	}
	sh, err := resolveShape(len(m.data), shape)
	if err != nil {
		return nil, tensorErrorf(opReshape, err)
	}
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return m.like(sh, cp), nil
}

// Permute returns a contiguous copy of m with axes reordered so that
// result axis k is source axis axes[k].
// MAIN DESCRIPTION:
//   - Generalized transpose: out[i_0..i_{r-1}] = m[j] with j[axes[k]] = i_k.
//
// Implementation:
//   - Stage 1: validate axes is a permutation of [0, rank).
//   - Stage 2: walk the output in row-major order, mapping each multi-index back
//     through source strides (fixed order, deterministic).
//
// Errors:
//   - ErrNilTensor for a nil receiver; ErrBadAxes for a non-bijective axes list.
//
// Complexity:
//   - Time O(n*rank), Space O(n).
func (m *Dense) Permute(axes ...int) (*Dense, error) {
	if m == nil {
		return nil, tensorErrorf(opPermute, ErrNilTensor)
	}
	rank := len(m.shape)
	if len(axes) != rank {
		return nil, tensorErrorf(opPermute, fmt.Errorf("got %d axes for rank %d: %w", len(axes), rank, ErrBadAxes))
	}
	seen := make([]bool, rank)
	outShape := make([]int, rank)
	srcStride := make([]int, rank) // source stride for each output axis
	for k, a := range axes {
		if a < 0 || a >= rank || seen[a] {
			return nil, tensorErrorf(opPermute, fmt.Errorf("axes %v: %w", axes, ErrBadAxes))
		}
		seen[a] = true
		outShape[k] = m.shape[a]
		srcStride[k] = m.strides[a]
	}

	out := make([]float64, len(m.data))
	idx := make([]int, rank)
	var o, k, src int
	for o = 0; o < len(out); o++ {
		unravel(o, outShape, idx)
		src = 0
		for k = 0; k < rank; k++ {
			src += idx[k] * srcStride[k]
		}
		out[o] = m.data[src]
	}

	return m.like(outShape, out), nil
}

// Index returns a copy of the sub-array m[i, ...] (the leading axis fixed at i).
// A rank-1 receiver yields ErrRank because the result would be a scalar.
// Complexity: O(n / shape[0]).
func (m *Dense) Index(i int) (*Dense, error) {
	if m == nil {
		return nil, tensorErrorf(opIndex, ErrNilTensor)
	}
	if len(m.shape) < 2 {
		return nil, tensorErrorf(opIndex, ErrRank)
	}
	if i < 0 || i >= m.shape[0] {
		return nil, tensorErrorf(opIndex, fmt.Errorf("index %d of %d: %w", i, m.shape[0], ErrOutOfRange))
	}
	step := m.strides[0]
	cp := make([]float64, step)
	copy(cp, m.data[i*step:(i+1)*step])

	return m.like(m.shape[1:], cp), nil
}

// Stack joins arrays of identical shape along a new leading axis.
// The result inherits policy and device from parts[0].
//
// Errors:
//   - ErrBadShape when parts is empty; ErrNilTensor for a nil part;
//     ErrDimensionMismatch when shapes differ.
//
// Complexity:
//   - Time O(total), Space O(total).
func Stack(parts ...*Dense) (*Dense, error) {
	if len(parts) == 0 {
		return nil, tensorErrorf(opStack, ErrBadShape)
	}
	for k, p := range parts {
		if p == nil {
			return nil, tensorErrorf(opStack, fmt.Errorf("part %d: %w", k, ErrNilTensor))
		}
		if !equalShape(p.shape, parts[0].shape) {
			return nil, tensorErrorf(opStack,
				fmt.Errorf("part %d has shape %v, want %v: %w", k, p.shape, parts[0].shape, ErrDimensionMismatch))
		}
	}
	step := len(parts[0].data)
	buf := make([]float64, 0, step*len(parts))
	for _, p := range parts {
		buf = append(buf, p.data...)
	}
	shape := append([]int{len(parts)}, parts[0].shape...)

	return parts[0].like(shape, buf), nil
}
