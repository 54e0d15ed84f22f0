// SPDX-License-Identifier: MIT
// Package tensor: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the tensor
// package. All operations MUST return these sentinels (optionally wrapped with
// an operation tag) and tests MUST check them via errors.Is.

package tensor

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "tensor: ..." for consistency. Operations wrap
// with tensorErrorf(opX, ErrY) so the op name leads the message while errors.Is
// still matches the sentinel.

var (
	// ErrBadShape is returned when a requested shape is invalid (a dimension <= 0,
	// more than one -1 placeholder, or a data length that disagrees with the shape).
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrSizeMismatch indicates that a reshape target does not hold exactly the
	// number of elements stored in the source.
	ErrSizeMismatch = errors.New("tensor: element count mismatch")

	// ErrOutOfRange indicates that an index is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions,
	// e.g., MatMul where a.cols != b.rows, or BatchMatMul with different batch sizes.
	ErrDimensionMismatch = errors.New("tensor: dimension mismatch")

	// ErrRank indicates an operand of the wrong rank (e.g., MatMul on a 3-d array).
	ErrRank = errors.New("tensor: unexpected rank")

	// ErrBadAxes indicates a permutation that is not a bijection over [0, rank).
	ErrBadAxes = errors.New("tensor: invalid axis permutation")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("tensor: NaN or Inf encountered")

	// ErrNilTensor indicates that a nil *Dense (receiver or argument) was used.
	ErrNilTensor = errors.New("tensor: nil tensor")

	// ErrUnsupportedInput indicates a value FromNested cannot convert
	// (wrong element type, ragged nesting, empty level).
	ErrUnsupportedInput = errors.New("tensor: unsupported input")
)
