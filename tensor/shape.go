// SPDX-License-Identifier: MIT

// Package tensor - shape arithmetic shared by Dense, Reshape and Permute.
//
// All helpers assume row-major, contiguous layout: the last axis varies fastest
// and stride[k] = prod(shape[k+1:]).

package tensor

import "fmt"

// inferDim is the placeholder accepted by Reshape for "whatever is left".
const inferDim = -1

// numel returns prod(shape) or ErrBadShape for an empty shape or a dimension <= 0.
// Complexity: O(rank).
func numel(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, ErrBadShape
	}
	n := 1
	for k, d := range shape {
		if d <= 0 {
			return 0, fmt.Errorf("axis %d has size %d: %w", k, d, ErrBadShape)
		}
		n *= d
	}

	return n, nil
}

// stridesOf computes row-major strides for shape.
// Complexity: O(rank).
func stridesOf(shape []int) []int {
	st := make([]int, len(shape))
	s := 1
	for k := len(shape) - 1; k >= 0; k-- {
		st[k] = s
		s *= shape[k]
	}

	return st
}

// unravel writes the multi-index of flat offset `linear` into idx.
// len(idx) must equal len(shape).
func unravel(linear int, shape, idx []int) {
	for k := len(shape) - 1; k >= 0; k-- {
		idx[k] = linear % shape[k]
		linear /= shape[k]
	}
}

// resolveShape replaces a single -1 placeholder so that prod(shape) == total.
// Implementation:
//   - Stage 1: scan for placeholders and positive dims; reject other values.
//   - Stage 2: infer the placeholder (if any) from total / prod(known).
//   - Stage 3: verify the final product equals total.
//
// Errors:
//   - ErrBadShape for zero/negative dims other than -1, or more than one -1.
//   - ErrSizeMismatch when the dims cannot hold exactly total elements.
//
// Complexity:
//   - Time O(rank), Space O(rank) for the returned copy.
func resolveShape(total int, shape []int) ([]int, error) {
	if len(shape) == 0 {
		return nil, ErrBadShape
	}
	out := make([]int, len(shape))
	copy(out, shape)

	hole := -1
	known := 1
	for k, d := range out {
		switch {
		case d == inferDim:
			if hole >= 0 {
				return nil, fmt.Errorf("more than one %d in %v: %w", inferDim, shape, ErrBadShape)
			}
			hole = k
		case d <= 0:
			return nil, fmt.Errorf("axis %d has size %d: %w", k, d, ErrBadShape)
		default:
			known *= d
		}
	}

	if hole >= 0 {
		if total%known != 0 {
			return nil, fmt.Errorf("cannot infer axis %d of %v from %d elements: %w", hole, shape, total, ErrSizeMismatch)
		}
		out[hole] = total / known
		known = total
	}
	if known != total {
		return nil, fmt.Errorf("shape %v holds %d elements, have %d: %w", out, known, total, ErrSizeMismatch)
	}

	return out, nil
}

// equalShape reports whether a and b have identical dims.
func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}

	return true
}
