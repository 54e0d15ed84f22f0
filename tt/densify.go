// SPDX-License-Identifier: MIT
// Package tt - dense reconstruction helpers shared by Chain.Full and Batch.Full.
//
// Algorithm (left-to-right sweep):
//  1. res := core_0.
//  2. For i = 1..d-1: flatten res so its trailing axis is the right rank of
//     core_{i-1}, flatten core_i to (ranks[i], *), multiply. The multiply is the
//     only place a rank mismatch can surface: res is never reshaped onto
//     ranks[i], so a bad chain cannot be silently reinterpreted.
//  3. TT-matrix only: the trailing axis interleaves (row_0, col_0, row_1, ...).
//     Split it into 2d axes and permute rows before cols.
//  4. Reshape to the logical shape; the closing right rank (conventionally 1)
//     is absorbed here, or reported as ErrReshape.

package tt

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tensortrain/tensor"
)

// reshapeStep reshapes d, reporting any element-count failure as ErrReshape.
func reshapeStep(d *tensor.Dense, what string, shape ...int) (*tensor.Dense, error) {
	out, err := d.Reshape(shape...)
	if err != nil {
		return nil, fmt.Errorf("%s to %v: %w: %w", what, shape, ErrReshape, err)
	}

	return out, nil
}

// contractStep wraps a multiply failure; dimension mismatches become ErrShape.
func contractStep(i int, err error) error {
	if errors.Is(err, tensor.ErrDimensionMismatch) {
		return fmt.Errorf("contracting factor %d: %w: %w", i, ErrShape, err)
	}

	return fmt.Errorf("contracting factor %d: %w", i, err)
}

// groupRowsCols undoes the per-factor (row, col) interleaving of a contracted
// TT-matrix. lead holds axes kept in front untouched (the batch axis, if any).
// Implementation:
//   - Stage 1: reshape to lead ++ [r_0, c_0, r_1, c_1, ..., r_{d-1}, c_{d-1}].
//   - Stage 2: permute to lead ++ [r_0, ..., r_{d-1}, c_0, ..., c_{d-1}].
//
// Complexity:
//   - Time O(n*rank), Space O(n).
func groupRowsCols(res *tensor.Dense, rows, cols, lead []int) (*tensor.Dense, error) {
	d := len(rows)
	nl := len(lead)
	inter := make([]int, 0, nl+2*d)
	inter = append(inter, lead...)
	for k := 0; k < d; k++ {
		inter = append(inter, rows[k], cols[k])
	}
	res, err := reshapeStep(res, "interleaved row/col split", inter...)
	if err != nil {
		return nil, err
	}

	axes := make([]int, 0, nl+2*d)
	for k := 0; k < nl; k++ {
		axes = append(axes, k)
	}
	for k := 0; k < 2*d; k += 2 {
		axes = append(axes, nl+k)
	}
	for k := 1; k < 2*d; k += 2 {
		axes = append(axes, nl+k)
	}

	return res.Permute(axes...)
}
