// SPDX-License-Identifier: MIT
// Package tt: sentinel error set.
// Every failure is structural (bad input shapes); nothing here is transient,
// so there is nothing to retry. Callers match with errors.Is; underlying
// tensor sentinels stay matchable too because wrappers use %w for both.

package tt

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyChain is returned when a chain (or a stack of chains) has no factors.
	ErrEmptyChain = errors.New("tt: chain has no factors")

	// ErrUnsupportedFactorRank is returned when a factor's rank matches no known
	// layout (3/4 unbatched, 4/5 batched) or factors disagree on the layout.
	ErrUnsupportedFactorRank = errors.New("tt: unsupported factor rank")

	// ErrShape signals inconsistent rank/batch dimensions between factors, or
	// derived metadata that disagrees with an expected shape/ranks option.
	ErrShape = errors.New("tt: shape mismatch")

	// ErrReshape signals that the contraction produced a number of elements the
	// logical shape cannot hold (e.g. boundary ranks other than 1).
	ErrReshape = errors.New("tt: reshape mismatch")

	// ErrNotMatrixForm is returned by operator-only calls on a plain chain.
	ErrNotMatrixForm = errors.New("tt: chain is not a TT-matrix")
)

// Operation tags for error wrapping.
const (
	opNewChain = "NewChain"
	opNewBatch = "NewBatch"
	opConvert  = "Convert"
	opFull     = "Full"
	opStack    = "Stack"
	opElement  = "Element"
	opOperator = "Operator"
)

// ttErrorf wraps err with an operation tag, preserving it for errors.Is.
// Use only when err != nil.
func ttErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
