// SPDX-License-Identifier: MIT

package tt

import (
	"fmt"

	"github.com/katalvlaran/tensortrain/tensor"
	"gonum.org/v1/gonum/mat"
)

// Chain is an unbatched tensor train: an ordered sequence of factors whose
// contraction reconstructs a dense array (Plain layout) or a linear operator
// (Matrix layout).
//
// A Chain owns its factors and is immutable after construction, so it is safe
// for concurrent use. All metadata is derived once by the constructor.
type Chain struct {
	*base
}

// NewChain builds a Chain from factors that are already tensor.Dense values.
// MAIN DESCRIPTION:
//   - Each factor is cloned, so the chain never aliases caller-held arrays.
//   - Layout is detected from factor rank: 3 ⇒ Plain, 4 ⇒ Matrix.
//
// Implementation:
//   - Stage 1: clone every factor (nil ⇒ tensor.ErrNilTensor).
//   - Stage 2: derive and freeze metadata (see deriveBase).
//   - Stage 3: relocate factors when WithDevice is given.
//
// Errors:
//   - ErrEmptyChain, ErrUnsupportedFactorRank, ErrShape (validation or expectations),
//     tensor.ErrNilTensor. All wrapped with "NewChain: ".
//
// Complexity:
//   - Time O(total factor size), Space O(total factor size).
func NewChain(cores []*tensor.Dense, opts ...Option) (*Chain, error) {
	owned := make([]*tensor.Dense, len(cores))
	for i, c := range cores {
		if c == nil {
			return nil, ttErrorf(opNewChain, fmt.Errorf("factor %d: %w", i, tensor.ErrNilTensor))
		}
		owned[i] = c.Clone()
	}

	return newChain(owned, opNewChain, gatherOptions(opts...))
}

// ConvertChain builds a Chain from raw array-like factors (nested numeric
// slices, gonum matrices or tensor.Dense), converting each with tensor.FromNested.
// Conversion failures are returned wrapped with the factor index.
func ConvertChain(factors []any, opts ...Option) (*Chain, error) {
	owned, err := convertAll(factors)
	if err != nil {
		return nil, ttErrorf(opConvert, err)
	}

	return newChain(owned, opConvert, gatherOptions(opts...))
}

// newChain takes ownership of cores.
func newChain(cores []*tensor.Dense, tag string, o Options) (*Chain, error) {
	b, err := deriveBase(cores, false, o)
	if err != nil {
		return nil, ttErrorf(tag, err)
	}
	if o.device != "" {
		b = b.relocated(o.device)
	}

	return &Chain{base: b}, nil
}

// convertAll runs tensor.FromNested over every factor.
func convertAll(factors []any) ([]*tensor.Dense, error) {
	out := make([]*tensor.Dense, len(factors))
	for i, f := range factors {
		d, err := tensor.FromNested(f)
		if err != nil {
			return nil, fmt.Errorf("factor %d: %w", i, err)
		}
		out[i] = d
	}

	return out, nil
}

// Shape returns the logical shape: the mode sizes for a plain chain, or
// [prod(rows), prod(cols)] for a TT-matrix.
func (c *Chain) Shape() []int { return append([]int(nil), c.shape...) }

// String returns a compact summary, e.g. "tt.Chain{layout=plain ndims=2 ranks=[1 2 1] shape=[2 3]}".
func (c *Chain) String() string { return c.describe("Chain") }

// To returns a chain whose every factor is relocated to dev.
// The receiver is unchanged; no numeric effect.
func (c *Chain) To(dev tensor.Device) *Chain {
	return &Chain{base: c.relocated(dev)}
}

// Full reconstructs the dense array represented by the chain.
// MAIN DESCRIPTION:
//   - Sequential left-to-right contraction; each step eliminates one rank axis.
//
// Implementation:
//   - Stage 1: res := core_0.
//   - Stage 2: for i = 1..d-1, res := (res as (*, rightRank_{i-1})) × (core_i as (ranks[i], *)).
//   - Stage 3: Matrix layout: split (r_k, c_k) pairs and group rows before cols.
//   - Stage 4: reshape to Shape().
//
// Behavior highlights:
//   - Returns fresh storage on every call; factors are never mutated.
//   - Deterministic: repeated calls are bit-identical.
//
// Errors:
//   - ErrShape (wrapping tensor.ErrDimensionMismatch) when adjacent ranks disagree.
//   - ErrReshape when boundary ranks leave elements the logical shape cannot hold.
//
// Complexity:
//   - Time O(sum_i N_i * r_i * n_i * r_{i+1}) where N_i is the size of the
//     partial product; Space O(prod of all sizes).
func (c *Chain) Full() (*tensor.Dense, error) {
	res := c.cores[0]
	var err error
	for i := 1; i < c.ndims; i++ {
		prev := rightRank(c.cores[i-1])
		if res, err = reshapeStep(res, "partial product", -1, prev); err != nil {
			return nil, ttErrorf(opFull, err)
		}
		cur, err := reshapeStep(c.cores[i], fmt.Sprintf("factor %d", i), c.ranks[i], -1)
		if err != nil {
			return nil, ttErrorf(opFull, err)
		}
		if res, err = tensor.MatMul(res, cur); err != nil {
			return nil, ttErrorf(opFull, contractStep(i, err))
		}
	}

	if c.layout == Matrix {
		if res, err = groupRowsCols(res, c.rawShape[0], c.rawShape[1], nil); err != nil {
			return nil, ttErrorf(opFull, err)
		}
	}
	if res, err = reshapeStep(res, "logical shape", c.shape...); err != nil {
		return nil, ttErrorf(opFull, err)
	}

	return res, nil
}

// Operator densifies a TT-matrix and returns it as a gonum matrix of shape
// prod(rows) × prod(cols), ready for mat.Dense.Mul or MulVec.
// Errors: ErrNotMatrixForm for plain chains, plus anything Full returns.
func (c *Chain) Operator() (*mat.Dense, error) {
	if c.layout != Matrix {
		return nil, ttErrorf(opOperator, ErrNotMatrixForm)
	}
	full, err := c.Full()
	if err != nil {
		return nil, ttErrorf(opOperator, err)
	}
	m, err := full.ToMatrix()
	if err != nil {
		return nil, ttErrorf(opOperator, err)
	}

	return m, nil
}
