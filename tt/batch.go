// SPDX-License-Identifier: MIT

package tt

import (
	"fmt"

	"github.com/katalvlaran/tensortrain/tensor"
)

// Batch is a batch of tensor trains sharing layout, ranks and raw shape.
// Every factor carries a leading batch axis; element p of the batch is the
// chain formed by slice p of every factor.
//
// Like Chain, a Batch owns its factors and is immutable after construction.
type Batch struct {
	*base
}

// NewBatch builds a Batch from batched factors: rank 4 ⇒ Plain, rank 5 ⇒ Matrix.
// The batch size is read from factor 0 and every other factor must agree,
// whatever the validation option says.
//
// Errors:
//   - ErrEmptyChain, ErrUnsupportedFactorRank, ErrShape, tensor.ErrNilTensor.
func NewBatch(cores []*tensor.Dense, opts ...Option) (*Batch, error) {
	owned := make([]*tensor.Dense, len(cores))
	for i, c := range cores {
		if c == nil {
			return nil, ttErrorf(opNewBatch, fmt.Errorf("factor %d: %w", i, tensor.ErrNilTensor))
		}
		owned[i] = c.Clone()
	}

	return newBatch(owned, opNewBatch, gatherOptions(opts...))
}

// ConvertBatch is NewBatch for raw array-like factors (see ConvertChain).
func ConvertBatch(factors []any, opts ...Option) (*Batch, error) {
	owned, err := convertAll(factors)
	if err != nil {
		return nil, ttErrorf(opConvert, err)
	}

	return newBatch(owned, opConvert, gatherOptions(opts...))
}

// newBatch takes ownership of cores.
func newBatch(cores []*tensor.Dense, tag string, o Options) (*Batch, error) {
	b, err := deriveBase(cores, true, o)
	if err != nil {
		return nil, ttErrorf(tag, err)
	}
	if o.device != "" {
		b = b.relocated(o.device)
	}

	return &Batch{base: b}, nil
}

// Stack assembles a Batch from unbatched chains with identical factor shapes.
// Element p of the result is chains[p].
//
// Errors:
//   - ErrEmptyChain when no chains are given; tensor.ErrNilTensor for a nil chain.
//   - ErrShape when layouts, ndims or any factor shape differ.
//
// Complexity:
//   - Time O(total size), Space O(total size).
func Stack(chains ...*Chain) (*Batch, error) {
	if len(chains) == 0 {
		return nil, ttErrorf(opStack, ErrEmptyChain)
	}
	first := chains[0]
	for p, c := range chains {
		if c == nil || c.base == nil {
			return nil, ttErrorf(opStack, fmt.Errorf("chain %d: %w", p, tensor.ErrNilTensor))
		}
		if c.layout != first.layout || c.ndims != first.ndims {
			return nil, ttErrorf(opStack, fmt.Errorf("chain %d is %s/%d, chain 0 is %s/%d: %w",
				p, c.layout, c.ndims, first.layout, first.ndims, ErrShape))
		}
	}

	cores := make([]*tensor.Dense, first.ndims)
	parts := make([]*tensor.Dense, len(chains))
	var err error
	for i := range cores {
		for p, c := range chains {
			parts[p] = c.cores[i]
		}
		if cores[i], err = tensor.Stack(parts...); err != nil {
			return nil, ttErrorf(opStack, fmt.Errorf("factor %d: %w: %w", i, ErrShape, err))
		}
	}

	return newBatch(cores, opStack, Options{validate: first.validate})
}

// Shape returns [BatchSize(), logical shape...].
func (b *Batch) Shape() []int { return b.fullShape() }

// LogicalShape returns the shape of one batch element (Shape without the batch axis).
func (b *Batch) LogicalShape() []int { return append([]int(nil), b.shape...) }

// BatchSize returns the size of the leading batch axis (>= 1).
func (b *Batch) BatchSize() int { return b.batch }

// String returns a compact summary including the batch size.
func (b *Batch) String() string { return b.describe("Batch") }

// To returns a batch whose every factor is relocated to dev.
func (b *Batch) To(dev tensor.Device) *Batch {
	return &Batch{base: b.relocated(dev)}
}

// Element returns batch element p as an unbatched Chain (fresh storage).
// Errors: tensor.ErrOutOfRange when p is outside [0, BatchSize()).
func (b *Batch) Element(p int) (*Chain, error) {
	if p < 0 || p >= b.batch {
		return nil, ttErrorf(opElement, fmt.Errorf("element %d of %d: %w", p, b.batch, tensor.ErrOutOfRange))
	}
	cores := make([]*tensor.Dense, b.ndims)
	var err error
	for i, c := range b.cores {
		if cores[i], err = c.Index(p); err != nil {
			return nil, ttErrorf(opElement, err)
		}
	}

	return newChain(cores, opElement, Options{validate: b.validate})
}

// Full reconstructs every batch element at once.
// MAIN DESCRIPTION:
//   - Same sweep as Chain.Full with a leading batch axis that is never
//     contracted or merged: each step is a batched multiply.
//
// Implementation:
//   - Stage 1: res := core_0.
//   - Stage 2: for i = 1..d-1, res := BatchMatMul(res as (B, *, rightRank_{i-1}),
//     core_i as (B, ranks[i], *)).
//   - Stage 3: Matrix layout: split and group row/col axes behind the batch axis.
//   - Stage 4: reshape to (B, logical shape...).
//
// Behavior highlights:
//   - Batch elements never mix; element p equals Element(p).Full().
//   - BatchSize() == 1 keeps the leading size-1 axis.
//
// Errors:
//   - ErrShape (wrapping tensor.ErrDimensionMismatch) for rank mismatches.
//   - ErrReshape when boundary ranks leave elements the logical shape cannot hold.
func (b *Batch) Full() (*tensor.Dense, error) {
	res := b.cores[0]
	var err error
	for i := 1; i < b.ndims; i++ {
		prev := rightRank(b.cores[i-1])
		if res, err = reshapeStep(res, "partial product", b.batch, -1, prev); err != nil {
			return nil, ttErrorf(opFull, err)
		}
		cur, err := reshapeStep(b.cores[i], fmt.Sprintf("factor %d", i), b.batch, b.ranks[i], -1)
		if err != nil {
			return nil, ttErrorf(opFull, err)
		}
		if res, err = tensor.BatchMatMul(res, cur); err != nil {
			return nil, ttErrorf(opFull, contractStep(i, err))
		}
	}

	if b.layout == Matrix {
		if res, err = groupRowsCols(res, b.rawShape[0], b.rawShape[1], []int{b.batch}); err != nil {
			return nil, ttErrorf(opFull, err)
		}
	}
	if res, err = reshapeStep(res, "logical shape", b.fullShape()...); err != nil {
		return nil, ttErrorf(opFull, err)
	}

	return res, nil
}
