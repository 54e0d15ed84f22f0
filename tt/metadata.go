// SPDX-License-Identifier: MIT
// Package tt - factor chain metadata shared by Chain and Batch.
//
// Purpose:
//   - Inspect factor shapes once, at construction, and freeze the result.
//   - Centralize layout detection, batch-size agreement and rank validation.
//
// Axis conventions (off = 0 unbatched, 1 batched):
//   - axis off      : left rank
//   - axis off+1    : mode (plain) or row (matrix)
//   - axis off+2    : col (matrix only)
//   - last axis     : right rank

package tt

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/tensortrain/tensor"
)

// base holds the owned factors and the derived, immutable metadata.
// Slices are never mutated after construction; accessors hand out copies.
type base struct {
	cores    []*tensor.Dense
	layout   Layout
	ndims    int
	ranks    []int   // len ndims+1; ranks[ndims] == 1
	rawShape [][]int // plain: {modes}; matrix: {rows, cols}
	shape    []int   // logical shape, without a batch axis
	batch    int     // leading batch size; 0 for unbatched chains
	validate bool
}

// deriveBase inspects cores and freezes the metadata. It takes ownership of cores.
// Implementation:
//   - Stage 1: reject empty input and nil factors.
//   - Stage 2: detect the layout from factor 0's rank; require every factor to agree.
//   - Stage 3: batched: read the batch size from factor 0 and require every factor to match.
//   - Stage 4: collect ranks (closing boundary fixed to 1), raw and logical shapes.
//   - Stage 5: optional eager adjacent-rank validation and expectation checks.
//
// Errors:
//   - ErrEmptyChain, tensor.ErrNilTensor, ErrUnsupportedFactorRank, ErrShape.
//
// Complexity:
//   - Time O(d), Space O(d) for d factors.
func deriveBase(cores []*tensor.Dense, batched bool, o Options) (*base, error) {
	if len(cores) == 0 {
		return nil, ErrEmptyChain
	}
	for i, c := range cores {
		if c == nil {
			return nil, fmt.Errorf("factor %d: %w", i, tensor.ErrNilTensor)
		}
	}

	off := 0
	if batched {
		off = 1
	}
	b := &base{cores: cores, ndims: len(cores), validate: o.validate}

	switch cores[0].Rank() - off {
	case plainFactorRank:
		b.layout = Plain
	case matrixFactorRank:
		b.layout = Matrix
	default:
		return nil, fmt.Errorf("factor 0 has shape %v: %w", cores[0].Shape(), ErrUnsupportedFactorRank)
	}
	for i, c := range cores[1:] {
		if c.Rank() != cores[0].Rank() {
			return nil, fmt.Errorf("factor %d has rank %d, factor 0 has %d: %w",
				i+1, c.Rank(), cores[0].Rank(), ErrUnsupportedFactorRank)
		}
	}

	if batched {
		b.batch = cores[0].Dim(0)
		for i, c := range cores[1:] {
			if c.Dim(0) != b.batch {
				return nil, fmt.Errorf("factor %d has batch size %d, want %d: %w", i+1, c.Dim(0), b.batch, ErrShape)
			}
		}
	}

	b.ranks = make([]int, b.ndims+1)
	rows := make([]int, b.ndims)
	var cols []int
	if b.layout == Matrix {
		cols = make([]int, b.ndims)
	}
	for i, c := range cores {
		b.ranks[i] = c.Dim(off)
		rows[i] = c.Dim(off + 1)
		if cols != nil {
			cols[i] = c.Dim(off + 2)
		}
	}
	b.ranks[b.ndims] = 1

	if b.layout == Matrix {
		b.rawShape = [][]int{rows, cols}
		b.shape = []int{prod(rows), prod(cols)}
	} else {
		b.rawShape = [][]int{rows}
		b.shape = append([]int(nil), rows...)
	}

	if o.validate {
		if err := b.checkAdjacentRanks(); err != nil {
			return nil, err
		}
	}
	if o.ranks != nil && !equalInts(o.ranks, b.ranks) {
		return nil, fmt.Errorf("ranks %v, expected %v: %w", b.ranks, o.ranks, ErrShape)
	}
	if o.shape != nil && !equalInts(o.shape, b.fullShape()) {
		return nil, fmt.Errorf("shape %v, expected %v: %w", b.fullShape(), o.shape, ErrShape)
	}

	return b, nil
}

// checkAdjacentRanks verifies rightRank(core_i) == leftRank(core_{i+1}).
func (b *base) checkAdjacentRanks() error {
	for i := 0; i < b.ndims-1; i++ {
		right := rightRank(b.cores[i])
		if right != b.ranks[i+1] {
			return fmt.Errorf("factor %d right rank %d != factor %d left rank %d: %w",
				i, right, i+1, b.ranks[i+1], ErrShape)
		}
	}

	return nil
}

// rightRank is the size of a factor's trailing axis.
func rightRank(c *tensor.Dense) int { return c.Dim(c.Rank() - 1) }

// fullShape is the logical shape, prefixed by the batch size for batched chains.
func (b *base) fullShape() []int {
	if b.batch == 0 {
		return append([]int(nil), b.shape...)
	}

	return append([]int{b.batch}, b.shape...)
}

// relocated returns a copy of b whose factors live on dev.
// Every owned factor is moved, not only the first.
func (b *base) relocated(dev tensor.Device) *base {
	cp := *b
	cp.cores = make([]*tensor.Dense, len(b.cores))
	for i, c := range b.cores {
		cp.cores[i] = c.To(dev)
	}

	return &cp
}

// Cores returns copies of the factors, so the chain stays immutable.
func (b *base) Cores() []*tensor.Dense {
	out := make([]*tensor.Dense, len(b.cores))
	for i, c := range b.cores {
		out[i] = c.Clone()
	}

	return out
}

// RawShape returns the per-factor sizes: one sequence (modes) for a plain
// chain, two sequences (row sizes, col sizes) for a TT-matrix.
func (b *base) RawShape() [][]int {
	out := make([][]int, len(b.rawShape))
	for i, s := range b.rawShape {
		out[i] = append([]int(nil), s...)
	}

	return out
}

// Layout reports the factor layout.
func (b *base) Layout() Layout { return b.layout }

// IsMatrixForm reports whether the chain is a TT-matrix.
func (b *base) IsMatrixForm() bool { return b.layout == Matrix }

// Ranks returns the TT-ranks, length NDims()+1, closing boundary fixed to 1.
func (b *base) Ranks() []int { return append([]int(nil), b.ranks...) }

// NDims returns the number of factors.
func (b *base) NDims() int { return b.ndims }

// Device reports where the factors live (the placement of factor 0).
func (b *base) Device() tensor.Device { return b.cores[0].Device() }

// describe renders a one-line summary for String methods.
func (b *base) describe(kind string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tt.%s{layout=%s ndims=%d", kind, b.layout, b.ndims)
	if b.batch > 0 {
		fmt.Fprintf(&sb, " batch=%d", b.batch)
	}
	fmt.Fprintf(&sb, " ranks=%v shape=%v}", b.ranks, b.fullShape())

	return sb.String()
}

// prod multiplies xs; prod of an empty slice is 1.
func prod(xs []int) int {
	p := 1
	for _, x := range xs {
		p *= x
	}

	return p
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
