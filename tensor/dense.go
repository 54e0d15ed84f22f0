// SPDX-License-Identifier: MIT

// Package tensor - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a contiguous row-major buffer of any rank with the explicit
//     offset formula sum(idx[k] * stride[k]).
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - New: O(n) zero-init; FromData: O(n) copy; At/Set: O(rank); Clone: O(n).

package tensor

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxNew      = "New"
	ctxFromData = "FromData"
	ctxAt       = "At"
	ctxSet      = "Set"
)

// ---------- Formatting literals ----------

const (
	_fmtOpen  = "["
	_fmtClose = "]"
	_fmtSep   = ", "
)

// denseErrorf wraps an error with a uniform Dense context and the offending index.
func denseErrorf(method string, idx []int, err error) error {
	return fmt.Errorf("Dense.%s(%v): %w", method, idx, err)
}

// Dense is a concrete row-major N-dimensional array.
//   - shape holds the per-axis sizes (all > 0).
//   - strides holds row-major strides derived from shape.
//   - data is a flat buffer of length prod(shape).
//   - validateNaNInf enables NaN/Inf rejection in FromData and Set.
//   - device is the placement tag (see device.go).
type Dense struct {
	shape          []int
	strides        []int
	data           []float64
	validateNaNInf bool
	device         Device
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// New creates a zero-filled array with the given shape.
// MAIN DESCRIPTION:
//   - Public constructor with strict shape validation and the default numeric policy.
//
// Implementation:
//   - Stage 1: validate every dim > 0 and rank >= 1; else ErrBadShape.
//   - Stage 2: allocate a zero-filled buffer and apply options.
//
// Inputs:
//   - shape: positive per-axis sizes; the slice is copied.
//   - opts : optional numeric policy / device.
//
// Returns:
//   - *Dense: newly allocated array.
//
// Errors:
//   - ErrBadShape (shape contract violation).
//
// Complexity:
//   - Time O(n), Space O(n) for n = prod(shape).
func New(shape []int, opts ...Option) (*Dense, error) {
	n, err := numel(shape)
	if err != nil {
		return nil, tensorErrorf(ctxNew, err)
	}
	o := gatherOptions(opts...)

	return newDense(shape, make([]float64, n), o.validateNaNInf, o.device), nil
}

// FromData creates an array with the given shape holding a copy of data.
// MAIN DESCRIPTION:
//   - Row-major ingestion: data[k] lands at the k-th multi-index in row-major order.
//
// Implementation:
//   - Stage 1: validate shape and len(data) == prod(shape).
//   - Stage 2: enforce the numeric policy over every value.
//   - Stage 3: copy data into fresh storage (the caller keeps ownership of data).
//
// Errors:
//   - ErrBadShape when the shape is invalid or does not match len(data).
//   - ErrNaNInf when the finite-only policy is on and data holds NaN/±Inf.
//
// Complexity:
//   - Time O(n), Space O(n).
func FromData(data []float64, shape []int, opts ...Option) (*Dense, error) {
	n, err := numel(shape)
	if err != nil {
		return nil, tensorErrorf(ctxFromData, err)
	}
	if len(data) != n {
		return nil, tensorErrorf(ctxFromData,
			fmt.Errorf("len(data)=%d, shape %v wants %d: %w", len(data), shape, n, ErrBadShape))
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		for k, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, tensorErrorf(ctxFromData, fmt.Errorf("offset %d: %w", k, ErrNaNInf))
			}
		}
	}
	buf := make([]float64, n)
	copy(buf, data)

	return newDense(shape, buf, o.validateNaNInf, o.device), nil
}

// newDense wires already-validated parts into a Dense. It copies shape but
// adopts data as-is; callers guarantee len(data) == prod(shape).
func newDense(shape []int, data []float64, validateNaNInf bool, dev Device) *Dense {
	sh := make([]int, len(shape))
	copy(sh, shape)

	return &Dense{
		shape:          sh,
		strides:        stridesOf(sh),
		data:           data,
		validateNaNInf: validateNaNInf,
		device:         dev,
	}
}

// like builds a Dense of the given shape around data, inheriting m's policy and device.
func (m *Dense) like(shape []int, data []float64) *Dense {
	return newDense(shape, data, m.validateNaNInf, m.device)
}

// Shape returns a copy of the per-axis sizes.
// Complexity: O(rank).
func (m *Dense) Shape() []int {
	out := make([]int, len(m.shape))
	copy(out, m.shape)

	return out
}

// Rank returns the number of axes.
func (m *Dense) Rank() int { return len(m.shape) }

// Size returns the total number of elements.
func (m *Dense) Size() int { return len(m.data) }

// Dim returns the size of axis k, or 0 when k is out of range.
func (m *Dense) Dim(k int) int {
	if k < 0 || k >= len(m.shape) {
		return 0
	}

	return m.shape[k]
}

// Data returns a copy of the row-major buffer.
// Complexity: O(n).
func (m *Dense) Data() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)

	return out
}

// offsetOf validates idx against the shape and returns the flat offset.
func (m *Dense) offsetOf(idx []int) (int, error) {
	if len(idx) != len(m.shape) {
		return 0, ErrOutOfRange
	}
	off := 0
	for k, i := range idx {
		if i < 0 || i >= m.shape[k] {
			return 0, ErrOutOfRange
		}
		off += i * m.strides[k]
	}

	return off, nil
}

// At returns the value at multi-index idx or ErrOutOfRange.
// Never panics; len(idx) must equal Rank().
// Complexity: O(rank).
func (m *Dense) At(idx ...int) (float64, error) {
	off, err := m.offsetOf(idx)
	if err != nil {
		return 0, denseErrorf(ctxAt, idx, err)
	}

	return m.data[off], nil
}

// Set stores v at multi-index idx or returns an error (bounds or numeric policy).
// Complexity: O(rank).
func (m *Dense) Set(v float64, idx ...int) error {
	off, err := m.offsetOf(idx)
	if err != nil {
		return denseErrorf(ctxSet, idx, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, idx, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer, same policy and device).
// Complexity: O(n).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return m.like(m.shape, cp)
}

// String renders the array as nested brackets, e.g. "[[1, 2], [3, 4]]".
// Intended for diagnostics; not for hot paths.
// Complexity: O(n).
func (m *Dense) String() string {
	var b strings.Builder
	m.writeAxis(&b, 0, 0)

	return b.String()
}

// writeAxis renders axis k starting at flat offset base.
func (m *Dense) writeAxis(b *strings.Builder, k, base int) {
	b.WriteString(_fmtOpen)
	for i := 0; i < m.shape[k]; i++ {
		if i > 0 {
			b.WriteString(_fmtSep)
		}
		off := base + i*m.strides[k]
		if k == len(m.shape)-1 {
			fmt.Fprintf(b, "%g", m.data[off])
			continue
		}
		m.writeAxis(b, k+1, off)
	}
	b.WriteString(_fmtClose)
}
