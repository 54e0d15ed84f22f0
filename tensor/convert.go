// SPDX-License-Identifier: MIT
// Package tensor - ingestion of foreign array representations.
//
// Purpose:
//   - FromNested converts rectangular nested slices ([]float64, [][]float32,
//     [][][]int, ...) or an existing Dense into a fresh Dense.
//   - FromMatrix copies any gonum mat.Matrix into a rank-2 Dense.
//
// Notes:
//   - Nested input must be rectangular: every slice at a given depth has the
//     same length, and no level may be empty.

package tensor

import (
	"fmt"
	"reflect"

	"gonum.org/v1/gonum/mat"
)

// FromNested converts v into a Dense, always producing fresh storage.
// MAIN DESCRIPTION:
//   - Accepts *Dense / Dense (cloned, options applied on top of the source
//     policy), or nested slices/arrays whose leaves are any Go integer or
//     float kind.
//
// Implementation:
//   - Stage 1: walk the first element chain to discover the shape.
//   - Stage 2: flatten in row-major order, checking every level against the shape.
//   - Stage 3: hand the flat buffer to FromData for policy enforcement.
//
// Errors:
//   - ErrNilTensor for nil input or a nil *Dense.
//   - ErrUnsupportedInput for non-numeric leaves, empty levels, or ragged nesting.
//   - ErrNaNInf from the finite-only policy.
//
// Complexity:
//   - Time O(n), Space O(n).
func FromNested(v any, opts ...Option) (*Dense, error) {
	switch t := v.(type) {
	case nil:
		return nil, tensorErrorf(opFromNested, ErrNilTensor)
	case *Dense:
		if t == nil {
			return nil, tensorErrorf(opFromNested, ErrNilTensor)
		}
		return fromDense(t, opts...)
	case Dense:
		return fromDense(&t, opts...)
	case mat.Matrix:
		return FromMatrix(t, opts...)
	}

	rv := reflect.ValueOf(v)
	shape, err := nestedShape(rv)
	if err != nil {
		return nil, tensorErrorf(opFromNested, err)
	}
	n, err := numel(shape)
	if err != nil {
		return nil, tensorErrorf(opFromNested, fmt.Errorf("%v: %w", err, ErrUnsupportedInput))
	}
	flat := make([]float64, 0, n)
	if flat, err = flatten(rv, shape, flat); err != nil {
		return nil, tensorErrorf(opFromNested, err)
	}

	return FromData(flat, shape, opts...)
}

// fromDense clones src under src's policy/device, then applies opts.
func fromDense(src *Dense, opts ...Option) (*Dense, error) {
	base := []Option{WithDevice(src.device)}
	if !src.validateNaNInf {
		base = append(base, WithNoValidateNaNInf())
	}

	return FromData(src.data, src.shape, append(base, opts...)...)
}

// FromMatrix copies a gonum matrix into a rank-2 Dense of shape (rows × cols).
// Errors: ErrNilTensor for nil m; ErrBadShape for an empty matrix; ErrNaNInf per policy.
// Complexity: O(r*c).
func FromMatrix(m mat.Matrix, opts ...Option) (*Dense, error) {
	if m == nil {
		return nil, tensorErrorf(opFromMatrix, ErrNilTensor)
	}
	r, c := m.Dims()
	if r <= 0 || c <= 0 {
		return nil, tensorErrorf(opFromMatrix, ErrBadShape)
	}
	buf := make([]float64, r*c)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			buf[i*c+j] = m.At(i, j)
		}
	}

	return FromData(buf, []int{r, c}, opts...)
}

// nestedShape descends through the first element of every level.
func nestedShape(rv reflect.Value) ([]int, error) {
	var shape []int
	for {
		switch rv.Kind() {
		case reflect.Interface, reflect.Pointer:
			if rv.IsNil() {
				return nil, fmt.Errorf("nil element at depth %d: %w", len(shape), ErrUnsupportedInput)
			}
			rv = rv.Elem()
			continue
		case reflect.Slice, reflect.Array:
			if rv.Len() == 0 {
				return nil, fmt.Errorf("empty level at depth %d: %w", len(shape), ErrUnsupportedInput)
			}
			shape = append(shape, rv.Len())
			rv = rv.Index(0)
			continue
		}
		if _, ok := scalarOf(rv); !ok {
			return nil, fmt.Errorf("leaf kind %s: %w", rv.Kind(), ErrUnsupportedInput)
		}
		if len(shape) == 0 {
			return nil, fmt.Errorf("scalar input: %w", ErrUnsupportedInput)
		}

		return shape, nil
	}
}

// flatten appends the leaves of rv in row-major order, enforcing shape at every depth.
func flatten(rv reflect.Value, shape []int, dst []float64) ([]float64, error) {
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("nil element: %w", ErrUnsupportedInput)
		}
		rv = rv.Elem()
	}
	if len(shape) == 0 {
		f, ok := scalarOf(rv)
		if !ok {
			return nil, fmt.Errorf("leaf kind %s: %w", rv.Kind(), ErrUnsupportedInput)
		}
		return append(dst, f), nil
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("ragged nesting: %w", ErrUnsupportedInput)
	}
	if rv.Len() != shape[0] {
		return nil, fmt.Errorf("ragged nesting: length %d, want %d: %w", rv.Len(), shape[0], ErrUnsupportedInput)
	}
	var err error
	for i := 0; i < rv.Len(); i++ {
		if dst, err = flatten(rv.Index(i), shape[1:], dst); err != nil {
			return nil, err
		}
	}

	return dst, nil
}

// scalarOf converts an integer or float reflect.Value to float64.
func scalarOf(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}

	return 0, false
}
