// SPDX-License-Identifier: MIT

// Package tensor offers a small N-dimensional dense array for tensor-train work.
//
// The tensor package provides:
//
//   - Dense: a row-major float64 array of arbitrary rank with safe accessors.
//   - Reshape with -1 inference and Permute, both materializing fresh storage.
//   - MatMul and BatchMatMul kernels backed by gonum.org/v1/gonum/mat.
//   - FromNested / FromMatrix ingestion of nested slices and gonum matrices.
//   - AllClose for tolerance-based comparison.
//   - Device: an opaque placement tag carried by every Dense.
//
// Every operation returns a new Dense; operands are never mutated, so a Dense
// handed to several consumers stays stable for all of them.
//
// See the examples in this package and in tt for usage patterns.
package tensor
