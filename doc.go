// Package tensortrain is an in-memory toolkit for Tensor-Train (TT)
// decompositions: store a large array or linear operator as a chain of small
// factors and rebuild the dense result on demand.
//
// 🚀 What is tensortrain?
//
//	A small, dependency-light library that brings together:
//		• Dense arrays: shape-checked float64 storage, reshape, permute, stack
//		• Matrix products: 2-D and batched 3-D multiply on top of gonum
//		• TT chains: plain factors (r, n, r') and TT-matrix factors (r, row, col, r')
//		• Batched chains: many independent chains densified in one pass
//		• Reconstruction: Full for arrays, Operator for gonum-ready matrices
//
// ✨ Why choose tensortrain?
//
//   - Eager validation – rank and shape mistakes fail at construction, with
//     sentinel errors usable via errors.Is
//   - Immutable chains – safe to share and densify from many goroutines
//   - Pure Go – no cgo; gonum does the heavy lifting
//
// Everything is organized under two subpackages:
//
//	tensor/ — Dense n-d arrays, reshape/permute/stack, MatMul & BatchMatMul
//	tt/     — Chain & Batch containers, metadata, Full reconstruction
//
// Quick ASCII example (three plain factors, ranks [1 2 3 1]):
//
//	  (1,n₀,2) ── (2,n₁,3) ── (3,n₂,1)   ⇒   Full: (n₀, n₁, n₂)
//
// See examples/ for a TT-matrix Laplacian rebuilt and applied with gonum.
//
//	go get github.com/katalvlaran/tensortrain
package tensortrain
