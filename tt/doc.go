// Package tt represents arrays in Tensor-Train (TT) form and reconstructs
// them as dense arrays.
//
// 🚀 What is a tensor train?
//
//	A d-dimensional array A[i_0, ..., i_{d-1}] is stored as d small factors
//	G_k of shape (r_k, n_k, r_{k+1}); each entry is the product of matrices
//	  A[i_0, ..., i_{d-1}] = G_0[:, i_0, :] · G_1[:, i_1, :] · ... · G_{d-1}[:, i_{d-1}, :]
//	The r_k are the TT-ranks; the boundary ranks r_0 and r_d are 1.
//	A TT-matrix stores a linear operator the same way with factors of shape
//	(r_k, rows_k, cols_k, r_{k+1}).
//
// ✨ Key features:
//   - Chain (unbatched) and Batch (leading batch axis) with frozen metadata:
//     Layout, NDims, Ranks, RawShape, Shape, BatchSize.
//   - Full: left-to-right dense reconstruction; TT-matrix row/col axes are
//     regrouped so the result is a conventional prod(rows) × prod(cols) operator.
//   - Eager rank validation at construction (WithoutValidation defers it to Full).
//   - Stack / Element to move between chains and batches.
//   - Operator export to gonum's *mat.Dense.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/tensortrain/tt"
//
//	chain, err := tt.ConvertChain([]any{core0, core1})
//	if err != nil {
//	  // handle ErrEmptyChain, ErrUnsupportedFactorRank, ErrShape
//	}
//	dense, err := chain.Full()
//
// Performance:
//
//   - Time:   O(sum_k N_k · r_k · n_k · r_{k+1}) for partial product sizes N_k
//   - Memory: O(prod n_k) for the result
//
// Chains are immutable; concurrent Full calls on one chain are safe.
package tt
