// SPDX-License-Identifier: MIT

package tt

// Layout tags how each factor indexes the represented array.
//
//   - Plain  — factors are (leftRank, mode, rightRank); the chain is a tensor.
//   - Matrix — factors are (leftRank, row, col, rightRank); the chain is a
//     TT-matrix, i.e. a linear operator of shape prod(rows) × prod(cols).
//
// Batched factors carry one extra leading batch axis in both layouts.
type Layout int

const (
	// Plain layout: one mode axis per factor.
	Plain Layout = iota

	// Matrix layout: a row axis and a col axis per factor.
	Matrix
)

// factor ranks per layout, unbatched.
const (
	plainFactorRank  = 3
	matrixFactorRank = 4
)

// String implements fmt.Stringer.
func (l Layout) String() string {
	switch l {
	case Plain:
		return "plain"
	case Matrix:
		return "matrix"
	}

	return "unknown"
}
