// Package tt_test contains unit tests for unbatched tensor-train chains.
package tt_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/tensortrain/tensor"
	"github.com/katalvlaran/tensortrain/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewChain_Empty ensures construction rejects an empty factor list.
func TestNewChain_Empty(t *testing.T) {
	_, err := tt.NewChain(nil)
	require.ErrorIs(t, err, tt.ErrEmptyChain)

	_, err = tt.ConvertChain([]any{})
	require.ErrorIs(t, err, tt.ErrEmptyChain)
}

// TestNewChain_UnsupportedRank covers factors of unknown rank and mixed layouts.
func TestNewChain_UnsupportedRank(t *testing.T) {
	_, err := tt.ConvertChain([]any{[][]float64{{1, 2}}})
	require.ErrorIs(t, err, tt.ErrUnsupportedFactorRank, "rank-2 factor")

	_, err = tt.NewChain([]*tensor.Dense{randomFactor(t, rngFor(1), 1, 2, 2, 1, 1)})
	require.ErrorIs(t, err, tt.ErrUnsupportedFactorRank, "rank-5 factor")

	mixed := []*tensor.Dense{
		randomFactor(t, rngFor(2), 1, 2, 2),
		randomFactor(t, rngFor(3), 2, 2, 2, 1),
	}
	_, err = tt.NewChain(mixed)
	require.ErrorIs(t, err, tt.ErrUnsupportedFactorRank, "plain + matrix factors")
}

// TestNewChain_NilFactor ensures nil factors are rejected, not dereferenced.
func TestNewChain_NilFactor(t *testing.T) {
	_, err := tt.NewChain([]*tensor.Dense{nil})
	require.ErrorIs(t, err, tensor.ErrNilTensor)

	_, err = tt.ConvertChain([]any{nil})
	require.ErrorIs(t, err, tensor.ErrNilTensor)
}

// TestConvertChain_BadInput ensures conversion failures surface the tensor sentinel.
func TestConvertChain_BadInput(t *testing.T) {
	_, err := tt.ConvertChain([]any{[][][]float64{{{1}, {2, 3}}}})
	require.ErrorIs(t, err, tensor.ErrUnsupportedInput)
}

// TestMetadata_Plain checks derived metadata for a plain chain.
func TestMetadata_Plain(t *testing.T) {
	c := mustChain(t, plainFactors(t, 1, []int{2, 3, 4}, []int{3, 2}))

	assert.Equal(t, tt.Plain, c.Layout())
	assert.False(t, c.IsMatrixForm())
	assert.Equal(t, 3, c.NDims())
	assert.Equal(t, []int{1, 3, 2, 1}, c.Ranks())
	assert.Equal(t, [][]int{{2, 3, 4}}, c.RawShape())
	assert.Equal(t, []int{2, 3, 4}, c.Shape())
	assert.Equal(t, tensor.CPU, c.Device())
	assert.Equal(t, "tt.Chain{layout=plain ndims=3 ranks=[1 3 2 1] shape=[2 3 4]}", c.String())
}

// TestMetadata_Matrix checks derived metadata for a TT-matrix.
func TestMetadata_Matrix(t *testing.T) {
	c := mustChain(t, matrixFactors(t, 2, []int{2, 3}, []int{4, 5}, []int{3}))

	assert.Equal(t, tt.Matrix, c.Layout())
	assert.True(t, c.IsMatrixForm())
	assert.Equal(t, 2, c.NDims())
	assert.Equal(t, []int{1, 3, 1}, c.Ranks())
	assert.Equal(t, [][]int{{2, 3}, {4, 5}}, c.RawShape())
	assert.Equal(t, []int{6, 20}, c.Shape())
}

// TestMetadata_ClosingRankIsOne ensures ranks[d] is 1 whatever the last factor stores.
func TestMetadata_ClosingRankIsOne(t *testing.T) {
	cores := []*tensor.Dense{randomFactor(t, rngFor(4), 1, 3, 2)}
	c := mustChain(t, cores)
	require.Equal(t, []int{1, 1}, c.Ranks())
}

// TestAccessorsAreCopies ensures callers cannot mutate frozen metadata or factors.
func TestAccessorsAreCopies(t *testing.T) {
	c := mustChain(t, plainFactors(t, 5, []int{2, 2}, []int{2}))

	c.Ranks()[1] = 99
	c.Shape()[0] = 99
	c.RawShape()[0][0] = 99
	require.NoError(t, c.Cores()[0].Set(1e6, 0, 0, 0))

	require.Equal(t, []int{1, 2, 1}, c.Ranks())
	require.Equal(t, []int{2, 2}, c.Shape())
	require.Equal(t, [][]int{{2, 2}}, c.RawShape())
	v, err := c.Cores()[0].At(0, 0, 0)
	require.NoError(t, err)
	require.NotEqual(t, 1e6, v)
}

// TestNewChain_OwnsFactors ensures mutating the caller's factor after
// construction does not change the chain.
func TestNewChain_OwnsFactors(t *testing.T) {
	cores := plainFactors(t, 6, []int{3}, nil)
	c := mustChain(t, cores)
	before := mustFull(t, c).Data()

	require.NoError(t, cores[0].Set(42, 0, 0, 0))
	require.Equal(t, before, mustFull(t, c).Data())
}

// TestFull_TrivialChain: a (1,n,1) factor densifies to its middle-axis values.
func TestFull_TrivialChain(t *testing.T) {
	c, err := tt.ConvertChain([]any{[][][]float64{{{1}, {2}, {3}, {4}}}})
	require.NoError(t, err)

	d := mustFull(t, c)
	require.Equal(t, []int{4}, d.Shape())
	require.Equal(t, []float64{1, 2, 3, 4}, d.Data())
}

// TestFull_IdentityExample: core_0 = identity-like (1,2,2), core_1[r,j,0] = r*3+j.
func TestFull_IdentityExample(t *testing.T) {
	core0 := [][][]float64{{{1, 0}, {0, 1}}}
	core1 := [][][]float64{
		{{0}, {1}, {2}},
		{{3}, {4}, {5}},
	}
	c, err := tt.ConvertChain([]any{core0, core1})
	require.NoError(t, err)

	d := mustFull(t, c)
	require.Equal(t, []int{2, 3}, d.Shape())
	require.Equal(t, []float64{0, 1, 2, 3, 4, 5}, d.Data())
}

// TestFull_ShapeLawPlain checks shape and every entry against a brute-force evaluation.
func TestFull_ShapeLawPlain(t *testing.T) {
	for _, tc := range []struct {
		modes, inner []int
	}{
		{[]int{5}, nil},
		{[]int{2, 3}, []int{2}},
		{[]int{3, 1, 4}, []int{2, 3}},
		{[]int{2, 2, 2, 2}, []int{1, 4, 2}},
	} {
		t.Run(fmt.Sprint(tc.modes), func(t *testing.T) {
			cores := plainFactors(t, 7, tc.modes, tc.inner)
			d := mustFull(t, mustChain(t, cores))

			require.Equal(t, tc.modes, d.Shape())
			require.Equal(t, prodInts(tc.modes), d.Size())
			data := d.Data()
			for flat := range data {
				want := entryPlain(t, cores, unflatten(flat, tc.modes))
				require.InDelta(t, want, data[flat], tol, "flat %d", flat)
			}
		})
	}
}

// TestFull_ShapeLawMatrix checks the operator shape and that rows/cols are
// regrouped (row multi-index major, col multi-index minor).
func TestFull_ShapeLawMatrix(t *testing.T) {
	for _, tc := range []struct {
		rows, cols, inner []int
	}{
		{[]int{3}, []int{2}, nil},
		{[]int{2, 3}, []int{4, 2}, []int{3}},
		{[]int{2, 2, 3}, []int{3, 1, 2}, []int{2, 2}},
	} {
		t.Run(fmt.Sprintf("%v_x_%v", tc.rows, tc.cols), func(t *testing.T) {
			cores := matrixFactors(t, 8, tc.rows, tc.cols, tc.inner)
			d := mustFull(t, mustChain(t, cores))

			R, C := prodInts(tc.rows), prodInts(tc.cols)
			require.Equal(t, []int{R, C}, d.Shape())
			for i := 0; i < R; i++ {
				for j := 0; j < C; j++ {
					got, err := d.At(i, j)
					require.NoError(t, err)
					want := entryMatrix(t, cores, unflatten(i, tc.rows), unflatten(j, tc.cols))
					require.InDelta(t, want, got, tol, "(%d,%d)", i, j)
				}
			}
		})
	}
}

// TestFull_MatrixKronecker: a rank-1 TT-matrix is the Kronecker product of its factors.
func TestFull_MatrixKronecker(t *testing.T) {
	a := [][][][]float64{{{{1}, {2}}, {{3}, {4}}}} // A = [[1,2],[3,4]]
	b := [][][][]float64{{{{0}, {1}}, {{1}, {0}}}} // B = [[0,1],[1,0]]
	c, err := tt.ConvertChain([]any{a, b})
	require.NoError(t, err)

	d := mustFull(t, c)
	require.Equal(t, []int{4, 4}, d.Shape())
	require.Equal(t, []float64{
		0, 1, 0, 2,
		1, 0, 2, 0,
		0, 3, 0, 4,
		3, 0, 4, 0,
	}, d.Data())
}

// TestRankMismatch_Eager: construction fails fast when validation is on.
func TestRankMismatch_Eager(t *testing.T) {
	cores := []*tensor.Dense{
		randomFactor(t, rngFor(9), 1, 2, 3),
		randomFactor(t, rngFor(10), 2, 3, 1),
	}
	_, err := tt.NewChain(cores)
	require.ErrorIs(t, err, tt.ErrShape)
}

// TestRankMismatch_Lazy: with validation off, Full fails with ErrShape wrapping
// the dimension mismatch instead of reshaping around it.
func TestRankMismatch_Lazy(t *testing.T) {
	cores := []*tensor.Dense{
		randomFactor(t, rngFor(9), 1, 2, 3),
		randomFactor(t, rngFor(10), 2, 3, 1),
	}
	c := mustChain(t, cores, tt.WithoutValidation())
	require.Equal(t, []int{1, 2, 1}, c.Ranks(), "construction does not fix the mismatch")

	_, err := c.Full()
	require.ErrorIs(t, err, tt.ErrShape)
	require.ErrorIs(t, err, tensor.ErrDimensionMismatch)
}

// TestFull_BoundaryRank: a closing rank other than 1 cannot fit the logical shape.
func TestFull_BoundaryRank(t *testing.T) {
	cores := []*tensor.Dense{
		randomFactor(t, rngFor(11), 1, 2, 2),
		randomFactor(t, rngFor(12), 2, 3, 2),
	}
	c := mustChain(t, cores)
	_, err := c.Full()
	require.ErrorIs(t, err, tt.ErrReshape)
}

// TestFull_Deterministic: two calls are bit-identical and return fresh storage.
func TestFull_Deterministic(t *testing.T) {
	c := mustChain(t, matrixFactors(t, 13, []int{2, 2}, []int{3, 2}, []int{4}))
	a := mustFull(t, c)
	b := mustFull(t, c)
	require.Equal(t, a.Data(), b.Data())

	require.NoError(t, a.Set(123, 0, 0))
	require.Equal(t, b.Data(), mustFull(t, c).Data())
}

// TestFull_DoesNotMutateFactors ensures factors are read, never written.
func TestFull_DoesNotMutateFactors(t *testing.T) {
	c := mustChain(t, plainFactors(t, 14, []int{2, 3}, []int{2}))
	before := c.Cores()
	_ = mustFull(t, c)
	after := c.Cores()
	for i := range before {
		require.Equal(t, before[i].Data(), after[i].Data())
	}
}

// TestExpectedShapeAndRanks covers the expectation options.
func TestExpectedShapeAndRanks(t *testing.T) {
	cores := plainFactors(t, 15, []int{2, 3}, []int{2})

	_, err := tt.NewChain(cores, tt.WithExpectedShape(2, 3), tt.WithExpectedRanks(1, 2, 1))
	require.NoError(t, err)

	_, err = tt.NewChain(cores, tt.WithExpectedShape(3, 2))
	require.ErrorIs(t, err, tt.ErrShape)

	_, err = tt.NewChain(cores, tt.WithExpectedRanks(1, 3, 1))
	require.ErrorIs(t, err, tt.ErrShape)

	require.Panics(t, func() { tt.WithExpectedShape() })
	require.Panics(t, func() { tt.WithExpectedRanks(1, 0) })
}

// TestTo_RelocatesEveryFactor: every owned factor changes placement, not just the first.
func TestTo_RelocatesEveryFactor(t *testing.T) {
	c := mustChain(t, plainFactors(t, 16, []int{2, 3, 2}, []int{2, 2}))
	moved := c.To("accel:0")

	for i, core := range moved.Cores() {
		require.Equal(t, tensor.Device("accel:0"), core.Device(), "factor %d", i)
	}
	for i, core := range c.Cores() {
		require.Equal(t, tensor.CPU, core.Device(), "receiver factor %d", i)
	}
	require.Equal(t, mustFull(t, c).Data(), mustFull(t, moved).Data())
	require.Equal(t, tensor.Device("accel:0"), mustFull(t, moved).Device())
}

// TestWithDevice places factors at construction.
func TestWithDevice(t *testing.T) {
	c := mustChain(t, plainFactors(t, 17, []int{2, 2}, []int{3}), tt.WithDevice("accel:1"))
	require.Equal(t, tensor.Device("accel:1"), c.Device())
	for _, core := range c.Cores() {
		require.Equal(t, tensor.Device("accel:1"), core.Device())
	}
	require.Panics(t, func() { tt.WithDevice("") })
}

// TestOperator exports a TT-matrix to gonum and applies it.
func TestOperator(t *testing.T) {
	cores := matrixFactors(t, 18, []int{2, 2}, []int{3, 2}, []int{2})
	c := mustChain(t, cores)

	op, err := c.Operator()
	require.NoError(t, err)
	r, cols := op.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 6, cols)

	d := mustFull(t, c)
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			v, err := d.At(i, j)
			require.NoError(t, err)
			require.Equal(t, v, op.At(i, j))
		}
	}

	_, err = mustChain(t, plainFactors(t, 19, []int{2}, nil)).Operator()
	require.ErrorIs(t, err, tt.ErrNotMatrixForm)
}

// TestConcurrentFull runs Full from several goroutines on one chain.
func TestConcurrentFull(t *testing.T) {
	c := mustChain(t, plainFactors(t, 20, []int{3, 3, 3}, []int{2, 2}))
	want := mustFull(t, c).Data()

	const workers = 8
	results := make(chan []float64, workers)
	for w := 0; w < workers; w++ {
		go func() {
			d, err := c.Full()
			if err != nil {
				results <- nil
				return
			}
			results <- d.Data()
		}()
	}
	for w := 0; w < workers; w++ {
		require.Equal(t, want, <-results)
	}
}
