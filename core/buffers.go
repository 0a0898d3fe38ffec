package core

// Matrix is a dense N*N boolean adjacency matrix: Matrix.At(i, j) reports
// whether block j is in the leftN of block i (equivalently: they conflict
// and j.Depth < i.Depth). A dense matrix is used rather than a sparse one
// because N is the per-render event count (typically hundreds) and the
// condense stage needs O(1) reachability lookups, not O(degree) traversal.
type Matrix struct {
	n    int
	data []bool
}

// NewMatrix allocates (or, via Grow, reuses) an n*n boolean matrix.
func NewMatrix(n int) *Matrix {
	m := &Matrix{}
	m.Grow(n)
	return m
}

// Grow resizes the matrix to n*n, reallocating only if the current backing
// array is too small, and always zeroing the logical n*n region in use.
func (m *Matrix) Grow(n int) {
	if need := n * n; cap(m.data) < need {
		m.data = make([]bool, need)
	} else {
		m.data = m.data[:need]
		for i := range m.data {
			m.data[i] = false
		}
	}
	m.n = n
}

// Set marks that block j is left of block i (matrix[i*N+j] = true).
func (m *Matrix) Set(i, j int) { m.data[i*m.n+j] = true }

// At reports whether block j is left of block i.
func (m *Matrix) At(i, j int) bool { return m.data[i*m.n+j] }

// Buffers holds the reusable, monotonically-growing scratch arrays shared
// by every pipeline stage within one engine.Engine: the owned block array,
// a reorderable pointer view over it, a BFS/DFS scratch buffer, and an
// idxMap from Block.Idx to a solver column index local to one LP/MILP
// build. Capacity grows to the largest N seen and is never shrunk.
type Buffers struct {
	Blocks          []Block  // owned, contiguous, index == Block.Idx
	BlocksReordered []*Block // pointer view, freely re-sortable
	BlockBuffer     []*Block // BFS/DFS/room-tracking scratch
	IdxMap          []int    // Block.Idx -> solver column index, scratch
	Matrix          *Matrix

	maxN int
}

// Grow ensures every buffer can hold n blocks, reallocating only the
// buffers that are currently too small. When n exceeds the largest size
// seen so far, Blocks moves to a new backing array: the values of indices
// < oldMaxN are copied over, but pointers taken into the old array no
// longer alias buf.Blocks; indices in [oldMaxN, n) are freshly zero-valued
// Blocks. When n does not exceed it, every buffer is resliced in place.
func (buf *Buffers) Grow(n int) {
	if n > buf.maxN {
		grown := make([]Block, n)
		copy(grown, buf.Blocks)
		buf.Blocks = grown

		buf.BlocksReordered = make([]*Block, n)
		buf.BlockBuffer = make([]*Block, n)
		buf.IdxMap = make([]int, n)
		buf.maxN = n
	} else {
		buf.Blocks = buf.Blocks[:n]
		buf.BlocksReordered = buf.BlocksReordered[:n]
		buf.BlockBuffer = buf.BlockBuffer[:n]
		buf.IdxMap = buf.IdxMap[:n]
	}
	if buf.Matrix == nil {
		buf.Matrix = NewMatrix(n)
	} else {
		buf.Matrix.Grow(n)
	}
}
