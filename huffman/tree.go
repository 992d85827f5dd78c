package huffman

import "container/heap"

// node is one arena entry: a leaf carries a symbol, an internal node
// carries left/right child indices into the same arena. left == -1 and
// right == -1 marks a leaf (a node has either both children or neither,
// since the tree built by buildTree is always full).
type node struct {
	freq      uint32
	hasSymbol bool
	symbol    byte
	left      int
	right     int
	depth     uint8
}

func (n *node) isLeaf() bool {
	return n.left < 0 && n.right < 0
}

// nodeHeap is a min-heap of not-yet-placed nodes, ordered per spec: by
// ascending frequency, then present-symbol before absent-symbol, then
// ascending symbol value. Without this exact tie-break the tree shape
// (and hence the output bytes) is nondeterministic across runs.
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	if a.hasSymbol != b.hasSymbol {
		return a.hasSymbol
	}
	return a.symbol < b.symbol
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x interface{}) {
	*h = append(*h, x.(*node))
}

func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// buildTree constructs a full binary Huffman tree arena from freq. The
// last element of the returned slice is always the root; every internal
// node's children are at strictly earlier positions. Returns nil for an
// empty frequency table.
//
// A lone distinct symbol is a degenerate case: left unhandled, its leaf
// would sit at depth 0 and receive length 0, indistinguishable from "does
// not occur". This synthesizes a zero-frequency phantom sibling before
// the merge loop so the real symbol always ends up at depth 1 instead.
func buildTree(freq frequencyTable) []node {
	var pq nodeHeap
	for b := 0; b < 256; b++ {
		if freq[b] > 0 {
			pq = append(pq, &node{freq: freq[b], hasSymbol: true, symbol: byte(b), left: -1, right: -1})
		}
	}
	if len(pq) == 0 {
		return nil
	}
	if len(pq) == 1 {
		pq = append(pq, &node{freq: 0, hasSymbol: false, left: -1, right: -1})
	}
	heap.Init(&pq)

	var arena []node
	for pq.Len() > 1 {
		l := heap.Pop(&pq).(*node)
		r := heap.Pop(&pq).(*node)

		lIdx := len(arena)
		arena = append(arena, *l)
		rIdx := len(arena)
		arena = append(arena, *r)

		heap.Push(&pq, &node{
			freq:  l.freq + r.freq,
			left:  lIdx,
			right: rIdx,
		})
	}

	root := heap.Pop(&pq).(*node)
	arena = append(arena, *root)
	return arena
}

// assignDepths annotates every node's depth via one iterative DFS pass,
// root at depth 0. Because the tree is full (every node has 0 or 2
// children), no special case is needed for one-child internals.
func assignDepths(arena []node) {
	if len(arena) == 0 {
		return
	}

	type frame struct {
		idx   int
		depth uint8
	}

	rootIdx := len(arena) - 1
	stack := []frame{{rootIdx, 0}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		arena[f.idx].depth = f.depth
		if n := &arena[f.idx]; !n.isLeaf() {
			stack = append(stack, frame{n.right, f.depth + 1})
			stack = append(stack, frame{n.left, f.depth + 1})
		}
	}
}

// extractLengths produces L[0..256), where L[b] is the depth of the leaf
// carrying byte b, or 0 if b does not occur.
func extractLengths(arena []node) [256]uint8 {
	var lengths [256]uint8
	for i := range arena {
		n := &arena[i]
		if n.isLeaf() && n.hasSymbol {
			lengths[n.symbol] = n.depth
		}
	}
	return lengths
}
