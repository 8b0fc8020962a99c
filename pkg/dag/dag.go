package dag

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] for an empty ID.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when the ID is taken.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [DAG.AddEdge] when either endpoint has
	// not been added.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNonAdjacentCells is returned by [DAG.Validate] for an edge that does
	// not step one cell up, left or diagonally up-left.
	ErrNonAdjacentCells = errors.New("edges must step to an adjacent cell toward the origin")
)

// Metadata holds free-form values attached to the graph, a node or an edge.
type Metadata map[string]any

// NodeKind marks the role a cell plays in the traceback graph.
type NodeKind int

const (
	NodeKindCell  NodeKind = iota // On a path, neither first nor last
	NodeKindStart                 // The bottom-right cell where every path begins
	NodeKindEnd                   // A cell without backlinks where a path stops
)

var kindNames = [...]string{NodeKindCell: "cell", NodeKindStart: "start", NodeKindEnd: "end"}

func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is a matrix cell.
type Node struct {
	ID    string
	Row   int
	Col   int
	Label string // shown instead of ID when set
	Kind  NodeKind
	Meta  Metadata // non-nil once added
}

// DisplayLabel returns Label, or the ID when no label is set.
func (n Node) DisplayLabel() string { return cmp.Or(n.Label, n.ID) }

// Edge points from a cell to the neighbour it was reached from.
type Edge struct {
	From  string
	To    string
	Label string
	Meta  Metadata // non-nil once added
}

// DAG is a directed graph over matrix cells. Use [New]; the zero value is
// not ready for use. A DAG must not be mutated concurrently.
type DAG struct {
	nodes map[string]*Node
	edges []Edge
	out   map[string][]string
	in    map[string][]string
	meta  Metadata
}

// New returns an empty graph carrying meta, which may be nil.
func New(meta Metadata) *DAG {
	if meta == nil {
		meta = Metadata{}
	}
	return &DAG{
		nodes: map[string]*Node{},
		out:   map[string][]string{},
		in:    map[string][]string{},
		meta:  meta,
	}
}

func (d *DAG) Meta() Metadata { return d.meta }

// AddNode stores a copy of n.
func (d *DAG) AddNode(n Node) error {
	switch {
	case n.ID == "":
		return ErrInvalidNodeID
	case d.nodes[n.ID] != nil:
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	d.nodes[n.ID] = &n
	return nil
}

// AddEdge connects two existing nodes. Grid adjacency is checked by
// [DAG.Validate], not here.
func (d *DAG) AddEdge(e Edge) error {
	for _, id := range [2]string{e.From, e.To} {
		if d.nodes[id] == nil {
			return fmt.Errorf("%w: %s", ErrUnknownNode, id)
		}
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	d.edges = append(d.edges, e)
	d.out[e.From] = append(d.out[e.From], e.To)
	d.in[e.To] = append(d.in[e.To], e.From)
	return nil
}

func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Nodes returns every node in row-major order. The pointers alias the
// graph's nodes.
func (d *DAG) Nodes() []*Node {
	return slices.SortedFunc(maps.Values(d.nodes), func(a, b *Node) int {
		return cmp.Or(cmp.Compare(a.Row, b.Row), cmp.Compare(a.Col, b.Col), cmp.Compare(a.ID, b.ID))
	})
}

// Edges returns a copy of the edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

func (d *DAG) NodeCount() int { return len(d.nodes) }
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children and Parents return adjacency lists owned by the graph.
func (d *DAG) Children(id string) []string { return d.out[id] }
func (d *DAG) Parents(id string) []string  { return d.in[id] }

// NodesInRow returns the nodes of one matrix row ordered by column.
func (d *DAG) NodesInRow(row int) []*Node {
	return slices.DeleteFunc(d.Nodes(), func(n *Node) bool { return n.Row != row })
}

// RowIDs returns the rows that hold at least one node, ascending.
func (d *DAG) RowIDs() []int {
	seen := map[int]bool{}
	for _, n := range d.nodes {
		seen[n.Row] = true
	}
	return slices.Sorted(maps.Keys(seen))
}

// Sources returns the nodes nothing points to, in row-major order.
func (d *DAG) Sources() []*Node {
	return slices.DeleteFunc(d.Nodes(), func(n *Node) bool { return len(d.in[n.ID]) > 0 })
}

// Sinks returns the nodes that point nowhere, in row-major order.
func (d *DAG) Sinks() []*Node {
	return slices.DeleteFunc(d.Nodes(), func(n *Node) bool { return len(d.out[n.ID]) > 0 })
}

// PathCount returns the number of source-to-sink paths. For a traceback
// graph that is the number of optimal alignments. The count saturates at
// [math.MaxInt]; exact is false when it did. The result is only meaningful
// for a graph that passes [DAG.Validate].
func (d *DAG) PathCount() (n int, exact bool) {
	// Valid edges lower Row+Col, so ascending anti-diagonals visit every
	// child before its parents.
	order := slices.SortedFunc(maps.Values(d.nodes), func(a, b *Node) int {
		return cmp.Compare(a.Row+a.Col, b.Row+b.Col)
	})
	paths := make(map[string]int, len(order))
	exact = true
	for _, node := range order {
		p := 0
		if len(d.out[node.ID]) == 0 {
			p = 1
		}
		for _, c := range d.out[node.ID] {
			p = addSat(p, paths[c], &exact)
		}
		paths[node.ID] = p
		if len(d.in[node.ID]) == 0 {
			n = addSat(n, p, &exact)
		}
	}
	return n, exact
}

// addSat adds two non-negative counts, clamping at math.MaxInt.
func addSat(a, b int, exact *bool) int {
	if a > math.MaxInt-b {
		*exact = false
		return math.MaxInt
	}
	return a + b
}

// Validate checks that every edge steps to the cell above, to the left or
// diagonally up-left. Since each such step lowers Row+Col, a valid graph is
// also acyclic.
func (d *DAG) Validate() error {
	for _, e := range d.edges {
		from, to := d.nodes[e.From], d.nodes[e.To]
		dr, dc := from.Row-to.Row, from.Col-to.Col
		if dr < 0 || dr > 1 || dc < 0 || dc > 1 || dr+dc == 0 {
			return fmt.Errorf("%w: %s -> %s", ErrNonAdjacentCells, e.From, e.To)
		}
	}
	return nil
}

// NodeIDs maps nodes to their IDs.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
