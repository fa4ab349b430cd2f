package interval

import "github.com/teemow/weekplanner/internal/week"

// DefaultBound is the end of the root sentinel range. Two weeks leave room for
// intervals that wrap past the end of the first week.
const DefaultBound int64 = 2 * week.MinutesPerWeek

const noChild = -1

type node struct {
	iv    Interval
	left  int
	right int
}

// BusyTree is an interval-merging binary tree of busy time.
type BusyTree struct {
	nodes []node
	bound int64
}

// TreeOption configures a BusyTree.
type TreeOption func(*BusyTree)

// WithBound overrides the end of the root sentinel range.
func WithBound(end int64) TreeOption {
	return func(t *BusyTree) {
		t.bound = end
	}
}

// Build returns a tree rooted at the sentinel range [0, bound) with every busy
// interval inserted in order.
func Build(busy []Interval, opts ...TreeOption) *BusyTree {
	t := &BusyTree{bound: DefaultBound}
	for _, opt := range opts {
		opt(t)
	}
	t.nodes = make([]node, 0, len(busy)+1)
	t.newNode(Interval{Start: 0, End: t.bound})
	for _, iv := range busy {
		t.Insert(iv)
	}
	return t
}

func (t *BusyTree) newNode(iv Interval) int {
	t.nodes = append(t.nodes, node{iv: iv, left: noChild, right: noChild})
	return len(t.nodes) - 1
}

// Insert places iv in the tree. Intervals entirely before or after a node go
// to its left or right child. Otherwise the node widens to cover iv, and the
// parts of iv beyond the node's old edges are pushed into existing children.
func (t *BusyTree) Insert(iv Interval) {
	t.insert(0, iv)
}

func (t *BusyTree) insert(idx int, iv Interval) {
	n := &t.nodes[idx]

	switch {
	case iv.End < n.iv.Start:
		if n.left == noChild {
			child := t.newNode(iv)
			t.nodes[idx].left = child
			return
		}
		t.insert(n.left, iv)

	case iv.Start > n.iv.End:
		if n.right == noChild {
			child := t.newNode(iv)
			t.nodes[idx].right = child
			return
		}
		t.insert(n.right, iv)

	default:
		n.iv.Start = min(n.iv.Start, iv.Start)
		n.iv.End = max(n.iv.End, iv.End)
		start, end := n.iv.Start, n.iv.End
		left, right := n.left, n.right

		// n may be invalidated by appends below.
		if left != noChild {
			t.insert(left, Interval{Start: iv.Start, End: min(iv.End, start)})
		}
		if right != noChild {
			t.insert(right, Interval{Start: max(iv.Start, end), End: iv.End})
		}
	}
}

// FindEarliestFree looks for a run of d minutes inside [windowStart, windowEnd).
// It reports false when d is not positive or when the run found does not fit
// inside the window.
func (t *BusyTree) FindEarliestFree(d, windowStart, windowEnd int64) (Interval, bool) {
	if d <= 0 || windowEnd <= windowStart {
		return Interval{}, false
	}
	root := noChild
	if len(t.nodes) > 0 {
		root = 0
	}
	found := t.findEarliestFree(root, d, windowStart, windowEnd)
	if found.Start < windowStart || found.End > windowEnd {
		return Interval{}, false
	}
	return found, true
}

func (t *BusyTree) findEarliestFree(idx int, d, minStart, maxEnd int64) Interval {
	if idx == noChild {
		return Interval{Start: minStart, End: minStart + d}
	}

	n := t.nodes[idx]
	nodeStart := max(n.iv.Start, minStart)
	nodeEnd := min(n.iv.End, maxEnd)

	if nodeEnd-nodeStart >= d {
		return Interval{Start: nodeStart, End: nodeStart + d}
	}
	if n.left == noChild || t.nodes[n.left].iv.End < d {
		return Interval{Start: nodeEnd, End: nodeEnd + d}
	}
	return t.findEarliestFree(n.left, d, minStart, nodeStart)
}

// Len returns the number of nodes, including the sentinel root.
func (t *BusyTree) Len() int {
	return len(t.nodes)
}

// Root returns the root's current range.
func (t *BusyTree) Root() Interval {
	if len(t.nodes) == 0 {
		return Interval{}
	}
	return t.nodes[0].iv
}

// Intervals returns every node range in arena order.
func (t *BusyTree) Intervals() []Interval {
	out := make([]Interval, len(t.nodes))
	for i, n := range t.nodes {
		out[i] = n.iv
	}
	return out
}
