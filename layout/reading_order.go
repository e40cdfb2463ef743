package layout

import "github.com/tsawler/pageread/geom"

// PartialOrder is a pairwise precedence relation over lines:
// order[i][j] reports that line i strictly precedes line j in reading
// order. The relation is heuristic - neither transitivity nor
// acyclicity is guaranteed.
type PartialOrder [][]bool

// BuildOrder derives the precedence relation from line bounding boxes.
// Line u precedes line v when either their horizontal extents overlap
// and u ends above v, or u lies entirely left of v with no third line
// separating them - a line that vertically spans the interval between
// the two and horizontally cuts across the gap.
func BuildOrder(lines []geom.Box) PartialOrder {
	order := make(PartialOrder, len(lines))
	for i := range order {
		order[i] = make([]bool, len(lines))
	}

	for i, u := range lines {
		for j, v := range lines {
			if i == j {
				continue
			}
			if xOverlaps(u, v) {
				if u.Bottom < v.Top {
					order[i][j] = true
				}
				continue
			}
			if u.Right < v.Left && !anySeparates(lines, u, v) {
				order[i][j] = true
			}
		}
	}
	return order
}

func xOverlaps(u, v geom.Box) bool {
	return u.Left < v.Right && u.Right > v.Left
}

// separates reports whether w blocks the left-to-right step from u to
// v: w reaches into the vertical interval spanned by the two lines and
// crosses the horizontal gap between them.
func separates(w, u, v geom.Box) bool {
	if w.Bottom < minInt(u.Top, v.Top) {
		return false
	}
	if w.Top > maxInt(u.Bottom, v.Bottom) {
		return false
	}
	return w.Left < u.Right && w.Right > v.Left
}

func anySeparates(lines []geom.Box, u, v geom.Box) bool {
	for _, w := range lines {
		if separates(w, u, v) {
			return true
		}
	}
	return false
}

// Violations counts precedence pairs the given permutation realizes in
// the wrong direction. A nonzero count means the relation contained
// cycles the traversal had to break.
func (p PartialOrder) Violations(perm []int) int {
	pos := make([]int, len(perm))
	for rank, idx := range perm {
		pos[idx] = rank
	}
	violations := 0
	for i := range p {
		for j, precedes := range p[i] {
			if precedes && pos[i] > pos[j] {
				violations++
			}
		}
	}
	return violations
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
