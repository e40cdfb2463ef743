// Package layout determines the reading order of text lines on a page.
//
// The order is built in three steps:
//
//   - [GroupByLine] buckets word boxes by the line id found at each box
//     center in a line label map
//   - [BuildOrder] derives a pairwise "strictly precedes" relation
//     between line boxes from their geometry, a [PartialOrder]
//   - [PartialOrder.Linearize] flattens the relation into one total
//     order by depth-first postorder traversal
//
// The partial order is a heuristic geometric relation over noisy
// real-world layouts: it is not guaranteed transitive or acyclic.
// Linearization is therefore best effort - a visited guard breaks
// cycles deterministically rather than failing, and callers wanting
// observability can count realized-order violations with
// [PartialOrder.Violations].
package layout
