package layout

// Linearize flattens the precedence relation into a total order over
// all line indices using depth-first postorder traversal: every
// predecessor of a line is visited before the line is appended. The
// traversal uses an explicit stack but preserves the visitation order
// of the recursive formulation exactly.
//
// Cycles in the relation never fail the traversal: the visited guard
// breaks each cycle at whichever node the traversal reaches first, so
// the order near a cycle is a best-effort approximation.
func (p PartialOrder) Linearize() []int {
	n := len(p)
	visited := make([]bool, n)
	result := make([]int, 0, n)

	type frame struct {
		node int
		next int // next predecessor index to examine
	}
	var stack []frame

	for k := 0; k < n; k++ {
		if visited[k] {
			continue
		}
		visited[k] = true
		stack = append(stack[:0], frame{node: k})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			descended := false
			for l := top.next; l < n; l++ {
				if p[l][top.node] && !visited[l] {
					top.next = l + 1
					visited[l] = true
					stack = append(stack, frame{node: l})
					descended = true
					break
				}
			}
			if !descended {
				result = append(result, top.node)
				stack = stack[:len(stack)-1]
			}
		}
	}
	return result
}
