package layout

import (
	"testing"

	"github.com/tsawler/pageread/geom"
)

func TestBuildOrder_NeverReflexive(t *testing.T) {
	lines := []geom.Box{
		{Top: 0, Left: 0, Bottom: 10, Right: 50},
		{Top: 20, Left: 0, Bottom: 30, Right: 50},
		{Top: 0, Left: 60, Bottom: 30, Right: 100},
	}

	order := BuildOrder(lines)
	for i := range order {
		if order[i][i] {
			t.Errorf("order[%d][%d] must be false", i, i)
		}
	}
}

func TestBuildOrder_VerticalStack(t *testing.T) {
	upper := geom.Box{Top: 0, Left: 10, Bottom: 10, Right: 50}
	lower := geom.Box{Top: 20, Left: 10, Bottom: 30, Right: 50}

	order := BuildOrder([]geom.Box{upper, lower})
	if !order[0][1] {
		t.Error("upper line must precede lower line")
	}
	if order[1][0] {
		t.Error("lower line must not precede upper line")
	}
}

func TestBuildOrder_DisjointHorizontal_ExactlyOne(t *testing.T) {
	left := geom.Box{Top: 0, Left: 0, Bottom: 10, Right: 40}
	right := geom.Box{Top: 0, Left: 60, Bottom: 10, Right: 100}

	order := BuildOrder([]geom.Box{left, right})
	if !order[0][1] {
		t.Error("left line must precede right line")
	}
	if order[1][0] {
		t.Error("right line must not precede left line")
	}
}

func TestBuildOrder_InterveningLineBlocksLeftOf(t *testing.T) {
	// A third line suppresses the left-of relation only when it reaches
	// into both flanking extents; one floating strictly inside the gap
	// does not.
	left := geom.Box{Top: 0, Left: 0, Bottom: 10, Right: 40}
	right := geom.Box{Top: 0, Left: 60, Bottom: 10, Right: 100}
	divider := geom.Box{Top: 0, Left: 30, Bottom: 100, Right: 70}

	order := BuildOrder([]geom.Box{left, right, divider})
	if order[0][1] {
		t.Error("intervening line must block the left-of relation")
	}

	floating := geom.Box{Top: 0, Left: 45, Bottom: 100, Right: 55}
	order = BuildOrder([]geom.Box{left, right, floating})
	if !order[0][1] {
		t.Error("a line strictly inside the gap must not block the left-of relation")
	}
}

func TestLinearize_RespectsAcyclicOrder(t *testing.T) {
	lines := []geom.Box{
		{Top: 40, Left: 10, Bottom: 50, Right: 90}, // bottom
		{Top: 0, Left: 10, Bottom: 10, Right: 90},  // top
		{Top: 20, Left: 10, Bottom: 30, Right: 90}, // middle
	}

	order := BuildOrder(lines)
	perm := order.Linearize()
	if len(perm) != 3 {
		t.Fatalf("expected a permutation of 3 indices, got %v", perm)
	}

	pos := make([]int, 3)
	for rank, idx := range perm {
		pos[idx] = rank
	}
	for i := range order {
		for j, precedes := range order[i] {
			if precedes && pos[i] > pos[j] {
				t.Errorf("order[%d][%d] violated by permutation %v", i, j, perm)
			}
		}
	}
	if order.Violations(perm) != 0 {
		t.Errorf("acyclic relation reported violations")
	}
}

func TestLinearize_TwoCycleTerminates(t *testing.T) {
	order := PartialOrder{
		{false, true},
		{true, false},
	}

	perm := order.Linearize()
	if len(perm) != 2 {
		t.Fatalf("expected a permutation of 2 indices, got %v", perm)
	}
	seen := map[int]bool{}
	for _, idx := range perm {
		if seen[idx] {
			t.Fatalf("index %d appears twice in %v", idx, perm)
		}
		seen[idx] = true
	}
	if order.Violations(perm) == 0 {
		t.Error("a 2-cycle must realize at least one violation")
	}
}

func TestLinearize_MatchesRecursivePostorder(t *testing.T) {
	// Diamond: 0 precedes 1 and 2, both precede 3.
	order := PartialOrder{
		{false, true, true, false},
		{false, false, false, true},
		{false, false, false, true},
		{false, false, false, false},
	}

	got := order.Linearize()
	// visit(0) appends 0; visit(1) visits predecessor 0 (done), appends 1;
	// visit(2) appends 2; visit(3) visits 1, 2 (done), appends 3.
	want := []int{0, 1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected postorder %v, got %v", want, got)
		}
	}
}

func TestLinearize_Empty(t *testing.T) {
	if perm := (PartialOrder{}).Linearize(); len(perm) != 0 {
		t.Errorf("empty relation must produce an empty order, got %v", perm)
	}
}
