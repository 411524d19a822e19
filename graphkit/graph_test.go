package graphkit

import "testing"

func triangle() *Graph {
	g := New(3)
	g.SetLabel(1, "C")
	g.SetLabel(2, "C")
	g.SetLabel(3, "C")
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	g.AddEdge(1, 3)
	return g
}

func TestNeighborsAndDegree(t *testing.T) {
	g := triangle()
	if d := g.Degree(1); d != 2 {
		t.Errorf("Degree(1) = %d, want 2", d)
	}
	ns := g.Neighbors(1)
	if len(ns) != 2 || ns[0] != 2 || ns[1] != 3 {
		t.Errorf("Neighbors(1) = %v, want [2 3]", ns)
	}
}

func TestAddEdgeDuplicatePanics(t *testing.T) {
	g := triangle()
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic on duplicate edge")
		}
	}()
	g.AddEdge(1, 2)
}

func TestAddEdgeSelfLoopPanics(t *testing.T) {
	g := New(2)
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic on self-loop")
		}
	}()
	g.AddEdge(1, 1)
}

func TestEdgesSortedAndUnique(t *testing.T) {
	g := triangle()
	edges := g.Edges()
	want := [][2]int{{1, 2}, {1, 3}, {2, 3}}
	if len(edges) != len(want) {
		t.Fatalf("Edges() = %v, want %v", edges, want)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("Edges()[%d] = %v, want %v", i, edges[i], want[i])
		}
	}
}

func TestPropertyAndFlag(t *testing.T) {
	g := triangle()
	g.SetProperty(1, 2, "distance", 1.54)
	g.SetFlag(1, 2, "cross_boundary", true)
	if d, ok := g.Property(2, 1, "distance"); !ok || d != 1.54 {
		t.Errorf("Property(2,1,distance) = %v,%v, want 1.54,true", d, ok)
	}
	if f, ok := g.Flag(1, 2, "cross_boundary"); !ok || !f {
		t.Errorf("Flag(1,2,cross_boundary) = %v,%v, want true,true", f, ok)
	}
	if _, ok := g.Property(1, 3, "distance"); ok {
		t.Errorf("Property(1,3,distance) should be unset")
	}
}

func TestInducedPreservesTopologyAndProperties(t *testing.T) {
	g := triangle()
	g.SetProperty(1, 2, "distance", 1.4)
	g.SetFlag(1, 2, "cross_boundary", false)

	h := g.Induced([]int{1, 2})
	if h.Len() != 2 {
		t.Fatalf("Induced len = %d, want 2", h.Len())
	}
	if !h.HasEdge(1, 2) {
		t.Errorf("induced subgraph should keep the (1,2) edge")
	}
	if d, ok := h.Property(1, 2, "distance"); !ok || d != 1.4 {
		t.Errorf("Property carried over = %v,%v, want 1.4,true", d, ok)
	}
}

func TestInducedDropsExternalEdges(t *testing.T) {
	g := triangle()
	h := g.Induced([]int{1, 2})
	if h.HasEdge(2, 1) != true {
		t.Fatalf("expected edge (1,2) to survive induction")
	}
	// vertex 3, and everything touching it, must be gone.
	if h.Len() != 2 {
		t.Errorf("Induced([1,2]).Len() = %d, want 2", h.Len())
	}
}

func TestConcatDisjointAndRenumbered(t *testing.T) {
	a := New(2)
	a.AddEdge(1, 2)
	b := New(2)
	b.AddEdge(1, 2)

	c := a.Concat(b)
	if c.Len() != 4 {
		t.Fatalf("Concat len = %d, want 4", c.Len())
	}
	if !c.HasEdge(1, 2) || !c.HasEdge(3, 4) {
		t.Errorf("Concat should keep both original edges, relabeled")
	}
	if c.HasEdge(2, 3) {
		t.Errorf("Concat must not add edges between the two parts")
	}
}
