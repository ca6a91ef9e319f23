package graph

import (
	"math"
	"testing"
)

func build(t *testing.T, edges []Edge) *Graph {
	t.Helper()
	b := NewBuilder()
	for _, e := range edges {
		if err := b.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%+v): %v", e, err)
		}
	}
	return b.Build()
}

func TestParallelEdgesCollapseToMinimum(t *testing.T) {
	g := build(t, []Edge{
		{From: "a", To: "b", Weight: 5, Route: "slow"},
		{From: "a", To: "b", Weight: 2, Route: "fast"},
		{From: "a", To: "b", Weight: 7, Route: "slower"},
	})

	succ := g.Succ("a")
	if len(succ) != 1 {
		t.Fatalf("want 1 collapsed edge, got %d", len(succ))
	}
	if succ[0].Weight != 2 || succ[0].Route != "fast" {
		t.Errorf("collapsed edge = %+v, want the minimum-weight one", succ[0])
	}
}

func TestShortestFrom(t *testing.T) {
	g := build(t, []Edge{
		{From: "a", To: "b", Weight: 1},
		{From: "b", To: "c", Weight: 2},
		{From: "a", To: "c", Weight: 10},
	})

	dist, err := g.ShortestFrom("a")
	if err != nil {
		t.Fatal(err)
	}
	if dist["a"] != 0 {
		t.Errorf("dist(a,a) = %f, want 0", dist["a"])
	}
	if dist["c"] != 3 {
		t.Errorf("dist(a,c) = %f, want 3 (via b)", dist["c"])
	}
}

func TestUnreachableIsInfinity(t *testing.T) {
	b := NewBuilder()
	b.AddNode(Node{ID: "island"})
	if err := b.AddEdge(Edge{From: "a", To: "b", Weight: 1}); err != nil {
		t.Fatal(err)
	}
	g := b.Build()

	all := g.AllPairs()
	if !math.IsInf(all["a"]["island"], 1) {
		t.Errorf("dist(a,island) = %f, want +Inf", all["a"]["island"])
	}
	if !math.IsInf(all["b"]["a"], 1) {
		t.Errorf("directed edge must not imply the reverse: dist(b,a) = %f", all["b"]["a"])
	}
	for id, row := range all {
		if row[id] != 0 {
			t.Errorf("dist(%s,%s) = %f, want 0", id, id, row[id])
		}
	}
}

func TestBuilderRejectsBadEdges(t *testing.T) {
	b := NewBuilder()
	if err := b.AddEdge(Edge{From: "", To: "b", Weight: 1}); err == nil {
		t.Error("empty endpoint must be rejected")
	}
	if err := b.AddEdge(Edge{From: "a", To: "b", Weight: -1}); err == nil {
		t.Error("negative weight must be rejected")
	}
}

func TestShortestFromUnknownNode(t *testing.T) {
	g := build(t, []Edge{{From: "a", To: "b", Weight: 1}})
	if _, err := g.ShortestFrom("nope"); err == nil {
		t.Error("unknown source must error")
	}
}
