package graph

import (
	"testing"

	"github.com/reliefmap/relief/internal/model"
)

func buildGraph(t *testing.T, ids []string, edges []model.RawEdge) *Graph {
	t.Helper()
	claims := make([]model.RawClaim, len(ids))
	for i, id := range ids {
		claims[i] = model.RawClaim{ID: id, Label: id}
	}
	return Build(&model.Input{Claims: claims, Edges: edges})
}

func TestDepth_LinearPrerequisiteChain(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, []model.RawEdge{
		{From: "a", To: "b", Kind: "prerequisite"},
		{From: "b", To: "c", Kind: "prerequisite"},
	})
	topo := AnalyzeTopology(g)

	wantDepth := map[string]int{"a": 0, "b": 1, "c": 2}
	for id, want := range wantDepth {
		idx, _ := g.Index(id)
		if topo.Depth[idx] != want {
			t.Errorf("depth(%s) = %d, want %d", id, topo.Depth[idx], want)
		}
	}

	chain := topo.Analysis.LongestChain
	if len(chain) != 3 || chain[0] != "a" || chain[2] != "c" {
		t.Errorf("longest chain = %v, want [a b c]", chain)
	}
	if topo.Analysis.ChainCount != 1 {
		t.Errorf("chain count = %d, want 1", topo.Analysis.ChainCount)
	}
}

func TestDepth_CycleTerminatesWithFiniteDepths(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, []model.RawEdge{
		{From: "a", To: "b", Kind: "prerequisite"},
		{From: "b", To: "c", Kind: "prerequisite"},
		{From: "c", To: "a", Kind: "prerequisite"},
	})
	topo := AnalyzeTopology(g)

	for i, d := range topo.Depth {
		if d < 1 || d > 3 {
			t.Errorf("depth of %s = %d, want finite value in [1,3]", g.Claim(i).ID, d)
		}
	}
}

func TestDepth_SelfLoopIgnored(t *testing.T) {
	g := buildGraph(t, []string{"a"}, []model.RawEdge{
		{From: "a", To: "a", Kind: "prerequisite"},
	})
	topo := AnalyzeTopology(g)

	if topo.Depth[0] != 0 {
		t.Errorf("self-loop depth = %d, want 0", topo.Depth[0])
	}
	if len(topo.Analysis.LongestChain) != 0 {
		t.Errorf("longest chain = %v, want empty", topo.Analysis.LongestChain)
	}
}

func TestComponents_DisjointGroups(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c", "d", "e"}, []model.RawEdge{
		{From: "a", To: "b", Kind: "supports"},
		{From: "c", To: "d", Kind: "conflicts"},
	})
	topo := AnalyzeTopology(g)

	if got := topo.Analysis.ComponentCount; got != 3 {
		t.Fatalf("component count = %d, want 3", got)
	}
	sizes := map[int]int{}
	for _, s := range topo.ComponentSizes {
		sizes[s]++
	}
	if sizes[2] != 2 || sizes[1] != 1 {
		t.Errorf("component sizes = %v, want two of size 2 and one of size 1", topo.ComponentSizes)
	}
}

func TestHub_DominanceOverRunnerUp(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c", "d"}, []model.RawEdge{
		{From: "a", To: "b", Kind: "supports"},
		{From: "a", To: "c", Kind: "supports"},
		{From: "d", To: "a", Kind: "prerequisite"},
	})
	topo := AnalyzeTopology(g)

	if topo.Analysis.HubClaim != "a" {
		t.Errorf("hub = %q, want a", topo.Analysis.HubClaim)
	}
	if topo.Analysis.HubDominance != 2.0 {
		t.Errorf("hub dominance = %v, want 2.0", topo.Analysis.HubDominance)
	}
}

func TestHub_NoEdgesYieldsNoHub(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, nil)
	topo := AnalyzeTopology(g)

	if topo.Analysis.HubClaim != "" || topo.Analysis.HubDominance != 0 {
		t.Errorf("hub = (%q, %v), want none", topo.Analysis.HubClaim, topo.Analysis.HubDominance)
	}
}

// Removing an articulation point must increase the number of connected
// components among the remaining claims.
func TestArticulationPoints_RemovalDisconnects(t *testing.T) {
	edges := []model.RawEdge{
		{From: "a", To: "b", Kind: "supports"},
		{From: "b", To: "c", Kind: "conflicts"},
		{From: "c", To: "d", Kind: "tradeoff"},
	}
	g := buildGraph(t, []string{"a", "b", "c", "d"}, edges)
	topo := AnalyzeTopology(g)

	points := topo.Analysis.ArticulationPoints
	if len(points) != 2 {
		t.Fatalf("articulation points = %v, want [b c]", points)
	}

	for _, cut := range points {
		var ids []string
		for _, c := range g.Claims() {
			if c.ID != cut {
				ids = append(ids, c.ID)
			}
		}
		var kept []model.RawEdge
		for _, e := range edges {
			if e.From != cut && e.To != cut {
				kept = append(kept, e)
			}
		}
		reduced := AnalyzeTopology(buildGraph(t, ids, kept))
		if reduced.Analysis.ComponentCount <= topo.Analysis.ComponentCount {
			t.Errorf("removing %s: components %d -> %d, expected increase",
				cut, topo.Analysis.ComponentCount, reduced.Analysis.ComponentCount)
		}
	}
}

func TestDownstream_TransitiveClosure(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c", "d"}, []model.RawEdge{
		{From: "a", To: "b", Kind: "supports"},
		{From: "b", To: "c", Kind: "prerequisite"},
		{From: "d", To: "a", Kind: "conflicts"}, // conflicts must not count
	})
	topo := AnalyzeTopology(g)

	a, _ := g.Index("a")
	if len(topo.Downstream[a]) != 2 {
		t.Errorf("downstream(a) = %v, want b and c", topo.Downstream[a])
	}
	if topo.Height[a] != 2 {
		t.Errorf("height(a) = %d, want 2", topo.Height[a])
	}
	d, _ := g.Index("d")
	if len(topo.Downstream[d]) != 0 {
		t.Errorf("downstream(d) = %v, want empty", topo.Downstream[d])
	}
}

func TestCohesion_SupportiveDensity(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c", "d", "e"}, []model.RawEdge{
		{From: "a", To: "b", Kind: "supports"},
		{From: "c", To: "d", Kind: "conflicts"},
	})
	topo := AnalyzeTopology(g)

	// Pair {a,b} is fully supportive, pair {c,d} has none; the singleton is
	// excluded from the average.
	if got := topo.Analysis.ClusterCohesion; got != 0.5 {
		t.Errorf("cluster cohesion = %v, want 0.5", got)
	}
	if got := topo.Analysis.LocalCoherence; got != 0.1 {
		t.Errorf("local coherence = %v, want 0.1", got)
	}
}
