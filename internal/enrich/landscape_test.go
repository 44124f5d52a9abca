package enrich

import (
	"math"
	"testing"

	"github.com/reliefmap/relief/internal/model"
)

func TestLandscape_CountsDistinctSources(t *testing.T) {
	g, _ := analyze(t, &model.Input{
		Claims: []model.RawClaim{
			{ID: "a", Supporters: []string{"m1", "m2"}},
			{ID: "b", Supporters: []string{"m2", "m3"}},
			{ID: "c"},
		},
		Edges: []model.RawEdge{{From: "a", To: "b", Kind: "supports"}},
	})
	m := Landscape(g)

	if m.ClaimCount != 3 || m.ModelCount != 3 || m.EdgeCount != 1 {
		t.Errorf("counts = claims %d models %d edges %d, want 3/3/1",
			m.ClaimCount, m.ModelCount, m.EdgeCount)
	}
}

func TestLandscape_DominantFieldsIgnoreEmpty(t *testing.T) {
	g, _ := analyze(t, &model.Input{
		Claims: []model.RawClaim{
			{ID: "a", Category: "finding", Role: "anchor"},
			{ID: "b", Category: "finding"},
			{ID: "c", Category: "hypothesis", Role: "anchor"},
			{ID: "d"},
		},
	})
	m := Landscape(g)

	if m.DominantCategory != "finding" {
		t.Errorf("dominant category = %q, want finding", m.DominantCategory)
	}
	if m.DominantRole != "anchor" {
		t.Errorf("dominant role = %q, want anchor", m.DominantRole)
	}
}

func TestLandscape_ConvergenceRatio(t *testing.T) {
	// Supporter set {m1,m2} occurs twice and is the plurality; c overlaps
	// nothing in it, d has no supporters.
	g, _ := analyze(t, &model.Input{
		Claims: []model.RawClaim{
			{ID: "a", Supporters: []string{"m1", "m2"}},
			{ID: "b", Supporters: []string{"m2", "m1"}},
			{ID: "c", Supporters: []string{"m3"}},
			{ID: "d"},
		},
	})
	m := Landscape(g)

	if math.Abs(m.ConvergenceRatio-0.5) > 1e-9 {
		t.Errorf("convergence ratio = %v, want 0.5", m.ConvergenceRatio)
	}
}

func TestLandscape_EmptyInput(t *testing.T) {
	g, _ := analyze(t, &model.Input{})
	m := Landscape(g)

	if m.ClaimCount != 0 || m.ConvergenceRatio != 0 {
		t.Errorf("empty landscape = %+v, want zero values", m)
	}
}
