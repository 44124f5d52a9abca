// Package graph normalizes raw claim and edge records into an index-based
// adjacency representation and computes the structural topology downstream
// components read: connected components, prerequisite depth, hub detection,
// articulation points, and cohesion ratios.
package graph

import (
	"fmt"

	"github.com/reliefmap/relief/internal/model"
)

// Graph is the internal adjacency representation. Claims live in an arena
// addressed by integer index; adjacency lists are split by edge kind for
// O(1) neighbor lookup. A Graph is immutable once built.
type Graph struct {
	claims []model.Claim
	index  map[string]int

	out map[model.EdgeKind][][]int
	in  map[model.EdgeKind][][]int

	edges []model.Edge

	// sourceWeights counts raw supporter mentions per claim so the enricher
	// can measure how concentrated a claim's support is in one source.
	sourceWeights []map[string]int

	// notes records data-quality signals: duplicate ids, unknown relationship
	// names, edges dropped for missing endpoints. Never fatal.
	notes []string
}

var edgeKinds = []model.EdgeKind{
	model.KindSupports,
	model.KindConflicts,
	model.KindTradeoff,
	model.KindPrerequisite,
}

// Build normalizes raw records into a Graph. Guarantees: the claim set has
// no duplicate ids, every edge references two existing claims, and every
// edge carries one of the four canonical kinds.
func Build(in *model.Input) *Graph {
	g := &Graph{
		index: make(map[string]int, len(in.Claims)),
		out:   make(map[model.EdgeKind][][]int, len(edgeKinds)),
		in:    make(map[model.EdgeKind][][]int, len(edgeKinds)),
	}

	for _, raw := range in.Claims {
		if _, dup := g.index[raw.ID]; dup {
			g.note("duplicate claim id %q dropped", raw.ID)
			continue
		}

		supporters, weights := normalizeSupporters(raw.Supporters)
		count := raw.SupportCount
		if count <= 0 {
			count = len(supporters)
			if count < 1 {
				count = 1
			}
		}

		g.index[raw.ID] = len(g.claims)
		g.claims = append(g.claims, model.Claim{
			ID:           raw.ID,
			Label:        raw.Label,
			Text:         raw.Text,
			Supporters:   supporters,
			SupportCount: count,
			Category:     raw.Category,
			Role:         raw.Role,
		})
		g.sourceWeights = append(g.sourceWeights, weights)
	}

	n := len(g.claims)
	for _, kind := range edgeKinds {
		g.out[kind] = make([][]int, n)
		g.in[kind] = make([][]int, n)
	}

	for _, raw := range in.Edges {
		from, okFrom := g.index[raw.From]
		to, okTo := g.index[raw.To]
		if !okFrom || !okTo {
			g.note("edge %s->%s dropped: unknown claim reference", raw.From, raw.To)
			continue
		}
		kind, known := model.CanonicalKind(raw.Kind)
		if !known {
			g.note("edge %s->%s: unrecognized kind %q treated as supports", raw.From, raw.To, raw.Kind)
		}
		g.out[kind][from] = append(g.out[kind][from], to)
		g.in[kind][to] = append(g.in[kind][to], from)
		g.edges = append(g.edges, model.Edge{From: raw.From, To: raw.To, Kind: kind})
	}

	return g
}

// normalizeSupporters dedupes supporter identifiers preserving first-seen
// order while keeping per-source mention counts.
func normalizeSupporters(raw []string) ([]string, map[string]int) {
	weights := make(map[string]int, len(raw))
	var supporters []string
	for _, s := range raw {
		if s == "" {
			continue
		}
		if weights[s] == 0 {
			supporters = append(supporters, s)
		}
		weights[s]++
	}
	return supporters, weights
}

func (g *Graph) note(format string, args ...any) {
	g.notes = append(g.notes, fmt.Sprintf(format, args...))
}

// ClaimCount returns the number of claims in the arena.
func (g *Graph) ClaimCount() int { return len(g.claims) }

// EdgeCount returns the number of retained edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Claims returns the claim arena in first-seen order. Callers must not
// mutate the returned slice.
func (g *Graph) Claims() []model.Claim { return g.claims }

// Claim returns the claim at an arena index.
func (g *Graph) Claim(idx int) model.Claim { return g.claims[idx] }

// Index resolves a claim id to its arena index.
func (g *Graph) Index(id string) (int, bool) {
	idx, ok := g.index[id]
	return idx, ok
}

// Edges returns the retained, normalized edges in input order.
func (g *Graph) Edges() []model.Edge { return g.edges }

// Out returns the arena indexes reachable from idx via outgoing edges of the
// given kind.
func (g *Graph) Out(kind model.EdgeKind, idx int) []int { return g.out[kind][idx] }

// In returns the arena indexes with edges of the given kind into idx.
func (g *Graph) In(kind model.EdgeKind, idx int) []int { return g.in[kind][idx] }

// OutDegree counts outgoing edges of the given kinds from idx.
func (g *Graph) OutDegree(idx int, kinds ...model.EdgeKind) int {
	total := 0
	for _, kind := range kinds {
		total += len(g.out[kind][idx])
	}
	return total
}

// Degree counts all edges touching idx, any kind, either direction.
func (g *Graph) Degree(idx int) int {
	total := 0
	for _, kind := range edgeKinds {
		total += len(g.out[kind][idx]) + len(g.in[kind][idx])
	}
	return total
}

// SourceWeights returns the raw supporter mention counts for a claim.
func (g *Graph) SourceWeights(idx int) map[string]int { return g.sourceWeights[idx] }

// Notes returns the data-quality notes collected while building.
func (g *Graph) Notes() []string { return g.notes }
