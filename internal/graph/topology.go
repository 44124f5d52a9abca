package graph

import (
	"github.com/reliefmap/relief/internal/model"
)

// Topology is the full topology analysis plus the per-claim intermediates
// later pipeline stages read (depths, downstream closures, components).
type Topology struct {
	Analysis model.GraphAnalysis

	Component      []int // component id per arena index
	ComponentSizes []int // size per component id

	// Depth is the prerequisite chain depth per claim: 0 with no
	// prerequisites, 1 + max depth of prerequisites otherwise. Finite on
	// cyclic input: a prerequisite still on the active traversal path
	// contributes 0 instead of recursing.
	Depth []int

	// Height is the longest downstream chain per claim over supports and
	// prerequisite edges, with the same cycle break.
	Height []int

	// Downstream holds the transitive dependents per claim reachable via
	// outgoing supports and prerequisite edges, in BFS order.
	Downstream [][]int
}

// AnalyzeTopology computes components, the longest prerequisite chain, hub
// dominance, articulation points, and cohesion ratios for a built graph.
func AnalyzeTopology(g *Graph) *Topology {
	n := g.ClaimCount()
	t := &Topology{}

	t.Component, t.ComponentSizes = components(g)
	t.Depth = cycleSafeLongest(n, func(idx int) []int {
		return withoutSelf(idx, g.In(model.KindPrerequisite, idx))
	})
	t.Height = cycleSafeLongest(n, func(idx int) []int {
		return withoutSelf(idx, append(append([]int(nil),
			g.Out(model.KindSupports, idx)...),
			g.Out(model.KindPrerequisite, idx)...))
	})
	t.Downstream = downstreamClosures(g)

	t.Analysis = model.GraphAnalysis{
		ComponentCount:     len(t.ComponentSizes),
		LongestChain:       longestChain(g, t.Depth),
		ChainCount:         chainCount(g, t.Depth),
		ClusterCohesion:    clusterCohesion(g, t.Component, t.ComponentSizes),
		LocalCoherence:     localCoherence(g),
		ArticulationPoints: articulationPoints(g),
	}
	t.Analysis.HubClaim, t.Analysis.HubDominance = hub(g)

	return t
}

// withoutSelf drops self-loop neighbors; self-loops are tolerated but
// contribute no depth.
func withoutSelf(idx int, neighbors []int) []int {
	cleaned := make([]int, 0, len(neighbors))
	for _, nb := range neighbors {
		if nb != idx {
			cleaned = append(cleaned, nb)
		}
	}
	return cleaned
}

// cycleSafeLongest computes, for every node, the longest path length over
// the neighbor relation using an explicit iterative post-order traversal.
// A neighbor still on the active path contributes 0, which guarantees
// termination and a finite result on cyclic input.
func cycleSafeLongest(n int, neighbors func(int) []int) []int {
	const (
		stateNew = iota
		stateActive
		stateDone
	)

	state := make([]int, n)
	result := make([]int, n)

	type frame struct {
		node int
		adj  []int
		next int
	}

	for start := 0; start < n; start++ {
		if state[start] != stateNew {
			continue
		}
		stack := []frame{{node: start, adj: neighbors(start)}}
		state[start] = stateActive

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next < len(f.adj) {
				nb := f.adj[f.next]
				f.next++
				if state[nb] == stateNew {
					state[nb] = stateActive
					stack = append(stack, frame{node: nb, adj: neighbors(nb)})
				}
				// stateActive: cycle, contributes 0; stateDone: already final.
				continue
			}

			best := 0
			for _, nb := range f.adj {
				if state[nb] == stateDone && result[nb]+1 > best {
					best = result[nb] + 1
				} else if state[nb] == stateActive && best < 1 {
					// A cyclic prerequisite counts as depth 0, so the node
					// itself still sits one level above it.
					best = 1
				}
			}
			result[f.node] = best
			state[f.node] = stateDone
			stack = stack[:len(stack)-1]
		}
	}
	return result
}

// components runs union-find over the undirected projection of all edges.
func components(g *Graph) ([]int, []int) {
	n := g.ClaimCount()
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	for _, e := range g.Edges() {
		from, _ := g.Index(e.From)
		to, _ := g.Index(e.To)
		union(from, to)
	}

	comp := make([]int, n)
	var sizes []int
	seen := make(map[int]int, n)
	for i := 0; i < n; i++ {
		root := find(i)
		id, ok := seen[root]
		if !ok {
			id = len(sizes)
			seen[root] = id
			sizes = append(sizes, 0)
		}
		comp[i] = id
		sizes[id]++
	}
	return comp, sizes
}

// longestChain reconstructs the deepest prerequisite chain as an ordered
// claim id sequence, foundation first. Graphs with no prerequisite edges
// yield an empty chain.
func longestChain(g *Graph, depth []int) []string {
	deepest, maxDepth := -1, 0
	for i, d := range depth {
		if d > maxDepth {
			deepest, maxDepth = i, d
		}
	}
	if deepest < 0 {
		return nil
	}

	chain := []string{g.Claim(deepest).ID}
	cur := deepest
	for depth[cur] > 0 {
		next := -1
		for _, p := range withoutSelf(cur, g.In(model.KindPrerequisite, cur)) {
			if depth[p] == depth[cur]-1 {
				next = p
				break
			}
		}
		if next < 0 {
			// Depth came from a broken cycle; the chain ends here.
			break
		}
		chain = append(chain, g.Claim(next).ID)
		cur = next
	}

	// Reverse into foundation-first order.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// chainCount counts prerequisite chain terminals: claims with at least one
// prerequisite and no prerequisite dependents of their own.
func chainCount(g *Graph, depth []int) int {
	count := 0
	for i := 0; i < g.ClaimCount(); i++ {
		if depth[i] > 0 && len(withoutSelf(i, g.Out(model.KindPrerequisite, i))) == 0 {
			count++
		}
	}
	return count
}

// hub picks the claim with the highest outgoing supports+prerequisite
// degree. Ties break by first-seen order. Dominance is the hub's out-degree
// over the runner-up's, with the denominator guarded at 1.
func hub(g *Graph) (string, float64) {
	bestIdx, bestDeg, secondDeg := -1, 0, 0
	for i := 0; i < g.ClaimCount(); i++ {
		deg := g.OutDegree(i, model.KindSupports, model.KindPrerequisite)
		if deg > bestDeg {
			secondDeg = bestDeg
			bestIdx, bestDeg = i, deg
		} else if deg > secondDeg {
			secondDeg = deg
		}
	}
	if bestIdx < 0 {
		return "", 0
	}
	if secondDeg < 1 {
		secondDeg = 1
	}
	return g.Claim(bestIdx).ID, float64(bestDeg) / float64(secondDeg)
}

// articulationPoints finds cut vertices of the undirected projection using
// iterative DFS with discovery and low-link numbers. Removing an
// articulation point disconnects its component.
func articulationPoints(g *Graph) []string {
	n := g.ClaimCount()
	adj := make([][]int, n)
	for _, e := range g.Edges() {
		from, _ := g.Index(e.From)
		to, _ := g.Index(e.To)
		if from == to {
			continue
		}
		adj[from] = append(adj[from], to)
		adj[to] = append(adj[to], from)
	}

	disc := make([]int, n)
	low := make([]int, n)
	parent := make([]int, n)
	isCut := make([]bool, n)
	for i := range disc {
		disc[i] = -1
		parent[i] = -1
	}

	timer := 0
	type frame struct {
		node int
		next int
	}

	for start := 0; start < n; start++ {
		if disc[start] != -1 {
			continue
		}
		rootChildren := 0
		stack := []frame{{node: start}}
		disc[start] = timer
		low[start] = timer
		timer++

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			u := f.node
			if f.next < len(adj[u]) {
				v := adj[u][f.next]
				f.next++
				if disc[v] == -1 {
					parent[v] = u
					if u == start {
						rootChildren++
					}
					disc[v] = timer
					low[v] = timer
					timer++
					stack = append(stack, frame{node: v})
				} else if v != parent[u] && disc[v] < low[u] {
					low[u] = disc[v]
				}
				continue
			}

			stack = stack[:len(stack)-1]
			p := parent[u]
			if p != -1 {
				if low[u] < low[p] {
					low[p] = low[u]
				}
				if p != start && low[u] >= disc[p] {
					isCut[p] = true
				}
			}
		}
		isCut[start] = rootChildren >= 2
	}

	var points []string
	for i, cut := range isCut {
		if cut {
			points = append(points, g.Claim(i).ID)
		}
	}
	return points
}

// clusterCohesion averages, over every component with at least two claims,
// the ratio of supportive edges inside the component to possible pairs.
func clusterCohesion(g *Graph, comp []int, sizes []int) float64 {
	if len(sizes) == 0 {
		return 0
	}
	supportive := make([]int, len(sizes))
	for _, e := range g.Edges() {
		if e.Kind != model.KindSupports && e.Kind != model.KindPrerequisite {
			continue
		}
		from, _ := g.Index(e.From)
		to, _ := g.Index(e.To)
		if from != to && comp[from] == comp[to] {
			supportive[comp[from]]++
		}
	}

	sum, counted := 0.0, 0
	for id, size := range sizes {
		if size < 2 {
			continue
		}
		possible := size * (size - 1) / 2
		density := float64(supportive[id]) / float64(possible)
		if density > 1 {
			density = 1
		}
		sum += density
		counted++
	}
	if counted == 0 {
		return 0
	}
	return sum / float64(counted)
}

// localCoherence is the supportive edge density over the whole graph.
func localCoherence(g *Graph) float64 {
	n := g.ClaimCount()
	if n < 2 {
		return 0
	}
	supportive := 0
	for _, e := range g.Edges() {
		if (e.Kind == model.KindSupports || e.Kind == model.KindPrerequisite) && e.From != e.To {
			supportive++
		}
	}
	density := float64(supportive) / float64(n*(n-1)/2)
	if density > 1 {
		density = 1
	}
	return density
}

// downstreamClosures computes the transitive dependents of every claim over
// outgoing supports and prerequisite edges via BFS.
func downstreamClosures(g *Graph) [][]int {
	n := g.ClaimCount()
	closures := make([][]int, n)
	for start := 0; start < n; start++ {
		visited := make([]bool, n)
		visited[start] = true
		queue := []int{start}
		var reach []int
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, kind := range []model.EdgeKind{model.KindSupports, model.KindPrerequisite} {
				for _, nb := range g.Out(kind, cur) {
					if !visited[nb] {
						visited[nb] = true
						reach = append(reach, nb)
						queue = append(queue, nb)
					}
				}
			}
		}
		closures[start] = reach
	}
	return closures
}
