package detect

import (
	"fmt"
	"sort"

	"github.com/reliefmap/relief/internal/graph"
	"github.com/reliefmap/relief/internal/model"
)

// minimumSignal is the signal strength below which a graph is classified
// sparse regardless of its peaks.
const minimumSignal = 0.2

// ClassifyShape assigns exactly one primary pattern and zero or more
// secondary patterns. The payload is built only for the assigned primary;
// the transfer question is derived from the primary and its payload.
func ClassifyShape(g *graph.Graph, topo *graph.Topology, enriched []model.EnrichedClaim, tiers *Tiers, th model.ThresholdConfig) model.ProblemStructure {
	if len(enriched) == 0 {
		return model.ProblemStructure{
			Primary:  model.PrimarySparse,
			Evidence: []string{"No claims to classify"},
			Data:     model.SparseShapeData{},
		}
	}

	peaks := tiers.Peaks
	census := peakEdgeCensus(g, peaks)

	shape := model.ProblemStructure{SignalStrength: tiers.SignalStrength}

	switch {
	case len(peaks) == 0 || tiers.SignalStrength < minimumSignal:
		shape.Primary = model.PrimarySparse
		shape.Confidence = clamp01(0.2 + 0.3*tiers.SignalStrength)
		shape.Evidence = sparseEvidence(g, enriched, peaks, tiers)
		shape.Data = model.SparseShapeData{
			ClaimCount: len(enriched),
			EdgeCount:  g.EdgeCount(),
			PeakCount:  len(peaks),
		}

	case census.total > 0:
		kind, agreement := census.dominant()
		shape.Confidence = clamp01(0.25 + 0.55*tiers.SignalStrength + 0.2*agreement)
		switch kind {
		case model.KindTradeoff:
			shape.Primary = model.PrimaryConstrained
			shape.Evidence = append(shape.Evidence,
				fmt.Sprintf("%d of %d peak relationships are tradeoffs", census.tradeoff, census.total))
			shape.Data = constrainedPayload(g, enriched, tiers, th)
		case model.KindConflicts:
			shape.Primary = model.PrimaryForked
			shape.Evidence = append(shape.Evidence,
				fmt.Sprintf("%d of %d peak relationships are direct conflicts", census.conflicts, census.total))
			shape.Data = forkedPayload(g, enriched, peaks)
		default:
			shape.Primary = model.PrimaryConvergent
			shape.Evidence = append(shape.Evidence,
				fmt.Sprintf("%d of %d peak relationships are supportive", census.supportive, census.total))
			shape.Data = model.ConvergentShapeData{
				PeakIDs:      claimIDs(g, peaks),
				SupportLinks: census.supportive,
			}
		}

	case len(peaks) >= 2 && peakComponentCount(topo, peaks) >= 2:
		shape.Primary = model.PrimaryParallel
		shape.Confidence = clamp01(0.25 + 0.55*tiers.SignalStrength + 0.2)
		shape.Evidence = append(shape.Evidence,
			fmt.Sprintf("%d peaks sit on %d independent components with no connecting relationships",
				len(peaks), peakComponentCount(topo, peaks)))
		shape.Data = parallelPayload(g, topo, peaks)

	default:
		// One peak, or peaks sharing a component without direct edges:
		// the landscape still converges on a dominant position.
		shape.Primary = model.PrimaryConvergent
		shape.Confidence = clamp01(0.25 + 0.55*tiers.SignalStrength + 0.1)
		shape.Evidence = append(shape.Evidence,
			fmt.Sprintf("%d peak(s) with no contradicting relationships", len(peaks)))
		shape.Data = model.ConvergentShapeData{PeakIDs: claimIDs(g, peaks)}
	}

	shape.Evidence = append(shape.Evidence, signalEvidence(g, enriched, tiers)...)
	shape.Patterns = detectSecondary(g, topo, enriched, tiers, th)
	shape.TransferQuestion = transferQuestion(shape.Primary, shape.Data)
	return shape
}

// peakEdgeCensus counts edges whose endpoints are both peaks, by kind.
type censusResult struct {
	supportive int
	conflicts  int
	tradeoff   int
	total      int
}

func peakEdgeCensus(g *graph.Graph, peaks []int) censusResult {
	isPeak := make(map[string]bool, len(peaks))
	for _, p := range peaks {
		isPeak[g.Claim(p).ID] = true
	}

	var c censusResult
	for _, e := range g.Edges() {
		if !isPeak[e.From] || !isPeak[e.To] || e.From == e.To {
			continue
		}
		c.total++
		switch e.Kind {
		case model.KindTradeoff:
			c.tradeoff++
		case model.KindConflicts:
			c.conflicts++
		default:
			c.supportive++
		}
	}
	return c
}

// dominant picks the most frequent kind among peak edges and reports how
// much of the census agrees with it. Ties break tradeoff, then conflicts,
// then supportive: tension between peaks outweighs agreement.
func (c censusResult) dominant() (model.EdgeKind, float64) {
	kind := model.KindTradeoff
	best := c.tradeoff
	if c.conflicts > best {
		kind, best = model.KindConflicts, c.conflicts
	}
	if c.supportive > best {
		kind, best = model.KindSupports, c.supportive
	}
	if c.total == 0 {
		return kind, 0
	}
	return kind, float64(best) / float64(c.total)
}

func peakComponentCount(topo *graph.Topology, peaks []int) int {
	seen := make(map[int]bool)
	for _, p := range peaks {
		seen[topo.Component[p]] = true
	}
	return len(seen)
}

func sparseEvidence(g *graph.Graph, enriched []model.EnrichedClaim, peaks []int, tiers *Tiers) []string {
	var evidence []string
	if len(peaks) == 0 {
		evidence = append(evidence, "No claim rises above the peak support threshold")
	}
	if tiers.SignalStrength < minimumSignal {
		evidence = append(evidence, fmt.Sprintf(
			"Only %d relationships mapped against %d claims: insufficient signal",
			g.EdgeCount(), len(enriched)))
	}
	return evidence
}

func signalEvidence(g *graph.Graph, enriched []model.EnrichedClaim, tiers *Tiers) []string {
	return []string{
		fmt.Sprintf("Signal strength %.2f from %d claims, %d relationships, %d sources",
			tiers.SignalStrength, len(enriched), g.EdgeCount(), uniqueSources(enriched)),
	}
}

func constrainedPayload(g *graph.Graph, enriched []model.EnrichedClaim, tiers *Tiers, th model.ThresholdConfig) model.TradeoffShapeData {
	pairs := tradeoffs(g, enriched, th)
	data := model.TradeoffShapeData{Tradeoffs: pairs}
	for _, p := range pairs {
		if p.Dominates == "" {
			continue
		}
		dominated := p.ClaimA
		if p.Dominates == p.ClaimA {
			dominated = p.ClaimB
		}
		data.DominatedOptions = append(data.DominatedOptions, dominated)
	}
	for _, idx := range tiers.Floor {
		data.Floor = append(data.Floor, g.Claim(idx).ID)
	}
	return data
}

func forkedPayload(g *graph.Graph, enriched []model.EnrichedClaim, peaks []int) model.ForkedShapeData {
	isPeak := make(map[string]bool, len(peaks))
	for _, p := range peaks {
		isPeak[g.Claim(p).ID] = true
	}
	data := model.ForkedShapeData{}
	branchSeen := make(map[string]bool)
	for _, pair := range conflictPairs(g, enriched) {
		if !isPeak[pair.ClaimA] || !isPeak[pair.ClaimB] {
			continue
		}
		data.Conflicts = append(data.Conflicts, pair)
		for _, id := range []string{pair.ClaimA, pair.ClaimB} {
			if !branchSeen[id] {
				branchSeen[id] = true
				data.Branches = append(data.Branches, id)
			}
		}
	}
	return data
}

func parallelPayload(g *graph.Graph, topo *graph.Topology, peaks []int) model.ParallelShapeData {
	byComponent := make(map[int][]string)
	var order []int
	for _, p := range peaks {
		comp := topo.Component[p]
		if _, ok := byComponent[comp]; !ok {
			order = append(order, comp)
		}
		byComponent[comp] = append(byComponent[comp], g.Claim(p).ID)
	}
	sort.Ints(order)
	data := model.ParallelShapeData{}
	for _, comp := range order {
		data.ComponentPeaks = append(data.ComponentPeaks, byComponent[comp])
	}
	return data
}

func claimIDs(g *graph.Graph, idxs []int) []string {
	ids := make([]string, len(idxs))
	for i, idx := range idxs {
		ids[i] = g.Claim(idx).ID
	}
	return ids
}

// transferQuestion derives the single open question a downstream reader
// should resolve, from the primary pattern and its payload.
func transferQuestion(primary model.PrimaryPattern, data model.ShapeData) string {
	switch primary {
	case model.PrimaryConstrained:
		return "What are you optimizing for? The structure cannot maximize both."
	case model.PrimaryForked:
		return "Which branch survives your hardest constraint?"
	case model.PrimaryConvergent:
		return "What new evidence would have to appear to overturn the consensus?"
	case model.PrimaryParallel:
		return "Which independent thread actually answers the question you asked?"
	case model.PrimarySparse:
		if sparse, ok := data.(model.SparseShapeData); ok && sparse.ClaimCount > 0 {
			return "What additional claims or relationships would give this question enough structure to classify?"
		}
	}
	return ""
}
