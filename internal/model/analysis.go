package model

// GraphAnalysis summarizes the topology of the claim graph.
type GraphAnalysis struct {
	ComponentCount     int      `json:"component_count"`
	LongestChain       []string `json:"longest_chain"` // claim ids, prerequisite order
	ChainCount         int      `json:"chain_count"`   // prerequisite chain terminals
	HubClaim           string   `json:"hub_claim,omitempty"`
	HubDominance       float64  `json:"hub_dominance"`
	ClusterCohesion    float64  `json:"cluster_cohesion"`
	LocalCoherence     float64  `json:"local_coherence"`
	ArticulationPoints []string `json:"articulation_points"`
}

// LandscapeMetrics are pure aggregates over the claim set.
type LandscapeMetrics struct {
	ClaimCount       int     `json:"claim_count"`
	ModelCount       int     `json:"model_count"` // distinct supporting sources
	EdgeCount        int     `json:"edge_count"`
	DominantCategory string  `json:"dominant_category,omitempty"`
	DominantRole     string  `json:"dominant_role,omitempty"`
	ConvergenceRatio float64 `json:"convergence_ratio"`
}

// CoreRatios are the five headline ratios summarizing the graph's shape.
// Every field lies in [0,1].
type CoreRatios struct {
	Concentration float64 `json:"concentration"` // share of support held by the top claim
	Alignment     float64 `json:"alignment"`     // supportive share of edges among top claims
	Tension       float64 `json:"tension"`       // conflicts+tradeoff share of all edges
	Fragmentation float64 `json:"fragmentation"` // 1 - largest component / total
	Depth         float64 `json:"depth"`         // longest chain relative to claim count
}

// GhostAnalysis accounts for externally supplied topics no claim addresses.
type GhostAnalysis struct {
	Count  int      `json:"count"`
	Topics []string `json:"topics,omitempty"`
}

// StructuralAnalysis is the complete pipeline output.
type StructuralAnalysis struct {
	Graph              GraphAnalysis    `json:"graph"`
	Landscape          LandscapeMetrics `json:"landscape"`
	ClaimsWithLeverage []EnrichedClaim  `json:"claims_with_leverage"`
	Ratios             CoreRatios       `json:"ratios"`
	Patterns           PatternBundle    `json:"patterns"`
	GhostAnalysis      GhostAnalysis    `json:"ghost_analysis"`
	Shape              ProblemStructure `json:"shape"`
	Insights           []InsightData    `json:"insights"`

	// Fingerprint identifies the input that produced this result so a
	// caller holding a newer target can discard stale arrivals.
	Fingerprint string `json:"fingerprint,omitempty"`
}
