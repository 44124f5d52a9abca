package model

// InversionReason distinguishes why a claim carries more structural weight
// than its support justifies.
type InversionReason string

const (
	ReasonSingularFoundation InversionReason = "singular_foundation"
	ReasonHighConnectivity   InversionReason = "high_connectivity_low_support"
)

// LeverageInversion flags a claim whose leverage outruns its support.
type LeverageInversion struct {
	ClaimID        string          `json:"claim_id"`
	Reason         InversionReason `json:"reason"`
	AffectedClaims []string        `json:"affected_claims"`
}

// CascadeRisk is the transitive closure of claims that fall if the source
// claim falls.
type CascadeRisk struct {
	SourceID        string   `json:"source_id"`
	DependentIDs    []string `json:"dependent_ids"`
	DependentLabels []string `json:"dependent_labels"`
	Depth           int      `json:"depth"` // longest reachable chain
}

// ConflictDynamics classifies the support balance of a conflict pair.
type ConflictDynamics string

const (
	DynamicsBalanced   ConflictDynamics = "balanced"
	DynamicsAsymmetric ConflictDynamics = "asymmetric"
)

// ConflictPair is both endpoints of a conflicts edge.
type ConflictPair struct {
	ClaimA          string           `json:"claim_a"`
	ClaimB          string           `json:"claim_b"`
	IsBothConsensus bool             `json:"is_both_consensus"` // both endpoints above the high-support percentile
	Dynamics        ConflictDynamics `json:"dynamics"`
}

// TradeoffSymmetry classifies the support balance of a tradeoff pair.
type TradeoffSymmetry string

const (
	SymmetryBothHigh   TradeoffSymmetry = "both_high"
	SymmetryBothLow    TradeoffSymmetry = "both_low"
	SymmetryAsymmetric TradeoffSymmetry = "asymmetric"
)

// TradeoffPair is both endpoints of a tradeoff edge. Dominates is set when
// one option strictly subsumes the other's support.
type TradeoffPair struct {
	ClaimA    string           `json:"claim_a"`
	ClaimB    string           `json:"claim_b"`
	Symmetry  TradeoffSymmetry `json:"symmetry"`
	Dominates string           `json:"dominates,omitempty"` // id of the dominating claim, if any
}

// ConvergencePoint is a claim that disjoint source subsets independently
// connect to via supports edges.
type ConvergencePoint struct {
	ClaimID    string   `json:"claim_id"`
	SourceSets int      `json:"source_sets"` // number of pairwise-disjoint supporter groups
	FeederIDs  []string `json:"feeder_ids"`
}

// PatternBundle is everything the pattern detector finds.
type PatternBundle struct {
	LeverageInversions []LeverageInversion `json:"leverage_inversions"`
	CascadeRisks       []CascadeRisk       `json:"cascade_risks"`
	ConflictPairs      []ConflictPair      `json:"conflict_pairs"`
	Tradeoffs          []TradeoffPair      `json:"tradeoffs"`
	ConvergencePoints  []ConvergencePoint  `json:"convergence_points"`
	IsolatedClaims     []string            `json:"isolated_claims"`
	Ghosts             []string            `json:"ghosts"` // passed through unchanged
}
