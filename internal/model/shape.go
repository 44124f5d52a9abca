package model

// PrimaryPattern is the peaks-first classification of the whole graph.
// Exactly one primary is assigned per analysis run.
type PrimaryPattern string

const (
	PrimarySparse      PrimaryPattern = "sparse"      // too little structure to classify
	PrimaryConvergent  PrimaryPattern = "convergent"  // peaks mutually supporting
	PrimaryForked      PrimaryPattern = "forked"      // peaks in direct conflict
	PrimaryConstrained PrimaryPattern = "constrained" // peaks connected by tradeoffs
	PrimaryParallel    PrimaryPattern = "parallel"    // peaks on independent components
)

// Severity ranks how urgently a finding should surface.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// severityRank orders severities for sorting; lower surfaces first.
var severityRank = map[Severity]int{
	SeverityHigh:   0,
	SeverityMedium: 1,
	SeverityLow:    2,
}

// Rank returns the sort rank of a severity. Unknown severities sort last.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// SecondaryKind tags a secondary pattern variant.
type SecondaryKind string

const (
	SecondaryDissent    SecondaryKind = "dissent"    // minority voices with outsized leverage
	SecondaryKeystone   SecondaryKind = "keystone"   // single claim most others depend on
	SecondaryChain      SecondaryKind = "chain"      // long prerequisite sequence
	SecondaryFragile    SecondaryKind = "fragile"    // peak on a weak foundation
	SecondaryChallenged SecondaryKind = "challenged" // low-support claim attacking a peak
	SecondaryOrphaned   SecondaryKind = "orphaned"   // high support, no connections
)

// SecondaryData is a closed union over the six secondary pattern payloads.
// The insight generator switches exhaustively over its variants.
type SecondaryData interface {
	secondaryData()
}

// DissentVoice is one minority claim ranked by leverage.
type DissentVoice struct {
	ClaimID      string  `json:"claim_id"`
	Label        string  `json:"label"`
	Leverage     float64 `json:"leverage"`
	SupportRatio float64 `json:"support_ratio"`
}

// DissentData carries minority voices ranked by leverage, strongest first.
type DissentData struct {
	Voices []DissentVoice `json:"voices"`
}

// KeystoneData identifies the claim most of the graph rests on.
type KeystoneData struct {
	ClaimID       string   `json:"claim_id"`
	Label         string   `json:"label"`
	DependentIDs  []string `json:"dependent_ids"`
	KeystoneScore float64  `json:"keystone_score"`
}

// ChainData is an ordered prerequisite sequence with its weak links.
type ChainData struct {
	Sequence  []string `json:"sequence"`
	WeakLinks []string `json:"weak_links"` // members at or below the floor tier
}

// FragilePair binds a peak to a weakly supported claim it rests on.
type FragilePair struct {
	PeakID          string  `json:"peak_id"`
	FoundationID    string  `json:"foundation_id"`
	FoundationRatio float64 `json:"foundation_ratio"`
}

// FragileData carries peak/weak-foundation pairs.
type FragileData struct {
	Pairs []FragilePair `json:"pairs"`
}

// Challenge is a low-support claim directly attacking a peak.
type Challenge struct {
	ChallengerID    string  `json:"challenger_id"`
	PeakID          string  `json:"peak_id"`
	ChallengerRatio float64 `json:"challenger_ratio"`
	PeakRatio       float64 `json:"peak_ratio"`
}

// ChallengedData carries challenges against peaks.
type ChallengedData struct {
	Challenges []Challenge `json:"challenges"`
}

// OrphanedData lists well-supported claims with no structural connections.
type OrphanedData struct {
	ClaimIDs []string `json:"claim_ids"`
}

func (DissentData) secondaryData()    {}
func (KeystoneData) secondaryData()   {}
func (ChainData) secondaryData()      {}
func (FragileData) secondaryData()    {}
func (ChallengedData) secondaryData() {}
func (OrphanedData) secondaryData()   {}

// SecondaryPattern is one detected secondary pattern with its severity and
// variant payload.
type SecondaryPattern struct {
	Kind     SecondaryKind `json:"kind"`
	Severity Severity      `json:"severity"`
	Data     SecondaryData `json:"data"`
}

// ShapeData is a closed union over primary-pattern payloads. Only the payload
// for the assigned primary is built.
type ShapeData interface {
	shapeData()
}

// SparseShapeData explains why the graph could not be classified further.
type SparseShapeData struct {
	ClaimCount int `json:"claim_count"`
	EdgeCount  int `json:"edge_count"`
	PeakCount  int `json:"peak_count"`
}

// ConvergentShapeData carries the mutually supporting peaks.
type ConvergentShapeData struct {
	PeakIDs      []string `json:"peak_ids"`
	SupportLinks int      `json:"support_links"` // supports edges among peaks
}

// ForkedShapeData carries the conflicting branches.
type ForkedShapeData struct {
	Branches  []string       `json:"branches"` // peak ids in conflict
	Conflicts []ConflictPair `json:"conflicts"`
}

// TradeoffShapeData carries the tradeoff structure of a constrained shape.
type TradeoffShapeData struct {
	Tradeoffs        []TradeoffPair `json:"tradeoffs"`
	DominatedOptions []string       `json:"dominated_options"`
	Floor            []string       `json:"floor"` // claims at the floor tier
}

// ParallelShapeData carries the independent peak components.
type ParallelShapeData struct {
	ComponentPeaks [][]string `json:"component_peaks"` // peak ids grouped by component
}

func (SparseShapeData) shapeData()     {}
func (ConvergentShapeData) shapeData() {}
func (ForkedShapeData) shapeData()     {}
func (TradeoffShapeData) shapeData()   {}
func (ParallelShapeData) shapeData()   {}

// ProblemStructure is the overall classification of the claim graph. It is
// produced once per analysis run and never mutated afterward.
type ProblemStructure struct {
	Primary          PrimaryPattern     `json:"primary"`
	Confidence       float64            `json:"confidence"` // in [0,1]
	SignalStrength   float64            `json:"signal_strength"`
	Patterns         []SecondaryPattern `json:"patterns"`
	Evidence         []string           `json:"evidence"` // human-readable reasons
	Data             ShapeData          `json:"data,omitempty"`
	TransferQuestion string             `json:"transfer_question,omitempty"`
}
