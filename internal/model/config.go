package model

import "time"

// Config carries every tunable of the analysis pipeline. It is threaded
// explicitly into the pipeline call; there is no ambient global state.
type Config struct {
	Thresholds  ThresholdConfig   `yaml:"thresholds"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// ThresholdConfig holds the classification cutoffs. Percentiles are
// fractions in [0,1] applied to the current claim population.
type ThresholdConfig struct {
	PeakRatio float64 `yaml:"peak_ratio"` // supportRatio above this is a peak
	HillRatio float64 `yaml:"hill_ratio"` // supportRatio above this (and <= peak) is a hill

	HighSupportPercentile float64 `yaml:"high_support_percentile"` // top slice by supportRatio
	LowSupportPercentile  float64 `yaml:"low_support_percentile"`  // bottom slice by supportRatio
	LeveragePercentile    float64 `yaml:"leverage_percentile"`     // top slice by leverage
	KeystonePercentile    float64 `yaml:"keystone_percentile"`     // top slice by keystoneScore
	EvidenceGapPercentile float64 `yaml:"evidence_gap_percentile"` // top slice by evidenceGapScore
	OutlierPercentile     float64 `yaml:"outlier_percentile"`      // top slice by supportSkew
	OutlierMinSkew        float64 `yaml:"outlier_min_skew"`        // absolute floor for outlier skew

	CascadeMinFanout int `yaml:"cascade_min_fanout"` // dependents to qualify as a cascade risk
	CascadeMinDepth  int `yaml:"cascade_min_depth"`  // chain depth to qualify as a cascade risk
	ChainMinLength   int `yaml:"chain_min_length"`   // chain length worth reporting
}

// CacheConfig controls result memoization.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// ConcurrencyConfig controls batch processing. The pipeline itself is
// single-threaded; workers only parallelize across independent inputs.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		Thresholds: ThresholdConfig{
			PeakRatio:             0.5,
			HillRatio:             0.25,
			HighSupportPercentile: 0.30,
			LowSupportPercentile:  0.30,
			LeveragePercentile:    0.25,
			KeystonePercentile:    0.20,
			EvidenceGapPercentile: 0.25,
			OutlierPercentile:     0.20,
			OutlierMinSkew:        0.5,
			CascadeMinFanout:      3,
			CascadeMinDepth:       3,
			ChainMinLength:        3,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             15 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
