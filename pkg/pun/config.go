package pun

import "github.com/bastiangx/wordplay/pkg/phonetic"

// Config holds the thresholds and scoring weights of both builders.
type Config struct {
	MinOverlapVowelPhones     int
	MinOverlapConsonantPhones int
	// MinOverlapPhones applies to rhymes only.
	MinOverlapPhones    int
	MinNonOverlapPhones int
	MaxOverlapDistance  int

	DistanceCoefficient    float64
	ProbabilityCoefficient float64
	EnableCutoff           bool
	PortmanteauCutoff      float64

	// Metric scores phone pairs. A zero Metric means phonetic.DefaultMetric.
	Metric phonetic.Metric
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		MinOverlapVowelPhones:     1,
		MinOverlapConsonantPhones: 1,
		MinOverlapPhones:          2,
		MinNonOverlapPhones:       1,
		MaxOverlapDistance:        4,
		DistanceCoefficient:       0.62,
		ProbabilityCoefficient:    0.79,
		EnableCutoff:              true,
		PortmanteauCutoff:         -7.5,
		Metric:                    phonetic.DefaultMetric(),
	}
}

func (c Config) metric() phonetic.Metric {
	if c.Metric.Vowels == nil && c.Metric.Consonants == nil {
		return phonetic.DefaultMetric()
	}
	return c.Metric
}
