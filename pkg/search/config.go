package search

import (
	"time"

	"github.com/bastiangx/wordplay/pkg/pun"
)

// Config bounds one search. Pun carries the builder thresholds.
type Config struct {
	MaxPortmanteaus int
	MaxRhymes       int
	MaxNeighbors    int
	Workers         int
	IncludeSeeds    bool
	Timeout         time.Duration
	Blacklist       []string
	// CacheSize is the number of results kept by seed pair; 0 disables
	// caching.
	CacheSize int

	Pun pun.Config
}

// DefaultConfig returns the defaults used when no config file is present.
func DefaultConfig() Config {
	return Config{
		MaxPortmanteaus: 30,
		MaxRhymes:       30,
		MaxNeighbors:    100,
		Workers:         8,
		IncludeSeeds:    true,
		Timeout:         5 * time.Second,
		CacheSize:       128,
		Pun:             pun.DefaultConfig(),
	}
}
