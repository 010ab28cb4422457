package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[engine]
max_overlap_distance = 2
portmanteau_cutoff = -5.5
enable_cutoff = false

[search]
workers = 2
blacklist = ["Labrador"]

[postgres]
dsn = "postgres://localhost/wordplay"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Engine.MaxOverlapDistance)
	assert.Equal(t, -5.5, cfg.Engine.PortmanteauCutoff)
	assert.False(t, cfg.Engine.EnableCutoff)
	assert.Equal(t, 0.62, cfg.Engine.DistanceCoefficient)
	assert.Equal(t, 2, cfg.Search.Workers)
	assert.Equal(t, []string{"Labrador"}, cfg.Search.Blacklist)
	assert.Equal(t, 30, cfg.Search.MaxRhymes)
	assert.Equal(t, "postgres://localhost/wordplay", cfg.Postgres.DSN)
	assert.Equal(t, 300, cfg.Postgres.Dimensions)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// workers has the wrong type, so a strict decode fails.
	body := `
[engine]
min_overlap_phones = 3
distance_coefficient = 1

[search]
workers = "many"
max_rhymes = 5
include_seeds = false

[cli]
default_limit = 4
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Engine.MinOverlapPhones)
	assert.Equal(t, 1.0, cfg.Engine.DistanceCoefficient)
	assert.Equal(t, 8, cfg.Search.Workers)
	assert.Equal(t, 5, cfg.Search.MaxRhymes)
	assert.False(t, cfg.Search.IncludeSeeds)
	assert.Equal(t, 4, cfg.CLI.DefaultLimit)
}

func TestLoadConfigGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[[ not toml"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nmax_seed_len = 12\n"), 0o644))

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 12, cfg.Server.MaxSeedLen)
}

func TestDerivedConfigs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.TimeoutMs = 250
	cfg.Search.Blacklist = []string{"dog"}

	sc := cfg.Search.SearchConfig(cfg.Engine)
	assert.Equal(t, 250*time.Millisecond, sc.Timeout)
	assert.Equal(t, 30, sc.MaxPortmanteaus)
	assert.Equal(t, 100, sc.MaxNeighbors)
	assert.Equal(t, 128, sc.CacheSize)
	assert.True(t, sc.IncludeSeeds)
	assert.Equal(t, []string{"dog"}, sc.Blacklist)

	sc.Blacklist[0] = "cat"
	assert.Equal(t, "dog", cfg.Search.Blacklist[0])

	pc := sc.Pun
	assert.Equal(t, 2, pc.MinOverlapPhones)
	assert.Equal(t, 4, pc.MaxOverlapDistance)
	assert.Equal(t, 0.79, pc.ProbabilityCoefficient)
	assert.True(t, pc.EnableCutoff)
	assert.Equal(t, -7.5, pc.PortmanteauCutoff)
}
