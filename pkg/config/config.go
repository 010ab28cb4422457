/*
Package config manages the TOML config shared by the wordplay commands.

A missing file is created with defaults. A file that fails to decode as a
whole is read again section by section so one bad value does not discard
the rest.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/wordplay/internal/utils"
	"github.com/bastiangx/wordplay/pkg/frequency"
	"github.com/bastiangx/wordplay/pkg/phonetic"
	"github.com/bastiangx/wordplay/pkg/pun"
	"github.com/bastiangx/wordplay/pkg/search"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Engine   EngineConfig   `toml:"engine"`
	Search   SearchConfig   `toml:"search"`
	Data     DataConfig     `toml:"data"`
	Postgres PostgresConfig `toml:"postgres"`
	Server   ServerConfig   `toml:"server"`
	CLI      CliConfig      `toml:"cli"`
}

// EngineConfig holds the pun builder thresholds and scoring weights.
type EngineConfig struct {
	MinOverlapVowelPhones     int     `toml:"min_overlap_vowel_phones"`
	MinOverlapConsonantPhones int     `toml:"min_overlap_consonant_phones"`
	MinOverlapPhones          int     `toml:"min_overlap_phones"`
	MinNonOverlapPhones       int     `toml:"min_non_overlap_phones"`
	MaxOverlapDistance        int     `toml:"max_overlap_distance"`
	DistanceCoefficient       float64 `toml:"distance_coefficient"`
	ProbabilityCoefficient    float64 `toml:"probability_coefficient"`
	EnableCutoff              bool    `toml:"enable_cutoff"`
	PortmanteauCutoff         float64 `toml:"portmanteau_cutoff"`
}

// SearchConfig bounds each search.
type SearchConfig struct {
	MaxPortmanteaus int      `toml:"max_portmanteaus"`
	MaxRhymes       int      `toml:"max_rhymes"`
	MaxNeighbors    int      `toml:"max_neighbors"`
	Workers         int      `toml:"workers"`
	IncludeSeeds    bool     `toml:"include_seeds"`
	TimeoutMs       int      `toml:"timeout_ms"`
	CacheSize       int      `toml:"cache_size"`
	Blacklist       []string `toml:"blacklist"`
}

// DataConfig locates the file-backed sources. Relative names resolve
// against Dir.
type DataConfig struct {
	Dir         string `toml:"dir"`
	Dictionary  string `toml:"dictionary"`
	Frequencies string `toml:"frequencies"`
	Neighbors   string `toml:"neighbors"`
	POS         string `toml:"pos"`
}

// PostgresConfig switches the sources to PostgreSQL when DSN is set.
type PostgresConfig struct {
	DSN        string `toml:"dsn"`
	VocabSize  int    `toml:"vocab_size"`
	Dimensions int    `toml:"dimensions"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxSeedLen int `toml:"max_seed_len"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			MinOverlapVowelPhones:     1,
			MinOverlapConsonantPhones: 1,
			MinOverlapPhones:          2,
			MinNonOverlapPhones:       1,
			MaxOverlapDistance:        4,
			DistanceCoefficient:       0.62,
			ProbabilityCoefficient:    0.79,
			EnableCutoff:              true,
			PortmanteauCutoff:         -7.5,
		},
		Search: SearchConfig{
			MaxPortmanteaus: 30,
			MaxRhymes:       30,
			MaxNeighbors:    100,
			Workers:         8,
			IncludeSeeds:    true,
			TimeoutMs:       5000,
			CacheSize:       128,
			Blacklist:       []string{},
		},
		Data: DataConfig{
			Dictionary:  "dict.tsv",
			Frequencies: "subwords.freq",
			Neighbors:   "neighbors.tsv",
			POS:         "pos.tsv",
		},
		Postgres: PostgresConfig{
			VocabSize:  frequency.DefaultVocabSize,
			Dimensions: 300,
		},
		Server: ServerConfig{
			MaxSeedLen: 40,
		},
		CLI: CliConfig{
			DefaultLimit: 10,
		},
	}
}

// PunConfig converts the engine section into builder settings.
func (e EngineConfig) PunConfig() pun.Config {
	return pun.Config{
		MinOverlapVowelPhones:     e.MinOverlapVowelPhones,
		MinOverlapConsonantPhones: e.MinOverlapConsonantPhones,
		MinOverlapPhones:          e.MinOverlapPhones,
		MinNonOverlapPhones:       e.MinNonOverlapPhones,
		MaxOverlapDistance:        e.MaxOverlapDistance,
		DistanceCoefficient:       e.DistanceCoefficient,
		ProbabilityCoefficient:    e.ProbabilityCoefficient,
		EnableCutoff:              e.EnableCutoff,
		PortmanteauCutoff:         e.PortmanteauCutoff,
		Metric:                    phonetic.DefaultMetric(),
	}
}

// SearchConfig converts the search section, plus the engine settings, into
// a search.Config.
func (s SearchConfig) SearchConfig(engine EngineConfig) search.Config {
	return search.Config{
		MaxPortmanteaus: s.MaxPortmanteaus,
		MaxRhymes:       s.MaxRhymes,
		MaxNeighbors:    s.MaxNeighbors,
		Workers:         s.Workers,
		IncludeSeeds:    s.IncludeSeeds,
		Timeout:         time.Duration(s.TimeoutMs) * time.Millisecond,
		CacheSize:       s.CacheSize,
		Blacklist:       append([]string(nil), s.Blacklist...),
		Pun:             engine.PunConfig(),
	}
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	pr, err := utils.NewPathResolver()
	if err != nil {
		return "", err
	}
	return pr.GetConfigPath("config.toml")
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordplay/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse recovers what it can, section by section.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(section, &config.Engine)
	}
	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "data"); ok {
		extractDataConfig(section, &config.Data)
	}
	if section, ok := utils.ExtractSection(tempConfig, "postgres"); ok {
		extractPostgresConfig(section, &config.Postgres)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		if val, ok := utils.ExtractInt64(section, "max_seed_len"); ok {
			config.Server.MaxSeedLen = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		if val, ok := utils.ExtractInt64(section, "default_limit"); ok {
			config.CLI.DefaultLimit = val
		}
	}
	return config, nil
}

func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	ints := map[string]*int{
		"min_overlap_vowel_phones":     &engine.MinOverlapVowelPhones,
		"min_overlap_consonant_phones": &engine.MinOverlapConsonantPhones,
		"min_overlap_phones":           &engine.MinOverlapPhones,
		"min_non_overlap_phones":       &engine.MinNonOverlapPhones,
		"max_overlap_distance":         &engine.MaxOverlapDistance,
	}
	for key, dst := range ints {
		if val, ok := utils.ExtractInt64(data, key); ok {
			*dst = val
		}
	}
	floats := map[string]*float64{
		"distance_coefficient":    &engine.DistanceCoefficient,
		"probability_coefficient": &engine.ProbabilityCoefficient,
		"portmanteau_cutoff":      &engine.PortmanteauCutoff,
	}
	for key, dst := range floats {
		if val, ok := utils.ExtractFloat64(data, key); ok {
			*dst = val
		}
	}
	if val, ok := utils.ExtractBool(data, "enable_cutoff"); ok {
		engine.EnableCutoff = val
	}
}

func extractSearchConfig(data map[string]any, s *SearchConfig) {
	ints := map[string]*int{
		"max_portmanteaus": &s.MaxPortmanteaus,
		"max_rhymes":       &s.MaxRhymes,
		"max_neighbors":    &s.MaxNeighbors,
		"workers":          &s.Workers,
		"timeout_ms":       &s.TimeoutMs,
		"cache_size":       &s.CacheSize,
	}
	for key, dst := range ints {
		if val, ok := utils.ExtractInt64(data, key); ok {
			*dst = val
		}
	}
	if val, ok := utils.ExtractBool(data, "include_seeds"); ok {
		s.IncludeSeeds = val
	}
	if val, ok := utils.ExtractStrings(data, "blacklist"); ok {
		s.Blacklist = val
	}
}

func extractDataConfig(data map[string]any, d *DataConfig) {
	strs := map[string]*string{
		"dir":         &d.Dir,
		"dictionary":  &d.Dictionary,
		"frequencies": &d.Frequencies,
		"neighbors":   &d.Neighbors,
		"pos":         &d.POS,
	}
	for key, dst := range strs {
		if val, ok := utils.ExtractString(data, key); ok {
			*dst = val
		}
	}
}

func extractPostgresConfig(data map[string]any, pg *PostgresConfig) {
	if val, ok := utils.ExtractString(data, "dsn"); ok {
		pg.DSN = val
	}
	if val, ok := utils.ExtractInt64(data, "vocab_size"); ok {
		pg.VocabSize = val
	}
	if val, ok := utils.ExtractInt64(data, "dimensions"); ok {
		pg.Dimensions = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
