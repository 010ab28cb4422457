// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordplay search server and CLI application.

Given two seed words, wordplay gathers the semantic neighbors of each seed
and builds portmanteaus ("labradormitory") and rhymes ("blaster master")
from every cross pair, ranked by phonetic distance and sound-pattern
probability.

# Usage

Start the msgpack IPC server with default settings:

	wordplay

Use a custom data directory and enable debug mode:

	wordplay -data /path/to/data -d

Run in CLI mode for interactive testing:

	wordplay -c -limit 5

The data directory holds the aligned dictionary (dict.tsv), the neighbor
table (neighbors.tsv), the optional POS table (pos.tsv) and the frequency
tables (subwords.freq) written by freqbuild. When postgres.dsn is set in
the config, words, neighbors and frequencies are read from PostgreSQL.

# Configuration

Runtime configuration lives in a TOML file created with defaults on first
run:

	[engine]
	max_overlap_distance = 4
	enable_cutoff = true
	portmanteau_cutoff = -7.5

	[search]
	max_portmanteaus = 30
	max_rhymes = 30
	workers = 8

	[postgres]
	dsn = ""

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. See package
server for the message types.

	{"id": "req1", "cmd": "search", "s1": "dog", "s2": "school"}

# Command Line Flags

	-config string
	    Path to a config file (default: user config dir)
	-data string
	    Directory containing the data files (default "data/")
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of candidates of each kind to print in CLI mode
	-version
	    Show current version
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordplay/internal/cli"
	"github.com/bastiangx/wordplay/internal/utils"
	"github.com/bastiangx/wordplay/pkg/config"
	"github.com/bastiangx/wordplay/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordplay"
	gh      = "https://github.com/bastiangx/wordplay"
)

// main wires config, data sources and the search engine into either the
// server or the CLI. It does not implement logic for them.
func main() {
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config file")
	dataDir := flag.String("data", "data/", "Directory containing the data files")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of candidates of each kind to print")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedConfig))

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	log.Debugf("Config dir: %s", pathResolver.GetConfigDir())
	dir := *dataDir
	if cfg.Data.Dir != "" && *dataDir == "data/" {
		dir = cfg.Data.Dir
	}
	resolvedDataDir, err := pathResolver.GetDataDir(dir)
	if err != nil {
		log.Fatalf("Failed to resolve data dir: (%v)", err)
	}
	log.Debugf("Using data dir at: %s", resolvedDataDir)

	var src *sources
	if cfg.Postgres.DSN != "" {
		src, err = postgresSources(ctx, resolvedDataDir, cfg)
	} else {
		src, err = fileSources(resolvedDataDir, cfg.Data)
	}
	if err != nil {
		log.Fatalf("Failed to load data sources: %v", err)
	}
	defer src.close()

	engine := newEngine(src, cfg)

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:", "limit", *limit, "maxSeedLen", cfg.Server.MaxSeedLen)
		handler := cli.NewInputHandler(engine, cfg.Server.MaxSeedLen, *limit, os.Stdin, os.Stderr)
		if err := handler.Start(ctx); err != nil {
			log.Errorf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, cfg, os.Stdin, os.Stdout)
	showStartupInfo(resolvedDataDir, cfg)
	if err := srv.Start(ctx); err != nil {
		log.Errorf("Server error: %v", err)
		src.close()
		os.Exit(1)
	}
}

// printVersion shows the version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ WordPlay ] Portmanteaus and rhymes from two seed words")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(dataDir string, cfg *config.Config) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	backend := "files"
	if cfg.Postgres.DSN != "" {
		backend = "postgres"
	}
	fmt.Fprintln(os.Stderr, "==========")
	fmt.Fprintln(os.Stderr, " WordPlay ")
	fmt.Fprintln(os.Stderr, "==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("data dir: ( %s )", dataDir)
	log.Infof("backend: %s", backend)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "==========")
}
