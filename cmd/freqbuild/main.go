// Command freqbuild counts subword frequencies over the aligned dictionary
// and optionally copies the data files into PostgreSQL. It is intended to be
// run offline, not as part of the server.
//
// Flags:
//
//	-config     path to config file (postgres dsn, data file names)
//	-data       directory containing the data files
//	-phase      comma-separated phases to run (default: all that apply)
//	-vectors    fastText .vec file for the vector phase
//	-max-vectors  number of vectors to copy, 0 for all
//	-dry-run    count and parse without writing anything
//	-d          debug logging
//
// Phases run in the order freq, words, frequencies, neighbors, vectors. The
// last four need postgres.dsn.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/wordplay/internal/utils"
	"github.com/bastiangx/wordplay/pkg/config"
	"github.com/bastiangx/wordplay/pkg/store/postgres"
	"github.com/charmbracelet/log"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	dataDir := flag.String("data", "data/", "Directory containing the data files")
	phaseFlag := flag.String("phase", "", "Comma-separated phases to run (default: all that apply)")
	vectorPath := flag.String("vectors", "", "fastText .vec file for the vector phase")
	maxVectors := flag.Int("max-vectors", 0, "Number of vectors to copy (0 for all)")
	dryRun := flag.Bool("dry-run", false, "Parse and count without writing")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, _, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	dir := *dataDir
	if cfg.Data.Dir != "" && *dataDir == "data/" {
		dir = cfg.Data.Dir
	}

	var phases []string
	if *phaseFlag != "" {
		for _, p := range strings.Split(*phaseFlag, ",") {
			phases = append(phases, strings.TrimSpace(p))
		}
	}

	b := &builder{
		dictPath:      utils.ResolveDataFile(dir, cfg.Data.Dictionary),
		freqPath:      utils.ResolveDataFile(dir, cfg.Data.Frequencies),
		neighborsPath: utils.ResolveDataFile(dir, cfg.Data.Neighbors),
		vectorPath:    *vectorPath,
		maxVectors:    *maxVectors,
		dims:          cfg.Postgres.Dimensions,
		dryRun:        *dryRun,
	}

	if cfg.Postgres.DSN != "" && !*dryRun {
		store, err := postgres.Open(ctx, cfg.Postgres.DSN, cfg.Postgres.Dimensions, cfg.Postgres.VocabSize)
		if err != nil {
			log.Fatalf("Failed to open postgres: %v", err)
		}
		defer store.Close()
		b.db = store
	}

	if err := b.run(ctx, phases); err != nil {
		log.Errorf("freqbuild failed: %v", err)
		stop()
		os.Exit(1)
	}
	log.Info("freqbuild completed successfully")
}
