package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/bastiangx/wordplay/internal/utils"
	"github.com/bastiangx/wordplay/pkg/config"
	"github.com/bastiangx/wordplay/pkg/frequency"
	"github.com/bastiangx/wordplay/pkg/lexicon"
	"github.com/bastiangx/wordplay/pkg/search"
	"github.com/bastiangx/wordplay/pkg/store/postgres"
	"github.com/charmbracelet/log"
)

// sources are the lookups behind a search engine.
type sources struct {
	words     search.Resolver
	neighbors search.NeighborSource
	freq      frequency.Store
	opts      []search.Option
	close     func()
}

// fileSources loads the dictionary, neighbor table, POS table and
// frequency tables from dataDir. The POS table is optional; missing
// frequency tables are rebuilt from the dictionary.
func fileSources(dataDir string, data config.DataConfig) (*sources, error) {
	dictPath := utils.ResolveDataFile(dataDir, data.Dictionary)
	dict, err := lexicon.LoadAlignedFile(dictPath)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	log.Debugf("Loaded %s words from %s", utils.FormatWithCommas(dict.Len()), dictPath)

	neighbors, err := lexicon.LoadNeighborsFile(utils.ResolveDataFile(dataDir, data.Neighbors))
	if err != nil {
		return nil, fmt.Errorf("load neighbors: %w", err)
	}

	model, err := frequency.LoadFile(utils.ResolveDataFile(dataDir, data.Frequencies))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warnf("No frequency tables at %s, counting %d words", data.Frequencies, dict.Len())
		model = frequency.Build(dict.Words())
	case err != nil:
		return nil, fmt.Errorf("load frequencies: %w", err)
	}

	opts := []search.Option{search.WithSuggester(dict)}
	if data.POS != "" {
		pos, err := lexicon.LoadPOSFile(utils.ResolveDataFile(dataDir, data.POS))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Debugf("No POS table, ordering rhymes by lead consonants only")
		case err != nil:
			return nil, fmt.Errorf("load pos: %w", err)
		default:
			opts = append(opts, search.WithPOS(pos))
		}
	}

	return &sources{
		words:     dict,
		neighbors: neighbors,
		freq:      model,
		opts:      opts,
		close:     func() {},
	}, nil
}

// postgresSources serves words, neighbors and frequencies from PostgreSQL.
// The POS table, when present, still comes from dataDir.
func postgresSources(ctx context.Context, dataDir string, cfg *config.Config) (*sources, error) {
	store, err := postgres.Open(ctx, cfg.Postgres.DSN, cfg.Postgres.Dimensions, cfg.Postgres.VocabSize)
	if err != nil {
		return nil, err
	}
	src := &sources{words: store, neighbors: store, freq: store, close: store.Close}
	if cfg.Data.POS != "" {
		pos, err := lexicon.LoadPOSFile(utils.ResolveDataFile(dataDir, cfg.Data.POS))
		if err == nil {
			src.opts = append(src.opts, search.WithPOS(pos))
		} else if !errors.Is(err, fs.ErrNotExist) {
			store.Close()
			return nil, fmt.Errorf("load pos: %w", err)
		}
	}
	return src, nil
}

// newEngine builds the search engine over src.
func newEngine(src *sources, cfg *config.Config) *search.Engine {
	return search.New(src.words, src.neighbors, src.freq, cfg.Search.SearchConfig(cfg.Engine), src.opts...)
}
