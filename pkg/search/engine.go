/*
Package search crosses the semantic neighbors of two seeds and ranks the
portmanteaus and rhymes they form.

A query resolves both neighbor sets in one dictionary call, narrows the
frequency store to the fragments those words can ask for, then scans the
cross product on a bounded pool of goroutines. Everything shared during the
scan is read-only, so workers need no locking; each writes its own slot of
the output and the slots are merged in order, which keeps results
deterministic regardless of scheduling.
*/
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bastiangx/wordplay/internal/logger"
	"github.com/bastiangx/wordplay/internal/observe"
	"github.com/bastiangx/wordplay/pkg/frequency"
	"github.com/bastiangx/wordplay/pkg/lexicon"
	"github.com/bastiangx/wordplay/pkg/pun"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Resolver turns graphemes into words, omitting the ones it cannot find.
type Resolver interface {
	Resolve(ctx context.Context, graphemes []string) (map[string]*lexicon.Word, error)
}

// NeighborSource lists the semantic neighbors of a seed.
type NeighborSource interface {
	Neighbors(ctx context.Context, seed string, limit int) ([]string, error)
}

// Suggester proposes spellings for an unknown seed.
type Suggester interface {
	Suggest(grapheme string, limit int) []string
}

const maxSuggestions = 5

// Engine runs searches. It is safe for concurrent use.
type Engine struct {
	words     Resolver
	neighbors NeighborSource
	freq      frequency.Store
	pos       pun.POSLookup
	suggester Suggester
	metrics   *observe.Metrics
	log       *log.Logger

	cfg       Config
	blacklist map[string]struct{}
	cache     *resultCache
}

// Option configures an Engine.
type Option func(*Engine)

// WithPOS sets the part of speech lookup used to order rhymes.
func WithPOS(pos pun.POSLookup) Option {
	return func(e *Engine) { e.pos = pos }
}

// WithSuggester sets where unknown seed suggestions come from.
func WithSuggester(s Suggester) Option {
	return func(e *Engine) { e.suggester = s }
}

// WithMetrics replaces observe.DefaultMetrics.
func WithMetrics(m *observe.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger replaces the engine's logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New returns an engine over the given sources.
func New(words Resolver, neighbors NeighborSource, freq frequency.Store, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		words:     words,
		neighbors: neighbors,
		freq:      freq,
		cfg:       cfg,
		blacklist: make(map[string]struct{}, len(cfg.Blacklist)),
	}
	for _, g := range cfg.Blacklist {
		e.blacklist[strings.ToLower(g)] = struct{}{}
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = observe.DefaultMetrics()
	}
	if e.log == nil {
		e.log = logger.New("search")
	}
	if e.cfg.Workers < 1 {
		e.cfg.Workers = 1
	}
	if e.cfg.CacheSize > 0 {
		e.cache = newResultCache(e.cfg.CacheSize)
	}
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Search finds the best portmanteaus and rhymes between the neighbors of
// seed1 and seed2.
//
// Results may be served from a cache shared between callers and must not be
// modified. A cached result carries the seeds as spelled by the caller; its
// candidate slices are shared.
func (e *Engine) Search(ctx context.Context, seed1, seed2 string) (*Result, error) {
	start := time.Now()
	var key string
	if e.cache != nil {
		key = cacheKey(seed1, seed2)
		if res, ok := e.cache.get(key); ok {
			e.metrics.RecordSearch(ctx, time.Since(start), observe.StatusCached)
			if res.Seed1 != seed1 || res.Seed2 != seed2 {
				hit := *res
				hit.Seed1, hit.Seed2 = seed1, seed2
				return &hit, nil
			}
			return res, nil
		}
	}
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	res, err := e.search(ctx, seed1, seed2)
	status := observe.StatusOK
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = observe.StatusCanceled
	case err != nil:
		status = observe.StatusError
	}
	e.metrics.RecordSearch(ctx, time.Since(start), status)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.put(key, res)
	}

	e.log.Debugf("%s + %s: %d pairs, %d portmanteaus, %d rhymes in %s",
		seed1, seed2, res.Pairs, len(res.Portmanteaus), len(res.Rhymes), time.Since(start))
	return res, nil
}

func (e *Engine) search(ctx context.Context, seed1, seed2 string) (*Result, error) {
	graphemes1, err := e.seedGraphemes(ctx, seed1)
	if err != nil {
		return nil, err
	}
	graphemes2, err := e.seedGraphemes(ctx, seed2)
	if err != nil {
		return nil, err
	}

	resolved, err := e.words.Resolve(ctx, append(append([]string(nil), graphemes1...), graphemes2...))
	if err != nil {
		return nil, fmt.Errorf("resolve candidates: %w", err)
	}
	set1 := collect(graphemes1, resolved)
	if len(set1) == 0 {
		return nil, e.unknownSeed(ctx, seed1)
	}
	set2 := collect(graphemes2, resolved)
	if len(set2) == 0 {
		return nil, e.unknownSeed(ctx, seed2)
	}

	model, err := frequency.Scope(ctx, e.freq, append(append([]*lexicon.Word(nil), set1...), set2...))
	if err != nil {
		return nil, fmt.Errorf("scope frequencies: %w", err)
	}

	res, err := e.scan(ctx, set1, set2, model)
	if err != nil {
		return nil, err
	}
	res.Seed1, res.Seed2 = seed1, seed2
	return res, nil
}

// seedGraphemes returns the normalized candidate graphemes for seed, the
// seed itself first when configured.
func (e *Engine) seedGraphemes(ctx context.Context, seed string) ([]string, error) {
	neighbors, err := e.neighbors.Neighbors(ctx, seed, e.cfg.MaxNeighbors)
	switch {
	case errors.Is(err, lexicon.ErrUnknownSeed):
		return nil, e.unknownSeed(ctx, seed)
	case err != nil:
		return nil, fmt.Errorf("neighbors of %q: %w", seed, err)
	}
	if e.cfg.IncludeSeeds {
		neighbors = append([]string{seed}, neighbors...)
	}
	return lexicon.NormalizeNeighbors(neighbors, 0), nil
}

func (e *Engine) unknownSeed(ctx context.Context, seed string) error {
	e.metrics.UnknownSeeds.Add(ctx, 1)
	err := &UnknownSeedError{Seed: seed}
	if e.suggester != nil {
		err.Suggestions = e.suggester.Suggest(seed, maxSuggestions)
	}
	return err
}

// collect keeps the resolved words of graphemes in order, once each.
func collect(graphemes []string, resolved map[string]*lexicon.Word) []*lexicon.Word {
	seen := make(map[*lexicon.Word]struct{}, len(graphemes))
	out := make([]*lexicon.Word, 0, len(graphemes))
	for _, g := range graphemes {
		w, ok := resolved[g]
		if !ok {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func (e *Engine) blacklisted(w *lexicon.Word) bool {
	_, ok := e.blacklist[strings.ToLower(w.Grapheme)]
	return ok
}

// slot holds what one outer word produced.
type slot struct {
	portmanteaus []*pun.Portmanteau
	rhymes       []*pun.Rhyme
	pairs        int
}

func (e *Engine) scan(ctx context.Context, set1, set2 []*lexicon.Word, model *frequency.Model) (*Result, error) {
	slots := make([]slot, len(set1))
	cfg := e.cfg.Pun

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, a := range set1 {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if e.blacklisted(a) {
				return nil
			}
			s := &slots[i]
			for _, b := range set2 {
				if a.Grapheme == b.Grapheme || e.blacklisted(b) {
					continue
				}
				s.pairs++
				if p, err := pun.BuildPortmanteau(a, b, model, cfg); err == nil && p.Accept(cfg) {
					s.portmanteaus = append(s.portmanteaus, p)
				}
				if p, err := pun.BuildPortmanteau(b, a, model, cfg); err == nil && p.Accept(cfg) {
					s.portmanteaus = append(s.portmanteaus, p)
				}
				if r, err := pun.BuildRhyme(a, b, model, e.pos, cfg); err == nil {
					s.rhymes = append(s.rhymes, r)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan candidates: %w", err)
	}

	res := &Result{}
	seenP := make(map[string]struct{})
	seenR := make(map[string]struct{})
	for _, s := range slots {
		res.Pairs += s.pairs
		for _, p := range s.portmanteaus {
			if _, dup := seenP[p.Identity()]; !dup {
				seenP[p.Identity()] = struct{}{}
				res.Portmanteaus = append(res.Portmanteaus, p)
			}
		}
		for _, r := range s.rhymes {
			if _, dup := seenR[r.Identity()]; !dup {
				seenR[r.Identity()] = struct{}{}
				res.Rhymes = append(res.Rhymes, r)
			}
		}
	}

	e.metrics.PairsEvaluated.Add(ctx, int64(res.Pairs))
	e.metrics.RecordCandidates(ctx, observe.KindPortmanteau, len(res.Portmanteaus))
	e.metrics.RecordCandidates(ctx, observe.KindRhyme, len(res.Rhymes))

	rankPortmanteaus(res.Portmanteaus)
	rankRhymes(res.Rhymes)
	res.Portmanteaus = truncate(res.Portmanteaus, e.cfg.MaxPortmanteaus)
	res.Rhymes = truncate(res.Rhymes, e.cfg.MaxRhymes)
	return res, nil
}

func rankPortmanteaus(ps []*pun.Portmanteau) {
	sort.Slice(ps, func(i, j int) bool {
		ki, kj := ps[i].Key(), ps[j].Key()
		if ki != kj {
			return ki.Less(kj)
		}
		if ps[i].Grapheme != ps[j].Grapheme {
			return ps[i].Grapheme < ps[j].Grapheme
		}
		return ps[i].Identity() < ps[j].Identity()
	})
}

func rankRhymes(rs []*pun.Rhyme) {
	sort.Slice(rs, func(i, j int) bool {
		ki, kj := rs[i].Key(), rs[j].Key()
		if ki != kj {
			return ki.Less(kj)
		}
		return rs[i].Identity() < rs[j].Identity()
	})
}

func truncate[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
