// Package cli handles cmd line input for trying searches interactively.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordplay/internal/utils"
	"github.com/bastiangx/wordplay/pkg/search"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Searcher runs one search. *search.Engine implements it.
type Searcher interface {
	Search(ctx context.Context, seed1, seed2 string) (*search.Result, error)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	punStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	scoreStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"})
)

// InputHandler reads "seed1 seed2" lines and prints the best candidates
// for each.
type InputHandler struct {
	engine     Searcher
	maxSeedLen int
	limit      int
	in         io.Reader
	out        *log.Logger
}

// NewInputHandler creates a handler reading from in and printing to out.
// At most limit candidates of each kind are shown.
func NewInputHandler(engine Searcher, maxSeedLen, limit int, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		engine:     engine,
		maxSeedLen: maxSeedLen,
		limit:      limit,
		in:         in,
		out: log.NewWithOptions(out, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
		}),
	}
}

// Start begins the interface loop. It returns nil when the input ends.
func (h *InputHandler) Start(ctx context.Context) error {
	h.out.Print("WordPlay CLI")
	h.out.Print("type two seed words and press Enter (Ctrl+C to exit):")

	scanner := bufio.NewScanner(h.in)
	for {
		h.out.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(ctx, line)
		if ctx.Err() != nil {
			return nil
		}
	}
}

// handleInput runs one search and prints its results.
func (h *InputHandler) handleInput(ctx context.Context, line string) {
	seeds := strings.Fields(line)
	if len(seeds) != 2 {
		h.out.Errorf("Expected two seed words, got %d", len(seeds))
		return
	}
	for _, seed := range seeds {
		if !utils.IsValidSeed(seed, h.maxSeedLen) {
			h.out.Errorf("Invalid seed: %s", seed)
			return
		}
	}

	start := time.Now()
	res, err := h.engine.Search(ctx, seeds[0], seeds[1])
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for %q %q", elapsed, seeds[0], seeds[1])
	if err != nil {
		var unknown *search.UnknownSeedError
		if errors.As(err, &unknown) {
			h.out.Warn(err.Error())
			return
		}
		h.out.Errorf("Search failed: %v", err)
		return
	}

	h.out.Printf("Checked %s pairs", utils.FormatWithCommas(res.Pairs))

	view := res.View()
	n := min(h.limit, len(view.Portmanteaus))
	h.out.Print(headerStyle.Render(fmt.Sprintf("Portmanteaus (%d of %d)", n, len(view.Portmanteaus))))
	for i, p := range view.Portmanteaus[:n] {
		label := fmt.Sprintf("%s (%s/%s)", p.Grapheme, p.Grapheme1, p.Grapheme2)
		h.out.Printf("%2d. %-40s %s", i+1, punStyle.Render(label),
			scoreStyle.Render(fmt.Sprintf("d=%s p=%s", p.Distance, p.Probability)))
	}

	n = min(h.limit, len(view.Rhymes))
	h.out.Print(headerStyle.Render(fmt.Sprintf("Rhymes (%d of %d)", n, len(view.Rhymes))))
	for i, r := range view.Rhymes[:n] {
		label := fmt.Sprintf("%s %s", r.Grapheme1, r.Grapheme2)
		h.out.Printf("%2d. %-40s %s", i+1, punStyle.Render(label),
			scoreStyle.Render(fmt.Sprintf("d=%s p=%s", r.Distance, r.Probability)))
	}
}
