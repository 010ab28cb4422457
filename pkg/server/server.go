package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordplay/internal/logger"
	"github.com/bastiangx/wordplay/internal/utils"
	"github.com/bastiangx/wordplay/pkg/config"
	"github.com/bastiangx/wordplay/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Searcher runs one search. *search.Engine implements it.
type Searcher interface {
	Search(ctx context.Context, seed1, seed2 string) (*search.Result, error)
}

// Server handles the IPC for searches.
type Server struct {
	engine Searcher
	config *config.Config
	dec    *msgpack.Decoder
	enc    *msgpack.Encoder
	log    *log.Logger
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(engine Searcher, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		engine: engine,
		config: cfg,
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
		log:    logger.New("server"),
	}
}

// Start signals readiness and serves requests until the input ends or ctx
// is canceled.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting server")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return fmt.Errorf("read request: %w", err)
		}
		if err := s.handle(ctx, raw); err != nil {
			return err
		}
	}
}

// handle decodes one message and answers it. Only write failures are
// returned; request problems become error responses.
func (s *Server) handle(ctx context.Context, raw msgpack.RawMessage) error {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.log.Errorf("Unmarshaling request: %v", err)
		return s.sendError("", "invalid msgpack request", CodeBadRequest, nil)
	}

	switch req.Cmd {
	case CmdSearch:
		return s.handleSearch(ctx, req)
	case CmdHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown command: %q", req.Cmd), CodeBadRequest, nil)
	}
}

func (s *Server) handleSearch(ctx context.Context, req Request) error {
	seed1, seed2 := strings.TrimSpace(req.Seed1), strings.TrimSpace(req.Seed2)
	for _, seed := range []string{seed1, seed2} {
		if !utils.IsValidSeed(seed, s.config.Server.MaxSeedLen) {
			s.log.Debugf("Rejected seed %q", seed)
			return s.sendError(req.ID, fmt.Sprintf("invalid seed %q", seed), CodeBadRequest, nil)
		}
	}

	start := time.Now()
	res, err := s.engine.Search(ctx, seed1, seed2)
	elapsed := time.Since(start)
	if err != nil {
		var unknown *search.UnknownSeedError
		switch {
		case errors.As(err, &unknown):
			return s.sendError(req.ID, err.Error(), CodeUnknown, unknown.Suggestions)
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return s.sendError(req.ID, "search timed out", CodeTimeout, nil)
		default:
			s.log.Errorf("Search %q %q: %v", seed1, seed2, err)
			return s.sendError(req.ID, "internal server error", CodeInternal, nil)
		}
	}

	view := res.View()
	if req.Limit > 0 {
		view.Portmanteaus = view.Portmanteaus[:min(req.Limit, len(view.Portmanteaus))]
		view.Rhymes = view.Rhymes[:min(req.Limit, len(view.Rhymes))]
	}
	s.log.Debugf("Took [ %v ] for %q %q", elapsed, seed1, seed2)

	return s.send(SearchResponse{
		ID:           req.ID,
		Seed1:        res.Seed1,
		Seed2:        res.Seed2,
		Portmanteaus: view.Portmanteaus,
		Rhymes:       view.Rhymes,
		Pairs:        res.Pairs,
		TimeTaken:    elapsed.Microseconds(),
	})
}

func (s *Server) send(v any) error {
	if err := s.enc.Encode(v); err != nil {
		s.log.Errorf("Writing response: %v", err)
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int, suggestions []string) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code, Suggestions: suggestions})
}
