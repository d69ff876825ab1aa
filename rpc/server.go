package rpc

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/gametree/tictac/ai"
	"github.com/gametree/tictac/game"
	"github.com/gametree/tictac/notation"
	"github.com/gametree/tictac/symmetry"
	"github.com/gametree/tictac/ttt"
)

type cache struct {
	sync.Mutex
	players map[ai.Algorithm]*ai.MinimaxAI[ttt.Position, ttt.Move, ttt.Mark]
}

func (c *cache) getPlayer(cfg ai.Config) *ai.MinimaxAI[ttt.Position, ttt.Move, ttt.Mark] {
	if c.players == nil {
		c.players = make(map[ai.Algorithm]*ai.MinimaxAI[ttt.Position, ttt.Move, ttt.Mark])
	}
	p, ok := c.players[cfg.Algorithm]
	if !ok {
		p = ai.NewMinimax(ttt.Rules, cfg)
		c.players[cfg.Algorithm] = p
	}
	return p
}

// Server implements AnalyzerServer. Searches are serialized; each
// one runs to completion.
type Server struct {
	// Config is the search configuration. Requests may override
	// its algorithm.
	Config ai.Config

	analyzeCache cache
}

func NewServer(cfg ai.Config) *Server {
	if cfg.Algorithm == 0 {
		cfg.Algorithm = ai.AlphaBeta
	}
	return &Server{Config: cfg}
}

func (s *Server) Analyze(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeAnalyzeRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	p, err := notation.ParsePosition(req.Position)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "position: %v", err)
	}
	cfg := s.Config
	if req.Algorithm != 0 {
		cfg.Algorithm = req.Algorithm
	}

	s.analyzeCache.Lock()
	defer s.analyzeCache.Unlock()
	an, _, err := s.analyzeCache.getPlayer(cfg).Analyze(ctx, p)
	if errors.Is(err, game.ErrGameOver) {
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	}
	if err != nil {
		return nil, status.FromContextError(err).Err()
	}
	log.Debug().
		Str("position", req.Position).
		Stringer("algorithm", cfg.Algorithm).
		Int("move", int(an.Move)).
		Uint64("nodes", an.Nodes).
		Msg("analyze")
	return encodeAnalyzeResponse(&AnalyzeResponse{
		Move:      an.Move,
		Value:     an.Value,
		Nodes:     an.Nodes,
		Algorithm: cfg.Algorithm,
		Canonical: notation.FormatPosition(symmetry.CanonicalPosition(p)),
	})
}

func (s *Server) Canonicalize(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeCanonicalizeRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	ms, err := symmetry.Canonical(req.First, req.Moves)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return structpb.NewStruct(map[string]any{
		"moves": notation.FormatMoves(ms),
	})
}
