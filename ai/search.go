package ai

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gametree/tictac/game"
)

type Config struct {
	Algorithm Algorithm
	Debug     int

	// ReferenceCounts reports legacy node counts, one higher for
	// minimax and two higher for alpha-beta. The search itself is
	// unchanged.
	ReferenceCounts bool
}

type Stats struct {
	Algorithm Algorithm
	Nodes     uint64
	Value     int
	Elapsed   time.Duration
}

// MinimaxAI is a Player that runs a full-depth search for every move.
type MinimaxAI[S any, A comparable, P comparable] struct {
	cfg   Config
	g     game.Game[S, A, P]
	nodes Counter
	st    Stats
}

func NewMinimax[S any, A comparable, P comparable](g game.Game[S, A, P], cfg Config) *MinimaxAI[S, A, P] {
	if cfg.Algorithm == 0 {
		cfg.Algorithm = AlphaBeta
	}
	return &MinimaxAI[S, A, P]{cfg: cfg, g: g}
}

func (m *MinimaxAI[S, A, P]) Config() Config {
	return m.cfg
}

func (m *MinimaxAI[S, A, P]) GetMove(ctx context.Context, s S) (A, error) {
	an, _, err := m.Analyze(ctx, s)
	return an.Move, err
}

// Stats returns the statistics of the most recent search.
func (m *MinimaxAI[S, A, P]) Stats() Stats {
	return m.st
}

// Analyze searches s to the end of the game. The search cannot be
// interrupted; ctx is only consulted before it starts.
func (m *MinimaxAI[S, A, P]) Analyze(ctx context.Context, s S) (Analysis[A], Stats, error) {
	if err := ctx.Err(); err != nil {
		return Analysis[A]{}, Stats{}, err
	}
	start := time.Now()
	an, err := Analyze(m.g, s, m.cfg.Algorithm, &m.nodes)
	if err != nil {
		return Analysis[A]{}, Stats{}, err
	}
	if m.cfg.ReferenceCounts {
		an.Nodes += m.cfg.Algorithm.referenceOffset()
	}
	m.st = Stats{
		Algorithm: m.cfg.Algorithm,
		Nodes:     an.Nodes,
		Value:     an.Value,
		Elapsed:   time.Since(start),
	}
	if m.cfg.Debug > 0 {
		log.Info().
			Stringer("algorithm", m.cfg.Algorithm).
			Interface("move", an.Move).
			Int("value", an.Value).
			Uint64("nodes", an.Nodes).
			Dur("elapsed", m.st.Elapsed).
			Msg("search complete")
	}
	return an, m.st, nil
}
