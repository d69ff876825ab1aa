package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/gametree/tictac/ai"
	"github.com/gametree/tictac/notation"
	"github.com/gametree/tictac/ttt"
)

// Client calls the Analyzer service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc}
}

func (c *Client) Analyze(ctx context.Context, position string, alg ai.Algorithm, opts ...grpc.CallOption) (*AnalyzeResponse, error) {
	in, err := encodeAnalyzeRequest(&AnalyzeRequest{Position: position, Algorithm: alg})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, analyzeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return decodeAnalyzeResponse(out)
}

func (c *Client) Canonicalize(ctx context.Context, first ttt.Mark, moves []ttt.Move, opts ...grpc.CallOption) ([]ttt.Move, error) {
	in, err := encodeCanonicalizeRequest(&CanonicalizeRequest{First: first, Moves: moves})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, canonicalizeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	s, err := stringField(out, "moves", true)
	if err != nil {
		return nil, err
	}
	return notation.ParseMoves(s)
}
