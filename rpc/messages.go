package rpc

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/gametree/tictac/ai"
	"github.com/gametree/tictac/notation"
	"github.com/gametree/tictac/ttt"
)

type AnalyzeRequest struct {
	// Position is in the notation of notation.ParsePosition.
	Position string
	// Algorithm zero means the server's default.
	Algorithm ai.Algorithm
}

type AnalyzeResponse struct {
	Move      ttt.Move
	Value     int
	Nodes     uint64
	Algorithm ai.Algorithm
	// Canonical is the least equivalent position under the board's
	// symmetries.
	Canonical string
}

type CanonicalizeRequest struct {
	First ttt.Mark
	Moves []ttt.Move
}

func stringField(in *structpb.Struct, name string, required bool) (string, error) {
	v, ok := in.GetFields()[name]
	if !ok {
		if required {
			return "", fmt.Errorf("missing field %q", name)
		}
		return "", nil
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("field %q: want a string", name)
	}
	return s.StringValue, nil
}

func numberField(in *structpb.Struct, name string) (float64, error) {
	v, ok := in.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("missing field %q", name)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("field %q: want a number", name)
	}
	return n.NumberValue, nil
}

func encodeAnalyzeRequest(req *AnalyzeRequest) (*structpb.Struct, error) {
	fields := map[string]any{"position": req.Position}
	if req.Algorithm != 0 {
		fields["algorithm"] = req.Algorithm.String()
	}
	return structpb.NewStruct(fields)
}

func decodeAnalyzeRequest(in *structpb.Struct) (*AnalyzeRequest, error) {
	var req AnalyzeRequest
	var err error
	if req.Position, err = stringField(in, "position", true); err != nil {
		return nil, err
	}
	alg, err := stringField(in, "algorithm", false)
	if err != nil {
		return nil, err
	}
	if alg != "" {
		if req.Algorithm, err = ai.ParseAlgorithm(alg); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

func encodeAnalyzeResponse(resp *AnalyzeResponse) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"move":      int(resp.Move),
		"value":     resp.Value,
		"nodes":     resp.Nodes,
		"algorithm": resp.Algorithm.String(),
		"canonical": resp.Canonical,
	})
}

func decodeAnalyzeResponse(in *structpb.Struct) (*AnalyzeResponse, error) {
	var resp AnalyzeResponse
	move, err := numberField(in, "move")
	if err != nil {
		return nil, err
	}
	value, err := numberField(in, "value")
	if err != nil {
		return nil, err
	}
	nodes, err := numberField(in, "nodes")
	if err != nil {
		return nil, err
	}
	alg, err := stringField(in, "algorithm", true)
	if err != nil {
		return nil, err
	}
	if resp.Algorithm, err = ai.ParseAlgorithm(alg); err != nil {
		return nil, err
	}
	if resp.Canonical, err = stringField(in, "canonical", true); err != nil {
		return nil, err
	}
	resp.Move = ttt.Move(move)
	resp.Value = int(value)
	resp.Nodes = uint64(nodes)
	return &resp, nil
}

func encodeCanonicalizeRequest(req *CanonicalizeRequest) (*structpb.Struct, error) {
	fields := map[string]any{"moves": notation.FormatMoves(req.Moves)}
	if req.First != ttt.Empty {
		fields["first"] = req.First.String()
	}
	return structpb.NewStruct(fields)
}

func decodeCanonicalizeRequest(in *structpb.Struct) (*CanonicalizeRequest, error) {
	req := CanonicalizeRequest{First: ttt.X}
	first, err := stringField(in, "first", false)
	if err != nil {
		return nil, err
	}
	if first != "" {
		m, ok := ttt.ParseMark(first)
		if !ok {
			return nil, fmt.Errorf("bad first mover: %q", first)
		}
		req.First = m
	}
	moves, err := stringField(in, "moves", true)
	if err != nil {
		return nil, err
	}
	if req.Moves, err = notation.ParseMoves(moves); err != nil {
		return nil, err
	}
	return &req, nil
}
