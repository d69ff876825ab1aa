package rpc

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/gametree/tictac/ai"
	"github.com/gametree/tictac/ttt"
	"github.com/gametree/tictac/tttest"
)

func dial(t *testing.T, srv AnalyzerServer) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	RegisterAnalyzerServer(s, srv)
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewClient(conn)
}

func TestAnalyze(t *testing.T) {
	cl := dial(t, NewServer(ai.Config{}))
	ctx := context.Background()

	resp, err := cl.Analyze(ctx, "XX./OO./...", 0)
	require.NoError(t, err)
	assert.Equal(t, &AnalyzeResponse{
		Move:      3,
		Value:     1,
		Nodes:     36,
		Algorithm: ai.AlphaBeta,
		Canonical: ".../.OO/.XX",
	}, resp)

	resp, err = cl.Analyze(ctx, "XX./OO./...", ai.Minimax)
	require.NoError(t, err)
	assert.Equal(t, ai.Minimax, resp.Algorithm)
	assert.Equal(t, uint64(157), resp.Nodes)
	assert.Equal(t, ttt.Move(3), resp.Move)

	resp, err = cl.Analyze(ctx, "O../.../... o", 0)
	require.NoError(t, err)
	assert.Equal(t, ttt.Move(5), resp.Move)
	assert.Equal(t, ".../.../..O o", resp.Canonical)
}

func TestAnalyzeErrors(t *testing.T) {
	cl := dial(t, NewServer(ai.Config{}))
	ctx := context.Background()

	_, err := cl.Analyze(ctx, "XXX......", 0)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = cl.Analyze(ctx, "XXX/OO./...", 0)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	srv := NewServer(ai.Config{})
	in, err := structpb.NewStruct(map[string]any{"position": ".........", "algorithm": "negamax"})
	require.NoError(t, err)
	_, err = srv.Analyze(ctx, in)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	in, err = structpb.NewStruct(map[string]any{"position": 5})
	require.NoError(t, err)
	_, err = srv.Analyze(ctx, in)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	in, err = structpb.NewStruct(map[string]any{"position": "........."})
	require.NoError(t, err)
	_, err = srv.Analyze(canceled, in)
	assert.Equal(t, codes.Canceled, status.Code(err))
}

func TestCanonicalize(t *testing.T) {
	cl := dial(t, NewServer(ai.Config{}))
	ctx := context.Background()

	ms, err := cl.Canonicalize(ctx, ttt.X, tttest.Moves("9 5 1"))
	require.NoError(t, err)
	assert.Equal(t, tttest.Moves("1 5 9"), ms)

	ms, err = cl.Canonicalize(ctx, ttt.O, tttest.Moves("6"))
	require.NoError(t, err)
	assert.Equal(t, tttest.Moves("2"), ms)

	_, err = cl.Canonicalize(ctx, ttt.X, tttest.Moves("1 1"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
