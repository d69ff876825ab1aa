package serve

import (
	"context"
	"flag"
	"fmt"
	"net"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/netutil"
	"google.golang.org/grpc"

	"github.com/gametree/tictac/cmd/internal/opt"
	"github.com/gametree/tictac/rpc"
)

type Command struct {
	port     int
	maxConns int
	opt      opt.Search
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Serve position analysis via gRPC" }
func (*Command) Usage() string {
	return `serve [flags]

Serve the tictac.Analyzer gRPC service.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.port, "port", 55430, "bind port")
	flags.IntVar(&c.maxConns, "max-conns", 64, "maximum simultaneous connections")
	c.opt.AddFlags(flags)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opt.SetupLogging(c.opt.Debug)
	cfg, err := c.opt.BuildConfig()
	if err != nil {
		log.Error().Err(err).Msg("serve")
		return subcommands.ExitUsageError
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", c.port))
	if err != nil {
		log.Error().Err(err).Int("port", c.port).Msg("failed to listen")
		return subcommands.ExitFailure
	}
	if c.maxConns > 0 {
		lis = netutil.LimitListener(lis, c.maxConns)
	}
	grpcServer := grpc.NewServer()
	rpc.RegisterAnalyzerServer(grpcServer, rpc.NewServer(cfg))

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()
	log.Info().Int("port", c.port).Msg("listening")
	if err := grpcServer.Serve(lis); err != nil {
		log.Error().Err(err).Msg("serve")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
