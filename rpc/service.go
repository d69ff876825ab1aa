// Package rpc serves position analysis over gRPC. Messages are
// google.protobuf.Struct values, so the service needs no generated
// code:
//
//	Analyze      {position, algorithm} -> {move, value, nodes, canonical}
//	Canonicalize {first, moves}        -> {moves}
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "tictac.Analyzer"

const (
	analyzeMethod      = "/" + ServiceName + "/Analyze"
	canonicalizeMethod = "/" + ServiceName + "/Canonicalize"
)

// AnalyzerServer is the server API for the Analyzer service.
type AnalyzerServer interface {
	Analyze(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Canonicalize(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterAnalyzerServer(s grpc.ServiceRegistrar, srv AnalyzerServer) {
	s.RegisterService(&analyzerServiceDesc, srv)
}

func analyzeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyzerServer).Analyze(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: analyzeMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AnalyzerServer).Analyze(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func canonicalizeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyzerServer).Canonicalize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: canonicalizeMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AnalyzerServer).Canonicalize(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var analyzerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalyzerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Analyze", Handler: analyzeHandler},
		{MethodName: "Canonicalize", Handler: canonicalizeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tictac/analyzer",
}
