// Package grpcapi exposes the config service over gRPC as
// equity.v1.ConfigService. Messages are protobuf well-known types, so the
// service descriptor is declared by hand and needs no generated code:
//
//	rpc Validate(google.protobuf.Struct) returns (google.protobuf.Empty)
//	rpc Resolve(google.protobuf.Struct) returns (google.protobuf.Struct)
//
// The preset name travels in the x-equity-preset metadata key.
package grpcapi

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/equity-backend/internal/equity"
)

const (
	ServiceName       = "equity.v1.ConfigService"
	PresetMetadataKey = "x-equity-preset"

	validateMethod = "/" + ServiceName + "/Validate"
	resolveMethod  = "/" + ServiceName + "/Resolve"
)

// ConfigServer is the server API of equity.v1.ConfigService.
type ConfigServer interface {
	Validate(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Resolve(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// Service is the application layer behind the server.
type Service interface {
	Validate(ctx context.Context, preset string, raw equity.Raw) error
	Resolve(ctx context.Context, preset string, raw equity.Raw) (equity.Resolved, error)
}

// Server adapts a Service to ConfigServer.
type Server struct {
	svc Service
	log *zap.SugaredLogger
}

func NewServer(svc Service, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{svc: svc, log: log}
}

// Register adds the service to s.
func Register(s grpc.ServiceRegistrar, srv ConfigServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func (s *Server) Validate(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	if err := s.svc.Validate(ctx, presetFrom(ctx), rawFrom(in)); err != nil {
		return nil, s.handleError(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) Resolve(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	out, err := s.svc.Resolve(ctx, presetFrom(ctx), rawFrom(in))
	if err != nil {
		return nil, s.handleError(err)
	}
	st, err := structpb.NewStruct(out.Raw())
	if err != nil {
		return nil, s.handleError(err)
	}
	return st, nil
}

func (s *Server) handleError(err error) error {
	st := HandleError(err)
	if isInternal(st) {
		s.log.Errorw("config rpc failed", "error", err)
	}
	return st
}

func presetFrom(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if v := md.Get(PresetMetadataKey); len(v) > 0 {
		return v[0]
	}
	return ""
}

func rawFrom(in *structpb.Struct) equity.Raw {
	if in == nil {
		return equity.Raw{}
	}
	return equity.Raw(in.AsMap())
}

// ServiceDesc describes equity.v1.ConfigService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ConfigServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Validate", Handler: validateHandler},
		{MethodName: "Resolve", Handler: resolveHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "equity/v1/config.proto",
}

func validateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConfigServer).Validate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: validateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConfigServer).Validate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func resolveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConfigServer).Resolve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: resolveMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ConfigServer).Resolve(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
