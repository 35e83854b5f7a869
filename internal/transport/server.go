package transport

import (
	"context"
	"net"

	"svgjsx/internal/transform"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server exposes a transform.Transformer over gRPC.
type Server struct {
	grpc *grpc.Server
	lis  net.Listener
}

func StartServer(addr string, impl transform.Transformer, opts ...grpc.ServerOption) (*Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewServer(lis, impl, opts...), nil
}

// NewServer registers impl on lis without starting to serve.
func NewServer(lis net.Listener, impl transform.Transformer, opts ...grpc.ServerOption) *Server {
	s := &Server{
		grpc: grpc.NewServer(opts...),
		lis:  lis,
	}
	s.grpc.RegisterService(&serviceDesc, &transformerServer{impl: impl})
	return s
}

func (s *Server) Addr() net.Addr { return s.lis.Addr() }

func (s *Server) Serve() error {
	return s.grpc.Serve(s.lis)
}

func (s *Server) Stop() {
	s.grpc.GracefulStop()
}

// ----- service ------------------------------------------------------------

type transformerService interface {
	Metadata(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Health(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Transform(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
}

type transformerServer struct {
	impl transform.Transformer
}

func (s *transformerServer) Metadata(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	m, err := s.impl.Metadata(ctx)
	if err != nil {
		return nil, err
	}
	return transform.EncodeMetadata(m)
}

func (s *transformerServer) Health(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	h, err := s.impl.Health(ctx)
	if err != nil {
		return nil, err
	}
	return transform.EncodeHealth(h)
}

func (s *transformerServer) Transform(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
	req, err := transform.DecodeRequest(in)
	if err != nil {
		return nil, err
	}
	code, err := s.impl.Transform(ctx, req)
	if err != nil {
		return nil, err
	}
	return wrapperspb.String(code), nil
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: transform.ServiceName,
	HandlerType: (*transformerService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Metadata", Handler: unary(transform.MethodMetadata, func(srv transformerService, ctx context.Context, in *emptypb.Empty) (any, error) {
			return srv.Metadata(ctx, in)
		})},
		{MethodName: "Health", Handler: unary(transform.MethodHealth, func(srv transformerService, ctx context.Context, in *emptypb.Empty) (any, error) {
			return srv.Health(ctx, in)
		})},
		{MethodName: "Transform", Handler: unary(transform.MethodTransform, func(srv transformerService, ctx context.Context, in *structpb.Struct) (any, error) {
			return srv.Transform(ctx, in)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "svgjsx/transformer",
}

// unary adapts a typed handler to grpc's method handler signature.
func unary[Req any, PReq interface {
	*Req
}](method string, call func(transformerService, context.Context, PReq) (any, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		svc := srv.(transformerService)
		if interceptor == nil {
			return call(svc, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(svc, ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}
