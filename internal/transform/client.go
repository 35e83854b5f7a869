package transform

import (
	"context"

	"svgjsx/internal/meta"
	"svgjsx/internal/svgr"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Request is one transformation call.
type Request struct {
	Source  string
	Options svgr.Options
	State   svgr.State
}

type Metadata struct {
	Name    string
	Version string
	Stages  []string
}

type Health struct {
	OK      bool
	Details string
}

// Transformer converts SVG source into component code. Errors are returned
// as produced by the underlying pipeline or transport.
type Transformer interface {
	Metadata(ctx context.Context) (Metadata, error)
	Health(ctx context.Context) (Health, error)
	Transform(ctx context.Context, req Request) (string, error)
	Close() error
}

// InProcessClient runs the svgr pipeline compiled into the binary.
type InProcessClient struct {
	pkg meta.Package
}

func NewInProcessClient(pkg meta.Package) *InProcessClient { return &InProcessClient{pkg: pkg} }

func (c *InProcessClient) Metadata(context.Context) (Metadata, error) {
	return Metadata{
		Name:    c.pkg.Name,
		Version: c.pkg.Version,
		Stages:  []string{svgr.StageSVGO, svgr.StageJSX, svgr.StagePrettier},
	}, nil
}

func (c *InProcessClient) Health(context.Context) (Health, error) {
	return Health{OK: true, Details: "OK"}, nil
}

func (c *InProcessClient) Transform(ctx context.Context, req Request) (string, error) {
	return svgr.Transform(ctx, req.Source, req.Options, req.State)
}

func (c *InProcessClient) Close() error { return nil }

// GRPCClient calls a transformer served by transport.Server.
type GRPCClient struct {
	conn *grpc.ClientConn
}

func NewGRPCClient(target string, opts ...grpc.DialOption) (*GRPCClient, error) {
	if len(opts) == 0 {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &GRPCClient{conn: conn}, nil
}

func (c *GRPCClient) Metadata(ctx context.Context) (Metadata, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, MethodMetadata, &emptypb.Empty{}, out); err != nil {
		return Metadata{}, err
	}
	return DecodeMetadata(out), nil
}

func (c *GRPCClient) Health(ctx context.Context) (Health, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, MethodHealth, &emptypb.Empty{}, out); err != nil {
		return Health{}, err
	}
	return DecodeHealth(out), nil
}

func (c *GRPCClient) Transform(ctx context.Context, req Request) (string, error) {
	in, err := EncodeRequest(req)
	if err != nil {
		return "", err
	}
	out := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, MethodTransform, in, out); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

func (c *GRPCClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
