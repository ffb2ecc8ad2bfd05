package grpcapi

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/equity-backend/internal/equity"
)

// Client calls equity.v1.ConfigService.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Validate(ctx context.Context, preset string, raw equity.Raw, opts ...grpc.CallOption) error {
	in, err := toStruct(raw)
	if err != nil {
		return err
	}
	return c.cc.Invoke(withPreset(ctx, preset), validateMethod, in, new(emptypb.Empty), opts...)
}

// Resolve returns the resolved configuration in wire form.
func (c *Client) Resolve(ctx context.Context, preset string, raw equity.Raw, opts ...grpc.CallOption) (equity.Raw, error) {
	in, err := toStruct(raw)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(withPreset(ctx, preset), resolveMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return equity.Raw(out.AsMap()), nil
}

func withPreset(ctx context.Context, preset string) context.Context {
	if preset == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, PresetMetadataKey, preset)
}

// toStruct encodes raw; []string values, which structpb rejects, become lists.
func toStruct(raw equity.Raw) (*structpb.Struct, error) {
	m := make(map[string]any, len(raw))
	for k, v := range raw {
		if ss, ok := v.([]string); ok {
			l := make([]any, len(ss))
			for i, s := range ss {
				l[i] = s
			}
			v = l
		}
		m[k] = v
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return st, nil
}
