package types

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The descriptors service exchanges well-known protobuf types: requests and
// responses travel as google.protobuf.Struct holding the same JSON objects
// the HTTP API uses.

const (
	DescriptorsServiceName = "qrplatba.DescriptorsService"

	DescriptorsServiceHealthMethod            = "/qrplatba.DescriptorsService/Health"
	DescriptorsServiceAccountToIbanMethod     = "/qrplatba.DescriptorsService/AccountToIban"
	DescriptorsServicePreviewDescriptorMethod = "/qrplatba.DescriptorsService/PreviewDescriptor"
	DescriptorsServiceCreateDescriptorMethod  = "/qrplatba.DescriptorsService/CreateDescriptor"
	DescriptorsServiceGetDescriptorMethod     = "/qrplatba.DescriptorsService/GetDescriptor"
	DescriptorsServiceListDescriptorsMethod   = "/qrplatba.DescriptorsService/ListDescriptors"
)

type DescriptorsServiceServer interface {
	Health(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	AccountToIban(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	PreviewDescriptor(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateDescriptor(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDescriptor(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ListDescriptors(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type UnimplementedDescriptorsServiceServer struct{}

func (UnimplementedDescriptorsServiceServer) Health(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Health not implemented")
}

func (UnimplementedDescriptorsServiceServer) AccountToIban(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method AccountToIban not implemented")
}

func (UnimplementedDescriptorsServiceServer) PreviewDescriptor(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method PreviewDescriptor not implemented")
}

func (UnimplementedDescriptorsServiceServer) CreateDescriptor(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateDescriptor not implemented")
}

func (UnimplementedDescriptorsServiceServer) GetDescriptor(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDescriptor not implemented")
}

func (UnimplementedDescriptorsServiceServer) ListDescriptors(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListDescriptors not implemented")
}

func RegisterDescriptorsServiceServer(s grpc.ServiceRegistrar, srv DescriptorsServiceServer) {
	s.RegisterService(&descriptorsServiceDesc, srv)
}

var descriptorsServiceDesc = grpc.ServiceDesc{
	ServiceName: DescriptorsServiceName,
	HandlerType: (*DescriptorsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Health",
			Handler: unaryHandler(DescriptorsServiceHealthMethod, func() *emptypb.Empty { return new(emptypb.Empty) },
				func(srv DescriptorsServiceServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
					return srv.Health(ctx, in)
				}),
		},
		{
			MethodName: "AccountToIban",
			Handler: unaryHandler(DescriptorsServiceAccountToIbanMethod, func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) },
				func(srv DescriptorsServiceServer, ctx context.Context, in *wrapperspb.StringValue) (interface{}, error) {
					return srv.AccountToIban(ctx, in)
				}),
		},
		{
			MethodName: "PreviewDescriptor",
			Handler: unaryHandler(DescriptorsServicePreviewDescriptorMethod, func() *structpb.Struct { return new(structpb.Struct) },
				func(srv DescriptorsServiceServer, ctx context.Context, in *structpb.Struct) (interface{}, error) {
					return srv.PreviewDescriptor(ctx, in)
				}),
		},
		{
			MethodName: "CreateDescriptor",
			Handler: unaryHandler(DescriptorsServiceCreateDescriptorMethod, func() *structpb.Struct { return new(structpb.Struct) },
				func(srv DescriptorsServiceServer, ctx context.Context, in *structpb.Struct) (interface{}, error) {
					return srv.CreateDescriptor(ctx, in)
				}),
		},
		{
			MethodName: "GetDescriptor",
			Handler: unaryHandler(DescriptorsServiceGetDescriptorMethod, func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) },
				func(srv DescriptorsServiceServer, ctx context.Context, in *wrapperspb.StringValue) (interface{}, error) {
					return srv.GetDescriptor(ctx, in)
				}),
		},
		{
			MethodName: "ListDescriptors",
			Handler: unaryHandler(DescriptorsServiceListDescriptorsMethod, func() *structpb.Struct { return new(structpb.Struct) },
				func(srv DescriptorsServiceServer, ctx context.Context, in *structpb.Struct) (interface{}, error) {
					return srv.ListDescriptors(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "qrplatba/descriptors",
}

func unaryHandler[Req any](
	fullMethod string,
	newReq func() Req,
	call func(srv DescriptorsServiceServer, ctx context.Context, in Req) (interface{}, error),
) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		server := srv.(DescriptorsServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(server, ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type DescriptorsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDescriptorsServiceClient(cc grpc.ClientConnInterface) *DescriptorsServiceClient {
	return &DescriptorsServiceClient{cc: cc}
}

func (c *DescriptorsServiceClient) Health(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DescriptorsServiceHealthMethod, new(emptypb.Empty), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DescriptorsServiceClient) AccountToIban(ctx context.Context, account string, opts ...grpc.CallOption) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, DescriptorsServiceAccountToIbanMethod, wrapperspb.String(account), out, opts...); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

func (c *DescriptorsServiceClient) PreviewDescriptor(ctx context.Context, req *EncodeDescriptorRequest, opts ...grpc.CallOption) (*PreviewDescriptorResponse, error) {
	in, err := ToStruct(req)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DescriptorsServicePreviewDescriptorMethod, in, out, opts...); err != nil {
		return nil, err
	}
	var res PreviewDescriptorResponse
	if err := FromStruct(out, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *DescriptorsServiceClient) CreateDescriptor(ctx context.Context, req *EncodeDescriptorRequest, opts ...grpc.CallOption) (*DescriptorEnvelopeResponse, error) {
	in, err := ToStruct(req)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DescriptorsServiceCreateDescriptorMethod, in, out, opts...); err != nil {
		return nil, err
	}
	var res DescriptorEnvelopeResponse
	if err := FromStruct(out, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *DescriptorsServiceClient) GetDescriptor(ctx context.Context, reference string, opts ...grpc.CallOption) (*DescriptorEnvelopeResponse, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DescriptorsServiceGetDescriptorMethod, wrapperspb.String(reference), out, opts...); err != nil {
		return nil, err
	}
	var res DescriptorEnvelopeResponse
	if err := FromStruct(out, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *DescriptorsServiceClient) ListDescriptors(ctx context.Context, req *ListDescriptorsRequest, opts ...grpc.CallOption) (*ListDescriptorsResponse, error) {
	in, err := ToStruct(req)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DescriptorsServiceListDescriptorsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	var res ListDescriptorsResponse
	if err := FromStruct(out, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ToStruct converts any JSON-serializable value into a protobuf Struct.
func ToStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

// FromStruct decodes a protobuf Struct into v through its JSON form.
func FromStruct(in *structpb.Struct, v interface{}) error {
	raw, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
