package grpcstore

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// CarrierStoreServer is the server API for the carrier-store gRPC service.
//
// We intentionally use protobuf well-known wrapper types so this package does
// not require a protoc/codegen toolchain.
//
// Proto definition: carrierstore.proto.
type CarrierStoreServer interface {
	Put(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	Get(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	Has(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
}

// UnimplementedCarrierStoreServer can be embedded to have forward compatible implementations.
type UnimplementedCarrierStoreServer struct{}

func (UnimplementedCarrierStoreServer) Put(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Put not implemented")
}
func (UnimplementedCarrierStoreServer) Get(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedCarrierStoreServer) Has(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Has not implemented")
}

// RegisterCarrierStoreServer registers the carrier-store service on a gRPC server.
func RegisterCarrierStoreServer(s grpc.ServiceRegistrar, srv CarrierStoreServer) {
	s.RegisterService(&CarrierStore_ServiceDesc, srv)
}

// CarrierStoreClient is the client API for the carrier-store gRPC service.
type CarrierStoreClient interface {
	Put(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Get(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Has(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
}

type carrierStoreClient struct{ cc grpc.ClientConnInterface }

func NewCarrierStoreClient(cc grpc.ClientConnInterface) CarrierStoreClient {
	return &carrierStoreClient{cc: cc}
}

func (c *carrierStoreClient) Put(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, "/stegpng.storage.v1.CarrierStore/Put", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *carrierStoreClient) Get(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/stegpng.storage.v1.CarrierStore/Get", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *carrierStoreClient) Has(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	err := c.cc.Invoke(ctx, "/stegpng.storage.v1.CarrierStore/Has", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _CarrierStore_Put_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CarrierStoreServer).Put(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/stegpng.storage.v1.CarrierStore/Put"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CarrierStoreServer).Put(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _CarrierStore_Get_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CarrierStoreServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/stegpng.storage.v1.CarrierStore/Get"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CarrierStoreServer).Get(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _CarrierStore_Has_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CarrierStoreServer).Has(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/stegpng.storage.v1.CarrierStore/Has"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CarrierStoreServer).Has(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// CarrierStore_ServiceDesc is the grpc.ServiceDesc for the carrier-store service.
var CarrierStore_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "stegpng.storage.v1.CarrierStore",
	HandlerType: (*CarrierStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Put", Handler: _CarrierStore_Put_Handler},
		{MethodName: "Get", Handler: _CarrierStore_Get_Handler},
		{MethodName: "Has", Handler: _CarrierStore_Has_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "carrierstore.proto",
}
