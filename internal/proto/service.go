// Package proto describes the ProfileService gRPC API.
//
// Messages are protobuf well-known types so no generated code is needed:
// records travel as google.protobuf.Struct with string values, identities as
// google.protobuf.StringValue. Requests and responses are encoded with the
// default gRPC proto codec.
//
//	Register(Struct{email, password, <profile fields>})  -> Empty
//	Login(Struct{email, password})                        -> Struct{access_token, profile}
//	Lookup(StringValue email)                             -> Struct profile
//	Update(Struct{email, fields: Struct})                 -> Empty
//	Ping(Empty)                                           -> StringValue "OK"
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "profilekeeper.ProfileService"

const (
	MethodRegister = "/" + ServiceName + "/Register"
	MethodLogin    = "/" + ServiceName + "/Login"
	MethodLookup   = "/" + ServiceName + "/Lookup"
	MethodUpdate   = "/" + ServiceName + "/Update"
	MethodPing     = "/" + ServiceName + "/Ping"
)

// Message keys.
const (
	KeyEmail       = "email"
	KeyPassword    = "password"
	KeyFields      = "fields"
	KeyAccessToken = "access_token"
	KeyProfile     = "profile"
)

// PingOK is the Ping reply of a healthy server.
const PingOK = "OK"

// ProfileServiceServer is implemented by the server.
type ProfileServiceServer interface {
	Register(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Lookup(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Update(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

// UnimplementedProfileServiceServer answers every method with Unimplemented.
// Embed it to stay forward compatible.
type UnimplementedProfileServiceServer struct{}

func (UnimplementedProfileServiceServer) Register(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedProfileServiceServer) Login(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedProfileServiceServer) Lookup(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Lookup not implemented")
}
func (UnimplementedProfileServiceServer) Update(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Update not implemented")
}
func (UnimplementedProfileServiceServer) Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

// RegisterProfileServiceServer attaches srv to a gRPC server.
func RegisterProfileServiceServer(s grpc.ServiceRegistrar, srv ProfileServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary builds a method handler that decodes Req and dispatches through the
// interceptor chain.
func unary[Req any](fullMethod string, call func(ProfileServiceServer, context.Context, *Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ProfileServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ProfileServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc is the descriptor registered with grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProfileServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(MethodRegister, func(s ProfileServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
			return s.Register(ctx, in)
		})},
		{MethodName: "Login", Handler: unary(MethodLogin, func(s ProfileServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
			return s.Login(ctx, in)
		})},
		{MethodName: "Lookup", Handler: unary(MethodLookup, func(s ProfileServiceServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
			return s.Lookup(ctx, in)
		})},
		{MethodName: "Update", Handler: unary(MethodUpdate, func(s ProfileServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
			return s.Update(ctx, in)
		})},
		{MethodName: "Ping", Handler: unary(MethodPing, func(s ProfileServiceServer, ctx context.Context, in *emptypb.Empty) (any, error) {
			return s.Ping(ctx, in)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "profilekeeper/profile_service.proto",
}

// ProfileServiceClient is the client API of ProfileService.
type ProfileServiceClient interface {
	Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Lookup(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	Update(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type profileServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewProfileServiceClient(cc grpc.ClientConnInterface) ProfileServiceClient {
	return &profileServiceClient{cc: cc}
}

func (c *profileServiceClient) Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, MethodRegister, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *profileServiceClient) Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodLogin, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *profileServiceClient) Lookup(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodLookup, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *profileServiceClient) Update(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, MethodUpdate, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *profileServiceClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, MethodPing, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
