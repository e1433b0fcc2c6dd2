package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The directory service is described by hand over protobuf well-known types,
// so no generated stubs are needed. A user travels as a Struct with the keys
// id (number), name, email and role (strings).
const (
	ServiceName = "directory.v1.UserDirectory"

	ListUsersMethod  = "/" + ServiceName + "/ListUsers"
	CreateUserMethod = "/" + ServiceName + "/CreateUser"
	UpdateUserMethod = "/" + ServiceName + "/UpdateUser"
	DeleteUserMethod = "/" + ServiceName + "/DeleteUser"
	ListRolesMethod  = "/" + ServiceName + "/ListRoles"
)

// UserDirectoryServer is the server API for the directory service.
type UserDirectoryServer interface {
	ListUsers(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	CreateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteUser(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
	ListRoles(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
}

// UserDirectoryServiceDesc is the grpc.ServiceDesc for UserDirectoryServer.
var UserDirectoryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserDirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListUsers",
			Handler: unaryHandler(ListUsersMethod, func(s UserDirectoryServer, ctx context.Context, in *emptypb.Empty) (proto.Message, error) {
				return s.ListUsers(ctx, in)
			}),
		},
		{
			MethodName: "CreateUser",
			Handler: unaryHandler(CreateUserMethod, func(s UserDirectoryServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
				return s.CreateUser(ctx, in)
			}),
		},
		{
			MethodName: "UpdateUser",
			Handler: unaryHandler(UpdateUserMethod, func(s UserDirectoryServer, ctx context.Context, in *structpb.Struct) (proto.Message, error) {
				return s.UpdateUser(ctx, in)
			}),
		},
		{
			MethodName: "DeleteUser",
			Handler: unaryHandler(DeleteUserMethod, func(s UserDirectoryServer, ctx context.Context, in *wrapperspb.Int64Value) (proto.Message, error) {
				return s.DeleteUser(ctx, in)
			}),
		},
		{
			MethodName: "ListRoles",
			Handler: unaryHandler(ListRolesMethod, func(s UserDirectoryServer, ctx context.Context, in *emptypb.Empty) (proto.Message, error) {
				return s.ListRoles(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "directory/v1/directory.proto",
}

// RegisterUserDirectoryServer registers srv on s.
func RegisterUserDirectoryServer(s grpc.ServiceRegistrar, srv UserDirectoryServer) {
	s.RegisterService(&UserDirectoryServiceDesc, srv)
}

// unaryHandler adapts a typed call into a MethodDesc handler, running the
// server's interceptor chain when one is installed.
func unaryHandler[T any, Req interface {
	*T
	proto.Message
}](fullMethod string, call func(UserDirectoryServer, context.Context, Req) (proto.Message, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := Req(new(T))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(UserDirectoryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(UserDirectoryServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
