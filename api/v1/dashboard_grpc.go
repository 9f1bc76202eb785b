// Package v1 holds the gRPC contract of the dashboard service described in
// dashboard.proto. Requests and responses are well-known types, so only the
// service plumbing lives here.
package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	Dashboard_ServiceName                     = "alwefod.v1.Dashboard"
	Dashboard_GetDashboard_FullMethodName     = "/alwefod.v1.Dashboard/GetDashboard"
	Dashboard_GetProject_FullMethodName       = "/alwefod.v1.Dashboard/GetProject"
	Dashboard_RefreshDashboard_FullMethodName = "/alwefod.v1.Dashboard/RefreshDashboard"
)

// DashboardClient is the client API for the Dashboard service.
type DashboardClient interface {
	GetDashboard(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetProject(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	RefreshDashboard(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type dashboardClient struct {
	cc grpc.ClientConnInterface
}

func NewDashboardClient(cc grpc.ClientConnInterface) DashboardClient {
	return &dashboardClient{cc}
}

func (c *dashboardClient) GetDashboard(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Dashboard_GetDashboard_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dashboardClient) GetProject(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Dashboard_GetProject_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *dashboardClient) RefreshDashboard(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Dashboard_RefreshDashboard_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// DashboardServer is the server API for the Dashboard service. Embed
// UnimplementedDashboardServer for forward compatibility.
type DashboardServer interface {
	GetDashboard(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetProject(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	RefreshDashboard(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	mustEmbedUnimplementedDashboardServer()
}

type UnimplementedDashboardServer struct{}

func (UnimplementedDashboardServer) GetDashboard(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDashboard not implemented")
}

func (UnimplementedDashboardServer) GetProject(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProject not implemented")
}

func (UnimplementedDashboardServer) RefreshDashboard(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshDashboard not implemented")
}

func (UnimplementedDashboardServer) mustEmbedUnimplementedDashboardServer() {}

func RegisterDashboardServer(s grpc.ServiceRegistrar, srv DashboardServer) {
	s.RegisterService(&Dashboard_ServiceDesc, srv)
}

func _Dashboard_GetDashboard_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServer).GetDashboard(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Dashboard_GetDashboard_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DashboardServer).GetDashboard(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Dashboard_GetProject_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServer).GetProject(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Dashboard_GetProject_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DashboardServer).GetProject(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Dashboard_RefreshDashboard_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServer).RefreshDashboard(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Dashboard_RefreshDashboard_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DashboardServer).RefreshDashboard(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Dashboard_ServiceDesc is the grpc.ServiceDesc for the Dashboard service.
var Dashboard_ServiceDesc = grpc.ServiceDesc{
	ServiceName: Dashboard_ServiceName,
	HandlerType: (*DashboardServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetDashboard",
			Handler:    _Dashboard_GetDashboard_Handler,
		},
		{
			MethodName: "GetProject",
			Handler:    _Dashboard_GetProject_Handler,
		},
		{
			MethodName: "RefreshDashboard",
			Handler:    _Dashboard_RefreshDashboard_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "alwefod/v1/dashboard.proto",
}
