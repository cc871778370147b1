// Package v1 defines the airsat.v1.SatisfactionPredictor gRPC service. Request
// and response payloads are google.protobuf.Struct messages whose fields are
// documented on each method.
package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "airsat.v1.SatisfactionPredictor"

const (
	SatisfactionPredictor_Predict_FullMethodName         = "/airsat.v1.SatisfactionPredictor/Predict"
	SatisfactionPredictor_ListModels_FullMethodName      = "/airsat.v1.SatisfactionPredictor/ListModels"
	SatisfactionPredictor_GetDashboard_FullMethodName    = "/airsat.v1.SatisfactionPredictor/GetDashboard"
	SatisfactionPredictor_ListPredictions_FullMethodName = "/airsat.v1.SatisfactionPredictor/ListPredictions"
)

// SatisfactionPredictorServer is the server API for the predictor service.
type SatisfactionPredictorServer interface {
	// Predict takes {"model": string, "input": {<form field>: string|number}}
	// and returns {"id", "model", "label", "class", "probabilities", "features"}.
	Predict(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// ListModels returns {"models": [string]}.
	ListModels(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	// GetDashboard returns {"top_airlines", "satisfaction_trend", "common_issues"}.
	GetDashboard(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	// ListPredictions takes {"limit": number} and returns {"predictions", "label_counts"}.
	ListPredictions(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedSatisfactionPredictorServer can be embedded to have forward
// compatible implementations.
type UnimplementedSatisfactionPredictorServer struct{}

func (UnimplementedSatisfactionPredictorServer) Predict(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Predict not implemented")
}

func (UnimplementedSatisfactionPredictorServer) ListModels(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListModels not implemented")
}

func (UnimplementedSatisfactionPredictorServer) GetDashboard(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDashboard not implemented")
}

func (UnimplementedSatisfactionPredictorServer) ListPredictions(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPredictions not implemented")
}

func RegisterSatisfactionPredictorServer(s grpc.ServiceRegistrar, srv SatisfactionPredictorServer) {
	s.RegisterService(&SatisfactionPredictor_ServiceDesc, srv)
}

func _SatisfactionPredictor_Predict_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SatisfactionPredictorServer).Predict(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SatisfactionPredictor_Predict_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SatisfactionPredictorServer).Predict(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _SatisfactionPredictor_ListModels_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SatisfactionPredictorServer).ListModels(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SatisfactionPredictor_ListModels_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SatisfactionPredictorServer).ListModels(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _SatisfactionPredictor_GetDashboard_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SatisfactionPredictorServer).GetDashboard(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SatisfactionPredictor_GetDashboard_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SatisfactionPredictorServer).GetDashboard(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _SatisfactionPredictor_ListPredictions_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SatisfactionPredictorServer).ListPredictions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SatisfactionPredictor_ListPredictions_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SatisfactionPredictorServer).ListPredictions(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// SatisfactionPredictor_ServiceDesc is the grpc.ServiceDesc for the predictor service.
var SatisfactionPredictor_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SatisfactionPredictorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Predict", Handler: _SatisfactionPredictor_Predict_Handler},
		{MethodName: "ListModels", Handler: _SatisfactionPredictor_ListModels_Handler},
		{MethodName: "GetDashboard", Handler: _SatisfactionPredictor_GetDashboard_Handler},
		{MethodName: "ListPredictions", Handler: _SatisfactionPredictor_ListPredictions_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "airsat/v1/predictor.proto",
}

// SatisfactionPredictorClient is the client API for the predictor service.
type SatisfactionPredictorClient interface {
	Predict(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListModels(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetDashboard(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListPredictions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type satisfactionPredictorClient struct {
	cc grpc.ClientConnInterface
}

func NewSatisfactionPredictorClient(cc grpc.ClientConnInterface) SatisfactionPredictorClient {
	return &satisfactionPredictorClient{cc}
}

func (c *satisfactionPredictorClient) Predict(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SatisfactionPredictor_Predict_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *satisfactionPredictorClient) ListModels(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SatisfactionPredictor_ListModels_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *satisfactionPredictorClient) GetDashboard(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SatisfactionPredictor_GetDashboard_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *satisfactionPredictorClient) ListPredictions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SatisfactionPredictor_ListPredictions_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
