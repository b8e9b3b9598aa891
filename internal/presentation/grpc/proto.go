package grpc

// proto.go hand-writes the service descriptor for smartloan.v1.EligibilityService.
// Messages are the application dto types, carried by the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/NimalpudiAshrita/smartloan/internal/application/dto"
)

const (
	ServiceName          = "smartloan.v1.EligibilityService"
	EvaluateFullMethod   = "/" + ServiceName + "/Evaluate"
	ScheduleFullMethod   = "/" + ServiceName + "/Schedule"
	ListOffersFullMethod = "/" + ServiceName + "/ListOffers"
)

// EligibilityServiceServer is the server API for EligibilityService.
type EligibilityServiceServer interface {
	Evaluate(context.Context, *dto.EvaluateEligibilityRequest) (*dto.EligibilityResponse, error)
	Schedule(context.Context, *dto.ScheduleRequest) (*dto.ScheduleResponse, error)
	ListOffers(context.Context, *dto.ListOffersRequest) (*dto.ListOffersResponse, error)
	mustEmbedUnimplementedEligibilityServiceServer()
}

// UnimplementedEligibilityServiceServer provides forward-compatible default implementations.
type UnimplementedEligibilityServiceServer struct{}

func (UnimplementedEligibilityServiceServer) Evaluate(context.Context, *dto.EvaluateEligibilityRequest) (*dto.EligibilityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Evaluate not implemented")
}
func (UnimplementedEligibilityServiceServer) Schedule(context.Context, *dto.ScheduleRequest) (*dto.ScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Schedule not implemented")
}
func (UnimplementedEligibilityServiceServer) ListOffers(context.Context, *dto.ListOffersRequest) (*dto.ListOffersResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListOffers not implemented")
}
func (UnimplementedEligibilityServiceServer) mustEmbedUnimplementedEligibilityServiceServer() {}

// RegisterEligibilityServiceServer registers the EligibilityServiceServer with the gRPC server.
func RegisterEligibilityServiceServer(s *grpclib.Server, srv EligibilityServiceServer) {
	s.RegisterService(&_EligibilityService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _EligibilityService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EligibilityServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Evaluate", Handler: _EligibilityService_Evaluate_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "Schedule", Handler: _EligibilityService_Schedule_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "ListOffers", Handler: _EligibilityService_ListOffers_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _EligibilityService_Evaluate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.EvaluateEligibilityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EligibilityServiceServer).Evaluate(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: EvaluateFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EligibilityServiceServer).Evaluate(ctx, req.(*dto.EvaluateEligibilityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _EligibilityService_Schedule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.ScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EligibilityServiceServer).Schedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: ScheduleFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EligibilityServiceServer).Schedule(ctx, req.(*dto.ScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _EligibilityService_ListOffers_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.ListOffersRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EligibilityServiceServer).ListOffers(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: ListOffersFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EligibilityServiceServer).ListOffers(ctx, req.(*dto.ListOffersRequest))
	}
	return interceptor(ctx, in, info, handler)
}
