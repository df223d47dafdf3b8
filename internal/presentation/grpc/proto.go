package grpc

// proto.go defines the gRPC service for bib/accountmodel/v1/account.proto by hand.
// Messages travel with the "json" content subtype registered in codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	serviceName = "bib.accountmodel.v1.AccountService"

	MethodValidateAccount  = "/" + serviceName + "/ValidateAccount"
	MethodRegisterAccount  = "/" + serviceName + "/RegisterAccount"
	MethodInitiateTransfer = "/" + serviceName + "/InitiateTransfer"
)

// AccountServiceServer is the server API for AccountService.
type AccountServiceServer interface {
	ValidateAccount(context.Context, *ValidateAccountRequest) (*ValidateAccountResponse, error)
	RegisterAccount(context.Context, *RegisterAccountRequest) (*RegisterAccountResponse, error)
	InitiateTransfer(context.Context, *InitiateTransferRequest) (*InitiateTransferResponse, error)
	mustEmbedUnimplementedAccountServiceServer()
}

// UnimplementedAccountServiceServer provides forward-compatible default implementations.
type UnimplementedAccountServiceServer struct{}

func (UnimplementedAccountServiceServer) ValidateAccount(context.Context, *ValidateAccountRequest) (*ValidateAccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ValidateAccount not implemented")
}
func (UnimplementedAccountServiceServer) RegisterAccount(context.Context, *RegisterAccountRequest) (*RegisterAccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RegisterAccount not implemented")
}
func (UnimplementedAccountServiceServer) InitiateTransfer(context.Context, *InitiateTransferRequest) (*InitiateTransferResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method InitiateTransfer not implemented")
}
func (UnimplementedAccountServiceServer) mustEmbedUnimplementedAccountServiceServer() {}

// RegisterAccountServiceServer registers the AccountServiceServer with the gRPC server.
func RegisterAccountServiceServer(s grpclib.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&accountServiceDesc, srv)
}

var accountServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ValidateAccount", Handler: validateAccountHandler},
		{MethodName: "RegisterAccount", Handler: registerAccountHandler},
		{MethodName: "InitiateTransfer", Handler: initiateTransferHandler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "bib/accountmodel/v1/account.proto",
}

// unary adapts one typed method to the grpc.MethodDesc handler signature.
func unary[Req, Resp any](
	fullMethod string,
	call func(AccountServiceServer, context.Context, *Req) (*Resp, error),
) func(any, context.Context, func(any) error, grpclib.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AccountServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AccountServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var (
	validateAccountHandler  = unary(MethodValidateAccount, AccountServiceServer.ValidateAccount)
	registerAccountHandler  = unary(MethodRegisterAccount, AccountServiceServer.RegisterAccount)
	initiateTransferHandler = unary(MethodInitiateTransfer, AccountServiceServer.InitiateTransfer)
)
