package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/bibbank/accountmodel/pkg/auth"
)

// ServerConfig holds listener settings.
type ServerConfig struct {
	Port        int
	ServiceName string
	Reflection  bool
	// Creds enables TLS when set.
	Creds credentials.TransportCredentials
}

// Server wraps the gRPC server with account service handlers.
type Server struct {
	grpcServer   *grpc.Server
	healthServer *health.Server
	cfg          ServerConfig
	logger       *slog.Logger
}

// NewServer creates a new gRPC server with the provided handler. Health methods skip
// authentication and RegisterAccount requires a writer role.
func NewServer(handler AccountServiceServer, cfg ServerConfig, logger *slog.Logger, jwtService *auth.JWTService) *Server {
	authInterceptor := auth.UnaryAuthInterceptor(jwtService,
		[]string{
			"/grpc.health.v1.Health/Check",
			"/grpc.health.v1.Health/Watch",
		},
		map[string][]string{
			MethodRegisterAccount: {auth.RoleAccountWriter, auth.RoleAdmin},
		},
	)

	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(loggingInterceptor(logger), authInterceptor),
	}
	if cfg.Creds != nil {
		opts = append(opts, grpc.Creds(cfg.Creds))
	}

	grpcServer := grpc.NewServer(opts...)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	RegisterAccountServiceServer(grpcServer, handler)

	if cfg.Reflection {
		reflection.Register(grpcServer)
	}

	return &Server{
		grpcServer:   grpcServer,
		healthServer: healthServer,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start listens on the configured port and serves until Stop.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.cfg.Port, err)
	}
	return s.Serve(listener)
}

// Serve accepts connections on lis.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC server starting", "addr", lis.Addr().String(), "tls", s.cfg.Creds != nil)
	s.healthServer.SetServingStatus(s.cfg.ServiceName, healthpb.HealthCheckResponse_SERVING)
	s.healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	if err := s.grpcServer.Serve(lis); err != nil {
		return fmt.Errorf("gRPC server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the gRPC server.
func (s *Server) Stop() {
	s.logger.Info("stopping gRPC server")
	s.healthServer.Shutdown()
	s.grpcServer.GracefulStop()
}

func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.DebugContext(ctx, "grpc call",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration", time.Since(start),
		)
		return resp, err
	}
}
