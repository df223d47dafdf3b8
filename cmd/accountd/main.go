package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bibbank/accountmodel/internal/application/usecase"
	"github.com/bibbank/accountmodel/internal/infrastructure/accountapi"
	"github.com/bibbank/accountmodel/internal/infrastructure/config"
	infraKafka "github.com/bibbank/accountmodel/internal/infrastructure/kafka"
	grpcPresentation "github.com/bibbank/accountmodel/internal/presentation/grpc"
	"github.com/bibbank/accountmodel/internal/presentation/rest"
	"github.com/bibbank/accountmodel/pkg/auth"
	pkgkafka "github.com/bibbank/accountmodel/pkg/kafka"
	"github.com/bibbank/accountmodel/pkg/observability"
	"github.com/bibbank/accountmodel/pkg/tlsutil"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("account service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Info("starting account service", "grpc_port", cfg.GRPCPort, "http_port", cfg.HTTPPort)

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			logger.Warn("meter provider shutdown", "error", err)
		}
	}()

	// Event publishing.
	kafkaCfg := pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		ClientID:      cfg.ServiceName,
		TLS:           cfg.Kafka.TLS,
		SASLEnabled:   cfg.Kafka.SASLMechanism != "",
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	}
	if cfg.Kafka.CAFile != "" {
		kafkaCfg.TLS = true
		if kafkaCfg.TLSConfig, err = tlsutil.ClientConfig(cfg.Kafka.CAFile); err != nil {
			return fmt.Errorf("kafka tls: %w", err)
		}
	}
	kafkaProducer, err := pkgkafka.NewProducer(kafkaCfg)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	eventPublisher := infraKafka.NewPublisher(kafkaProducer, logger)
	defer func() {
		if err := eventPublisher.Close(); err != nil {
			logger.Warn("kafka publisher close", "error", err)
		}
	}()

	// Downstream accounts API.
	apiCfg := accountapi.Config{
		BaseURL: cfg.AccountAPI.BaseURL,
		Timeout: cfg.AccountAPI.Timeout,
	}
	if cfg.AccountAPI.CAFile != "" {
		if apiCfg.TLS, err = tlsutil.ClientConfig(cfg.AccountAPI.CAFile); err != nil {
			return fmt.Errorf("account api tls: %w", err)
		}
	}
	accountAPI, err := accountapi.NewClient(apiCfg, logger)
	if err != nil {
		return fmt.Errorf("account api client: %w", err)
	}

	// Use cases.
	validateAccountUC, err := usecase.NewValidateAccountUseCase(logger, meterProvider.Meter(cfg.ServiceName))
	if err != nil {
		return fmt.Errorf("validate account use case: %w", err)
	}
	registerAccountUC := usecase.NewRegisterAccountUseCase(validateAccountUC, accountAPI, eventPublisher, cfg.Kafka.Topic, logger)
	initiateTransferUC := usecase.NewInitiateTransferUseCase(validateAccountUC, logger)

	jwtSvc, err := newJWTService(cfg.JWT)
	if err != nil {
		return fmt.Errorf("jwt service: %w", err)
	}

	// gRPC server.
	grpcCfg := grpcPresentation.ServerConfig{
		Port:        cfg.GRPCPort,
		ServiceName: cfg.ServiceName,
		Reflection:  cfg.GRPCReflection,
	}
	if cfg.TLS.Enabled() {
		if grpcCfg.Creds, err = tlsutil.ServerCredentials(cfg.TLS.CertFile, cfg.TLS.KeyFile); err != nil {
			return fmt.Errorf("grpc tls: %w", err)
		}
	}
	grpcServer := grpcPresentation.NewServer(
		grpcPresentation.NewAccountHandler(validateAccountUC, registerAccountUC, initiateTransferUC),
		grpcCfg, logger, jwtSvc,
	)

	// HTTP server: health checks, metrics and the JSON API.
	router := rest.NewRouter(rest.RouterConfig{
		Health: rest.NewHealthHandler(cfg.ServiceName, logger, map[string]rest.ReadinessCheck{
			"account_api": accountAPI.Ping,
		}),
		Accounts: rest.NewAccountHandler(validateAccountUC, registerAccountUC, initiateTransferUC, logger),
		Metrics:  metricsHandler,
		JWT:      jwtSvc,
		Logger:   logger,
	})
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(grpcServer.Start)
	g.Go(func() error {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		grpcServer.Stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("account service stopped")
	return nil
}

// newJWTService prefers an inline public key, then a key file, then the shared secret.
func newJWTService(cfg config.JWTConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Issuer: cfg.Issuer}
	switch {
	case cfg.PublicKey != "":
		jwtCfg.PublicKeyPEM = cfg.PublicKey
	case cfg.PublicKeyFile != "":
		keyData, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load public key: %w", err)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtCfg.Secret = cfg.Secret
	}
	return auth.NewJWTService(jwtCfg)
}
