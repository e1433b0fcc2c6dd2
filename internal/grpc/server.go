package grpcserver

import (
	"context"
	"net"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"tecnoAcademiaAdmin/internal/auth"
	"tecnoAcademiaAdmin/internal/config"
	"tecnoAcademiaAdmin/repository"
)

const healthCheckMethod = "/grpc.health.v1.Health/Check"

// NewServer builds a gRPC server exposing the user directory and the standard
// health service. Every call except health checks needs a bearer JWT.
func NewServer(cfg *config.Config, users repository.UserRepositoryI, log logrus.FieldLogger) *grpc.Server {
	if cfg == nil {
		panic("config is required")
	}
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		NewUnaryLoggingInterceptor(log),
		auth.NewUnaryAuthInterceptor(cfg.Auth.JWTSecret, healthCheckMethod),
	))
	RegisterUserDirectoryServer(srv, &DirectoryServer{Users: users, Log: log})

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv
}

// StartGRPC starts the gRPC server on the configured address and returns a shutdown function.
func StartGRPC(cfg *config.Config, users repository.UserRepositoryI, log logrus.FieldLogger) (func(context.Context) error, error) {
	srv := NewServer(cfg, users, log)

	addr := cfg.GRPC.Address
	if addr == "" {
		addr = ":50051"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	// Plaintext for simplicity; in production, configure TLS.
	go func() {
		if err := srv.Serve(lis); err != nil {
			log.WithError(err).Error("grpc serve")
		}
	}()

	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
