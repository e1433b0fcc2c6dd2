package grpcserver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDHeader = "x-request-id"

// NewUnaryLoggingInterceptor logs one line per call with a request id taken
// from the caller's metadata or freshly generated.
func NewUnaryLoggingInterceptor(log logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		reqID := requestIDFromMD(ctx)
		_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, reqID))

		resp, err := handler(ctx, req)

		entry := log.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     info.FullMethod,
			"code":       status.Code(err).String(),
			"duration":   time.Since(start),
		})
		if err != nil {
			entry.WithError(err).Warn("rpc failed")
		} else {
			entry.Info("rpc")
		}
		return resp, err
	}
}

func requestIDFromMD(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(requestIDHeader); len(v) > 0 && v[0] != "" {
			return v[0]
		}
	}
	return uuid.NewString()
}
