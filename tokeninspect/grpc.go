package tokeninspect

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// UnaryServerInterceptor returns a gRPC unary server interceptor that inspects
// the bearer token in the authorization metadata and stores the Report in the
// handler context. Calls are never rejected.
func UnaryServerInterceptor(insp *Inspector) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		requestID := uuid.New().String()
		md, ok := metadata.FromIncomingContext(ctx)
		if ok {
			if ids := md.Get("x-request-id"); len(ids) > 0 && ids[0] != "" {
				requestID = ids[0]
			}
		}
		ctx = WithRequestID(ctx, requestID)

		var report Report
		token, err := extractTokenFromMetadata(md)
		if err != nil {
			report = insp.failed(ctx, "grpc", err)
		} else {
			report = insp.InspectToken(ctx, "grpc", token)
		}

		// Fails outside a real server stream; the header is informational only.
		_ = grpc.SetHeader(ctx, metadata.Pairs("x-token-status", report.Status.String()))

		return handler(WithReport(ctx, report), req)
	}
}
