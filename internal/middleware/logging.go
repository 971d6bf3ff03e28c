package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// operatorSlot is filled by RequireAuth so an outer LoggingInterceptor can
// report who made the call.
type operatorSlot struct {
	email string
}

const operatorSlotKey contextKey = "operator_slot"

// recordOperator stores email in the slot installed by LoggingInterceptor, if any.
func recordOperator(ctx context.Context, email string) {
	if slot, ok := ctx.Value(operatorSlotKey).(*operatorSlot); ok {
		slot.email = email
	}
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with its procedure, result code, peer, duration and, for calls that passed
// RequireAuth, the operator.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			slot := &operatorSlot{}

			resp, err := next(context.WithValue(ctx, operatorSlotKey, slot), req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"peer", req.Peer().Addr,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if slot.email != "" {
				attrs = append(attrs, "operator", slot.email)
			}

			var connectErr *connect.Error
			switch {
			case err == nil:
				slog.Info("RPC ok", attrs...)
			case errors.As(err, &connectErr):
				attrs = append(attrs, "code", connectErr.Code(), "error", connectErr.Message())
				slog.Warn("RPC failed", attrs...)
			default:
				attrs = append(attrs, "error", err)
				slog.Error("RPC failed", attrs...)
			}

			return resp, err
		}
	}
}
