package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/tipsplit/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// OperatorKey is the context key for storing the authenticated operator email.
const OperatorKey contextKey = "operator"

// GetOperator extracts the operator email from the context.
// Returns empty string if not found.
func GetOperator(ctx context.Context) string {
	email, _ := ctx.Value(OperatorKey).(string)
	return email
}

// RequireAuth returns an interceptor that validates the bearer token and
// adds the operator email to the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			recordOperator(ctx, claims.Email)
			ctx = context.WithValue(ctx, OperatorKey, claims.Email)
			return next(ctx, req)
		}
	}
}
