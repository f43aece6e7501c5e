package apiclient

import "context"

type contextKey string

const tokenContextKey contextKey = "bearer_token"

// WithToken attaches the backend bearer token for downstream calls.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenContextKey).(string); ok {
		return token
	}
	return ""
}
