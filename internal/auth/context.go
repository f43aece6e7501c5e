package auth

import (
	"context"

	"linguadmin/internal/models"
)

type contextKey string

const sessionContextKey contextKey = "session"

func SetSessionContext(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

func GetSessionFromContext(ctx context.Context) *models.Session {
	if session, ok := ctx.Value(sessionContextKey).(*models.Session); ok {
		return session
	}
	return nil
}
