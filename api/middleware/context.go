package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/samotors/vehicle-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxUserLevel contextKey = "user_level"
)

// UserIDFromContext returns the authenticated user id, or uuid.Nil for
// anonymous requests.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxUserID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

// UserLevelFromContext returns the authenticated user's level, or the empty
// string for anonymous requests.
func UserLevelFromContext(ctx context.Context) enums.UserLevel {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserLevel).(enums.UserLevel); ok {
		return v
	}
	return ""
}

// WithUser injects the authenticated identity into the context.
func WithUser(ctx context.Context, userID uuid.UUID, level enums.UserLevel) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, userID)
	return context.WithValue(ctx, ctxUserLevel, level)
}
