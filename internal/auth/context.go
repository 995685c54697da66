package auth

import (
	"context"

	"github.com/kaloria/coach-hub/internal/userctx"
)

// WithUserID stashes the authenticated owner in the request context. Every
// family profile, log and stat row hangs off this ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return userctx.WithUserID(ctx, userID)
}

// GetUserID returns the authenticated owner, if any.
func GetUserID(ctx context.Context) (string, bool) {
	return userctx.GetUserID(ctx)
}
