// Package userctx carries the authenticated account id through request
// contexts. Services fall back to the "default" owner when no id is present
// (local single-account mode).
package userctx

import "context"

type contextKey string

const userIDContextKey contextKey = "user_id"

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// GetUserID reports the account id set by the auth middleware, if any.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok
}
