package middleware

import (
	"context"
	"net/http"
	"strings"
)

// UserHeader carries the caller's user ID, set by the upstream gateway after
// it has verified the session.
const UserHeader = "X-User-Id"

type userKey struct{}

// Identity stores the gateway-provided user ID in the request context.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := strings.TrimSpace(r.Header.Get(UserHeader)); userID != "" {
			r = r.WithContext(WithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserID returns the acting user, or "" when the request carried none.
func UserID(ctx context.Context) string {
	userID, _ := ctx.Value(userKey{}).(string)
	return userID
}
