package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID   ctxKey = "user_id"
	CtxKeyUserType ctxKey = "user_type"
)

// UserIDFromContext returns the logged-in user id set by RequireSession.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(int64)
	return id, ok && id > 0
}

func UserTypeFromContext(ctx context.Context) string {
	t, _ := ctx.Value(CtxKeyUserType).(string)
	return t
}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, userID int64, userType string) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, userID)
	return context.WithValue(ctx, CtxKeyUserType, userType)
}
