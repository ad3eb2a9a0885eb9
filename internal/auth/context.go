package auth

import "context"

type contextKey struct{}

// AuthContext identifies the signed-in user behind a request.
type AuthContext struct {
	UserID string
	Email  string
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

// WithUser is WithAuth for callers that only know the user id.
func WithUser(ctx context.Context, userID string) context.Context {
	return WithAuth(ctx, AuthContext{UserID: userID})
}

func UserID(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.UserID
}
