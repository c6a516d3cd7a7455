package middleware

import (
	"context"

	"github.com/cashbookvn/cashbook_backend/internal/core/domain"
)

const authUserKey = contextKey("authUser")

// WithAuthUser stores the authenticated caller in the context.
func WithAuthUser(ctx context.Context, user *domain.AuthUser) context.Context {
	return context.WithValue(ctx, authUserKey, user)
}

// GetAuthUserFromCtx retrieves the authenticated caller from the context.
// The second return is false for unauthenticated requests.
func GetAuthUserFromCtx(ctx context.Context) (*domain.AuthUser, bool) {
	user, ok := ctx.Value(authUserKey).(*domain.AuthUser)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
