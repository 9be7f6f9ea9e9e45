package auth

import (
	"context"
	"errors"
)

// UserContext carries the authenticated caller through a request.
type UserContext struct {
	UserID string
	Email  string
	Roles  []string
}

type contextKey string

const userContextKey contextKey = "wishbloom.user"

// ErrNoUserInContext is returned when a handler behind the auth middleware
// cannot find a user, which indicates a routing bug rather than bad input.
var ErrNoUserInContext = errors.New("no user in request context")

// SetUserInContext attaches the authenticated user to ctx.
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext returns the authenticated user, or ErrNoUserInContext.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, ErrNoUserInContext
	}
	return user, nil
}
