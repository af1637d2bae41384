package domain

import "context"

type actorKey struct{}

// WithActor returns a copy of ctx carrying the authenticated user performing the request.
func WithActor(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, actorKey{}, u)
}

// ActorFromContext returns the acting user, if one was attached.
func ActorFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(actorKey{}).(*User)
	if !ok || u == nil {
		return nil, false
	}
	return u, true
}
