package observability

import "context"

type sessionKey struct{}

// WithSessionID returns a context carrying the session identifier, letting
// subsystems that never see the session tag their events with it.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionID returns the session identifier carried by ctx, or "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
