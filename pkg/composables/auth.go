package composables

import (
	"context"

	"github.com/iota-uz/authgate/modules/core/domain/entities/session"
	"github.com/iota-uz/authgate/pkg/constants"
)

// WithSession returns a new context carrying the authenticated session.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, sess)
}

// UseSession returns the authenticated session from the context.
// If no session is bound, the second return value will be false.
func UseSession(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(constants.SessionKey).(*session.Session)
	return sess, ok
}
