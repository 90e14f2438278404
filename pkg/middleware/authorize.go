package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iota-uz/authgate/modules/core/domain/entities/session"
	"github.com/iota-uz/authgate/pkg/composables"
)

// SessionResolver turns a bearer token into the session it identifies.
type SessionResolver interface {
	GetByToken(ctx context.Context, token string) (*session.Session, error)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authorize resolves the request's bearer token into a session and binds it
// to the context. Requests without a usable token pass through anonymous;
// handlers that need a session refuse on their own.
func Authorize(resolver SessionResolver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			sess, err := resolver.GetByToken(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithSession(r.Context(), sess)))
		})
	}
}
