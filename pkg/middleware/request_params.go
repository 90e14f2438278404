package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/authgate/pkg/composables"
	"github.com/iota-uz/authgate/pkg/configuration"
)

// RequestParams captures the caller's IP and user agent into the context so
// services can stamp them onto audit events without touching the request.
func RequestParams() mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params := &composables.Params{
				IP:        getRealIP(r, conf),
				UserAgent: r.UserAgent(),
				Request:   r,
				Writer:    w,
			}
			next.ServeHTTP(w, r.WithContext(composables.WithParams(r.Context(), params)))
		})
	}
}
