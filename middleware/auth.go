package middleware

import (
	"net/http"
	"strings"

	"blockpass-backend/auth"
	c "blockpass-backend/context"
	"blockpass-backend/response"
)

// Authenticate verifies the bearer token and puts the caller identifier on
// the request context. Every route behind it runs as an
// already-authenticated call.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				response.Unauthorized().Send(r.Context(), w)
				return
			}

			caller, ok := auth.Caller(token, secret)
			if !ok {
				response.Unauthorized().Send(r.Context(), w)
				return
			}

			ctx := c.SetContextWithValue(r.Context(), c.ContextKeyCaller, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
