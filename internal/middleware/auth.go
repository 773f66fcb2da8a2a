package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/xelth-com/linerecords/internal/utils"
)

const operatorKey contextKey = "operator"

// Operator returns the token subject of an authenticated request
func Operator(ctx context.Context) string {
	op, _ := ctx.Value(operatorKey).(string)
	return op
}

// AuthMiddleware requires a bearer token on write requests to /api and /ds.
// Reads stay open. An empty secret disables the check.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isWrite(r) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			// Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			sub, err := utils.ValidateToken(parts[1], secret)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), operatorKey, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isWrite(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	p := strings.ToLower(r.URL.Path)
	return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/ds/")
}
