package middleware

import (
	"net/http"
	"strings"
)

// CaseInsensitiveMiddleware lowercases the URL path of API requests, so
// links typed from printed labels work regardless of case.
// Example: /API/EQUIPMENT/3 and /api/equipment/3 both work
// Upload keys are always lowercase, so /uploads is covered too.
func CaseInsensitiveMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = strings.ToLower(r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
