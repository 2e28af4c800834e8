package middleware

import "net/http"

// RequireRole gates a route on the role carried by the token claims. The
// admin record is a singleton, so role membership lives in the token rather
// than a roles table.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				respondFailure(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if claims.Role != role {
				respondFailure(w, http.StatusForbidden, "insufficient privileges")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
