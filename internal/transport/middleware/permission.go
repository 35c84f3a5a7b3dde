package middleware

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/document-management/internal/auth"
)

// RequirePermissions allows the request through when the authenticated user
// holds at least one of the named permissions.
func RequirePermissions(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.HasAnyPermission(permissions) {
				slog.Warn("access denied: user lacks required permissions",
					"user_id", user.ID,
					"required_permissions", permissions)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin guards the access-control administration routes.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequirePermissions("admin")
}
