package auth

import (
	"log/slog"
	"net/http"

	"github.com/Ananeya/asset-management-system/internal"
)

// RoleAuthorization guards routes by role. The assign/reassign guard is
// policy-driven so deployments can choose between storekeeper-only and
// open assignment.
type RoleAuthorization struct {
	logger *slog.Logger
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{logger: logger}
}

func (ra *RoleAuthorization) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			ra.logger.WarnContext(r.Context(), "access denied: role not permitted",
				"user_id", user.ID,
				"user_role", user.Role,
				"required_roles", roles)
			http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
		})
	}
}

func (ra *RoleAuthorization) RequireStorekeeper() func(http.Handler) http.Handler {
	return ra.RequireRole(RoleStorekeeper)
}

func (ra *RoleAuthorization) RequireAssignAccess(policy string) func(http.Handler) http.Handler {
	if policy == internal.AssignPolicyAnyAuthenticated {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if user, ok := UserFromContext(r.Context()); !ok || user == nil {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r)
			})
		}
	}
	return ra.RequireStorekeeper()
}
