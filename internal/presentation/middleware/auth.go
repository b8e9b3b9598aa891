package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/NimalpudiAshrita/smartloan/pkg/auth"
)

// AuthMiddleware validates the bearer token and, when roles are given,
// requires the caller to hold at least one of them. Claims are stored on the
// request context.
func AuthMiddleware(validator auth.Validator, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ParseBearer(r.Header.Get("Authorization"))
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				writeError(w, http.StatusUnauthorized, "missing authorization header")
				return
			case err != nil:
				writeError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			if len(roles) > 0 && !claims.HasAnyRole(roles...) {
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			ctx := auth.ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
