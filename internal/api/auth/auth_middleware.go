package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gnkhotels/go-hotel-curation/internal/api"
	"github.com/gnkhotels/go-hotel-curation/internal/types"
)

type contextKey string

// ClaimsContextKey carries the authenticated admin's claims through the
// request context.
const ClaimsContextKey contextKey = "adminClaims"

// Authenticate guards the admin surface: it requires a valid bearer
// token and stores the claims in the request context.
func Authenticate(service Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header required")
				return
			}
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Bearer token required")
				return
			}

			claims, err := service.ValidateToken(token)
			if err != nil {
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the authenticated admin's claims, if any.
func ClaimsFromContext(ctx context.Context) (*types.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*types.Claims)
	return claims, ok
}
