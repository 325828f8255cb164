package http

import (
	"context"
	"net/http"

	"github.com/sheqworks/themis/pkg/domain/model/auth"
)

// TokenValidator resolves a session cookie into a caller identity
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenID string) (*auth.Token, error)
}

// authMiddleware resolves the caller identity for protected requests
func authMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// When no validator is configured, always use anonymous user
			if validator == nil {
				ctx := auth.ContextWithToken(r.Context(), auth.NewAnonymousUser())
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			tokenCookie, err := r.Cookie("token_id")
			if err != nil {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			token, err := validator.ValidateToken(r.Context(), tokenCookie.Value)
			if err != nil {
				http.Error(w, "Invalid authentication token", http.StatusUnauthorized)
				return
			}

			ctx := auth.ContextWithToken(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
