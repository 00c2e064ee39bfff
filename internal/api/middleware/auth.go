// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mdelucas/libris-api/internal/api/shared"
	"github.com/mdelucas/libris-api/internal/domain"
	"github.com/mdelucas/libris-api/internal/service/auth"
	"github.com/mdelucas/libris-api/internal/store"
)

// AuthMiddleware gates routes behind bearer-token authentication.
//
// Authenticate validates the token signature and expiry, resolves the token
// subject to an existing user, and rejects deactivated accounts. The
// resolved user is placed in the request context for handlers.
type AuthMiddleware struct {
	tokenService auth.TokenService
	userStore    store.UserStore
}

// NewAuthMiddleware creates an AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userStore:    userStore,
	}
}

// Authenticate validates bearer tokens from the Authorization header.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		claims, err := m.tokenService.Validate(r.Context(), parts[1])
		if err != nil {
			// Expired and invalid tokens get the same client message;
			// the distinction lives in the logs.
			shared.RespondWithErrorAndLog(w, r,
				http.StatusUnauthorized, "Could not validate credentials", err)
			return
		}

		user, err := m.userStore.GetByEmail(r.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithError(w, r,
					http.StatusUnauthorized, "Could not validate credentials")
				return
			}
			slog.Error("failed to resolve token subject", "error", err)
			shared.RespondWithError(w, r,
				http.StatusInternalServerError, "Something went wrong.")
			return
		}

		if !user.IsActive {
			shared.RespondWithError(w, r, http.StatusForbidden, "Inactive user")
			return
		}

		ctx := context.WithValue(r.Context(), shared.CurrentUserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser extracts the authenticated user from the request context.
// Returns the user and a boolean indicating whether one was found.
func CurrentUser(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(shared.CurrentUserContextKey).(*domain.User)
	return user, ok
}
