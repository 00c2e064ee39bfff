package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mdelucas/libris-api/internal/api/shared"
	"github.com/mdelucas/libris-api/internal/service/auth"
	"github.com/mdelucas/libris-api/internal/store"
)

// AuthHandler handles the token-issuing login endpoint.
type AuthHandler struct {
	users        store.UserStore
	tokenService auth.TokenService
	verifier     auth.PasswordVerifier
	logger       *slog.Logger
}

// NewAuthHandler creates an AuthHandler with the given dependencies.
func NewAuthHandler(
	users store.UserStore,
	tokenService auth.TokenService,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		users:        users,
		tokenService: tokenService,
		verifier:     verifier,
		logger:       logger.With(slog.String("component", "auth_handler")),
	}
}

// Token handles POST /auth/token. The credentials arrive form-encoded as
// username (the email) and password, OAuth2 password-flow style.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		slog.Error("failed to get user by email", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	token, err := h.tokenService.Generate(r.Context(), user.Email)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
