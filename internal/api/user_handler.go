package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mdelucas/libris-api/internal/api/middleware"
	"github.com/mdelucas/libris-api/internal/api/shared"
	"github.com/mdelucas/libris-api/internal/domain"
	"github.com/mdelucas/libris-api/internal/service/auth"
	"github.com/mdelucas/libris-api/internal/store"
)

// UserHandler handles user registration and profile requests.
type UserHandler struct {
	users     store.UserStore
	hasher    auth.PasswordHasher
	validator *validator.Validate
	logger    *slog.Logger
}

// NewUserHandler creates a UserHandler with the given dependencies.
func NewUserHandler(users store.UserStore, hasher auth.PasswordHasher, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:     users,
		hasher:    hasher,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "user_handler")),
	}
}

// Register handles POST /users/. The created resource is deliberately not
// returned; the client gets a bare acknowledgment.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := domain.NewUser(req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+err.Error())
		return
	}

	hash, err := h.hasher.Hash(user.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Something went wrong.")
		return
	}
	user.HashedPassword = hash
	user.Password = ""

	if err := h.users.Create(r.Context(), user); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, Ack)
}

// Me handles GET /users/me/. The auth middleware has already validated the
// token, resolved the subject, and rejected inactive accounts.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}
