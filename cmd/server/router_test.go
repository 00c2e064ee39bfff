package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mdelucas/libris-api/internal/config"
	"github.com/mdelucas/libris-api/internal/domain"
	"github.com/mdelucas/libris-api/internal/mocks"
	"github.com/mdelucas/libris-api/internal/service/auth"
)

// newTestApplication builds an application over in-memory stores, with a
// canned token service that accepts "good-token" for the seeded user.
func newTestApplication(t *testing.T, cfg *config.Config) (*application, *mocks.MemoryUserStore) {
	t.Helper()

	authors := mocks.NewMemoryAuthorStore()
	categories := mocks.NewMemoryCategoryStore()
	publishers := mocks.NewMemoryPublisherStore()
	users := mocks.NewMemoryUserStore()

	app := &application{
		config:         cfg,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		authorStore:    authors,
		categoryStore:  categories,
		publisherStore: publishers,
		bookStore:      mocks.NewMemoryBookStore(authors, categories, publishers),
		userStore:      users,
		transactor:     &mocks.MockTransactor{},
		tokenService:   &mocks.MockTokenService{Claims: &auth.Claims{Email: "reader@example.com"}},
		passwordHasher: auth.NewBcryptHasher(bcrypt.MinCost),
	}
	return app, users
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "info"},
		Auth: config.AuthConfig{
			JWTSecret:            "router-test-secret",
			TokenLifetimeMinutes: 30,
			ProtectBookWrites:    true,
		},
	}
}

func seedReader(t *testing.T, users *mocks.MemoryUserStore) {
	t.Helper()
	user, err := domain.NewUser("reader@example.com", "correct horse battery")
	require.NoError(t, err)
	user.HashedPassword = "irrelevant-for-token-auth"
	user.Password = ""
	require.NoError(t, users.Create(context.Background(), user))
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t, testConfig())
	router := app.setupRouter()

	rec := doJSON(t, router, http.MethodGet, "/health_check", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "Up and running :)"}`, rec.Body.String())
}

func TestTrailingSlashesAccepted(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t, testConfig())
	router := app.setupRouter()

	for _, path := range []string{"/authors", "/authors/"} {
		rec := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestAuthorRoutesArePublic(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t, testConfig())
	router := app.setupRouter()

	rec := doJSON(t, router, http.MethodPost, "/authors/", "", map[string]string{"name": "Tolkien"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/authors/1", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCategoryWritesRequireAuth(t *testing.T) {
	t.Parallel()

	app, users := newTestApplication(t, testConfig())
	seedReader(t, users)
	router := app.setupRouter()

	rec := doJSON(t, router, http.MethodPost, "/categories/", "", map[string]string{"name": "Fantasy"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/categories/", "good-token", map[string]string{"name": "Fantasy"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Reads stay public.
	rec = doJSON(t, router, http.MethodGet, "/categories/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBookWriteProtectionFollowsConfig(t *testing.T) {
	t.Parallel()

	book := map[string]interface{}{
		"name":         "The Hobbit",
		"author_id":    1,
		"category_id":  1,
		"publisher_id": 1,
	}

	t.Run("protected by default", func(t *testing.T) {
		t.Parallel()

		app, users := newTestApplication(t, testConfig())
		seedReader(t, users)
		router := app.setupRouter()

		rec := doJSON(t, router, http.MethodPost, "/books/", "", book)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = doJSON(t, router, http.MethodGet, "/books/", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, "book reads stay public")
	})

	t.Run("open when disabled", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.Auth.ProtectBookWrites = false
		app, _ := newTestApplication(t, cfg)
		router := app.setupRouter()

		// Parents must exist; author/publisher creation is public, the
		// category is written directly to the store.
		rec := doJSON(t, router, http.MethodPost, "/authors/", "", map[string]string{"name": "Tolkien"})
		require.Equal(t, http.StatusCreated, rec.Code)
		rec = doJSON(t, router, http.MethodPost, "/publishers/", "", map[string]string{"name": "Allen & Unwin"})
		require.Equal(t, http.StatusCreated, rec.Code)

		category, err := domain.NewCategory("Fantasy", nil)
		require.NoError(t, err)
		require.NoError(t, app.categoryStore.Create(context.Background(), category))

		rec = doJSON(t, router, http.MethodPost, "/books/", "", book)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestUsersMeRequiresAuth(t *testing.T) {
	t.Parallel()

	app, users := newTestApplication(t, testConfig())
	seedReader(t, users)
	router := app.setupRouter()

	rec := doJSON(t, router, http.MethodGet, "/users/me/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/users/me/", "good-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Email    string `json:"email"`
		IsActive bool   `json:"is_active"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "reader@example.com", resp.Email)
	assert.True(t, resp.IsActive)
}

func TestUserRegistrationIsPublic(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t, testConfig())
	router := app.setupRouter()

	rec := doJSON(t, router, http.MethodPost, "/users/", "", map[string]string{
		"email":    "new@example.com",
		"password": "correct horse battery",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"ok": true}`, rec.Body.String())
}
