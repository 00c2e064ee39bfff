package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/mdelucas/libris-api/internal/domain"
	"github.com/mdelucas/libris-api/internal/mocks"
)

// testEnv bundles the in-memory stores and a router wired exactly like the
// production route table, minus authentication.
type testEnv struct {
	authors    *mocks.MemoryAuthorStore
	categories *mocks.MemoryCategoryStore
	publishers *mocks.MemoryPublisherStore
	books      *mocks.MemoryBookStore
	users      *mocks.MemoryUserStore
	router     chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tx := &mocks.MockTransactor{}

	env := &testEnv{
		authors:    mocks.NewMemoryAuthorStore(),
		categories: mocks.NewMemoryCategoryStore(),
		publishers: mocks.NewMemoryPublisherStore(),
		users:      mocks.NewMemoryUserStore(),
	}
	env.books = mocks.NewMemoryBookStore(env.authors, env.categories, env.publishers)

	authorHandler := NewAuthorHandler(env.authors, env.books, tx, logger)
	categoryHandler := NewCategoryHandler(env.categories, env.books, tx, logger)
	publisherHandler := NewPublisherHandler(env.publishers, env.books, tx, logger)
	bookHandler := NewBookHandler(env.books, env.authors, env.categories, env.publishers, tx, logger)
	userHandler := NewUserHandler(env.users, &mocks.MockPasswordHasher{}, logger)
	authHandler := NewAuthHandler(env.users, &mocks.MockTokenService{Token: "issued-token"}, &mocks.MockPasswordHasher{}, logger)

	r := chi.NewRouter()
	r.Post("/auth/token", authHandler.Token)
	for prefix, h := range map[string]struct {
		list, create, get, update, del http.HandlerFunc
	}{
		"/authors":    {authorHandler.List, authorHandler.Create, authorHandler.GetByID, authorHandler.Update, authorHandler.Delete},
		"/categories": {categoryHandler.List, categoryHandler.Create, categoryHandler.GetByID, categoryHandler.Update, categoryHandler.Delete},
		"/publishers": {publisherHandler.List, publisherHandler.Create, publisherHandler.GetByID, publisherHandler.Update, publisherHandler.Delete},
		"/books":      {bookHandler.List, bookHandler.Create, bookHandler.GetByID, bookHandler.Update, bookHandler.Delete},
	} {
		h := h
		r.Route(prefix, func(r chi.Router) {
			r.Get("/", h.list)
			r.Post("/", h.create)
			r.Get("/{id}", h.get)
			r.Patch("/{id}", h.update)
			r.Delete("/{id}", h.del)
		})
	}
	r.Post("/users", userHandler.Register)
	r.Get("/users/me", userHandler.Me)

	env.router = r
	return env
}

// do performs a request against the test router. A non-nil body is
// JSON-encoded; a string body is sent raw.
func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorded JSON response into dst.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

// errorDetail extracts the "detail" field of an error payload.
func errorDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Detail string `json:"detail"`
	}
	decodeBody(t, rec, &payload)
	return payload.Detail
}

// seedAuthor inserts an author directly into the store.
func (env *testEnv) seedAuthor(t *testing.T, name string) *domain.Author {
	t.Helper()
	author, err := domain.NewAuthor(name)
	require.NoError(t, err)
	require.NoError(t, env.authors.Create(context.Background(), author))
	return author
}

// seedCategory inserts a category directly into the store.
func (env *testEnv) seedCategory(t *testing.T, name string) *domain.Category {
	t.Helper()
	category, err := domain.NewCategory(name, nil)
	require.NoError(t, err)
	require.NoError(t, env.categories.Create(context.Background(), category))
	return category
}

// seedPublisher inserts a publisher directly into the store.
func (env *testEnv) seedPublisher(t *testing.T, name string) *domain.Publisher {
	t.Helper()
	publisher, err := domain.NewPublisher(name, nil)
	require.NoError(t, err)
	require.NoError(t, env.publishers.Create(context.Background(), publisher))
	return publisher
}

// seedBook inserts a book with freshly seeded parents.
func (env *testEnv) seedBook(t *testing.T, name string, authorID, categoryID, publisherID int64) *domain.Book {
	t.Helper()
	book, err := domain.NewBook(name, nil, authorID, categoryID, publisherID)
	require.NoError(t, err)
	require.NoError(t, env.books.Create(context.Background(), book))
	return book
}

// seedUser registers a user with the mock hasher's transparent scheme.
func (env *testEnv) seedUser(t *testing.T, email, password string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, password)
	require.NoError(t, err)
	user.HashedPassword = "hashed:" + password
	user.Password = ""
	require.NoError(t, env.users.Create(context.Background(), user))
	return user
}
