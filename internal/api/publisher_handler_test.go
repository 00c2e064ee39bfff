package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates publisher", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/publishers/", CreatePublisherRequest{Name: "Tor Books"})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp PublisherResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Tor Books", resp.Name)
	})

	t.Run("duplicate name", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedPublisher(t, "Tor Books")

		rec := env.do(t, http.MethodPost, "/publishers/", CreatePublisherRequest{Name: "Tor Books"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Publisher already exists.", errorDetail(t, rec))
	})
}

func TestPublisherGetByID(t *testing.T) {
	t.Parallel()

	t.Run("found with books", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		author := env.seedAuthor(t, "Tolkien")
		category := env.seedCategory(t, "Fantasy")
		publisher := env.seedPublisher(t, "Allen & Unwin")
		env.seedBook(t, "The Hobbit", author.ID, category.ID, publisher.ID)

		rec := env.do(t, http.MethodGet, "/publishers/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp PublisherResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Allen & Unwin", resp.Name)
		require.Len(t, resp.Books, 1)
		assert.Equal(t, "The Hobbit", resp.Books[0].Name)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/publishers/42", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Publisher not found.", errorDetail(t, rec))
	})
}

func TestPublisherUpdate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedPublisher(t, "Tor")

	rec := env.do(t, http.MethodPatch, "/publishers/1", map[string]string{"name": "Tor Books"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PublisherResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Tor Books", resp.Name)
}

func TestPublisherDelete(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedPublisher(t, "Tor Books")

	rec := env.do(t, http.MethodDelete, "/publishers/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok": true}`, rec.Body.String())

	rec = env.do(t, http.MethodDelete, "/publishers/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
