package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libreshelf/library/internal/entities"
)

func (env *testEnv) createBook(t *testing.T, title string) uint {
	t.Helper()

	_, token := env.registerAndLogin(t, fmt.Sprintf("admin-%s@x.com", title), "secret1", entities.UserRoleAdmin)
	w := env.request(t, "POST", "/books", token, map[string]any{
		"title":   title,
		"authors": []string{"Frank Herbert"},
		"genres":  []string{"SciFi"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var book map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	return uint(book["id"].(float64))
}

func TestFavouritesController_AddFavourite(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		env, cleanup := setupTestServer(t)
		defer cleanup()

		w := env.request(t, "POST", "/users/1/favorites/1", "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("forbidden for another user's list", func(t *testing.T) {
		env, cleanup := setupTestServer(t)
		defer cleanup()

		bookID := env.createBook(t, "dune")
		user, token := env.registerAndLogin(t, "reader@x.com", "secret1", entities.UserRoleClient)

		w := env.request(t, "POST", fmt.Sprintf("/users/%d/favorites/%d", user.ID+100, bookID), token, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("adds favourite", func(t *testing.T) {
		env, cleanup := setupTestServer(t)
		defer cleanup()

		bookID := env.createBook(t, "dune")
		user, token := env.registerAndLogin(t, "reader@x.com", "secret1", entities.UserRoleClient)

		w := env.request(t, "POST", fmt.Sprintf("/users/%d/favorites/%d", user.ID, bookID), token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		list := env.request(t, "GET", fmt.Sprintf("/users/%d/favorites", user.ID), token, nil)
		assert.Equal(t, http.StatusOK, list.Code)
		assert.Contains(t, list.Body.String(), "dune")
	})

	t.Run("idempotent re-add", func(t *testing.T) {
		env, cleanup := setupTestServer(t)
		defer cleanup()

		bookID := env.createBook(t, "dune")
		user, token := env.registerAndLogin(t, "reader@x.com", "secret1", entities.UserRoleClient)

		path := fmt.Sprintf("/users/%d/favorites/%d", user.ID, bookID)
		assert.Equal(t, http.StatusNoContent, env.request(t, "POST", path, token, nil).Code)
		assert.Equal(t, http.StatusNoContent, env.request(t, "POST", path, token, nil).Code)

		list := env.request(t, "GET", fmt.Sprintf("/users/%d/favorites", user.ID), token, nil)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(list.Body.Bytes(), &resp))
		assert.Equal(t, float64(1), resp["count"])
	})

	t.Run("unknown book", func(t *testing.T) {
		env, cleanup := setupTestServer(t)
		defer cleanup()

		user, token := env.registerAndLogin(t, "reader@x.com", "secret1", entities.UserRoleClient)

		w := env.request(t, "POST", fmt.Sprintf("/users/%d/favorites/999", user.ID), token, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFavouritesController_RemoveFavourite(t *testing.T) {
	t.Run("removes favourite", func(t *testing.T) {
		env, cleanup := setupTestServer(t)
		defer cleanup()

		bookID := env.createBook(t, "dune")
		user, token := env.registerAndLogin(t, "reader@x.com", "secret1", entities.UserRoleClient)

		path := fmt.Sprintf("/users/%d/favorites/%d", user.ID, bookID)
		require.Equal(t, http.StatusNoContent, env.request(t, "POST", path, token, nil).Code)

		w := env.request(t, "DELETE", path, token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		list := env.request(t, "GET", fmt.Sprintf("/users/%d/favorites", user.ID), token, nil)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(list.Body.Bytes(), &resp))
		assert.Equal(t, float64(0), resp["count"])
	})

	t.Run("not favourited is a no-op", func(t *testing.T) {
		env, cleanup := setupTestServer(t)
		defer cleanup()

		bookID := env.createBook(t, "dune")
		user, token := env.registerAndLogin(t, "reader@x.com", "secret1", entities.UserRoleClient)

		w := env.request(t, "DELETE", fmt.Sprintf("/users/%d/favorites/%d", user.ID, bookID), token, nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("forbidden for another user's list", func(t *testing.T) {
		env, cleanup := setupTestServer(t)
		defer cleanup()

		user, token := env.registerAndLogin(t, "reader@x.com", "secret1", entities.UserRoleClient)

		w := env.request(t, "DELETE", fmt.Sprintf("/users/%d/favorites/1", user.ID+100), token, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestFavouritesController_ListFavourites(t *testing.T) {
	t.Run("forbidden for another user's list", func(t *testing.T) {
		env, cleanup := setupTestServer(t)
		defer cleanup()

		user, token := env.registerAndLogin(t, "reader@x.com", "secret1", entities.UserRoleClient)

		w := env.request(t, "GET", fmt.Sprintf("/users/%d/favorites", user.ID+100), token, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("returns resolved books", func(t *testing.T) {
		env, cleanup := setupTestServer(t)
		defer cleanup()

		bookID := env.createBook(t, "dune")
		user, token := env.registerAndLogin(t, "reader@x.com", "secret1", entities.UserRoleClient)
		path := fmt.Sprintf("/users/%d/favorites/%d", user.ID, bookID)
		require.Equal(t, http.StatusNoContent, env.request(t, "POST", path, token, nil).Code)

		w := env.request(t, "GET", fmt.Sprintf("/users/%d/favorites", user.ID), token, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Frank Herbert")
		assert.Contains(t, w.Body.String(), "SciFi")
	})
}
