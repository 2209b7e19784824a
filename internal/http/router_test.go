package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/libreshelf/library/internal/auth"
	"github.com/libreshelf/library/internal/database"
	"github.com/libreshelf/library/internal/database/books"
	"github.com/libreshelf/library/internal/database/favourites"
	"github.com/libreshelf/library/internal/database/users"
	"github.com/libreshelf/library/internal/entities"
	"github.com/libreshelf/library/internal/exporters"
)

type testEnv struct {
	router      *gin.Engine
	authService *auth.Service
	db          *database.Database
}

func setupTestServer(t *testing.T) (*testEnv, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	usersRepo := users.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)
	favouritesRepo := favourites.NewRepository(db.DB)

	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	authService := auth.NewService(usersRepo, tokens, bcrypt.MinCost)

	router := NewRouter(RouterConfig{
		Database:        db,
		BooksStore:      booksRepo,
		FavouritesStore: favouritesRepo,
		AuthService:     authService,
		AuthMiddleware:  auth.NewMiddleware(authService),
		Exporter:        exporters.NewCSVExporter(booksRepo),
		Version:         "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return &testEnv{router: router, authService: authService, db: db}, cleanup
}

// registerAndLogin registers a user, optionally promotes them, and returns
// the user and a bearer token.
func (env *testEnv) registerAndLogin(t *testing.T, email, password string, role entities.UserRole) (*entities.User, string) {
	t.Helper()

	user, err := env.authService.Register(email, password)
	require.NoError(t, err)

	if role == entities.UserRoleAdmin {
		require.NoError(t, env.authService.SetRole(email, role))
	}

	token, err := env.authService.Login(email, password)
	require.NoError(t, err)

	return user, token
}

func (env *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
