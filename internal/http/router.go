package http

import (
	"github.com/gin-gonic/gin"

	"github.com/libreshelf/library/internal/auth"
	"github.com/libreshelf/library/internal/database"
	"github.com/libreshelf/library/internal/exporters"
)

// RouterConfig holds all dependencies for the HTTP router.
type RouterConfig struct {
	Database        *database.Database
	BooksStore      BooksStore
	FavouritesStore FavouritesStore
	AuthService     *auth.Service
	AuthMiddleware  *auth.Middleware
	Exporter        *exporters.CSVExporter
	Version         string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := NewAuthController(cfg.AuthService)
	booksController := NewBooksController(cfg.BooksStore)
	favouritesController := NewFavouritesController(cfg.FavouritesStore)
	exportController := NewExportController(cfg.Exporter)

	// Public routes
	router.GET("/health", health.Health)
	router.POST("/auth/register", authController.Register)
	router.POST("/auth/login", authController.Login)
	router.GET("/books", booksController.ListBooks)
	router.GET("/books/:id", booksController.GetBook)

	// Admin-only catalog mutations
	admin := router.Group("/", cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	admin.POST("/books", booksController.CreateBook)
	admin.DELETE("/books/:id", booksController.DeleteBook)
	admin.GET("/books/export/csv", exportController.ExportCSV)

	// Favourites: authenticated, ownership checked in the handlers
	favourites := router.Group("/users/:id/favorites", cfg.AuthMiddleware.RequireAuth())
	favourites.GET("", favouritesController.ListFavourites)
	favourites.POST("/:book_id", favouritesController.AddFavourite)
	favourites.DELETE("/:book_id", favouritesController.RemoveFavourite)

	return router
}
