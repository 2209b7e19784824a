package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libreshelf/library/internal/auth"
	"github.com/libreshelf/library/internal/config"
	"github.com/libreshelf/library/internal/database"
	"github.com/libreshelf/library/internal/database/books"
	"github.com/libreshelf/library/internal/database/favourites"
	"github.com/libreshelf/library/internal/database/users"
	"github.com/libreshelf/library/internal/exporters"
	http_controllers "github.com/libreshelf/library/internal/http"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library v%s", version)

	if cfg.Auth.JWTSecret == "" {
		log.Printf("WARNING: AUTH_JWT_SECRET is not set. Tokens will be signed with an empty key; set it in production.")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	usersRepo := users.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)
	favouritesRepo := favourites.NewRepository(db.DB)

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	authService := auth.NewService(usersRepo, tokens, cfg.Auth.BcryptCost)
	authMiddleware := auth.NewMiddleware(authService)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:        db,
		BooksStore:      booksRepo,
		FavouritesStore: favouritesRepo,
		AuthService:     authService,
		AuthMiddleware:  authMiddleware,
		Exporter:        exporters.NewCSVExporter(booksRepo),
		Version:         version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	})
}
