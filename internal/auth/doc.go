// Package auth provides authentication and authorization for the catalog
// service.
//
// Credentials are verified with bcrypt; authenticated clients receive a
// signed, time-bounded bearer token (HS256 JWT carrying the user's email as
// subject). Every request presenting a token is resolved back to a user row,
// so deleting a user invalidates outstanding tokens immediately.
//
// # Configuration
//
//	AUTH_JWT_SECRET=<secret>     # Signing key, required in production
//	AUTH_TOKEN_EXPIRY=30m        # Token lifetime from issuance
//	AUTH_BCRYPT_COST=12          # bcrypt cost factor
//
// # Usage
//
// Initialize authentication in entrypoint:
//
//	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
//	authService := auth.NewService(userRepo, tokens, cfg.Auth.BcryptCost)
//	authMiddleware := auth.NewMiddleware(authService)
//
// Guard routes:
//
//	admin := router.Group("/books", authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
//
// Extract user in handlers:
//
//	userID := auth.GetUserID(c)
package auth
