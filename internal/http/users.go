package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libreshelf/library/internal/auth"
)

// AuthController handles registration and login.
type AuthController struct {
	service *auth.Service
}

// NewAuthController creates a new AuthController.
func NewAuthController(service *auth.Service) *AuthController {
	return &AuthController{service: service}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new user with the client role.
// POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	user, err := ac.service.Register(req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		respondConflict(c, err.Error())
		return
	case errors.Is(err, auth.ErrEmailInvalid),
		errors.Is(err, auth.ErrPasswordTooLong):
		respondBadRequest(c, err.Error())
		return
	case err != nil:
		respondInternalError(c, err, "register user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and returns a bearer token.
// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	token, err := ac.service.Login(req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password produce the same response.
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "incorrect email or password"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
