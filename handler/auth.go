package handler

import (
	"net/http"

	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler interface
type AuthHandler interface {
	Login(c *gin.Context)
	Logout(c *gin.Context)
}

// authHandler struct
type authHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates and returns a new AuthHandler
func NewAuthHandler(authService service.AuthService) AuthHandler {
	return &authHandler{
		authService: authService,
	}
}

// Login exchanges email and password for a token.
func (h *authHandler) Login(c *gin.Context) {
	var loginRequest entity.LoginRequest
	if err := c.ShouldBindJSON(&loginRequest); err != nil {
		respondBindError(c, err)
		return
	}

	_, token, err := h.authService.Login(c.Request.Context(), loginRequest.Email, loginRequest.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"auth_token": token})
}

// Logout is a no-op for stateless tokens; the client drops its token.
func (h *authHandler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
