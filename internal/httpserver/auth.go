package httpserver

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	authsvc "storefront/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string        `json:"token"`
	IsAdmin   bool          `json:"isAdmin"`
	OpenOrder *domain.Order `json:"openOrder"`
}

func registerHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Registration failed"})
			return
		}

		_, err := svc.Register(c.Request.Context(), req.Username, req.Password)
		switch {
		case errors.Is(err, authsvc.ErrDuplicateUsername):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Registration failed, username already exists"})
		case errors.Is(err, authsvc.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Registration failed"})
		case err != nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Registration failed"})
		default:
			c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
		}
	}
}

func loginHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		result, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, authsvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		c.JSON(http.StatusOK, loginResponse{
			Token:     result.Token,
			IsAdmin:   result.IsAdmin,
			OpenOrder: result.OpenOrder,
		})
	}
}
