package api

import (
	"net/http" // HTTP status codes

	"finance_tracker/internal/middleware" // Authenticated user lookup
	"finance_tracker/internal/service"    // Credential service

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest is the body of POST /api/users/register
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`     // Display name
	Email    string `json:"email" binding:"required"`    // Login email, unique
	Password string `json:"password" binding:"required"` // Plaintext, hashed before storage
}

// LoginRequest is the body of POST /api/users/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Login email
	Password string `json:"password" binding:"required"` // Plaintext password
}

// AuthResponse is returned on successful login
type AuthResponse struct {
	Message string `json:"message"` // Human-readable status
	Token   string `json:"token"`   // Signed session token
}

// RegisterHandler creates a user account
func RegisterHandler(creds *service.CredentialService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, log, "register", "Name, email and password are required", err)
			return
		}
		user, err := creds.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			respondError(c, log, "register", "User", err)
			return
		}
		log.WithFields(logrus.Fields{
			"user_id":    user.ID,                              // New user
			"request_id": c.GetString(middleware.RequestIDKey), // Request correlation
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user and returns a session token
func LoginHandler(creds *service.CredentialService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, log, "login", "Email and password are required", err)
			return
		}
		token, _, err := creds.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, log, "login", "User", err)
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Message: "Logged in successfully", Token: token})
	}
}

// MeHandler returns the authenticated user without the password hash
func MeHandler(creds *service.CredentialService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c) // Set by JWTAuthMiddleware
		user, err := creds.Me(c.Request.Context(), userID)
		if err != nil {
			respondError(c, log, "me", "User", err)
			return
		}
		c.JSON(http.StatusOK, user) // Password is tagged json:"-"
	}
}
