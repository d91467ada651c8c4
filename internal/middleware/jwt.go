package middleware

import (
	"errors"   // Error inspection
	"fmt"      // Error wrapping
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"finance_tracker/internal/domain" // Error taxonomy
	"finance_tracker/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// UserIDKey is the gin context key holding the authenticated user id
const UserIDKey = "userID"

// VerifySession resolves an Authorization header value to a user id.
// The header must be exactly "Bearer <token>".
func VerifySession(authHeader, secret string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", domain.ErrMalformedHeader
	}
	userID, err := utils.ParseJWT(parts[1], secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	return userID, nil
}

// JWTAuthMiddleware guards protected routes with VerifySession
func JWTAuthMiddleware(secret string, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := VerifySession(c.GetHeader("Authorization"), secret)
		if err != nil {
			log.WithFields(logrus.Fields{
				"request_id": c.GetString(RequestIDKey), // Correlates with the access log
				"path":       c.FullPath(),              // Route pattern
				"error":      err.Error(),               // Underlying cause
			}).Warn("Session verification failed")
			msg := "Invalid or expired token"
			if errors.Is(err, domain.ErrMalformedHeader) {
				msg = `Invalid token format. Expected "Bearer <token>"`
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}
		c.Set(UserIDKey, userID) // Store userID in context
		c.Next()                 // Proceed to the next handler
	}
}

// CurrentUserID returns the id stored by JWTAuthMiddleware
func CurrentUserID(c *gin.Context) (string, bool) {
	id := c.GetString(UserIDKey)
	return id, id != ""
}
