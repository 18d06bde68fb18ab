package middleware

import (
	"errors"
	"net/http"
	"strings"

	"nostalgic-food-map/db"
	"nostalgic-food-map/models"
	"nostalgic-food-map/session"
	"nostalgic-food-map/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bearerToken(c *gin.Context) string {
	authHeader := strings.Trim(c.GetHeader("Authorization"), "\"' ")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.Trim(parts[1], "\"' ")
	}
	// clients sometimes send the raw token
	if len(parts) == 1 {
		return parts[0]
	}
	return ""
}

// SessionAuth attaches the caller's session when a valid token is present
// and lets every request through.
func SessionAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			s, err := session.Verify(token, secret)
			if err == nil {
				session.Attach(c, s)
			} else {
				utils.LogWarn(err, "Ignoring invalid session token")
			}
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, secret string) (*session.Session, bool) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
		return nil, false
	}

	s, err := session.Verify(token, secret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return nil, false
	}

	session.Attach(c, s)
	return s, true
}

// RequireSession rejects requests without a valid session.
func RequireSession(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, secret); !ok {
			return
		}
		c.Next()
	}
}

// AdminAuth requires a session whose profile carries the admin role.
// The role comes from the users table, not from the token.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := authenticate(c, secret)
		if !ok {
			return
		}

		var user models.User
		err := db.DB.Select("role").First(&user, "id = ?", s.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: admin role required"})
			return
		}
		if err != nil {
			utils.LogErrorWithUser(s.UserID, err, "Error loading role in AdminAuth")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Error checking permissions"})
			return
		}

		if user.Role != models.AdminRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: admin role required"})
			return
		}

		c.Next()
	}
}
