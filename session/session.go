// Package session verifies the access tokens issued by the platform's auth
// service after the OAuth redirect and carries the result through a request.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

const contextKey = "session"

var ErrInvalidToken = errors.New("invalid or expired token")

// Session is the authenticated identity of the caller.
type Session struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	Role        string    `json:"role"`
	ExpiresAt   time.Time `json:"expiresAt"`
	AccessToken string    `json:"-"`
}

// Verify checks the HS256 signature and expiry of tokenString and maps its
// claims onto a Session.
func Verify(tokenString, secret string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signature method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	s := &Session{
		UserID:      sub,
		AccessToken: tokenString,
	}
	s.Email, _ = claims["email"].(string)
	s.Role, _ = claims["role"].(string)
	if exp, ok := claims["exp"].(float64); ok {
		s.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}

	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		s.Name = firstString(meta, "name", "full_name", "user_name")
		s.AvatarURL = firstString(meta, "avatar_url")
	}
	return s, nil
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Attach stores s on the request context.
func Attach(c *gin.Context, s *Session) {
	c.Set(contextKey, s)
}

// From returns the session attached to the request, if any.
func From(c *gin.Context) (*Session, bool) {
	v, exists := c.Get(contextKey)
	if !exists {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok && s != nil
}

// UserID is the caller's id or "" when signed out.
func UserID(c *gin.Context) string {
	if s, ok := From(c); ok {
		return s.UserID
	}
	return ""
}
