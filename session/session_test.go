package session

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
)

const testSecret = "super-secret-jwt-token"

func sign(t *testing.T, claims jwt.MapClaims, secret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestVerify_Success(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	token := sign(t, jwt.MapClaims{
		"sub":   "6f1c7a1e-2b6b-4a57-8a1a-2a6f0f3f4b10",
		"email": "taro@example.com",
		"role":  "authenticated",
		"exp":   exp,
		"user_metadata": map[string]interface{}{
			"user_name":  "taro",
			"avatar_url": "https://avatars.example.com/taro.png",
		},
	}, testSecret)

	s, err := Verify(token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, "6f1c7a1e-2b6b-4a57-8a1a-2a6f0f3f4b10", s.UserID)
	assert.Equal(t, "taro@example.com", s.Email)
	assert.Equal(t, "taro", s.Name)
	assert.Equal(t, "https://avatars.example.com/taro.png", s.AvatarURL)
	assert.Equal(t, "authenticated", s.Role)
	assert.Equal(t, exp, s.ExpiresAt.Unix())
	assert.Equal(t, token, s.AccessToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	token := sign(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(time.Hour).Unix()}, "other")

	_, err := Verify(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	token := sign(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Hour).Unix()}, testSecret)

	_, err := Verify(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingSubject(t *testing.T) {
	token := sign(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}, testSecret)

	_, err := Verify(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAttachAndFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := From(c)
	assert.False(t, ok)
	assert.Equal(t, "", UserID(c))

	Attach(c, &Session{UserID: "u1"})
	s, ok := From(c)
	assert.True(t, ok)
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, "u1", UserID(c))
}
