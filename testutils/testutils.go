package testutils

import (
	"io"
	"log"
	"testing"
	"time"

	"nostalgic-food-map/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// JWTSecret signs every token produced by Token.
const JWTSecret = "test-jwt-secret"

// SetupTestDB swaps db.DB for a GORM handle backed by sqlmock.
func SetupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("create sqlmock connection: %s", err)
	}

	newLogger := logger.New(
		log.New(io.Discard, "", log.LstdFlags),
		logger.Config{
			LogLevel: logger.Silent,
		},
	)

	dialector := postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		t.Fatalf("open gorm connection: %s", err)
	}

	originalDB := db.DB
	db.DB = gormDB

	cleanup := func() {
		db.DB = originalDB
		sqlDB.Close()
	}

	return gormDB, mock, cleanup
}

func SetupTestRouter() *gin.Engine {
	return gin.New()
}

func InitTestMain() {
	gin.SetMode(gin.TestMode)
}

// Token returns a platform-style access token for userID valid for an hour.
func Token(t *testing.T, userID string) string {
	return TokenWithExpiry(t, userID, time.Now().Add(time.Hour))
}

func TokenWithExpiry(t *testing.T, userID string, exp time.Time) string {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": "user@example.com",
		"role":  "authenticated",
		"exp":   exp.Unix(),
		"user_metadata": map[string]interface{}{
			"user_name":  "tester",
			"avatar_url": "https://avatars.example.com/tester.png",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
