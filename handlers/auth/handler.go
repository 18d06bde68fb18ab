package auth

import (
	"net/http"

	"nostalgic-food-map/db"
	"nostalgic-food-map/models"
	"nostalgic-food-map/session"
	"nostalgic-food-map/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// Handler serves the sign-in entry points. Tokens are issued by the
// platform's auth service; this side only redirects and reads them.
type Handler struct {
	loginURL string
}

func New(loginURL string) *Handler {
	return &Handler{loginURL: loginURL}
}

// @Summary Start OAuth sign-in
// @Description Redirect the browser to the platform's OAuth authorize endpoint
// @Tags auth
// @Success 302 {string} string "redirect"
// @Router /auth/login [get]
func (h *Handler) Login(c *gin.Context) {
	c.Redirect(http.StatusFound, h.loginURL)
}

// @Summary Current session
// @Description Session of the bearer token and the matching profile, created on first sight
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "session, user"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /auth/session [get]
func (h *Handler) GetSession(c *gin.Context) {
	s, ok := session.From(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"session": nil, "loginUrl": h.loginURL})
		return
	}

	user, err := ensureProfile(s)
	if err != nil {
		utils.LogErrorWithUser(s.UserID, err, "Error loading profile in GetSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": s, "user": user})
}

// ensureProfile returns the users row of s, inserting it from the token
// claims when the account signs in for the first time.
func ensureProfile(s *session.Session) (models.User, error) {
	user := models.User{
		ID:        s.UserID,
		Name:      s.Name,
		Email:     s.Email,
		AvatarURL: s.AvatarURL,
		Role:      models.UserRole,
	}
	// Concurrent first requests may both insert; the loser keeps the stored row.
	result := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&user)
	if result.Error != nil {
		return models.User{}, result.Error
	}
	if result.RowsAffected > 0 {
		utils.LogSuccessWithUser(s.UserID, "Profile created in GetSession")
	}

	var stored models.User
	if err := db.DB.First(&stored, "id = ?", s.UserID).Error; err != nil {
		return models.User{}, err
	}
	return stored, nil
}
