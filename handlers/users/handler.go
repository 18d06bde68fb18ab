package users

import (
	"errors"
	"net/http"

	"nostalgic-food-map/db"
	"nostalgic-food-map/models"
	"nostalgic-food-map/repository"
	"nostalgic-food-map/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Get a user profile
// @Description Profile fields and the posts the user authored, newest first
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.UserProfile
// @Failure 400 {object} map[string]string "error: Invalid id"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /users/{id} [get]
func GetUserProfile(c *gin.Context) {
	userID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		utils.LogError(err, "Error retrieving user in GetUserProfile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving user"})
		return
	}

	posts, err := repository.PostSummaries(db.DB.Where("author_id = ?", userID))
	if err != nil {
		utils.LogError(err, "Error retrieving posts in GetUserProfile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving user"})
		return
	}

	c.JSON(http.StatusOK, models.UserProfile{User: user, Posts: posts})
}
