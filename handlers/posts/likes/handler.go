package likes

import (
	"errors"
	"net/http"

	"nostalgic-food-map/db"
	"nostalgic-food-map/inflight"
	"nostalgic-food-map/models"
	"nostalgic-food-map/repository"
	"nostalgic-food-map/session"
	"nostalgic-food-map/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Toggle like on a post
// @Description Add or remove the caller's like, then return the stored state
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} models.LikeState
// @Failure 400 {object} map[string]string "error: Invalid id"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 409 {object} map[string]string "error: Like already in progress"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/{id}/like [post]
func ToggleLike(c *gin.Context) {
	s, ok := session.From(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	postID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	release, err := inflight.Acquire(c.Request.Context(), inflight.Key("like", s.UserID, postID))
	if err != nil {
		if errors.Is(err, inflight.ErrInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": "Like already in progress"})
			return
		}
		utils.LogErrorWithUser(s.UserID, err, "Error acquiring like guard in ToggleLike")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error toggling like"})
		return
	}
	defer release()

	exists, err := repository.PostExists(db.DB, postID)
	if err != nil {
		utils.LogErrorWithUser(s.UserID, err, "Error retrieving post in ToggleLike")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error toggling like"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var like models.Like
	err = db.DB.Where("post_id = ? AND user_id = ?", postID, s.UserID).First(&like).Error
	switch {
	case err == nil:
		if err := db.DB.Delete(&like).Error; err != nil {
			utils.LogErrorWithUser(s.UserID, err, "Error removing like in ToggleLike")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing like"})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		like = models.Like{PostID: postID, UserID: s.UserID}
		if err := db.DB.Create(&like).Error; err != nil {
			utils.LogErrorWithUser(s.UserID, err, "Error adding like in ToggleLike")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding like"})
			return
		}
	default:
		utils.LogErrorWithUser(s.UserID, err, "Error retrieving like in ToggleLike")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error toggling like"})
		return
	}

	// The count is re-read rather than derived so the client can reconcile
	// its optimistic state against it.
	state, err := repository.LikeState(db.DB, postID, s.UserID)
	if err != nil {
		utils.LogErrorWithUser(s.UserID, err, "Error counting likes in ToggleLike")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error toggling like"})
		return
	}

	c.JSON(http.StatusOK, state)
}
