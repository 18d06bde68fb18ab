package comment

import (
	"errors"
	"net/http"
	"strings"

	"nostalgic-food-map/db"
	"nostalgic-food-map/inflight"
	"nostalgic-food-map/models"
	"nostalgic-food-map/repository"
	"nostalgic-food-map/session"
	"nostalgic-food-map/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	hub *Hub
}

func New(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// @Summary List comments of a post
// @Description Comments oldest first with their author names
// @Tags comments
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string][]models.CommentView "comments"
// @Failure 400 {object} map[string]string "error: Invalid id"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/{id}/comments [get]
func (h *Handler) GetComments(c *gin.Context) {
	postID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	comments, err := repository.Comments(db.DB, postID)
	if err != nil {
		utils.LogError(err, "Error retrieving comments in GetComments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// @Summary Create a new comment for a post
// @Description Insert the comment, broadcast it to open streams and return the refreshed list
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param comment body models.CommentCreate true "Comment content"
// @Security BearerAuth
// @Success 201 {object} map[string][]models.CommentView "comments"
// @Failure 400 {object} map[string]string "error: Invalid request"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 409 {object} map[string]string "error: Comment already in progress"
// @Failure 500 {object} map[string]string "error: Server error"
// @Router /posts/{id}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	s, ok := session.From(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	postID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	var input models.CommentCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment data"})
		return
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment content is required"})
		return
	}

	release, err := inflight.Acquire(c.Request.Context(), inflight.Key("comment", s.UserID, postID))
	if err != nil {
		if errors.Is(err, inflight.ErrInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": "Comment already in progress"})
			return
		}
		utils.LogErrorWithUser(s.UserID, err, "Error acquiring comment guard in CreateComment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save comment"})
		return
	}
	defer release()

	exists, err := repository.PostExists(db.DB, postID)
	if err != nil {
		utils.LogErrorWithUser(s.UserID, err, "Error retrieving post in CreateComment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save comment"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		PostID:   postID,
		AuthorID: s.UserID,
		Content:  content,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		utils.LogErrorWithUser(s.UserID, err, "Error creating comment in CreateComment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save comment"})
		return
	}

	// the list is re-read so the client never shows an unconfirmed comment
	comments, err := repository.Comments(db.DB, postID)
	if err != nil {
		utils.LogErrorWithUser(s.UserID, err, "Error retrieving comments in CreateComment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	for _, view := range comments {
		if view.ID == comment.ID {
			h.hub.Broadcast(view)
			break
		}
	}

	utils.LogSuccessWithUser(s.UserID, "Comment successfully created in CreateComment")
	c.JSON(http.StatusCreated, gin.H{"comments": comments})
}
