package posts

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"nostalgic-food-map/db"
	"nostalgic-food-map/models"
	"nostalgic-food-map/repository"
	"nostalgic-food-map/session"
	"nostalgic-food-map/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// now is swapped in tests to pin object keys.
var now = time.Now

// @Summary Create a new post
// @Description Upload the image, insert the post, then link the image to it
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Post title"
// @Param body formData string false "Post body"
// @Param storeId formData string true "Store ID"
// @Param image formData file true "Post image"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "post, imageUrl"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts [post]
func CreatePost(c *gin.Context) {
	s, ok := session.From(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	storeIDStr := strings.TrimSpace(c.PostForm("storeId"))
	if storeIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Store is required"})
		return
	}
	storeID, err := uuid.Parse(storeIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid store ID"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
		return
	}
	if err := utils.ValidateImage(file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if utils.Images == nil {
		utils.LogErrorWithUser(s.UserID, nil, "No image store configured in CreatePost")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	// Three independent writes. A failure stops the sequence but does not
	// undo earlier steps, so an orphaned object or post can remain.
	key := utils.ObjectKey(now(), file.Filename)
	path, err := utils.Images.Upload(c.Request.Context(), key, file, s.AccessToken)
	if err != nil {
		utils.LogErrorWithUser(s.UserID, err, "Error uploading image in CreatePost")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	sid := storeID.String()
	post := models.Post{
		AuthorID: s.UserID,
		StoreID:  &sid,
		Title:    title,
		Body:     c.PostForm("body"),
	}
	if err := db.DB.Create(&post).Error; err != nil {
		utils.LogErrorWithUser(s.UserID, err, "Error creating post in CreatePost, image "+path+" is orphaned")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	image := models.PostImage{
		PostID:   post.ID,
		ImageURL: path,
	}
	if err := db.DB.Create(&image).Error; err != nil {
		utils.LogErrorWithUser(s.UserID, err, "Error linking image in CreatePost, post "+post.ID+" has no image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	utils.LogSuccessWithUser(s.UserID, "Post successfully created in CreatePost")
	c.JSON(http.StatusCreated, gin.H{
		"post":     post,
		"imageUrl": utils.ImageURL(path),
	})
}

// @Summary Get a post by ID
// @Description Post with images, author, comments and like/report state for the viewer
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.PostDetail
// @Failure 400 {object} map[string]string "error: Invalid id"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/{id} [get]
func GetPostByID(c *gin.Context) {
	postID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}
	viewerID := session.UserID(c)

	var post models.Post
	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		utils.LogError(err, "Error retrieving post in GetPostByID")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving post"})
		return
	}

	detail := models.PostDetail{
		ID:        post.ID,
		Title:     post.Title,
		Body:      post.Body,
		StoreID:   post.StoreID,
		CreatedAt: post.CreatedAt,
	}

	var err error
	if detail.Images, err = repository.PostImages(db.DB, post.ID); err != nil {
		utils.LogError(err, "Error retrieving images in GetPostByID")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving post"})
		return
	}

	var authors []models.User
	if err := db.DB.Where("id = ?", post.AuthorID).Limit(1).Find(&authors).Error; err != nil {
		utils.LogError(err, "Error retrieving author in GetPostByID")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving post"})
		return
	}
	if len(authors) > 0 {
		detail.Author = &models.UserSummary{
			ID:        authors[0].ID,
			Name:      authors[0].DisplayName(),
			AvatarURL: authors[0].AvatarURL,
		}
	}

	if detail.Comments, err = repository.Comments(db.DB, post.ID); err != nil {
		utils.LogError(err, "Error retrieving comments in GetPostByID")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving post"})
		return
	}

	likes, err := repository.LikeState(db.DB, post.ID, viewerID)
	if err != nil {
		utils.LogError(err, "Error retrieving likes in GetPostByID")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving post"})
		return
	}
	detail.LikesCount = likes.Count
	detail.LikedByMe = likes.Liked

	if viewerID != "" {
		if detail.ReportedByMe, err = repository.ReportedBy(db.DB, post.ID, viewerID); err != nil {
			utils.LogError(err, "Error retrieving reports in GetPostByID")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving post"})
			return
		}
	}

	c.JSON(http.StatusOK, detail)
}
