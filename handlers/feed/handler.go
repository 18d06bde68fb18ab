package feed

import (
	"net/http"
	"sort"
	"strings"

	"nostalgic-food-map/db"
	"nostalgic-food-map/models"
	"nostalgic-food-map/repository"
	"nostalgic-food-map/session"
	"nostalgic-food-map/utils"

	"github.com/gin-gonic/gin"
)

// FilterByTitle keeps the posts whose title contains q, ignoring case.
// An empty q keeps everything.
func FilterByTitle(posts []models.PostSummary, q string) []models.PostSummary {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return posts
	}

	filtered := make([]models.PostSummary, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), q) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// SortByCreatedAt returns a copy of posts ordered by creation time.
func SortByCreatedAt(posts []models.PostSummary, ascending bool) []models.PostSummary {
	sorted := make([]models.PostSummary, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

type Handler struct {
	loginURL string
}

func New(loginURL string) *Handler {
	return &Handler{loginURL: loginURL}
}

// @Summary Get the feed
// @Description All posts, newest first, each with its first image. Title filter and order apply to the fetched list.
// @Tags feed
// @Produce json
// @Param q query string false "Case-insensitive title filter"
// @Param order query string false "asc or desc (default)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "posts"
// @Failure 401 {object} map[string]string "error, loginUrl"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts [get]
func (h *Handler) GetFeed(c *gin.Context) {
	s, ok := session.From(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "Sign in to see the feed",
			"loginUrl": h.loginURL,
		})
		return
	}

	order := strings.ToLower(c.DefaultQuery("order", "desc"))
	if order != "asc" && order != "desc" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be asc or desc"})
		return
	}

	posts, err := repository.PostSummaries(db.DB)
	if err != nil {
		utils.LogErrorWithUser(s.UserID, err, "Error retrieving posts in GetFeed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving posts"})
		return
	}

	posts = FilterByTitle(posts, c.Query("q"))
	posts = SortByCreatedAt(posts, order == "asc")

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
