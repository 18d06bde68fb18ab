package report

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

// @Summary Report a post
// @Description Report a post for inappropriate content. A user can report a post once.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param report body models.ReportCreate true "Report reason"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "report, reported"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 409 {object} map[string]string "error: Already reported"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /posts/{id}/report [post]
func ReportPost(c *gin.Context) {
	s, ok := session.From(c)
	if !ok {
		utils.LogError(nil, "User not found in token in ReportPost")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	postID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	var reportCreate models.ReportCreate
	if err := c.ShouldBindJSON(&reportCreate); err != nil {
		utils.LogWarn(err, "Invalid input in ReportPost")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	reason := strings.TrimSpace(reportCreate.Reason)
	if reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reason is required"})
		return
	}

	release, err := inflight.Acquire(c.Request.Context(), inflight.Key("report", s.UserID, postID))
	if err != nil {
		if errors.Is(err, inflight.ErrInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": "Report already in progress"})
			return
		}
		utils.LogErrorWithUser(s.UserID, err, "Error acquiring report guard in ReportPost")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating report"})
		return
	}
	defer release()

	exists, err := repository.PostExists(db.DB, postID)
	if err != nil {
		utils.LogErrorWithUser(s.UserID, err, "Error retrieving post in ReportPost")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating report"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	reported, err := repository.ReportedBy(db.DB, postID, s.UserID)
	if err != nil {
		utils.LogErrorWithUser(s.UserID, err, "Error checking existing report in ReportPost")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating report"})
		return
	}
	if reported {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reported this post"})
		return
	}

	report := models.Report{
		PostID:     postID,
		ReporterID: s.UserID,
		Reason:     reason,
	}
	if err := db.DB.Create(&report).Error; err != nil {
		utils.LogErrorWithUser(s.UserID, err, "Error creating report in ReportPost")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating report"})
		return
	}

	utils.LogSuccessWithUser(s.UserID, "Report successfully created in ReportPost")
	c.JSON(http.StatusCreated, gin.H{"report": report, "reported": true})
}

// @Summary Get all reports (Admin only)
// @Description Every report newest first, with the post title and the reporter
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ReportView
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Forbidden"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /admin/reports [get]
func GetAllReports(c *gin.Context) {
	reports, err := repository.ReportViews(db.DB)
	if err != nil {
		utils.LogError(err, "Error retrieving reports in GetAllReports")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving reports"})
		return
	}

	utils.LogSuccessWithUser(session.UserID(c), "Reports successfully retrieved in GetAllReports")
	c.JSON(http.StatusOK, reports)
}

// @Summary Resolve a report (Admin only)
// @Description Mark a report as resolved. Resolving twice is a no-op.
// @Tags admin
// @Produce json
// @Param id path string true "Report ID"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "id, resolved"
// @Failure 400 {object} map[string]string "error: Invalid id"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Forbidden"
// @Failure 404 {object} map[string]string "error: Report not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /admin/reports/{id}/resolve [patch]
func ResolveReport(c *gin.Context) {
	reportID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	result := db.DB.Model(&models.Report{}).Where("id = ?", reportID).Update("resolved", true)
	if result.Error != nil {
		utils.LogErrorWithUser(session.UserID(c), result.Error, "Error resolving report in ResolveReport")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resolving report"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	utils.LogSuccessWithUser(session.UserID(c), "Report "+reportID+" resolved in ResolveReport")
	c.JSON(http.StatusOK, gin.H{"id": reportID, "resolved": true})
}
