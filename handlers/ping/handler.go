package ping

import (
	"net/http"

	"nostalgic-food-map/db"
	"nostalgic-food-map/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

// HandlePing reports liveness together with the database connection state.
// @Summary Health check
// @Description Answers pong when the database is reachable
// @Tags health
// @Produce json
// @Success 200 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /ping [get]
func (h *Handler) HandlePing(c *gin.Context) {
	sqlDB, err := db.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		utils.LogError(err, "Database unreachable in HandlePing")
		utils.SendError(c, http.StatusServiceUnavailable, "Database unreachable")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Ping successful", gin.H{
		"message":  "pong",
		"database": "up",
	})
}
