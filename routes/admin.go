package routes

import (
	"nostalgic-food-map/handlers/posts/report"
	"nostalgic-food-map/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine, secret string) {
	adminRoutes := r.Group("/admin")
	adminRoutes.Use(middleware.AdminAuth(secret))
	{
		adminRoutes.GET("/reports", report.GetAllReports)
		adminRoutes.PATCH("/reports/:id/resolve", report.ResolveReport)
	}
}
