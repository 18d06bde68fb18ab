package routes

import (
	"nostalgic-food-map/config"
	"nostalgic-food-map/handlers/auth"
	"nostalgic-food-map/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine, cfg config.SupabaseConfig) {
	h := auth.New(cfg.LoginURL())

	r.GET("/auth/login", h.Login)
	r.GET("/auth/session", middleware.SessionAuth(cfg.JWTSecret), h.GetSession)
}
