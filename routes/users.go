package routes

import (
	"nostalgic-food-map/handlers/users"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	r.GET("/users/:id", users.GetUserProfile)
}
