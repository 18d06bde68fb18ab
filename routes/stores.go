package routes

import (
	"nostalgic-food-map/handlers/stores"

	"github.com/gin-gonic/gin"
)

func StoresRoutes(r *gin.Engine) {
	r.GET("/stores", stores.ListStores)
	r.GET("/stores/:id", stores.GetStore)
}
