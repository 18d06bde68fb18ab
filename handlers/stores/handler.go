package stores

import (
	"errors"
	"net/http"

	"nostalgic-food-map/db"
	"nostalgic-food-map/models"
	"nostalgic-food-map/repository"
	"nostalgic-food-map/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary List stores
// @Description All stores sorted by name, with the late-night marker
// @Tags stores
// @Produce json
// @Success 200 {object} map[string][]models.Store "stores"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /stores [get]
func ListStores(c *gin.Context) {
	stores := []models.Store{}
	if err := db.DB.Order("name ASC").Find(&stores).Error; err != nil {
		utils.LogError(err, "Error retrieving stores in ListStores")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving stores"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// @Summary Get a store
// @Description Store fields and its posts, newest first
// @Tags stores
// @Produce json
// @Param id path string true "Store ID"
// @Success 200 {object} models.StoreDetail
// @Failure 400 {object} map[string]string "error: Invalid id"
// @Failure 404 {object} map[string]string "error: Store not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /stores/{id} [get]
func GetStore(c *gin.Context) {
	storeID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	var store models.Store
	if err := db.DB.First(&store, "id = ?", storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
			return
		}
		utils.LogError(err, "Error retrieving store in GetStore")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving store"})
		return
	}

	posts, err := repository.PostSummaries(db.DB.Where("store_id = ?", storeID))
	if err != nil {
		utils.LogError(err, "Error retrieving store posts in GetStore")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving store"})
		return
	}

	c.JSON(http.StatusOK, models.StoreDetail{Store: store, Posts: posts})
}
