package main

import (
	"log"

	"nostalgic-food-map/config"
	"nostalgic-food-map/db"
	_ "nostalgic-food-map/docs"
	"nostalgic-food-map/inflight"
	"nostalgic-food-map/routes"
	"nostalgic-food-map/utils"

	"github.com/gin-gonic/gin"
)

// @title Nostalgic Food Map API
// @version 1.0
// @description Posts about the stores people remember, with comments, likes and moderation
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Platform access token with the Bearer prefix: Bearer <JWT>
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}

	if err := utils.ConfigureLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatal("Error configuring logger: ", err)
	}

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := db.InitDB(cfg.Database.URL, cfg.Database.AutoMigrate); err != nil {
		log.Fatal("Error connecting to the database: ", err)
	}

	switch cfg.Storage.Provider {
	case "cloudinary":
		store, err := utils.NewCloudinaryStore(
			cfg.Storage.CloudinaryCloudName,
			cfg.Storage.CloudinaryAPIKey,
			cfg.Storage.CloudinaryAPISecret,
			cfg.Storage.CloudinaryFolder,
		)
		if err != nil {
			utils.LogWarn(err, "Cloudinary unavailable, image upload will fail")
		} else {
			utils.Images = store
		}
	default:
		utils.Images = utils.NewSupabaseStore(cfg.Supabase.URL, cfg.Supabase.AnonKey, cfg.Supabase.Bucket)
	}

	guard, err := inflight.Connect(cfg.Redis.Addr)
	if err != nil {
		utils.LogWarn(err, "Redis unreachable, in-flight guard is process local")
	}
	inflight.Default = guard

	r := routes.SetupRouter(cfg)

	utils.LogInfo("Server listening on " + cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Error starting server: ", err)
	}
}
