package db

import (
	"fmt"

	"nostalgic-food-map/models"
	"nostalgic-food-map/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB connects to the platform's Postgres. Migration is opt-in because
// the hosted platform normally owns the schema.
func InitDB(dsn string, autoMigrate bool) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: utils.GetGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if autoMigrate {
		if err := Migrate(DB); err != nil {
			return err
		}
	}

	utils.LogSuccess("Database connection successful")
	return nil
}

func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Post{},
		&models.PostImage{},
		&models.Comment{},
		&models.Like{},
		&models.Report{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
