package database

import (
	"fmt"
	"log"

	"github.com/sanbil2024/e-videoteka/internal/models"
)

func AutoMigrate() error {
	tables := []interface{}{
		&models.User{},
		&models.Movie{},
		&models.Review{},
		&models.UserFavorite{},
		&models.WatchEvent{},
		&models.Purchase{},
	}

	for _, table := range tables {
		if err := DB.AutoMigrate(table); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", table, err)
		}
	}

	log.Println("✅ Database migration completed")
	return nil
}
