package initializers

import (
	"fmt"

	"github.com/davidwere/sokoni-api/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func ConnectToDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
