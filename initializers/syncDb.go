package initializers

import (
	"log"

	"github.com/davidwere/sokoni-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentEvent{},
	)
	if err != nil {
		return err
	}
	log.Println("Database synced successfully.")
	return nil
}
