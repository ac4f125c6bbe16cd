package services

import (
	"testing"

	"github.com/davidwere/sokoni-api/config"
	"github.com/davidwere/sokoni-api/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB returns an isolated in-memory database. A single connection
// keeps the database alive for the duration of the test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentEvent{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:           "test-secret",
		JWTIssuer:           "sokoni-api",
		JWTAudience:         "sokoni-clients",
		JWTExpiryMinutes:    60,
		StripeSecretKey:     "sk_test_123",
		StripeWebhookSecret: "whsec_test_123",
	}
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()
	product := models.Product{Name: name, Description: name + " description", Price: price}
	require.NoError(t, db.Create(&product).Error)
	return product
}
