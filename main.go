package main

import (
	"context"
	"log"
	"time"

	"github.com/davidwere/sokoni-api/config"
	"github.com/davidwere/sokoni-api/controllers"
	"github.com/davidwere/sokoni-api/initializers"
	"github.com/davidwere/sokoni-api/routes"
	"github.com/davidwere/sokoni-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	initializers.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	db, err := initializers.ConnectToDB(cfg)
	if err != nil {
		log.Fatal("Database error: ", err)
	}
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatal("Migration error: ", err)
	}

	catalog := services.NewCatalogService(db)
	auth := services.NewAuthService(db, cfg)
	cart := services.NewCartService(db)
	orders := services.NewOrderService(db)
	payments := services.NewPaymentService(db, cfg, orders)

	var media *services.MediaService
	if cfg.MediaBucket != "" {
		media, err = services.NewMediaService(context.Background(), cfg)
		if err != nil {
			log.Fatal("Media service error: ", err)
		}
	} else {
		log.Println("MEDIA_BUCKET not set, image uploads disabled.")
	}

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server, controllers.NewHealthController(cfg))
	routes.AuthRoutes(server, controllers.NewAuthController(auth))
	routes.ProductRoutes(server, cfg, controllers.NewProductController(catalog, media))
	routes.CartRoutes(server, cfg, controllers.NewCartController(cart))
	routes.OrderRoutes(server, cfg, controllers.NewOrderController(orders))
	routes.PaymentRoutes(server, cfg, controllers.NewPaymentController(payments))

	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server error: ", err)
	}
}
