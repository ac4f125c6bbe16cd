package routes

import (
	"github.com/davidwere/sokoni-api/config"
	"github.com/davidwere/sokoni-api/controllers"
	"github.com/davidwere/sokoni-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, cfg *config.Config, cart *controllers.CartController) {
	group := server.Group("/api/cart", middlewares.RequireAuth(cfg))
	{
		group.GET("", cart.Get)
		group.POST("", cart.Add)
		group.PUT("/:productId", cart.UpdateQuantity)
		group.DELETE("/:productId", cart.Remove)
		group.POST("/checkout", cart.Checkout)
	}
}
