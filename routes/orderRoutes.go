package routes

import (
	"github.com/davidwere/sokoni-api/config"
	"github.com/davidwere/sokoni-api/controllers"
	"github.com/davidwere/sokoni-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, cfg *config.Config, orders *controllers.OrderController) {
	group := server.Group("/api/orders", middlewares.RequireAuth(cfg))
	{
		group.GET("/me", orders.Mine)
		group.GET("/:orderId", orders.Get)
		group.POST("/:orderId/pay", orders.Pay)
	}
}
