package routes

import (
	"github.com/davidwere/sokoni-api/config"
	"github.com/davidwere/sokoni-api/controllers"
	"github.com/davidwere/sokoni-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, cfg *config.Config, products *controllers.ProductController) {
	group := server.Group("/api/products")
	{
		group.GET("", products.List)
		group.GET("/:id", products.Get)
	}

	secured := group.Group("", middlewares.RequireAuth(cfg))
	{
		secured.POST("", products.Create)
		secured.PUT("/:id", products.Update)
		secured.DELETE("/:id", products.Delete)
	}
}
