package routes

import (
	"github.com/davidwere/sokoni-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine, health *controllers.HealthController) {
	group := server.Group("/api/health")
	{
		group.GET("", health.Status)
		group.GET("/config", health.ConfigStatus)
	}
}
