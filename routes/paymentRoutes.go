package routes

import (
	"github.com/davidwere/sokoni-api/config"
	"github.com/davidwere/sokoni-api/controllers"
	"github.com/davidwere/sokoni-api/middlewares"
	"github.com/gin-gonic/gin"
)

func PaymentRoutes(server *gin.Engine, cfg *config.Config, payments *controllers.PaymentController) {
	group := server.Group("/api/payments")
	{
		// The webhook authenticates via the Stripe-Signature header, not a
		// bearer token.
		group.POST("/webhook", payments.Webhook)
	}

	secured := group.Group("", middlewares.RequireAuth(cfg))
	{
		secured.POST("/create-payment-intent", payments.CreateIntent)
		secured.POST("/confirm-payment", payments.Confirm)
	}
}
