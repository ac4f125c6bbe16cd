package controllers

import (
	"net/http"

	"github.com/davidwere/sokoni-api/services"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (c *OrderController) Mine(ctx *gin.Context) {
	orders, err := c.orders.ListMine(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, orders)
}

func (c *OrderController) Get(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "orderId")
	if !ok {
		return
	}

	order, err := c.orders.GetByID(ctx.Request.Context(), currentUserID(ctx), orderID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

// Pay is the legacy simulated-payment path kept for clients that predate the
// payment-intent flow. It goes through the same guarded transition as the
// real processor callbacks.
func (c *OrderController) Pay(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx, "orderId")
	if !ok {
		return
	}

	order, err := c.orders.MarkPaid(ctx.Request.Context(), currentUserID(ctx), orderID, "simulated")
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}
