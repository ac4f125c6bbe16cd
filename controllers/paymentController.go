package controllers

import (
	"net/http"

	"github.com/davidwere/sokoni-api/models"
	"github.com/davidwere/sokoni-api/services"
	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

func (c *PaymentController) CreateIntent(ctx *gin.Context) {
	var req models.CreatePaymentIntentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	response, err := c.payments.CreateIntent(ctx.Request.Context(), currentUserID(ctx), req)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, response)
}

func (c *PaymentController) Confirm(ctx *gin.Context) {
	var req models.ConfirmPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, err := c.payments.Confirm(ctx.Request.Context(), currentUserID(ctx), req.PaymentIntentID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

// Webhook is authenticated by the processor's signature, not by a user
// token, so it reads the raw body before any JSON decoding.
func (c *PaymentController) Webhook(ctx *gin.Context) {
	payload, err := ctx.GetRawData()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "unable to read request body")
		return
	}

	signature := ctx.GetHeader("Stripe-Signature")
	if err := c.payments.HandleWebhook(ctx.Request.Context(), payload, signature); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"received": true})
}
