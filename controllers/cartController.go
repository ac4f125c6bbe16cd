package controllers

import (
	"net/http"

	"github.com/davidwere/sokoni-api/models"
	"github.com/davidwere/sokoni-api/services"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

func (c *CartController) Get(ctx *gin.Context) {
	items, err := c.cart.GetCart(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, items)
}

func (c *CartController) Add(ctx *gin.Context) {
	var req models.AddToCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	items, err := c.cart.AddOrUpdate(ctx.Request.Context(), currentUserID(ctx), req)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, items)
}

func (c *CartController) UpdateQuantity(ctx *gin.Context) {
	productID, ok := parseIDParam(ctx, "productId")
	if !ok {
		return
	}

	var req models.UpdateCartQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	items, err := c.cart.SetQuantity(ctx.Request.Context(), currentUserID(ctx), productID, req.Quantity)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, items)
}

func (c *CartController) Remove(ctx *gin.Context) {
	productID, ok := parseIDParam(ctx, "productId")
	if !ok {
		return
	}

	items, err := c.cart.Remove(ctx.Request.Context(), currentUserID(ctx), productID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, items)
}

func (c *CartController) Checkout(ctx *gin.Context) {
	order, err := c.cart.Checkout(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, order)
}
