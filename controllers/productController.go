package controllers

import (
	"net/http"

	"github.com/davidwere/sokoni-api/models"
	"github.com/davidwere/sokoni-api/services"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	catalog *services.CatalogService
	media   *services.MediaService
}

// NewProductController wires the catalog together with an optional media
// uploader. With media nil (no bucket configured), products are created
// without hosted images.
func NewProductController(catalog *services.CatalogService, media *services.MediaService) *ProductController {
	return &ProductController{catalog: catalog, media: media}
}

func (c *ProductController) List(ctx *gin.Context) {
	products, err := c.catalog.List(ctx.Request.Context())
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, products)
}

func (c *ProductController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	product, err := c.catalog.Get(ctx.Request.Context(), id)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

func (c *ProductController) Create(ctx *gin.Context) {
	form, imageURL, ok := c.bindProductForm(ctx)
	if !ok {
		return
	}

	product, err := c.catalog.Create(ctx.Request.Context(), services.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
	}, imageURL)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, product)
}

func (c *ProductController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	form, imageURL, ok := c.bindProductForm(ctx)
	if !ok {
		return
	}

	product, err := c.catalog.Update(ctx.Request.Context(), id, services.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
	}, imageURL)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

func (c *ProductController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.catalog.Delete(ctx.Request.Context(), id); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// bindProductForm parses the multipart payload and, when an image file is
// attached and a media host is configured, uploads it first so the catalog
// receives a hosted URL.
func (c *ProductController) bindProductForm(ctx *gin.Context) (models.ProductForm, string, bool) {
	var form models.ProductForm
	if err := ctx.ShouldBind(&form); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return models.ProductForm{}, "", false
	}

	imageURL := ""
	if file, err := ctx.FormFile("image"); err == nil && c.media != nil {
		url, uploadErr := c.media.Upload(ctx.Request.Context(), file)
		if uploadErr != nil {
			respondWithServiceError(ctx, uploadErr)
			return models.ProductForm{}, "", false
		}
		imageURL = url
	}

	return form, imageURL, true
}
