package controllers

import (
	"net/http"
	"time"

	"github.com/davidwere/sokoni-api/config"
	"github.com/gin-gonic/gin"
)

type HealthController struct {
	cfg *config.Config
}

func NewHealthController(cfg *config.Config) *HealthController {
	return &HealthController{cfg: cfg}
}

func (c *HealthController) Status(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": c.cfg.AppEnv,
	})
}

// ConfigStatus reports which secrets are present without revealing any
// values. Useful when debugging a deployment with missing env vars.
func (c *HealthController) ConfigStatus(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"hasDatabaseUrl":          c.cfg.DatabaseURL != "",
		"hasJwtSecret":            c.cfg.JWTSecret != "",
		"hasMediaBucket":          c.cfg.MediaBucket != "",
		"hasStripeSecretKey":      c.cfg.StripeSecretKey != "",
		"hasStripePublishableKey": c.cfg.StripePublishableKey != "",
		"hasStripeWebhookSecret":  c.cfg.StripeWebhookSecret != "",
	})
}
