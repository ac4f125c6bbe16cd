package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/davidwere/sokoni-api/middlewares"
	"github.com/davidwere/sokoni-api/services"
	"github.com/gin-gonic/gin"
)

const msgInvalidInput = "invalid input"

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"message": message})
}

// respondWithServiceError maps the service error taxonomy onto HTTP status
// codes. Anything unclassified is an internal error and its details stay in
// the server log.
func respondWithServiceError(ctx *gin.Context, err error) {
	switch services.KindOf(err) {
	case services.KindNotFound:
		sendErrorResponse(ctx, http.StatusNotFound, err.Error())
	case services.KindConflict:
		sendErrorResponse(ctx, http.StatusConflict, err.Error())
	case services.KindUnauthorized:
		sendErrorResponse(ctx, http.StatusUnauthorized, err.Error())
	case services.KindInvalidRequest:
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	case services.KindInvalidState:
		sendErrorResponse(ctx, http.StatusConflict, err.Error())
	case services.KindTransient:
		sendErrorResponse(ctx, http.StatusServiceUnavailable, err.Error())
	default:
		log.Println("Internal error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "internal server error")
	}
}

func currentUserID(ctx *gin.Context) uint {
	value, exists := ctx.Get(middlewares.CtxUserIDKey)
	if !exists {
		return 0
	}
	userID, ok := value.(uint)
	if !ok {
		return 0
	}
	return userID
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
