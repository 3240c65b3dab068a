package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SirTebz/CommunityNoticeboard/services"
	"github.com/SirTebz/CommunityNoticeboard/utils"
)

// respondError maps service error kinds to HTTP statuses and business codes.
// Unexpected errors are logged and reported without detail.
func respondError(ctx *gin.Context, err error, resource string) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.ErrorWithData(ctx, http.StatusBadRequest, 40000, ve.Error(), gin.H{"fields": ve.Fields})
	case errors.Is(err, services.ErrValidation):
		utils.Error(ctx, http.StatusBadRequest, 40000, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		utils.Error(ctx, http.StatusForbidden, 40300, "you are not allowed to modify this "+resource)
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40400, resource+" not found")
	case errors.Is(err, services.ErrUserHasComments):
		utils.Error(ctx, http.StatusConflict, 40901, "user still has comments; remove them first")
	case errors.Is(err, services.ErrConflict):
		utils.Error(ctx, http.StatusConflict, 40900, err.Error())
	default:
		utils.Logger.Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(err),
		)
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
	}
}

// parseID reads a positive numeric path parameter.
func parseID(ctx *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(ctx.Param(name))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
