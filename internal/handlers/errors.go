package handlers

import (
	"errors"
	"net/http"

	"stayinalign/internal/bot"
	"stayinalign/internal/models"
	"stayinalign/internal/services"
	"stayinalign/internal/utils"
	"stayinalign/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errorStatus maps service errors to an HTTP status and an error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidBoard), errors.Is(err, models.ErrInvalidCoin):
		return http.StatusBadRequest, "INVALID_STATE"
	case errors.Is(err, bot.ErrUnknownAgent):
		return http.StatusBadRequest, "UNKNOWN_AGENT"
	case errors.Is(err, services.ErrMatchNotFound):
		return http.StatusNotFound, "MATCH_NOT_FOUND"
	case errors.Is(err, services.ErrAnalyticsUnavailable):
		return http.StatusServiceUnavailable, "ANALYTICS_UNAVAILABLE"
	default:
		logger.Log.Error("Unhandled service error", zap.Error(err))
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func errorMessage(status int, err error) string {
	if status == http.StatusInternalServerError {
		return "An internal error occurred"
	}
	return err.Error()
}

func respondError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	utils.ErrorResponse(c, status, code, errorMessage(status, err))
}
