package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"rukorent/internal/app/commands"
	"rukorent/internal/app/middleware"
	"rukorent/internal/app/policies"
	"rukorent/internal/app/queries"
	domainbooking "rukorent/internal/domain/booking"
	"rukorent/internal/domain/checkout"
	domainpayment "rukorent/internal/domain/payment"
	"rukorent/internal/domain/ruko"
	"rukorent/internal/domain/session"
)

// renderError maps application errors onto HTTP responses.
func renderError(c *gin.Context, logger *slog.Logger, err error) {
	var (
		invalid   *domainbooking.ValidationError
		failed    *policies.SubmissionFailedError
		malformed *policies.MalformedResponseError
	)
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Reason})
	case errors.Is(err, session.ErrUnauthenticated):
		renderUnauthenticated(c)
	case errors.Is(err, ruko.ErrRukoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "ruko not found"})
	case errors.Is(err, checkout.ErrCheckoutNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found or expired"})
	case errors.Is(err, domainpayment.ErrUnknownMethod),
		errors.Is(err, domainpayment.ErrAccountNumberRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, middleware.ErrInFlight),
		errors.Is(err, checkout.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &failed):
		c.JSON(http.StatusBadGateway, gin.H{"error": failed.Message})
	case errors.As(err, &malformed):
		logError(logger, c, "remote api response unusable", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": policies.DefaultSubmissionMessage})
	case errors.Is(err, policies.ErrRemoteUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "booking service unavailable, please try again."})
	case errors.Is(err, commands.ErrHandlerNotFound), errors.Is(err, queries.ErrHandlerNotFound):
		logError(logger, c, "handler not registered", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	default:
		logError(logger, c, "request failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func logError(logger *slog.Logger, c *gin.Context, msg string, err error) {
	if logger == nil {
		return
	}
	logger.ErrorContext(c.Request.Context(), msg, "path", c.FullPath(), "error", err)
}
