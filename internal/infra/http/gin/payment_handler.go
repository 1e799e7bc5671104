package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"rukorent/internal/app/commands"
	"rukorent/internal/app/dto"
	PaymentApp "rukorent/internal/app/handlers/payment"
	"rukorent/internal/app/queries"
	domainbooking "rukorent/internal/domain/booking"
	"rukorent/internal/infra/obs"
)

type PaymentHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type confirmPaymentRequest struct {
	Method        string `json:"method"`
	AccountNumber string `json:"account_number"`
}

func (h PaymentHandler) Quote(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	q := PaymentApp.GetPaymentQuoteQuery{Session: sess, BookingID: domainbooking.BookingID(c.Param("bookingId"))}
	result, err := queries.Ask[PaymentApp.GetPaymentQuoteQuery, dto.PaymentQuote](c.Request.Context(), h.Queries, q)
	if err != nil {
		renderError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PaymentHandler) Confirm(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := PaymentApp.ConfirmPaymentCommand{
		Session:       sess,
		BookingID:     domainbooking.BookingID(c.Param("bookingId")),
		MethodID:      req.Method,
		AccountNumber: req.AccountNumber,
		RequestID:     obs.RequestIDFromContext(c.Request.Context()),
	}
	result, err := commands.Dispatch[PaymentApp.ConfirmPaymentCommand, dto.PaymentConfirmation](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		renderError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PaymentHTTP = PaymentHandler{}
