package ginserver

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"rukorent/internal/app/commands"
	"rukorent/internal/app/dto"
	BookingApp "rukorent/internal/app/handlers/booking"
	"rukorent/internal/app/queries"
	domainbooking "rukorent/internal/domain/booking"
	"rukorent/internal/domain/ruko"
	"rukorent/internal/domain/shared/daterange"
	"rukorent/internal/infra/obs"
)

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type bookingRequest struct {
	RukoID          string `json:"ruko_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	SpecialRequests string `json:"special_requests"`
	PaymentMethod   string `json:"payment_method"`
	DiscountCode    string `json:"discount_code"`
}

// draft converts the form. Blank dates stay zero so validation reports them.
func (r bookingRequest) draft() (domainbooking.Draft, error) {
	d := domainbooking.Draft{
		RukoID:          ruko.RukoID(r.RukoID),
		DiscountCode:    r.DiscountCode,
		SpecialRequests: r.SpecialRequests,
		PaymentMethod:   domainbooking.PaymentMethod(r.PaymentMethod),
		Tenant: domainbooking.Tenant{
			FullName: r.FullName,
			Email:    r.Email,
			Phone:    r.Phone,
		},
	}
	var err error
	if d.Start, err = optionalDate(r.StartDate); err != nil {
		return domainbooking.Draft{}, err
	}
	if d.End, err = optionalDate(r.EndDate); err != nil {
		return domainbooking.Draft{}, err
	}
	return d, nil
}

func (h BookingHandler) Quote(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	draft, ok := h.bind(c)
	if !ok {
		return
	}
	result, err := queries.Ask[BookingApp.QuoteBookingQuery, dto.BookingQuote](c.Request.Context(), h.Queries, BookingApp.QuoteBookingQuery{Draft: draft})
	if err != nil {
		renderError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Create(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	draft, ok := h.bind(c)
	if !ok {
		return
	}
	cmd := BookingApp.SubmitBookingCommand{
		Session:   sess,
		Draft:     draft,
		RequestID: obs.RequestIDFromContext(c.Request.Context()),
	}
	result, err := commands.Dispatch[BookingApp.SubmitBookingCommand, dto.SubmittedBooking](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		renderError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h BookingHandler) bind(c *gin.Context) (domainbooking.Draft, bool) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return domainbooking.Draft{}, false
	}
	draft, err := req.draft()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return domainbooking.Draft{}, false
	}
	return draft, true
}

func optionalDate(raw string) (t time.Time, err error) {
	if strings.TrimSpace(raw) == "" {
		return t, nil
	}
	return daterange.ParseDate(raw)
}

var _ BookingHTTP = BookingHandler{}
