package rukoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"

	"rukorent/internal/app/policies"
	"rukorent/internal/domain/booking"
	"rukorent/internal/domain/ruko"
	"rukorent/internal/domain/session"
	"rukorent/internal/domain/shared/money"
)

const maxErrorBody = 512

// Client talks to the remote Booking API. It never retries: a booking POST
// is sent exactly once per call.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Logger  *slog.Logger
}

func New(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{HTTP: httpClient, BaseURL: strings.TrimRight(baseURL, "/"), Logger: logger}
}

type rukoPayload struct {
	ID          string      `json:"id"`
	MongoID     string      `json:"_id"`
	OwnerID     string      `json:"owner_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Address     string      `json:"address"`
	City        string      `json:"city"`
	Size        string      `json:"size"`
	Price       json.Number `json:"price"`
	RentalType  string      `json:"rental_type"`
	Image       string      `json:"image"`
}

type createBookingPayload struct {
	RukoID        string  `json:"ruko_id"`
	TenantID      string  `json:"tenant_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	PaymentMethod string  `json:"payment_method"`
	DiscountCode  *string `json:"discount_code"`
}

type createBookingResponse struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
}

type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) ListRuko(ctx context.Context) ([]ruko.Ruko, error) {
	var payload []rukoPayload
	if err := c.getJSON(ctx, "/ruko", "list ruko", &payload); err != nil {
		return nil, err
	}
	out := make([]ruko.Ruko, 0, len(payload))
	for _, p := range payload {
		r, err := p.toDomain()
		if err != nil {
			c.logWarn("skipping unusable ruko", "ruko_id", p.id(), "error", err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (c *Client) GetRuko(ctx context.Context, id ruko.RukoID) (ruko.Ruko, error) {
	if strings.TrimSpace(string(id)) == "" {
		return ruko.Ruko{}, ruko.ErrRukoNotFound
	}
	var payload rukoPayload
	if err := c.getJSON(ctx, "/ruko/"+url.PathEscape(string(id)), "get ruko", &payload); err != nil {
		return ruko.Ruko{}, err
	}
	r, err := payload.toDomain()
	if err != nil {
		return ruko.Ruko{}, &policies.MalformedResponseError{Operation: "get ruko", Reason: err.Error()}
	}
	return r, nil
}

// CreateBooking posts the booking with the caller's bearer token.
func (c *Client) CreateBooking(ctx context.Context, token string, req policies.CreateBookingRequest) (booking.BookingID, error) {
	payload := createBookingPayload{
		RukoID:        string(req.RukoID),
		TenantID:      req.TenantID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		PaymentMethod: string(req.PaymentMethod),
	}
	if code := req.DiscountCode; code != "" {
		payload.DiscountCode = &code
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/bookings", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTP.Do(request)
	if err != nil {
		c.logError("create booking request failed", err)
		return "", &policies.SubmissionFailedError{Message: policies.DefaultSubmissionMessage}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", session.ErrUnauthenticated
	}
	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logError("create booking rejected", fmt.Errorf("status %d: %s", resp.StatusCode, string(snippet)))
		return "", &policies.SubmissionFailedError{Status: resp.StatusCode, Message: remoteMessage(snippet)}
	}

	var created createBookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		c.logError("create booking decode failed", err)
		return "", &policies.MalformedResponseError{Operation: "create booking", Reason: err.Error()}
	}
	id := strings.TrimSpace(created.ID)
	if id == "" {
		id = strings.TrimSpace(created.MongoID)
	}
	if id == "" {
		return "", &policies.MalformedResponseError{Operation: "create booking", Reason: "missing id"}
	}
	return booking.BookingID(id), nil
}

func (c *Client) getJSON(ctx context.Context, path, op string, dst any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	resp, err := c.HTTP.Do(request)
	if err != nil {
		c.logError(op+" request failed", err)
		return fmt.Errorf("%w: %w", policies.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ruko.ErrRukoNotFound
	case resp.StatusCode >= http.StatusBadRequest:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err := fmt.Errorf("%w: %s returned status %d: %s", policies.ErrRemoteUnavailable, op, resp.StatusCode, string(snippet))
		c.logError(op+" returned error", err)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		c.logError(op+" decode failed", err)
		return &policies.MalformedResponseError{Operation: op, Reason: err.Error()}
	}
	return nil
}

// remoteMessage prefers the API's own error text and falls back to the
// generic message when the body carries none.
func remoteMessage(body []byte) string {
	var p errorPayload
	if err := json.Unmarshal(body, &p); err == nil {
		if msg := strings.TrimSpace(p.Error); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(p.Message); msg != "" {
			return msg
		}
	}
	return policies.DefaultSubmissionMessage
}

func (p rukoPayload) id() string {
	if p.ID != "" {
		return p.ID
	}
	return p.MongoID
}

func (p rukoPayload) toDomain() (ruko.Ruko, error) {
	id := strings.TrimSpace(p.id())
	if id == "" {
		return ruko.Ruko{}, errors.New("missing id")
	}
	price, err := parsePrice(p.Price)
	if err != nil {
		return ruko.Ruko{}, err
	}
	rt, err := ruko.ParseRentalType(p.RentalType)
	if err != nil {
		// Kept as-is so validation can report the unknown type to the tenant.
		rt = ruko.RentalType(strings.ToLower(strings.TrimSpace(p.RentalType)))
	}
	r := ruko.Ruko{
		ID:          ruko.RukoID(id),
		Name:        p.Name,
		Price:       money.Rupiah(price),
		RentalType:  rt,
		Size:        p.Size,
		Location:    joinNonEmpty(", ", p.Address, p.City),
		Description: p.Description,
		Image:       p.Image,
		OwnerID:     p.OwnerID,
	}
	if err := r.Validate(); err != nil {
		return ruko.Ruko{}, err
	}
	return r, nil
}

func parsePrice(n json.Number) (int64, error) {
	raw := strings.TrimSpace(n.String())
	if raw == "" {
		return 0, nil
	}
	if v, err := n.Int64(); err == nil {
		return v, nil
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	return int64(math.Round(f)), nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func (c *Client) logError(msg string, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Error(msg, "error", err)
}

func (c *Client) logWarn(msg string, args ...any) {
	if c.Logger == nil {
		return
	}
	c.Logger.Warn(msg, args...)
}

var (
	_ policies.BookingAPI  = (*Client)(nil)
	_ policies.RukoCatalog = (*Client)(nil)
)
