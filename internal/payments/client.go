package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/commsdesk/backend/internal/models"
)

const (
	DefaultCurrency      = "USD"
	DefaultRecipientType = "EMAIL"
	DefaultNote          = "Jewelry appraisal payout"
)

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrUnknownVendor = errors.New("unsupported payment vendor")
)

var Vendors = []string{"paypal", "venmo", "tremendous"}

var Currencies = []string{"USD", "PHP"}

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Client submits payouts. The local checks only front-run the backend,
// which validates again.
type Client struct {
	BaseURL   string
	HTTP      *http.Client
	Validator *validator.Validate
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return &http.Client{Timeout: 30 * time.Second}
	}
	return c.HTTP
}

func (c *Client) validate() *validator.Validate {
	if c.Validator == nil {
		c.Validator = validator.New()
	}
	return c.Validator
}

// Normalize fills defaults for optional fields.
func Normalize(req models.PaymentRequest) models.PaymentRequest {
	req.Vendor = strings.ToLower(strings.TrimSpace(req.Vendor))
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.Currency == "" {
		req.Currency = DefaultCurrency
	}
	if req.RecipientType == "" {
		req.RecipientType = DefaultRecipientType
	}
	if strings.TrimSpace(req.Note) == "" {
		req.Note = DefaultNote
	}
	return req
}

func (c *Client) Submit(ctx context.Context, req models.PaymentRequest) (models.PaymentResult, error) {
	req = Normalize(req)
	if !(req.Amount > 0) {
		return models.PaymentResult{}, ErrInvalidAmount
	}
	if !knownVendor(req.Vendor) {
		return models.PaymentResult{}, ErrUnknownVendor
	}
	if err := c.validate().Struct(req); err != nil {
		return models.PaymentResult{}, fmt.Errorf("invalid payment request: %w", err)
	}

	b, err := json.Marshal(req)
	if err != nil {
		return models.PaymentResult{}, err
	}
	endpoint := strings.TrimRight(c.BaseURL, "/") + "/payments/" + url.PathEscape(req.Vendor)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return models.PaymentResult{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return models.PaymentResult{}, fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var res models.PaymentResult
	decodeErr := json.Unmarshal(body, &res)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decodeErr != nil || !res.Success {
		msg := res.Message
		if msg == "" {
			msg = fmt.Sprintf("Payment failed with status: %d", resp.StatusCode)
		}
		return models.PaymentResult{}, &Error{Status: resp.StatusCode, Message: msg}
	}
	return res, nil
}

// SuggestedAmount is the sum of the after-fees values of a ticket's items.
func SuggestedAmount(images []models.JewelryImage) float64 {
	var total float64
	for _, img := range images {
		total += img.AfterFeesValue
	}
	return total
}

func knownVendor(v string) bool {
	for _, known := range Vendors {
		if v == known {
			return true
		}
	}
	return false
}
