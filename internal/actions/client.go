package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/commsdesk/backend/internal/models"
)

// Known action identifiers. The set is open: anything else is forwarded
// unchanged and answered with the generic success text.
const (
	ReceiveShare  = "receive_share"
	Recycle       = "recycle"
	ReturnJewelry = "return_jewelry"
)

type Target string

const (
	// TargetProcess sends PUT {base}/customer-actions/process with a JSON body.
	TargetProcess Target = "process"
	// TargetWebhook sends GET {base}?action=..&ticket_number=.. to a public webhook.
	TargetWebhook Target = "webhook"
)

func ParseTarget(s string) (Target, error) {
	switch Target(strings.ToLower(strings.TrimSpace(s))) {
	case "", TargetProcess:
		return TargetProcess, nil
	case TargetWebhook:
		return TargetWebhook, nil
	default:
		return "", fmt.Errorf("unknown action target %q", s)
	}
}

// Error is a failed submission; Message is the backend text when it sent one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type Client struct {
	BaseURL string
	Target  Target
	HTTP    *http.Client
}

type processBody struct {
	Action       string `json:"action"`
	TicketNumber string `json:"ticket_number"`
	Email        string `json:"email,omitempty"`
}

// response covers both backends: process answers {success,message}, the
// webhook answers {status:"success",message}.
type response struct {
	Success *bool  `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (r response) ok() bool {
	if r.Success != nil {
		return *r.Success
	}
	return strings.EqualFold(r.Status, "success")
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return &http.Client{Timeout: 20 * time.Second}
	}
	return c.HTTP
}

// Submit performs one outbound call for a customer action. A 2xx answer
// whose body reports failure is an error like any other.
func (c *Client) Submit(ctx context.Context, req models.ActionRequest) (models.ActionResult, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return models.ActionResult{}, err
	}
	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return models.ActionResult{}, fmt.Errorf("action request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var res response
	decodeErr := json.Unmarshal(body, &res)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decodeErr != nil || !res.ok() {
		msg := res.Message
		if msg == "" {
			msg = fmt.Sprintf("Server responded with status: %d", resp.StatusCode)
		}
		return models.ActionResult{}, &Error{Status: resp.StatusCode, Message: msg}
	}

	msg := res.Message
	if msg == "" {
		msg = SuccessMessage(req.Action)
	}
	return models.ActionResult{Success: true, Message: msg}, nil
}

func (c *Client) buildRequest(ctx context.Context, req models.ActionRequest) (*http.Request, error) {
	base := strings.TrimRight(c.BaseURL, "/")
	switch c.Target {
	case TargetWebhook:
		q := url.Values{}
		q.Set("action", req.Action)
		q.Set("ticket_number", req.TicketNumber)
		if req.Email != "" {
			q.Set("email", req.Email)
		}
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Accept", "application/json")
		return httpReq, nil
	default:
		b, err := json.Marshal(processBody{Action: req.Action, TicketNumber: req.TicketNumber, Email: req.Email})
		if err != nil {
			return nil, err
		}
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, base+"/customer-actions/process", bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")
		return httpReq, nil
	}
}

func SuccessMessage(action string) string {
	switch action {
	case ReceiveShare:
		return "Thank you! We've received your request to receive your share."
	case Recycle:
		return "Thank you! We'll proceed with recycling your jewelry."
	case ReturnJewelry:
		return "Thank you! We've received your request to return your jewelry."
	default:
		return "Your request has been processed successfully."
	}
}
