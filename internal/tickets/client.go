package tickets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/commsdesk/backend/internal/models"
)

// Client reads the flat ticket list. Every read fails soft: callers get an
// empty slice and the failure is logged.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  zerolog.Logger
	Now     func() time.Time
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return &http.Client{Timeout: 15 * time.Second}
	}
	return c.HTTP
}

func (c *Client) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// ListTickets returns the ticket list mapped to display rows.
func (c *Client) ListTickets(ctx context.Context) []models.Communication {
	records, err := c.fetchRecords(ctx)
	if err != nil {
		c.Logger.Warn().Err(err).Str("url", c.listURL()).Msg("ticket list unavailable")
		return []models.Communication{}
	}
	now := c.now()
	out := make([]models.Communication, 0, len(records))
	for _, r := range records {
		out = append(out, toCommunication(r, now))
	}
	return out
}

// ListJewelryImages returns the image-bearing line items of one ticket. An
// empty result covers both "no jewelry" and "lookup failed".
func (c *Client) ListJewelryImages(ctx context.Context, ticketNumber string) []models.JewelryImage {
	records, err := c.fetchRecords(ctx)
	if err != nil {
		c.Logger.Warn().Err(err).Str("ticket", ticketNumber).Msg("jewelry images unavailable")
		return []models.JewelryImage{}
	}
	for _, r := range records {
		if r.TicketNumber == ticketNumber || r.TicketNumberSnake == ticketNumber {
			return toJewelryImages(r, c.now())
		}
	}
	c.Logger.Debug().Str("ticket", ticketNumber).Msg("no ticket record for jewelry lookup")
	return []models.JewelryImage{}
}

func (c *Client) listURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/tickets"
}

func (c *Client) fetchRecords(ctx context.Context) ([]ticketRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listURL(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ticket list http error: %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	raw, shape, ok := extractRecords(body)
	if !ok {
		return nil, fmt.Errorf("unrecognized ticket list envelope")
	}
	c.Logger.Debug().Str("shape", shape).Int("count", len(raw)).Msg("ticket list decoded")

	records := make([]ticketRecord, 0, len(raw))
	for i, item := range raw {
		var r ticketRecord
		if err := json.Unmarshal(item, &r); err != nil {
			c.Logger.Warn().Err(err).Int("index", i).Msg("skipping malformed ticket record")
			continue
		}
		records = append(records, r)
	}
	return records, nil
}
