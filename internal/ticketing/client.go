package ticketing

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

	"github.com/commsdesk/backend/internal/models"
	"github.com/commsdesk/backend/internal/utils"
)

const (
	DefaultImageBaseURL = "http://localhost:8000/api"
	defaultImageName    = "jewelry-image.jpg"
)

var ErrMissingBaseURL = errors.New("ticketing base URL is not set")

// Client talks to the ticket thread endpoints. Unlike the list reads, every
// failure here is returned to the caller.
type Client struct {
	BaseURL      string
	ImageBaseURL string
	HTTP         *http.Client
	Support      models.Party
}

func New(baseURL string, httpClient *http.Client, support models.Party) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrMissingBaseURL
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient, Support: support}, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return &http.Client{Timeout: 15 * time.Second}
	}
	return c.HTTP
}

func (c *Client) ticketURL(id string, suffix string) string {
	return fmt.Sprintf("%s/tickets/%s%s", strings.TrimRight(c.BaseURL, "/"), url.PathEscape(id), suffix)
}

type wireParty map[string]any

type wireAttachment struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ContentURL  string `json:"content_url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Inline      bool   `json:"inline"`
}

type wireComment struct {
	ID          int64            `json:"id"`
	Type        string           `json:"type"`
	AuthorID    int64            `json:"author_id"`
	Body        string           `json:"body"`
	HTMLBody    string           `json:"html_body"`
	PlainBody   string           `json:"plain_body"`
	Public      bool             `json:"public"`
	Attachments []wireAttachment `json:"attachments"`
	Via         struct {
		Channel string `json:"channel"`
		Source  struct {
			From wireParty `json:"from"`
			To   wireParty `json:"to"`
		} `json:"source"`
	} `json:"via"`
	CreatedAt string `json:"created_at"`
}

type wireTicket struct {
	ID          int64    `json:"id"`
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    *string  `json:"priority"`
	Tags        []string `json:"tags"`
	RequesterID int64    `json:"requester_id"`
	AssigneeID  *int64   `json:"assignee_id"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func (c *Client) GetComments(ctx context.Context, ticketID string) ([]models.Comment, error) {
	var res struct {
		Comments []wireComment `json:"comments"`
	}
	if err := c.doJSON(ctx, opRead, ticketID, http.MethodGet, c.ticketURL(ticketID, "/comments"), nil, &res); err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]models.Comment, 0, len(res.Comments))
	for _, wc := range res.Comments {
		out = append(out, c.toComment(wc, now))
	}
	return out, nil
}

func (c *Client) GetTicketMeta(ctx context.Context, ticketID string) (models.TicketMeta, error) {
	var res struct {
		Ticket *wireTicket `json:"ticket"`
	}
	if err := c.doJSON(ctx, opRead, ticketID, http.MethodGet, c.ticketURL(ticketID, "/details"), nil, &res); err != nil {
		return models.TicketMeta{}, err
	}
	if res.Ticket == nil {
		return models.TicketMeta{}, &Error{Kind: KindNotFound, Status: http.StatusOK, Message: fmt.Sprintf("Ticket %s not found", ticketID)}
	}
	return toTicketMeta(*res.Ticket), nil
}

type commentPayload struct {
	Ticket struct {
		Comment struct {
			Body     string `json:"body,omitempty"`
			HTMLBody string `json:"html_body,omitempty"`
			Public   bool   `json:"public"`
		} `json:"comment"`
	} `json:"ticket"`
}

// AddComment appends a comment. Bodies that look like markup go out as
// html_body, everything else as body.
func (c *Client) AddComment(ctx context.Context, ticketID string, body string, public bool) (models.TicketMeta, error) {
	var payload commentPayload
	if LooksLikeHTML(body) {
		payload.Ticket.Comment.HTMLBody = body
	} else {
		payload.Ticket.Comment.Body = body
	}
	payload.Ticket.Comment.Public = public
	b, err := json.Marshal(payload)
	if err != nil {
		return models.TicketMeta{}, err
	}

	var res struct {
		Ticket *wireTicket `json:"ticket"`
	}
	if err := c.doJSON(ctx, opAddComment, ticketID, http.MethodPut, c.ticketURL(ticketID, ""), b, &res); err != nil {
		return models.TicketMeta{}, err
	}
	if res.Ticket == nil {
		return models.TicketMeta{}, nil
	}
	return toTicketMeta(*res.Ticket), nil
}

// UploadAttachment stores a file against the ticket and returns the upload
// token to reference from a later comment.
func (c *Client) UploadAttachment(ctx context.Context, ticketID, filename, contentType string, body io.Reader) (string, error) {
	endpoint := c.ticketURL(ticketID, "/upload") + "?filename=" + url.QueryEscape(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	var res struct {
		Upload struct {
			Token string `json:"token"`
		} `json:"upload"`
	}
	if err := c.send(req, opUpload, ticketID, &res); err != nil {
		return "", err
	}
	if res.Upload.Token == "" {
		return "", &Error{Kind: KindOther, Status: http.StatusOK, Message: "upload response carried no token"}
	}
	return res.Upload.Token, nil
}

type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageFilename reduces an image reference (URL or relative path) to its
// last path segment.
func ImageFilename(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	name := ref[strings.LastIndex(ref, "/")+1:]
	if name == "" {
		return defaultImageName
	}
	return name
}

func (c *Client) FetchImage(ctx context.Context, ref string) (Image, error) {
	base := c.ImageBaseURL
	if base == "" {
		base = DefaultImageBaseURL
	}
	name := ImageFilename(ref)
	endpoint := strings.TrimRight(base, "/") + "/images/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Image{}, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Image{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusNotFound {
			return Image{}, &Error{Kind: KindNotFound, Status: resp.StatusCode, Message: fmt.Sprintf("Image %s not found", name)}
		}
		return Image{}, &Error{Kind: KindOther, Status: resp.StatusCode, Message: fmt.Sprintf("Failed to fetch image: %d", resp.StatusCode)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Image{}, err
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return Image{Filename: name, ContentType: ct, Data: data}, nil
}

func (c *Client) doJSON(ctx context.Context, op operation, ticketID, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.send(req, op, ticketID, out)
}

func (c *Client) send(req *http.Request, op operation, ticketID string, out any) error {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("ticketing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return classify(op, ticketID, resp.StatusCode, resp.Status, bytes.TrimSpace(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode ticketing response: %w", err)
	}
	return nil
}

func (c *Client) toComment(wc wireComment, now time.Time) models.Comment {
	created, ok := utils.ParseTimestamp(wc.CreatedAt)
	if !ok {
		created = now
	}
	attachments := make([]models.Attachment, 0, len(wc.Attachments))
	for _, a := range wc.Attachments {
		attachments = append(attachments, models.Attachment(a))
	}
	return models.Comment{
		ID:          wc.ID,
		Type:        wc.Type,
		AuthorID:    wc.AuthorID,
		Body:        wc.Body,
		HTMLBody:    wc.HTMLBody,
		PlainBody:   wc.PlainBody,
		Public:      wc.Public,
		Channel:     wc.Via.Channel,
		From:        c.party(wc.Via.Source.From),
		To:          c.party(wc.Via.Source.To),
		CreatedAt:   created,
		Attachments: attachments,
	}
}

// party reads name and address (or email) from a via source entry,
// falling back to the support identity.
func (c *Client) party(p wireParty) models.Party {
	out := c.Support
	if name, ok := p["name"].(string); ok && name != "" {
		out.Name = name
	}
	if addr, ok := p["address"].(string); ok && addr != "" {
		out.Address = addr
	} else if email, ok := p["email"].(string); ok && email != "" {
		out.Address = email
	}
	return out
}

func toTicketMeta(t wireTicket) models.TicketMeta {
	meta := models.TicketMeta{
		ID:          t.ID,
		Subject:     t.Subject,
		Description: t.Description,
		Status:      strings.ToLower(t.Status),
		Tags:        t.Tags,
		RequesterID: t.RequesterID,
		AssigneeID:  t.AssigneeID,
	}
	if t.Priority != nil {
		meta.Priority = *t.Priority
	}
	if ts, ok := utils.ParseTimestamp(t.CreatedAt); ok {
		meta.CreatedAt = ts
	}
	if ts, ok := utils.ParseTimestamp(t.UpdatedAt); ok {
		meta.UpdatedAt = ts
	}
	return meta
}
