package compose

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/commsdesk/backend/internal/actions"
	"github.com/commsdesk/backend/internal/models"
	"github.com/commsdesk/backend/internal/ticketing"
)

var ErrUnknownTemplate = errors.New("unknown template")

// AppraisalRow is one editable jewelry line of the final appraisal email.
type AppraisalRow struct {
	ItemID    int64  `json:"item_id" form:"item_id"`
	Metal     string `json:"metal" form:"metal"`
	Purity    string `json:"purity" form:"purity"`
	Value     string `json:"value" form:"value"`
	Remarks   string `json:"remarks" form:"remarks"`
	ImagePath string `json:"image_path" form:"image_path"`
}

func (r AppraisalRow) empty() bool {
	return r.Metal == "" && r.Purity == "" && r.Value == ""
}

type Vars struct {
	CustomerName string
	TicketNumber string
	Email        string
	Items        []AppraisalRow
}

type Message struct {
	TemplateID string `json:"template_id"`
	Body       string `json:"body"`
	HTML       bool   `json:"html"`
}

type ActionButton struct {
	Action string
	Label  string
	URL    string
}

// actionLabels is the order the buttons appear in the email.
var actionLabels = []struct {
	action string
	label  string
}{
	{actions.ReceiveShare, "I like to receive my share"},
	{actions.Recycle, "Please proceed with recycling"},
	{actions.ReturnJewelry, "I like to have my jewelries back"},
}

// Composer renders response templates. Links in rendered emails point at
// FrontendURL's /action page, never at a backend API.
type Composer struct {
	FrontendURL  string
	PublicAPIURL string

	templates []Template
	compiled  map[string]*pongo2.Template
}

func NewComposer(templates []Template, frontendURL, publicAPIURL string) (*Composer, error) {
	set := pongo2.NewSet("compose", pongo2.DefaultLoader)
	c := &Composer{
		FrontendURL:  strings.TrimRight(frontendURL, "/"),
		PublicAPIURL: strings.TrimRight(publicAPIURL, "/"),
		templates:    templates,
		compiled:     make(map[string]*pongo2.Template, len(templates)),
	}
	for _, t := range templates {
		src := t.Content
		if !t.HTML {
			src = "{% autoescape off %}" + src + "{% endautoescape %}"
		}
		tpl, err := set.FromString(src)
		if err != nil {
			return nil, fmt.Errorf("compile template %s: %w", t.ID, err)
		}
		c.compiled[t.ID] = tpl
	}
	return c, nil
}

func (c *Composer) Templates() []Template {
	return c.templates
}

func (c *Composer) Lookup(id string) (Template, bool) {
	for _, t := range c.templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

func (c *Composer) Render(id string, vars Vars) (Message, error) {
	t, ok := c.Lookup(id)
	if !ok {
		return Message{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}
	name := vars.CustomerName
	if name == "" {
		name = "Customer"
	}
	out, err := c.compiled[id].Execute(pongo2.Context{
		"customer_name":  name,
		"ticket_number":  vars.TicketNumber,
		"email":          vars.Email,
		"items":          c.items(vars.Items),
		"action_buttons": c.ActionButtons(vars.TicketNumber, vars.Email),
	})
	if err != nil {
		return Message{}, fmt.Errorf("render template %s: %w", id, err)
	}
	return Message{TemplateID: id, Body: out, HTML: t.HTML}, nil
}

type renderedRow struct {
	AppraisalRow
	ImageSrc string
}

func (c *Composer) items(rows []AppraisalRow) []renderedRow {
	out := make([]renderedRow, 0, len(rows))
	for _, r := range rows {
		if r.empty() {
			continue
		}
		out = append(out, renderedRow{AppraisalRow: r, ImageSrc: PublicImageSrc(r.ImagePath, c.PublicAPIURL)})
	}
	return out
}

func (c *Composer) ActionButtons(ticketNumber, email string) []ActionButton {
	out := make([]ActionButton, 0, len(actionLabels))
	for _, a := range actionLabels {
		out = append(out, ActionButton{
			Action: a.action,
			Label:  a.label,
			URL:    ActionLink(c.FrontendURL, a.action, ticketNumber, email),
		})
	}
	return out
}

// ActionLabel returns the button text of a known action, or "Confirm".
func ActionLabel(action string) string {
	for _, a := range actionLabels {
		if a.action == action {
			return a.label
		}
	}
	return "Confirm"
}

// ActionLink builds the deep link a customer follows from an email.
func ActionLink(frontendURL, action, ticketNumber, email string) string {
	q := url.Values{}
	q.Set("action", action)
	q.Set("ticket_number", ticketNumber)
	if email != "" {
		q.Set("email", email)
	}
	return strings.TrimRight(frontendURL, "/") + "/action?" + q.Encode()
}

// PublicImageSrc returns an image URL usable from an email client.
func PublicImageSrc(ref, publicAPIURL string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimRight(publicAPIURL, "/") + "/images/" + url.PathEscape(ticketing.ImageFilename(ref))
}

// RowsFromImages seeds the appraisal rows from a ticket's jewelry items.
func RowsFromImages(images []models.JewelryImage) []AppraisalRow {
	out := make([]AppraisalRow, 0, len(images))
	for i, img := range images {
		row := AppraisalRow{
			ItemID:    img.ItemID,
			Metal:     img.MetalType,
			Purity:    img.Purity,
			ImagePath: img.ImageRef,
		}
		if row.ItemID == 0 {
			row.ItemID = int64(i + 1)
		}
		if img.EstimatedValue != 0 {
			row.Value = strconv.FormatFloat(img.EstimatedValue, 'f', -1, 64)
		}
		out = append(out, row)
	}
	return out
}
