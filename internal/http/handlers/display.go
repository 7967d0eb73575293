package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/xeonx/timeago"

	"github.com/commsdesk/backend/internal/compose"
	"github.com/commsdesk/backend/internal/models"
	"github.com/commsdesk/backend/internal/ticketing"
)

const commentDateLayout = "January 2, 2006, 03:04 PM"

// bodyPolicy strips scripts, handlers and unsafe URLs from HTML that is
// written into the page unescaped. Policies are safe for concurrent use.
var bodyPolicy = bluemonday.UGCPolicy()

func sanitizeHTML(s string) string {
	return bodyPolicy.Sanitize(s)
}

type commentView struct {
	Public      bool
	From        models.Party
	To          models.Party
	Date        string
	Age         string
	Rich        bool
	HTML        string
	Text        string
	Gallery     bool
	Attachments []attachmentView
}

type attachmentView struct {
	Name   string
	URL    string
	SizeKB int64
}

type imageView struct {
	Src       string
	Metal     string
	Purity    string
	Weight    string
	Unit      string
	Estimated string
	PerGram   string
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(commentDateLayout)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func commentViews(comments []models.Comment, firstPublic int, now time.Time) []commentView {
	out := make([]commentView, 0, len(comments))
	for i, c := range comments {
		v := commentView{
			Public:  c.Public,
			From:    c.From,
			To:      c.To,
			Date:    formatDate(c.CreatedAt),
			Age:     timeago.English.FormatReference(c.CreatedAt, now),
			Rich:    ticketing.HasRichBody(c),
			HTML:    sanitizeHTML(c.HTMLBody),
			Text:    c.DisplayBody(),
			Gallery: i == firstPublic,
		}
		for _, a := range c.Attachments {
			v.Attachments = append(v.Attachments, attachmentView{Name: a.Name, URL: a.ContentURL, SizeKB: (a.Size + 512) / 1024})
		}
		out = append(out, v)
	}
	return out
}

// imageViews points relative image references at the local image proxy.
func imageViews(images []models.JewelryImage) []imageView {
	out := make([]imageView, 0, len(images))
	for _, img := range images {
		v := imageView{
			Src:       compose.PublicImageSrc(img.ImageRef, ""),
			Metal:     img.MetalType,
			Purity:    img.Purity,
			Weight:    strconv.FormatFloat(img.Weight, 'f', -1, 64),
			Unit:      img.UnitOfMeasure,
			Estimated: money(img.EstimatedValue),
		}
		if img.PricePerGram != nil {
			v.PerGram = money(*img.PricePerGram)
		}
		out = append(out, v)
	}
	return out
}
