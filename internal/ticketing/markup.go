package ticketing

import (
	"strings"

	"github.com/commsdesk/backend/internal/models"
)

// Tag sets for the two body heuristics. These are substring checks, not a
// parser; keep the sets fixed.
var (
	outboundMarkupTags = []string{"<p>", "<div>", "<strong>"}
	richCommentTags    = []string{"<p>", "<div>", "<img>", "<strong>", "<a "}
)

// LooksLikeHTML decides whether an outgoing comment body is sent as html_body.
func LooksLikeHTML(body string) bool {
	return containsAny(body, outboundMarkupTags)
}

// HasRichBody reports whether a stored comment should be shown from its
// html body rather than its plain text.
func HasRichBody(c models.Comment) bool {
	return containsAny(c.HTMLBody, richCommentTags)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
