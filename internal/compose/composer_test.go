package compose

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/commsdesk/backend/internal/models"
)

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	c, err := NewComposer(DefaultTemplates(), "https://desk.example.com/", "https://api.example.com")
	if err != nil {
		t.Fatalf("new composer: %v", err)
	}
	return c
}

func TestRenderPlainTemplate(t *testing.T) {
	c := newTestComposer(t)
	msg, err := c.Render(MailKitSent, Vars{CustomerName: "Ann <Lee>", TicketNumber: "TCK-1"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if msg.HTML {
		t.Fatalf("mail kit template should be plain")
	}
	if !strings.HasPrefix(msg.Body, "Dear Ann <Lee>,\n") {
		t.Fatalf("plain templates must not escape, got %q", msg.Body)
	}
}

func TestRenderDefaultsCustomerName(t *testing.T) {
	c := newTestComposer(t)
	msg, err := c.Render(OrderReceived, Vars{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(msg.Body, "Dear Customer,") {
		t.Fatalf("unexpected body %q", msg.Body)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	c := newTestComposer(t)
	if _, err := c.Render("nope", Vars{}); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestRenderFinalAppraisal(t *testing.T) {
	c := newTestComposer(t)
	rows := []AppraisalRow{
		{Metal: "Gold", Purity: "14K", Value: "450.00", Remarks: "clasp <broken>", ImagePath: "images/ring.jpeg"},
		{},
		{Metal: "Silver", ImagePath: "https://cdn.example.com/b.png"},
	}
	msg, err := c.Render(FinalAppraisal, Vars{CustomerName: "Ann", TicketNumber: "TCK-7", Email: "ann@example.com", Items: rows})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !msg.HTML {
		t.Fatalf("final appraisal must be html")
	}
	body := msg.Body
	for _, want := range []string{
		"<p>Dear Ann,</p>",
		"Jewel #1", "Jewel #2",
		"<strong>Metal:</strong> Gold",
		"<strong>Purity:</strong> N/A",
		"$###.##",
		"clasp &lt;broken&gt;",
		"src='https://api.example.com/images/ring.jpeg'",
		"src='https://cdn.example.com/b.png'",
		"data-action='receive_share'",
		"data-action='recycle'",
		"data-action='return_jewelry'",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in body:\n%s", want, body)
		}
	}
	if strings.Contains(body, "Jewel #3") {
		t.Fatalf("empty row must be skipped:\n%s", body)
	}
	if strings.Contains(body, "[Image]") {
		t.Fatalf("placeholder must not render when rows exist")
	}
}

func TestRenderFinalAppraisalPlaceholder(t *testing.T) {
	c := newTestComposer(t)
	msg, err := c.Render(FinalAppraisal, Vars{CustomerName: "Ann", TicketNumber: "TCK-7", Items: []AppraisalRow{{Remarks: "only remarks"}}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(msg.Body, "[Image]") || !strings.Contains(msg.Body, "Jewel #1") {
		t.Fatalf("expected placeholder row:\n%s", msg.Body)
	}
}

func TestActionLink(t *testing.T) {
	link := ActionLink("https://desk.example.com/", "recycle", "TCK 1&2", "")
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if u.Host != "desk.example.com" || u.Path != "/action" {
		t.Fatalf("unexpected link target %s", link)
	}
	q := u.Query()
	if q.Get("action") != "recycle" || q.Get("ticket_number") != "TCK 1&2" || q.Has("email") {
		t.Fatalf("unexpected query %s", u.RawQuery)
	}
	withEmail := ActionLink("https://desk.example.com", "receive_share", "TCK-1", "a+b@example.com")
	u, _ = url.Parse(withEmail)
	if u.Query().Get("email") != "a+b@example.com" {
		t.Fatalf("email not preserved in %s", withEmail)
	}
}

func TestActionButtonsPointAtFrontend(t *testing.T) {
	c := newTestComposer(t)
	buttons := c.ActionButtons("TCK-1", "")
	if len(buttons) != 3 {
		t.Fatalf("expected 3 buttons, got %d", len(buttons))
	}
	for _, b := range buttons {
		if !strings.HasPrefix(b.URL, "https://desk.example.com/action?") {
			t.Fatalf("button %s points at %s", b.Action, b.URL)
		}
	}
}

func TestActionLabel(t *testing.T) {
	if got := ActionLabel("recycle"); got != "Please proceed with recycling" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := ActionLabel("escalate"); got != "Confirm" {
		t.Fatalf("unexpected fallback label %q", got)
	}
}

func TestPublicImageSrc(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"https://s3.example.com/a.jpg", "https://s3.example.com/a.jpg"},
		{"images/ring.jpeg", "https://api.example.com/images/ring.jpeg"},
		{"ring.jpeg", "https://api.example.com/images/ring.jpeg"},
	}
	for _, tc := range cases {
		if got := PublicImageSrc(tc.in, "https://api.example.com/"); got != tc.want {
			t.Fatalf("PublicImageSrc(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRowsFromImages(t *testing.T) {
	rows := RowsFromImages([]models.JewelryImage{
		{ItemID: 4, MetalType: "Gold", Purity: "18K", EstimatedValue: 450.5, ImageRef: "images/a.jpg"},
		{MetalType: "Silver"},
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ItemID != 4 || rows[0].Value != "450.5" || rows[0].ImagePath != "images/a.jpg" {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].ItemID != 2 || rows[1].Value != "" {
		t.Fatalf("unexpected second row %+v", rows[1])
	}
}

func TestLoadCatalogue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.yaml")
	content := `templates:
  - id: thanks
    name: Thanks
    content: "Thanks {{ customer_name }}!"
  - id: rich
    html: true
    content: "<p>{{ ticket_number }}</p>"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalogue: %v", err)
	}
	templates, err := LoadCatalogue(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(templates) != 2 || templates[1].Name != "rich" || !templates[1].HTML {
		t.Fatalf("unexpected templates %+v", templates)
	}
	c, err := NewComposer(templates, "https://desk.example.com", "")
	if err != nil {
		t.Fatalf("composer: %v", err)
	}
	msg, err := c.Render("thanks", Vars{CustomerName: "Ann"})
	if err != nil || msg.Body != "Thanks Ann!" {
		t.Fatalf("unexpected render %q %v", msg.Body, err)
	}
}

func TestParseCatalogueRejectsBadInput(t *testing.T) {
	bad := []string{
		`templates: []`,
		`templates: [{name: x}]`,
		`templates: [{id: a}, {id: a}]`,
		`templates: [`,
	}
	for _, b := range bad {
		if _, err := parseCatalogue([]byte(b)); err == nil {
			t.Fatalf("expected error for %q", b)
		}
	}
}

func TestDefaultCatalogueFallback(t *testing.T) {
	templates, err := LoadCatalogue("")
	if err != nil || len(templates) != len(DefaultTemplates()) {
		t.Fatalf("expected built-in templates, got %d %v", len(templates), err)
	}
}
