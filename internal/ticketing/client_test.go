package ticketing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/commsdesk/backend/internal/models"
)

var support = models.Party{Name: "Support", Address: "support@example.zendesk.com"}

func newClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, srv.Client(), support)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	c.ImageBaseURL = srv.URL
	return c
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New("  ", nil, support); !errors.Is(err, ErrMissingBaseURL) {
		t.Fatalf("expected ErrMissingBaseURL, got %v", err)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	cases := map[string]bool{
		"<p>Dear Ann,</p>":         true,
		"<div>block</div>":         true,
		"Total: <strong>5</strong>": true,
		"plain text reply":         false,
		"a < b and <br> only":      false,
		"<a href='x'>link</a>":     false,
	}
	for body, want := range cases {
		if got := LooksLikeHTML(body); got != want {
			t.Fatalf("LooksLikeHTML(%q) = %v, want %v", body, got, want)
		}
	}
}

func TestHasRichBody(t *testing.T) {
	if !HasRichBody(models.Comment{HTMLBody: `see <a href="x">here</a>`}) {
		t.Fatalf("expected anchor to count as rich")
	}
	if HasRichBody(models.Comment{HTMLBody: "", Body: "<p>x</p>"}) {
		t.Fatalf("only the html body is inspected")
	}
}

func TestGetComments(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/tickets/TCK-1/comments" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"comments":[
			{"id":1,"body":"hi","plain_body":"hi plain","public":true,"created_at":"2025-07-01T10:00:00Z",
			 "via":{"channel":"email","source":{"from":{"name":"Ann Lee","address":"ann@example.com"},"to":{"email":"desk@example.zendesk.com"}}},
			 "attachments":[{"id":9,"name":"a.jpg","content_url":"https://x/a.jpg","content_type":"image/jpeg","size":10}]},
			{"id":2,"body":"internal","public":false,"created_at":"garbage"}
		]}`))
	})

	comments, err := c.GetComments(context.Background(), "TCK-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	first := comments[0]
	if first.From.Name != "Ann Lee" || first.From.Address != "ann@example.com" {
		t.Fatalf("unexpected from party: %+v", first.From)
	}
	if first.To.Name != "Support" || first.To.Address != "desk@example.zendesk.com" {
		t.Fatalf("unexpected to party: %+v", first.To)
	}
	if first.DisplayBody() != "hi plain" || len(first.Attachments) != 1 || first.Channel != "email" {
		t.Fatalf("unexpected comment: %+v", first)
	}
	if comments[1].From != support || comments[1].CreatedAt.IsZero() {
		t.Fatalf("expected defaults on second comment: %+v", comments[1])
	}
}

func TestGetCommentsMissingKey(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	comments, err := c.GetComments(context.Background(), "TCK-1")
	if err != nil || len(comments) != 0 {
		t.Fatalf("expected empty comments, got %v %v", comments, err)
	}
}

func TestGetTicketMeta(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tickets/TCK-1/details" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"ticket":{"id":77,"subject":"Kit","status":"Open","priority":null,"tags":["vip"],"created_at":"2025-07-01T10:00:00Z"}}`))
	})
	meta, err := c.GetTicketMeta(context.Background(), "TCK-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.ID != 77 || meta.Status != "open" || meta.BadgeClass() != "status-open" || meta.Priority != "" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		status int
		op     string
		kind   Kind
	}{
		{http.StatusNotFound, "comments", KindNotFound},
		{http.StatusUnauthorized, "details", KindUnauthorized},
		{http.StatusUnprocessableEntity, "details", KindOther},
		{http.StatusUnprocessableEntity, "add", KindValidationFailed},
		{http.StatusInternalServerError, "add", KindOther},
	}
	for _, tc := range cases {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"error":"RecordInvalid"}`))
		})
		var err error
		switch tc.op {
		case "comments":
			_, err = c.GetComments(context.Background(), "TCK-1")
		case "details":
			_, err = c.GetTicketMeta(context.Background(), "TCK-1")
		case "add":
			_, err = c.AddComment(context.Background(), "TCK-1", "hello", true)
		}
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("%s/%d: expected *Error, got %v", tc.op, tc.status, err)
		}
		if apiErr.Kind != tc.kind || apiErr.Status != tc.status {
			t.Fatalf("%s/%d: expected kind %s, got %+v", tc.op, tc.status, tc.kind, apiErr)
		}
		if tc.kind == KindValidationFailed && !strings.Contains(apiErr.Message, "RecordInvalid") {
			t.Fatalf("expected validation body in message, got %q", apiErr.Message)
		}
		if tc.kind == KindNotFound && apiErr.Message != "Ticket TCK-1 not found" {
			t.Fatalf("unexpected not found message %q", apiErr.Message)
		}
	}
}

func TestAddCommentChoosesBodyField(t *testing.T) {
	var got map[string]map[string]map[string]any
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/tickets/TCK-1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		got = nil
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		_, _ = w.Write([]byte(`{"ticket":{"id":1,"status":"open"}}`))
	})

	if _, err := c.AddComment(context.Background(), "TCK-1", "<p>Dear Ann</p>", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	comment := got["ticket"]["comment"]
	if comment["html_body"] != "<p>Dear Ann</p>" {
		t.Fatalf("expected html_body, got %+v", comment)
	}
	if _, ok := comment["body"]; ok {
		t.Fatalf("plain body must be absent for markup, got %+v", comment)
	}
	if comment["public"] != true {
		t.Fatalf("expected public=true, got %+v", comment)
	}

	if _, err := c.AddComment(context.Background(), "TCK-1", "thanks", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	comment = got["ticket"]["comment"]
	if comment["body"] != "thanks" || comment["public"] != false {
		t.Fatalf("expected plain body, got %+v", comment)
	}
	if _, ok := comment["html_body"]; ok {
		t.Fatalf("html_body must be absent for plain text, got %+v", comment)
	}
}

func TestUploadAttachment(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tickets/TCK-1/upload" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("filename") != "ring 1.jpg" || r.Header.Get("Content-Type") != "image/jpeg" {
			t.Errorf("unexpected upload metadata: %s %s", r.URL.RawQuery, r.Header.Get("Content-Type"))
		}
		b, _ := io.ReadAll(r.Body)
		if string(b) != "JPEGDATA" {
			t.Errorf("unexpected body %q", b)
		}
		_, _ = w.Write([]byte(`{"upload":{"token":"tok-1"}}`))
	})
	token, err := c.UploadAttachment(context.Background(), "TCK-1", "ring 1.jpg", "image/jpeg", strings.NewReader("JPEGDATA"))
	if err != nil || token != "tok-1" {
		t.Fatalf("expected token, got %q %v", token, err)
	}
}

func TestFetchImage(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/ring.jpeg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("img"))
	})
	img, err := c.FetchImage(context.Background(), "images/ring.jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Filename != "ring.jpeg" || img.ContentType != "image/jpeg" || string(img.Data) != "img" {
		t.Fatalf("unexpected image: %+v", img)
	}
	_, err = c.FetchImage(context.Background(), "missing.png")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestImageFilename(t *testing.T) {
	cases := map[string]string{
		"images/a.jpeg":                    "a.jpeg",
		"https://cdn.example.com/x/b.png?v=2": "b.png",
		"c.jpg":                            "c.jpg",
		"images/":                          "jewelry-image.jpg",
	}
	for in, want := range cases {
		if got := ImageFilename(in); got != want {
			t.Fatalf("ImageFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
