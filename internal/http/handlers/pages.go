package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"

	"github.com/commsdesk/backend/internal/compose"
	"github.com/commsdesk/backend/internal/models"
	"github.com/commsdesk/backend/internal/payments"
	"github.com/commsdesk/backend/internal/service"
	"github.com/commsdesk/backend/internal/ticketing"
	"github.com/commsdesk/backend/internal/utils"
)

var statuses = []models.Status{models.StatusPending, models.StatusInProgress, models.StatusCompleted, models.StatusCancelled}

func (h *Handler) ListPage(c *gin.Context) {
	var opts models.FilterOptions
	_ = c.ShouldBindQuery(&opts)
	rows, sample := h.Dash.Communications(c.Request.Context(), opts)
	h.Views.HTML(c, http.StatusOK, "list.html", pongo2.Context{
		"rows":     rows,
		"sample":   sample,
		"filters":  opts,
		"statuses": statuses,
	})
}

func (h *Handler) TicketPage(c *gin.Context) {
	h.renderDetail(c, c.Param("ticket"), c.Query("template"), models.Notification{}, "")
}

func (h *Handler) ReplyPage(c *gin.Context) {
	ticket := c.Param("ticket")
	body := c.PostForm("body")
	if _, err := h.Dash.Reply(c.Request.Context(), ticket, body); err != nil {
		msg := "Failed to send reply: " + err.Error()
		if errors.Is(err, service.ErrEmptyReply) {
			msg = "Please enter a message"
		}
		h.renderDetail(c, ticket, c.PostForm("template"), models.NotifyError(msg), body)
		return
	}
	h.renderDetail(c, ticket, c.PostForm("template"), models.NotifySuccess("Your reply has been sent."), "")
}

func (h *Handler) PaymentPage(c *gin.Context) {
	ticket := c.Param("ticket")
	var req models.PaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderDetail(c, ticket, "", models.NotifyError("Please enter a valid amount"), "")
		return
	}
	res, err := h.Dash.Pay(c.Request.Context(), ticket, req)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, payments.ErrInvalidAmount) {
			msg = "Please enter a valid amount"
		}
		h.renderDetail(c, ticket, "", models.NotifyError(msg), "")
		return
	}
	msg := res.Message
	if msg == "" {
		msg = "Payment sent successfully."
	}
	h.renderDetail(c, ticket, compose.PaymentSent, models.NotifySuccess(msg), "")
}

// ActionPage submits a customer action on the agent's behalf.
func (h *Handler) ActionPage(c *gin.Context) {
	ticket := c.Param("ticket")
	req := models.ActionRequest{Action: c.PostForm("action"), TicketNumber: ticket, Email: c.PostForm("email")}
	res, err := h.Dash.SubmitAction(c.Request.Context(), req)
	if err != nil {
		h.renderDetail(c, ticket, "", models.NotifyError("Failed to process your request: "+err.Error()), "")
		return
	}
	h.renderDetail(c, ticket, "", models.NotifySuccess(res.Message), "")
}

// ActionLanding is where customers arrive from an emailed action link. A
// GET never forwards the action: the page posts the parameters back once a
// browser renders it, so link scanners and prefetchers have no effect.
func (h *Handler) ActionLanding(c *gin.Context) {
	req := models.ActionRequest{
		Action:       strings.TrimSpace(c.Query("action")),
		TicketNumber: strings.TrimSpace(c.Query("ticket_number")),
		Email:        strings.TrimSpace(c.Query("email")),
	}
	if req.Action == "" || req.TicketNumber == "" {
		h.renderLanding(c, http.StatusBadRequest, "error", "Error", "Invalid request: "+service.ErrMissingAction.Error())
		return
	}
	h.Views.HTML(c, http.StatusOK, "action.html", pongo2.Context{
		"state":     "info",
		"heading":   "Processing Your Request",
		"message":   "Please wait while we record your choice for ticket " + req.TicketNumber + ".",
		"label":     compose.ActionLabel(req.Action),
		"confirm":   req,
		"show_form": true,
	})
}

// ActionSubmit forwards the action posted by the landing page. The ledger
// keeps reloads and repeat clicks from forwarding it twice.
func (h *Handler) ActionSubmit(c *gin.Context) {
	req := models.ActionRequest{
		Action:       c.PostForm("action"),
		TicketNumber: c.PostForm("ticket_number"),
		Email:        c.PostForm("email"),
	}
	res, err := h.Dash.SubmitAction(c.Request.Context(), req)
	switch {
	case err == nil:
		h.renderLanding(c, http.StatusOK, "success", "Request Received", res.Message)
	case errors.Is(err, service.ErrDuplicateAction):
		h.renderLanding(c, http.StatusOK, "success", "Request Received", "We have already received this request. No further action is needed.")
	case errors.Is(err, service.ErrActionInFlight):
		h.renderLanding(c, http.StatusConflict, "info", "Request Processing", "Your request is still being processed. Please check back in a few minutes.")
	case errors.Is(err, service.ErrMissingAction):
		h.renderLanding(c, http.StatusBadRequest, "error", "Error", "Invalid request: "+err.Error())
	default:
		status, _ := classifyError(err)
		h.renderLanding(c, status, "error", "Error", "Error processing your request: "+err.Error())
	}
}

func (h *Handler) renderLanding(c *gin.Context, status int, state, heading, message string) {
	h.Views.HTML(c, status, "action.html", pongo2.Context{
		"state":   state,
		"heading": heading,
		"message": message,
	})
}

// Image proxies a jewelry image from the image backend.
func (h *Handler) Image(c *gin.Context) {
	img, err := h.Dash.Ticketing.FetchImage(c.Request.Context(), c.Param("filename"))
	if err != nil {
		status := http.StatusBadGateway
		var te *ticketing.Error
		if errors.As(err, &te) && te.Kind == ticketing.KindNotFound {
			status = http.StatusNotFound
		}
		h.Logger.Warn().Err(err).Str("filename", c.Param("filename")).Msg("image fetch failed")
		c.Status(status)
		return
	}
	etag := `W/"` + utils.Fingerprint(img.Data) + `"`
	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

// renderDetail loads the ticket and renders its page. draft, when set,
// replaces the composed template body.
func (h *Handler) renderDetail(c *gin.Context, ticket, templateID string, note models.Notification, draft string) {
	data := pongo2.Context{
		"ticket_number": ticket,
		"notification":  note,
	}
	det, err := h.Dash.Detail(c.Request.Context(), ticket)
	if err != nil {
		status, _ := classifyError(err)
		if note.Open && note.Kind == models.NotificationSuccess {
			status = http.StatusOK
		}
		data["load_error"] = err.Error()
		h.Views.HTML(c, status, "detail.html", data)
		return
	}

	if templateID == "" {
		templateID = compose.DefaultTemplate
	}
	if _, ok := h.Dash.Composer.Lookup(templateID); !ok {
		templateID = compose.DefaultTemplate
	}
	draftHTML := ticketing.LooksLikeHTML(draft)
	if draft == "" {
		msg, err := h.Dash.Compose(det, templateID, nil)
		if err != nil {
			h.Logger.Error().Err(err).Str("template", templateID).Msg("template render failed")
		}
		draft, draftHTML = msg.Body, msg.HTML
	}

	data["meta"] = det.Meta
	data["created"] = formatDate(det.Meta.CreatedAt)
	data["updated"] = formatDate(det.Meta.UpdatedAt)
	data["comments"] = commentViews(det.Comments, det.FirstPublic, h.now())
	data["images"] = imageViews(det.Images)
	data["customer_name"] = det.CustomerName
	data["customer_email"] = det.CustomerEmail
	if det.CustomerKnown() {
		data["payout_recipient"] = det.CustomerEmail
	}
	data["templates"] = h.Dash.Composer.Templates()
	data["template_id"] = templateID
	data["draft"] = draft
	data["draft_html"] = draftHTML
	if draftHTML {
		data["draft_preview"] = sanitizeHTML(draft)
	}
	data["vendors"] = payments.Vendors
	data["currencies"] = payments.Currencies
	data["suggested_amount"] = suggestedAmount(det.SuggestedAmount)
	data["action_buttons"] = h.Dash.Composer.ActionButtons(ticket, "")
	h.Views.HTML(c, http.StatusOK, "detail.html", data)
}

func suggestedAmount(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
