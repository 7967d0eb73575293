package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/commsdesk/backend/internal/compose"
	"github.com/commsdesk/backend/internal/models"
	"github.com/commsdesk/backend/internal/service"
	"github.com/commsdesk/backend/internal/tickets"
)

type CommunicationsResponse struct {
	Communications []models.Communication `json:"communications"`
	Sample         bool                   `json:"sample"`
}

type CustomerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type TicketResponse struct {
	TicketNumber    string                `json:"ticket_number"`
	Ticket          models.TicketMeta     `json:"ticket"`
	Comments        []models.Comment      `json:"comments"`
	JewelryImages   []models.JewelryImage `json:"jewelry_images"`
	Customer        CustomerResponse      `json:"customer"`
	SuggestedAmount float64               `json:"suggested_amount"`
}

type ReplyRequest struct {
	Body string `json:"body" validate:"required"`
}

type ComposeRequest struct {
	TemplateID string                 `json:"template_id"`
	Items      []compose.AppraisalRow `json:"items"`
}

// @Summary List communications
// @Tags communications
// @Produce json
// @Param customer_name query string false "customer name contains"
// @Param email query string false "email contains"
// @Param subject query string false "subject contains"
// @Param ticket_number query string false "ticket number contains"
// @Param order_number query string false "order number contains"
// @Param status query string false "status contains"
// @Param date query string false "date contains"
// @Success 200 {object} CommunicationsResponse
// @Router /api/communications [get]
func (h *Handler) CommunicationsList(c *gin.Context) {
	var opts models.FilterOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid filter", err.Error())
		return
	}
	rows, sample := h.Dash.Communications(c.Request.Context(), opts)
	c.JSON(http.StatusOK, CommunicationsResponse{Communications: rows, Sample: sample})
}

// @Summary Ticket details
// @Tags tickets
// @Produce json
// @Param ticket path string true "ticket number"
// @Success 200 {object} TicketResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/tickets/{ticket} [get]
func (h *Handler) TicketDetails(c *gin.Context) {
	det, err := h.Dash.Detail(c.Request.Context(), c.Param("ticket"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, TicketResponse{
		TicketNumber:    det.TicketNumber,
		Ticket:          det.Meta,
		Comments:        det.Comments,
		JewelryImages:   det.Images,
		Customer:        CustomerResponse{Name: det.CustomerName, Email: det.CustomerEmail},
		SuggestedAmount: det.SuggestedAmount,
	})
}

// @Summary Ticket comments
// @Tags tickets
// @Produce json
// @Param ticket path string true "ticket number"
// @Success 200 {object} map[string]any
// @Router /api/tickets/{ticket}/comments [get]
func (h *Handler) TicketComments(c *gin.Context) {
	comments, err := h.Dash.Ticketing.GetComments(c.Request.Context(), c.Param("ticket"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// @Summary Add a public reply
// @Tags tickets
// @Accept json
// @Produce json
// @Param ticket path string true "ticket number"
// @Param request body ReplyRequest true "reply"
// @Success 200 {object} map[string]any
// @Failure 422 {object} ErrorResponse
// @Router /api/tickets/{ticket}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
		return
	}
	meta, err := h.Dash.Reply(c.Request.Context(), c.Param("ticket"), req.Body)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": meta})
}

// @Summary Upload an attachment
// @Tags tickets
// @Accept multipart/form-data
// @Produce json
// @Param ticket path string true "ticket number"
// @Param file formData file true "attachment"
// @Success 200 {object} map[string]any
// @Router /api/tickets/{ticket}/upload [post]
func (h *Handler) UploadAttachment(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "file required", nil)
		return
	}
	if h.MaxUploadBytes > 0 && fh.Size > h.MaxUploadBytes {
		writeError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the upload limit", gin.H{"max_bytes": h.MaxUploadBytes})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to read file", err.Error())
		return
	}
	defer f.Close()

	token, err := h.Dash.Ticketing.UploadAttachment(c.Request.Context(), c.Param("ticket"), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upload": gin.H{"token": token}})
}

// @Summary Jewelry images of a ticket
// @Tags tickets
// @Produce json
// @Param ticket path string true "ticket number"
// @Success 200 {object} map[string]any
// @Router /api/tickets/{ticket}/jewelry [get]
func (h *Handler) JewelryImages(c *gin.Context) {
	images := h.Dash.Tickets.ListJewelryImages(c.Request.Context(), c.Param("ticket"))
	c.JSON(http.StatusOK, gin.H{"jewelry_images": images})
}

// @Summary Response templates
// @Tags templates
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/templates [get]
func (h *Handler) TemplatesList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.Dash.Composer.Templates(), "default": compose.DefaultTemplate})
}

// @Summary Render a response template for a ticket
// @Tags templates
// @Accept json
// @Produce json
// @Param ticket path string true "ticket number"
// @Param request body ComposeRequest true "template and appraisal rows"
// @Success 200 {object} compose.Message
// @Failure 404 {object} ErrorResponse
// @Router /api/tickets/{ticket}/compose [post]
func (h *Handler) Compose(c *gin.Context) {
	var req ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON", err.Error())
		return
	}
	msg, err := h.Dash.ComposeReply(c.Request.Context(), c.Param("ticket"), req.TemplateID, req.Items)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// @Summary Send a payout
// @Tags payments
// @Accept json
// @Produce json
// @Param vendor path string true "paypal, venmo or tremendous"
// @Param request body models.PaymentRequest true "payment"
// @Success 200 {object} models.PaymentResult
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/payments/{vendor} [post]
func (h *Handler) Pay(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON", err.Error())
		return
	}
	req.Vendor = strings.ToLower(c.Param("vendor"))
	res, err := h.Dash.Pay(c.Request.Context(), c.Query("ticket_number"), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Process a customer action
// @Description Forwards each (action, ticket_number) pair at most once. A
// @Description completed pair answers 409 DUPLICATE_ACTION, a pending one 409 ACTION_IN_FLIGHT.
// @Tags actions
// @Accept json
// @Produce json
// @Param request body models.ActionRequest true "action"
// @Success 200 {object} models.ActionResult
// @Failure 409 {object} ErrorResponse
// @Router /api/customer-actions/process [put]
func (h *Handler) ProcessAction(c *gin.Context) {
	var req models.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", service.ErrMissingAction.Error(), err.Error())
		return
	}
	res, err := h.Dash.SubmitAction(c.Request.Context(), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Map an order-complete payload to a communication row
// @Tags communications
// @Accept json
// @Produce json
// @Param request body tickets.OrderCompletePayload true "order"
// @Success 200 {object} models.Communication
// @Router /api/order-complete [post]
func (h *Handler) OrderComplete(c *gin.Context) {
	var p tickets.OrderCompletePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON", err.Error())
		return
	}
	if err := h.Validator.Struct(p); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", err.Error())
		return
	}
	comm := tickets.FromOrderComplete(p, h.now())
	h.Logger.Info().Str("ticket", comm.TicketNumber).Str("order", comm.OrderNumber).Msg("order complete received")
	c.JSON(http.StatusOK, comm)
}
