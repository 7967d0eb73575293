package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/commsdesk/backend/internal/actions"
	"github.com/commsdesk/backend/internal/compose"
	"github.com/commsdesk/backend/internal/http/views"
	"github.com/commsdesk/backend/internal/payments"
	"github.com/commsdesk/backend/internal/service"
	"github.com/commsdesk/backend/internal/ticketing"
)

// Pinger is satisfied by the database-backed ledger.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Dash           *service.Dashboard
	Views          *views.Renderer
	Validator      *validator.Validate
	Logger         zerolog.Logger
	DB             Pinger
	MaxUploadBytes int64
	Now            func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h *Handler) Healthz(c *gin.Context) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.DB.Ping(ctx); err != nil {
			writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message, Details: details}})
}

// classifyError maps a domain error to an HTTP status and error code.
func classifyError(err error) (int, string) {
	var (
		te *ticketing.Error
		ae *actions.Error
		pe *payments.Error
		ve validator.ValidationErrors
	)
	switch {
	case errors.As(err, &te):
		switch te.Kind {
		case ticketing.KindNotFound:
			return http.StatusNotFound, string(te.Kind)
		case ticketing.KindUnauthorized:
			return http.StatusBadGateway, string(te.Kind)
		case ticketing.KindValidationFailed:
			return http.StatusUnprocessableEntity, string(te.Kind)
		default:
			return http.StatusBadGateway, string(te.Kind)
		}
	case errors.As(err, &ae), errors.As(err, &pe):
		return http.StatusBadGateway, "UPSTREAM_ERROR"
	case errors.Is(err, service.ErrDuplicateAction):
		return http.StatusConflict, "DUPLICATE_ACTION"
	case errors.Is(err, service.ErrActionInFlight):
		return http.StatusConflict, "ACTION_IN_FLIGHT"
	case errors.Is(err, compose.ErrUnknownTemplate):
		return http.StatusNotFound, "TEMPLATE_NOT_FOUND"
	case errors.Is(err, service.ErrEmptyReply),
		errors.Is(err, service.ErrMissingAction),
		errors.Is(err, payments.ErrInvalidAmount),
		errors.Is(err, payments.ErrUnknownVendor),
		errors.As(err, &ve):
		return http.StatusBadRequest, "INVALID_REQUEST"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func writeDomainError(c *gin.Context, err error) {
	status, code := classifyError(err)
	writeError(c, status, code, err.Error(), nil)
}
