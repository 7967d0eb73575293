package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/commsdesk/backend/internal/compose"
	"github.com/commsdesk/backend/internal/db"
	"github.com/commsdesk/backend/internal/models"
)

var (
	ErrEmptyReply      = errors.New("reply body is empty")
	ErrMissingAction   = errors.New("missing action or ticket number")
	ErrDuplicateAction = errors.New("action already submitted for this ticket")
	ErrActionInFlight  = errors.New("action is still being processed for this ticket")
)

// Reply posts a public comment on the ticket.
func (d *Dashboard) Reply(ctx context.Context, ticketNumber, body string) (models.TicketMeta, error) {
	if strings.TrimSpace(body) == "" {
		return models.TicketMeta{}, ErrEmptyReply
	}
	meta, err := d.Ticketing.AddComment(ctx, ticketNumber, body, true)
	if err != nil {
		d.Logger.Error().Err(err).Str("ticket", ticketNumber).Msg("reply failed")
		return models.TicketMeta{}, err
	}
	d.Logger.Info().Str("ticket", ticketNumber).Msg("reply posted")
	return meta, nil
}

// Compose renders a template for an already loaded ticket. Nil rows are
// seeded from the ticket's jewelry images.
func (d *Dashboard) Compose(det Detail, templateID string, rows []compose.AppraisalRow) (compose.Message, error) {
	if templateID == "" {
		templateID = compose.DefaultTemplate
	}
	if rows == nil {
		rows = compose.RowsFromImages(det.Images)
	}
	vars := compose.Vars{
		CustomerName: det.CustomerName,
		TicketNumber: det.TicketNumber,
		Items:        rows,
	}
	if det.customerKnown {
		vars.Email = det.CustomerEmail
	}
	return d.Composer.Render(templateID, vars)
}

// ComposeReply loads the ticket and renders a template for it.
func (d *Dashboard) ComposeReply(ctx context.Context, ticketNumber, templateID string, rows []compose.AppraisalRow) (compose.Message, error) {
	det, err := d.Detail(ctx, ticketNumber)
	if err != nil {
		return compose.Message{}, err
	}
	return d.Compose(det, templateID, rows)
}

func (d *Dashboard) Pay(ctx context.Context, ticketNumber string, req models.PaymentRequest) (models.PaymentResult, error) {
	res, err := d.Payments.Submit(ctx, req)
	if err != nil {
		d.Logger.Error().Err(err).Str("ticket", ticketNumber).Str("vendor", req.Vendor).Msg("payment failed")
		return models.PaymentResult{}, err
	}
	d.Logger.Info().Str("ticket", ticketNumber).Str("vendor", req.Vendor).Float64("amount", req.Amount).Msg("payment sent")
	return res, nil
}

// SubmitAction forwards a customer action at most once per (action, ticket)
// pair. A failed forward releases the claim so the customer can retry. A
// pair held by another request yields ErrActionInFlight until that request
// completes, and ErrDuplicateAction afterwards.
func (d *Dashboard) SubmitAction(ctx context.Context, req models.ActionRequest) (models.ActionResult, error) {
	req.Action = strings.TrimSpace(req.Action)
	req.TicketNumber = strings.TrimSpace(req.TicketNumber)
	req.Email = strings.TrimSpace(req.Email)
	if req.Action == "" || req.TicketNumber == "" {
		return models.ActionResult{}, ErrMissingAction
	}
	log := d.Logger.With().Str("action", req.Action).Str("ticket", req.TicketNumber).Logger()

	held, claimed, err := d.Ledger.Claim(ctx, req.Action, req.TicketNumber, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("action ledger unavailable")
		return models.ActionResult{}, fmt.Errorf("record action: %w", err)
	}
	if !claimed {
		if held.Status == db.SubmissionCompleted {
			log.Warn().Msg("duplicate action ignored")
			return models.ActionResult{}, ErrDuplicateAction
		}
		log.Warn().Time("claimed_at", held.ClaimedAt).Msg("action already in flight")
		return models.ActionResult{}, ErrActionInFlight
	}

	res, err := d.Actions.Submit(ctx, req)
	if err != nil {
		if relErr := d.Ledger.Release(context.WithoutCancel(ctx), req.Action, req.TicketNumber); relErr != nil {
			log.Error().Err(relErr).Msg("release action claim failed")
		}
		log.Error().Err(err).Msg("action failed")
		return models.ActionResult{}, err
	}
	if err := d.Ledger.Complete(context.WithoutCancel(ctx), req.Action, req.TicketNumber, res.Message); err != nil {
		log.Error().Err(err).Msg("complete action claim failed")
	}
	log.Info().Msg("action processed")
	return res, nil
}
