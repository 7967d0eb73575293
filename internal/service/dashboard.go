package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/commsdesk/backend/internal/actions"
	"github.com/commsdesk/backend/internal/compose"
	"github.com/commsdesk/backend/internal/db"
	"github.com/commsdesk/backend/internal/filter"
	"github.com/commsdesk/backend/internal/models"
	"github.com/commsdesk/backend/internal/payments"
	"github.com/commsdesk/backend/internal/ticketing"
	"github.com/commsdesk/backend/internal/tickets"
)

// Dashboard ties the backend clients together for the pages and the API.
// It holds no per-request state and is safe for concurrent use.
type Dashboard struct {
	Tickets   *tickets.Client
	Ticketing *ticketing.Client
	Actions   *actions.Client
	Payments  *payments.Client
	Composer  *compose.Composer
	Ledger    db.Ledger
	Logger    zerolog.Logger

	// SupportDomain marks support-side addresses when deriving the customer.
	SupportDomain string
}

// Detail is everything the ticket page shows.
type Detail struct {
	TicketNumber    string
	Meta            models.TicketMeta
	Comments        []models.Comment
	Images          []models.JewelryImage
	CustomerName    string
	CustomerEmail   string
	SuggestedAmount float64
	// FirstPublic is the index of the comment the jewelry gallery hangs
	// under, or -1.
	FirstPublic int

	customerKnown bool
}

// CustomerKnown reports whether CustomerEmail was read off the thread rather
// than defaulted.
func (d Detail) CustomerKnown() bool {
	return d.customerKnown
}

// Communications returns the filtered ticket list. When the backend yields
// nothing the sample rows stand in and sample is true.
func (d *Dashboard) Communications(ctx context.Context, opts models.FilterOptions) (rows []models.Communication, sample bool) {
	all := d.Tickets.ListTickets(ctx)
	if len(all) == 0 {
		all = tickets.SampleCommunications()
		sample = true
	}
	return filter.Communications(all, opts), sample
}

// Detail loads the thread and the metadata concurrently; both must succeed.
// Jewelry images are loaded afterwards and never fail the page.
func (d *Dashboard) Detail(ctx context.Context, ticketNumber string) (Detail, error) {
	var (
		comments []models.Comment
		meta     models.TicketMeta
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := d.Ticketing.GetComments(gctx, ticketNumber)
		comments = c
		return err
	})
	g.Go(func() error {
		m, err := d.Ticketing.GetTicketMeta(gctx, ticketNumber)
		meta = m
		return err
	})
	if err := g.Wait(); err != nil {
		d.Logger.Error().Err(err).Str("ticket", ticketNumber).Msg("ticket detail load failed")
		return Detail{}, err
	}

	images := d.Tickets.ListJewelryImages(ctx, ticketNumber)
	det := Detail{
		TicketNumber:    ticketNumber,
		Meta:            meta,
		Comments:        comments,
		Images:          images,
		SuggestedAmount: payments.SuggestedAmount(images),
		FirstPublic:     firstPublic(comments),
	}
	det.CustomerName, det.CustomerEmail, det.customerKnown = DeriveCustomer(comments, d.SupportDomain, d.Ticketing.Support.Name)
	return det, nil
}

func firstPublic(comments []models.Comment) int {
	for i, c := range comments {
		if c.Public {
			return i
		}
	}
	return -1
}
