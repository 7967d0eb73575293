package filter

import (
	"strings"

	"github.com/commsdesk/backend/internal/models"
)

// Communications returns the records matching every non-empty option.
// Matching is a case-insensitive substring test per field; order is kept.
func Communications(records []models.Communication, opts models.FilterOptions) []models.Communication {
	out := make([]models.Communication, 0, len(records))
	for _, r := range records {
		if matches(r, opts) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.Communication, opts models.FilterOptions) bool {
	return contains(r.CustomerName, opts.CustomerName) &&
		contains(r.Email, opts.Email) &&
		contains(r.Subject, opts.Subject) &&
		contains(r.TicketNumber, opts.TicketNumber) &&
		contains(r.OrderNumber, opts.OrderNumber) &&
		contains(string(r.Status), opts.Status) &&
		contains(r.Date, opts.Date)
}

func contains(value, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
}
