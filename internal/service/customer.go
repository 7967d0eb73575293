package service

import (
	"strings"

	"github.com/commsdesk/backend/internal/models"
)

const (
	DefaultCustomerName  = "Customer"
	DefaultCustomerEmail = "customer@email.com"
)

// DeriveCustomer reads the customer's name and address off the first public
// comment, preferring the sender and skipping support-side parties. known
// is false when only the defaults could be returned for the address.
func DeriveCustomer(comments []models.Comment, supportDomain, supportName string) (name, email string, known bool) {
	name, email = DefaultCustomerName, DefaultCustomerEmail
	idx := firstPublic(comments)
	if idx < 0 {
		return name, email, false
	}
	c := comments[idx]
	support := func(p models.Party) bool {
		return supportDomain != "" && strings.Contains(strings.ToLower(p.Address), strings.ToLower(supportDomain))
	}

	for _, p := range []models.Party{c.From, c.To} {
		if p.Address != "" && !support(p) {
			email, known = p.Address, true
			break
		}
	}
	for _, p := range []models.Party{c.From, c.To} {
		if p.Name != "" && p.Name != supportName && !support(p) {
			name = p.Name
			break
		}
	}
	return name, email, known
}
