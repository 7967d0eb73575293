package tickets

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/commsdesk/backend/internal/models"
	"github.com/commsdesk/backend/internal/utils"
)

const defaultSubject = "Order Inquiry"

type ticketRecord struct {
	ID                int64        `json:"id"`
	TicketNumber      string       `json:"ticketNumber"`
	TicketNumberSnake string       `json:"ticket_number"`
	OrderNumber       string       `json:"orderNumber"`
	ShopifyOrderID    string       `json:"shopifyOrderId"`
	CustomerFirstName string       `json:"customerFirstName"`
	CustomerLastName  string       `json:"customerLastName"`
	CustomerFullName  string       `json:"customerFullName"`
	CustomerEmail     string       `json:"customerEmail"`
	Currency          string       `json:"currency"`
	Status            string       `json:"status"`
	OrderType         string       `json:"orderType"`
	OrderDate         string       `json:"orderDate"`
	DateModified      string       `json:"dateModified"`
	Items             []itemRecord `json:"items"`
}

type itemRecord struct {
	ID              int64   `json:"id"`
	Weight          float64 `json:"weight"`
	Purity          string  `json:"purity"`
	MetalType       string  `json:"metalType"`
	UnitOfMeasure   string  `json:"unitOfMeasure"`
	AppraisedAmount float64 `json:"appraisedAmount"`
	ActualAmount    float64 `json:"actualAmount"`
	ImageURL        string  `json:"imageUrl"`
}

func (r ticketRecord) number() string {
	if r.TicketNumber != "" {
		return r.TicketNumber
	}
	return r.TicketNumberSnake
}

func (r ticketRecord) customerName() string {
	if r.CustomerFullName != "" {
		return r.CustomerFullName
	}
	return strings.TrimSpace(r.CustomerFirstName + " " + r.CustomerLastName)
}

// MapStatus normalizes any backend status to one of the four display values.
// Unknown or empty input maps to Pending.
func MapStatus(status string) models.Status {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed", "complete", "done":
		return models.StatusCompleted
	case "processing", "in_progress", "in-progress":
		return models.StatusInProgress
	case "cancelled", "canceled":
		return models.StatusCancelled
	default:
		return models.StatusPending
	}
}

func SubjectFromOrderType(orderType string) string {
	if orderType == "" {
		return defaultSubject
	}
	return utils.SnakeToTitle(orderType)
}

func toCommunication(r ticketRecord, now time.Time) models.Communication {
	date := r.DateModified
	if date == "" {
		date = r.OrderDate
	}
	return models.Communication{
		ID:           fmt.Sprintf("ticket-%s-%s", r.OrderNumber, r.number()),
		CustomerName: r.customerName(),
		Email:        r.CustomerEmail,
		Subject:      SubjectFromOrderType(r.OrderType),
		TicketNumber: r.number(),
		OrderNumber:  r.OrderNumber,
		Status:       MapStatus(r.Status),
		Date:         utils.DisplayDate(date, now),
	}
}

// pricePerGram is nil unless weight is positive and the quotient finite.
func pricePerGram(amount, weight float64) *float64 {
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return nil
	}
	v := amount / weight
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func toJewelryImages(r ticketRecord, now time.Time) []models.JewelryImage {
	ts := r.DateModified
	if ts == "" {
		ts = now.UTC().Format(time.RFC3339)
	}
	out := make([]models.JewelryImage, 0, len(r.Items))
	for _, it := range r.Items {
		if strings.TrimSpace(it.ImageURL) == "" {
			continue
		}
		out = append(out, models.JewelryImage{
			ItemID:         it.ID,
			Weight:         it.Weight,
			Purity:         it.Purity,
			MetalType:      it.MetalType,
			UnitOfMeasure:  it.UnitOfMeasure,
			EstimatedValue: it.AppraisedAmount,
			AfterFeesValue: it.ActualAmount,
			PricePerGram:   pricePerGram(it.AppraisedAmount, it.Weight),
			ImageRef:       it.ImageURL,
			Timestamp:      ts,
		})
	}
	return out
}

// OrderCompletePayload is the order-complete webhook body forwarded by the
// storefront: id is the order number and number the ticket number.
type OrderCompletePayload struct {
	ID            string `json:"id" validate:"required"`
	Number        string `json:"number" validate:"required"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Subject       string `json:"subject"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

// FromOrderComplete builds a list row from an order-complete payload before
// the backend has joined it with customer data.
func FromOrderComplete(p OrderCompletePayload, now time.Time) models.Communication {
	c := models.Communication{
		ID:           "comm-" + uuid.NewString(),
		CustomerName: p.CustomerName,
		Email:        p.CustomerEmail,
		Subject:      p.Subject,
		TicketNumber: p.Number,
		OrderNumber:  p.ID,
		Status:       MapStatus(p.Status),
		Date:         utils.DisplayDate(p.CreatedAt, now),
	}
	if c.CustomerName == "" {
		c.CustomerName = "Unknown Customer"
	}
	if c.Email == "" {
		c.Email = "unknown@email.com"
	}
	if c.Subject == "" {
		c.Subject = "Order communication"
	}
	return c
}
