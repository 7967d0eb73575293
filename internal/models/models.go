package models

import "time"

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) BadgeClass() string {
	switch s {
	case StatusInProgress:
		return "status-in-progress"
	case StatusCompleted:
		return "status-completed"
	case StatusCancelled:
		return "status-cancelled"
	default:
		return "status-pending"
	}
}

// Communication is one row of the dashboard list: a ticket tied to an order.
type Communication struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Subject      string `json:"subject"`
	TicketNumber string `json:"ticket_number"`
	OrderNumber  string `json:"order_number"`
	Status       Status `json:"status"`
	Date         string `json:"date"`
}

type FilterOptions struct {
	CustomerName string `form:"customer_name" json:"customer_name"`
	Email        string `form:"email" json:"email"`
	Subject      string `form:"subject" json:"subject"`
	TicketNumber string `form:"ticket_number" json:"ticket_number"`
	OrderNumber  string `form:"order_number" json:"order_number"`
	Status       string `form:"status" json:"status"`
	Date         string `form:"date" json:"date"`
}

func (f FilterOptions) IsEmpty() bool {
	return f.CustomerName == "" && f.Email == "" && f.Subject == "" &&
		f.TicketNumber == "" && f.OrderNumber == "" && f.Status == "" && f.Date == ""
}

type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type Attachment struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ContentURL  string `json:"content_url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Inline      bool   `json:"inline"`
}

type Comment struct {
	ID          int64        `json:"id"`
	Type        string       `json:"type"`
	AuthorID    int64        `json:"author_id"`
	Body        string       `json:"body"`
	HTMLBody    string       `json:"html_body"`
	PlainBody   string       `json:"plain_body"`
	Public      bool         `json:"public"`
	Channel     string       `json:"channel"`
	From        Party        `json:"from"`
	To          Party        `json:"to"`
	CreatedAt   time.Time    `json:"created_at"`
	Attachments []Attachment `json:"attachments"`
}

// DisplayBody prefers the plain rendition of the comment.
func (c Comment) DisplayBody() string {
	if c.PlainBody != "" {
		return c.PlainBody
	}
	return c.Body
}

type TicketMeta struct {
	ID          int64     `json:"id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Tags        []string  `json:"tags"`
	RequesterID int64     `json:"requester_id"`
	AssigneeID  *int64    `json:"assignee_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t TicketMeta) BadgeClass() string {
	switch t.Status {
	case "new", "open", "pending", "hold", "solved", "closed":
		return "status-" + t.Status
	default:
		return "status-default"
	}
}

// JewelryImage is one appraised line item of a ticket. PricePerGram is nil
// when the weight does not allow a finite value.
type JewelryImage struct {
	ItemID         int64    `json:"jewelry_item_id"`
	Weight         float64  `json:"weight"`
	Purity         string   `json:"purity"`
	MetalType      string   `json:"metal_type"`
	UnitOfMeasure  string   `json:"unit_of_measure"`
	EstimatedValue float64  `json:"estimated_value"`
	AfterFeesValue float64  `json:"after_fees_value"`
	PricePerGram   *float64 `json:"price_per_gram"`
	ImageRef       string   `json:"image_data"`
	Timestamp      string   `json:"timestamp"`
}

const (
	NotificationSuccess = "success"
	NotificationError   = "error"
)

type Notification struct {
	Open    bool   `json:"open"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Title   string `json:"title"`
}

func NotifySuccess(message string) Notification {
	return Notification{Open: true, Message: message, Kind: NotificationSuccess, Title: "Success"}
}

func NotifyError(message string) Notification {
	return Notification{Open: true, Message: message, Kind: NotificationError, Title: "Error"}
}

type PaymentRequest struct {
	Vendor        string  `json:"-" form:"vendor" validate:"required,oneof=paypal venmo tremendous"`
	Recipient     string  `json:"recipient" form:"recipient" validate:"required,email"`
	RecipientType string  `json:"recipientType" form:"recipient_type"`
	Amount        float64 `json:"amount" form:"amount" validate:"gt=0"`
	Currency      string  `json:"currency" form:"currency" validate:"omitempty,oneof=USD PHP"`
	Note          string  `json:"note" form:"note"`
}

type PaymentResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ActionRequest struct {
	Action       string `json:"action" form:"action" validate:"required"`
	TicketNumber string `json:"ticket_number" form:"ticket_number" validate:"required"`
	Email        string `json:"email,omitempty" form:"email" validate:"omitempty,email"`
}

type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
