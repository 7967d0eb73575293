package tickets

import "github.com/commsdesk/backend/internal/models"

// SampleCommunications are the placeholder rows shown when the backend
// returns nothing, so the list page never renders blank.
func SampleCommunications() []models.Communication {
	return []models.Communication{
		{ID: "1", CustomerName: "John Smith", Email: "customer@email.com", Subject: "Order shipment inquiry", TicketNumber: "TCK-999000001", OrderNumber: "ORD-123456789", Status: models.StatusPending, Date: "July 12, 2025"},
		{ID: "2", CustomerName: "Jane Doe", Email: "customer@email.com", Subject: "Product return request", TicketNumber: "TCK-999000002", OrderNumber: "ORD-123456790", Status: models.StatusInProgress, Date: "July 12, 2025"},
		{ID: "3", CustomerName: "Michael Johnson", Email: "customer@email.com", Subject: "Payment confirmation", TicketNumber: "TCK-999000003", OrderNumber: "ORD-123456791", Status: models.StatusCompleted, Date: "July 12, 2025"},
		{ID: "4", CustomerName: "Sarah Wilson", Email: "customer@email.com", Subject: "Order cancellation", TicketNumber: "TCK-999000004", OrderNumber: "ORD-123456792", Status: models.StatusCancelled, Date: "July 12, 2025"},
		{ID: "5", CustomerName: "David Brown", Email: "admin@business.com", Subject: "Billing address update", TicketNumber: "TCK-999000005", OrderNumber: "ORD-123456793", Status: models.StatusPending, Date: "July 11, 2025"},
		{ID: "6", CustomerName: "Emily Davis", Email: "support@company.org", Subject: "Delivery schedule change", TicketNumber: "TCK-999000006", OrderNumber: "ORD-123456794", Status: models.StatusInProgress, Date: "July 10, 2025"},
		{ID: "7", CustomerName: "Robert Miller", Email: "user@example.net", Subject: "Product quality feedback", TicketNumber: "TCK-999000007", OrderNumber: "ORD-123456795", Status: models.StatusCompleted, Date: "July 9, 2025"},
		{ID: "8", CustomerName: "Lisa Anderson", Email: "contact@shop.com", Subject: "Bulk order pricing inquiry", TicketNumber: "TCK-999000008", OrderNumber: "ORD-123456796", Status: models.StatusPending, Date: "July 8, 2025"},
	}
}
