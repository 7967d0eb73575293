package filter

import (
	"testing"

	"github.com/commsdesk/backend/internal/models"
)

func sampleRows() []models.Communication {
	return []models.Communication{
		{ID: "1", CustomerName: "John Smith", Email: "john@example.com", Subject: "Mail Kit", TicketNumber: "TCK-1", OrderNumber: "ORD-10", Status: models.StatusPending, Date: "July 12, 2025"},
		{ID: "2", CustomerName: "Jane Doe", Email: "jane@example.com", Subject: "Buy Back", TicketNumber: "TCK-2", OrderNumber: "ORD-20", Status: models.StatusInProgress, Date: "July 13, 2025"},
		{ID: "3", CustomerName: "Sarah Wilson", Email: "sarah@shop.io", Subject: "Mail Kit Return", TicketNumber: "TCK-3", OrderNumber: "ORD-30", Status: models.StatusCompleted, Date: "August 1, 2025"},
	}
}

func TestCommunicationsEmptyOptionsKeepsAll(t *testing.T) {
	rows := sampleRows()
	got := Communications(rows, models.FilterOptions{})
	if len(got) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(got))
	}
	for i := range rows {
		if got[i].ID != rows[i].ID {
			t.Fatalf("order not preserved at %d: %s", i, got[i].ID)
		}
	}
}

func TestCommunicationsEmptyInput(t *testing.T) {
	got := Communications(nil, models.FilterOptions{Email: "x"})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}

func TestCommunicationsFieldMatching(t *testing.T) {
	cases := []struct {
		name string
		opts models.FilterOptions
		want []string
	}{
		{"email case insensitive", models.FilterOptions{Email: "EXAMPLE.COM"}, []string{"1", "2"}},
		{"subject substring", models.FilterOptions{Subject: "kit"}, []string{"1", "3"}},
		{"ticket number", models.FilterOptions{TicketNumber: "tck-2"}, []string{"2"}},
		{"order number", models.FilterOptions{OrderNumber: "30"}, []string{"3"}},
		{"status", models.FilterOptions{Status: "progress"}, []string{"2"}},
		{"date", models.FilterOptions{Date: "july"}, []string{"1", "2"}},
		{"customer name", models.FilterOptions{CustomerName: "doe"}, []string{"2"}},
		{"anded", models.FilterOptions{Subject: "kit", Date: "august"}, []string{"3"}},
		{"no match", models.FilterOptions{Email: "nobody"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Communications(sampleRows(), tc.opts)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %+v", tc.want, got)
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Fatalf("expected %s at %d, got %s", id, i, got[i].ID)
				}
			}
		})
	}
}

func TestCommunicationsIsSubset(t *testing.T) {
	rows := sampleRows()
	got := Communications(rows, models.FilterOptions{Email: "a"})
	index := map[string]bool{}
	for _, r := range rows {
		index[r.ID] = true
	}
	for _, r := range got {
		if !index[r.ID] {
			t.Fatalf("result %s not in input", r.ID)
		}
	}
}
