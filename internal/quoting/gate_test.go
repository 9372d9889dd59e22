package quoting

import (
	"errors"
	"testing"
	"time"

	"quotation-management-api/internal/common"
	"quotation-management-api/internal/entity"

	"github.com/google/uuid"
)

func draftProposal(t *testing.T, validity string, priced bool) *entity.Proposal {
	t.Helper()
	rfq := testRFQ("500", "10")
	p := &entity.Proposal{
		Id:                    uuid.New(),
		RfqId:                 rfq.Id,
		Status:                common.Draft,
		QuotationValidityDate: validity,
		Items:                 SeedLineItems(rfq, uuid.New(), dec("10")),
	}
	if priced {
		p.Items[0].UnitPrice = dec("2.00")
		applyLineTotals(&p.Items[0])
	}

	return p
}

func TestSubmitNoItemsQuoted(t *testing.T) {
	t.Parallel()
	now := time.Now()
	p := draftProposal(t, now.Add(24*time.Hour).Format(time.RFC3339), false)

	err := Submit(p, now)
	if !errors.Is(err, ErrNoItemsQuoted) {
		t.Fatalf("expected ErrNoItemsQuoted, got %v", err)
	}
	if p.Status != common.Draft {
		t.Fatalf("failed gate changed status to %q", p.Status)
	}
	if p.SubmittedAt != "" {
		t.Fatalf("failed gate stamped SubmittedAt %q", p.SubmittedAt)
	}
}

func TestSubmitValidityDate(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		validity string
		wantErr  bool
	}{
		{"missing", "", true},
		{"past timestamp", now.Add(-time.Hour).Format(time.RFC3339), true},
		{"future timestamp", now.Add(time.Hour).Format(time.RFC3339), false},
		{"unparseable", "next tuesday", true},
		{"past date", "2026-03-14", true},
		{"future date", "2026-04-01", false},
		// a bare date is good through the end of that day
		{"today date only", "2026-03-15", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := draftProposal(t, tt.validity, true)
			err := Submit(p, now)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidValidityDate) {
					t.Fatalf("expected ErrInvalidValidityDate, got %v", err)
				}
				if p.Status != common.Draft {
					t.Fatalf("failed gate changed status to %q", p.Status)
				}

				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Status != common.Submitted {
				t.Fatalf("status %q after submit", p.Status)
			}
		})
	}
}

func TestSubmitStampsSubmittedAtOnce(t *testing.T) {
	t.Parallel()
	first := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	p := draftProposal(t, "2026-04-01", true)

	if err := Submit(p, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SubmittedAt != first.Format(time.RFC3339) {
		t.Fatalf("SubmittedAt %q, expected %q", p.SubmittedAt, first.Format(time.RFC3339))
	}

	// resubmission after a recall keeps the original timestamp
	p.Status = common.Draft
	if err := Submit(p, first.Add(48*time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SubmittedAt != first.Format(time.RFC3339) {
		t.Fatalf("resubmission overwrote SubmittedAt: %q", p.SubmittedAt)
	}
}

func TestSubmitPartialProposalPasses(t *testing.T) {
	t.Parallel()
	now := time.Now()
	p := draftProposal(t, now.Add(24*time.Hour).Format(time.RFC3339), true)

	// one of two items priced is enough
	if err := Submit(p, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != common.Submitted {
		t.Fatalf("status %q after submit", p.Status)
	}
}
