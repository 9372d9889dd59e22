package lifecycle

import (
	"errors"
	"testing"

	"quotation-management-api/internal/common"
	"quotation-management-api/internal/entity"
)

var allStatuses = []string{
	common.New,
	common.Accepted,
	common.Rejected,
	common.Submitted,
	common.Draft,
	common.RecallPending,
}

func apply(rfq *entity.RFQ, action Action) error {
	switch action {
	case ActionAccept:
		return Accept(rfq, "2026-04-01")
	case ActionReject:
		return Reject(rfq, "Budget exceeded")
	case ActionMarkSubmitted:
		return MarkSubmitted(rfq)
	case ActionRequestRecall:
		return RequestRecall(rfq)
	case ActionResolveRecall:
		return ResolveRecall(rfq, true)
	}

	panic("unknown action " + action)
}

// Every (status, action) pair either transitions or fails with
// InvalidTransitionError and leaves the RFQ untouched.
func TestTransitionTable(t *testing.T) {
	t.Parallel()
	want := map[Action]map[string]string{
		ActionAccept:        {common.New: common.Accepted},
		ActionReject:        {common.New: common.Rejected},
		ActionMarkSubmitted: {common.Accepted: common.Submitted, common.Draft: common.Submitted},
		ActionRequestRecall: {common.Submitted: common.RecallPending},
		ActionResolveRecall: {common.RecallPending: common.Draft},
	}

	for action, targets := range want {
		for _, from := range allStatuses {
			action, targets, from := action, targets, from
			t.Run(string(action)+" from "+from, func(t *testing.T) {
				t.Parallel()
				rfq := &entity.RFQ{Status: from}
				err := apply(rfq, action)

				to, legal := targets[from]
				if legal {
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					if rfq.Status != to {
						t.Fatalf("status %q, expected %q", rfq.Status, to)
					}

					return
				}

				var invalid *InvalidTransitionError
				if !errors.As(err, &invalid) {
					t.Fatalf("expected InvalidTransitionError, got %v", err)
				}
				if invalid.From != from || invalid.Action != action {
					t.Fatalf("error reports %q/%q, expected %q/%q", invalid.From, invalid.Action, from, action)
				}
				if rfq.Status != from {
					t.Fatalf("failed transition changed status to %q", rfq.Status)
				}
			})
		}
	}
}

func TestAcceptRecordsValidityDate(t *testing.T) {
	t.Parallel()
	rfq := &entity.RFQ{Status: common.New}

	if err := Accept(rfq, "2026-04-01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rfq.QuotationValidityDate != "2026-04-01" {
		t.Fatalf("validity date %q", rfq.QuotationValidityDate)
	}
}

func TestAcceptRequiresValidityDate(t *testing.T) {
	t.Parallel()
	rfq := &entity.RFQ{Status: common.New}

	if err := Accept(rfq, ""); !errors.Is(err, ErrMissingValidityDate) {
		t.Fatalf("expected ErrMissingValidityDate, got %v", err)
	}
	if rfq.Status != common.New {
		t.Fatalf("failed accept changed status to %q", rfq.Status)
	}
}

func TestRejectRecordsComment(t *testing.T) {
	t.Parallel()
	rfq := &entity.RFQ{Status: common.New}

	if err := Reject(rfq, "Budget exceeded"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rfq.Status != common.Rejected {
		t.Fatalf("status %q", rfq.Status)
	}
	if rfq.RejectionComment != "Budget exceeded" {
		t.Fatalf("rejection comment %q", rfq.RejectionComment)
	}

	// Rejected is terminal
	for _, action := range []Action{ActionAccept, ActionReject, ActionMarkSubmitted, ActionRequestRecall, ActionResolveRecall} {
		var invalid *InvalidTransitionError
		if err := apply(rfq, action); !errors.As(err, &invalid) {
			t.Fatalf("%s out of Rejected succeeded", action)
		}
	}
}

func TestRejectRequiresComment(t *testing.T) {
	t.Parallel()
	rfq := &entity.RFQ{Status: common.New}

	if err := Reject(rfq, ""); !errors.Is(err, ErrMissingRejectionComment) {
		t.Fatalf("expected ErrMissingRejectionComment, got %v", err)
	}
	if rfq.Status != common.New {
		t.Fatalf("failed reject changed status to %q", rfq.Status)
	}
}

func TestResolveRecallDenied(t *testing.T) {
	t.Parallel()
	rfq := &entity.RFQ{Status: common.RecallPending}

	if err := ResolveRecall(rfq, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rfq.Status != common.Submitted {
		t.Fatalf("denied recall left status %q, expected Submitted", rfq.Status)
	}
}

func TestRecallRoundTrip(t *testing.T) {
	t.Parallel()
	rfq := &entity.RFQ{Status: common.New}

	steps := []struct {
		action Action
		want   string
	}{
		{ActionAccept, common.Accepted},
		{ActionMarkSubmitted, common.Submitted},
		{ActionRequestRecall, common.RecallPending},
		{ActionResolveRecall, common.Draft},
		// reopened draft can be submitted again
		{ActionMarkSubmitted, common.Submitted},
	}
	for _, step := range steps {
		if err := apply(rfq, step.action); err != nil {
			t.Fatalf("%s: unexpected error: %v", step.action, err)
		}
		if rfq.Status != step.want {
			t.Fatalf("%s: status %q, expected %q", step.action, rfq.Status, step.want)
		}
	}
}
