// Package lifecycle is the finite-state machine over an RFQ's status. Every
// transition either mutates the RFQ and returns nil, or returns an error and
// leaves the RFQ exactly as it was.
package lifecycle

import (
	"errors"
	"fmt"

	"quotation-management-api/internal/common"
	"quotation-management-api/internal/entity"
)

type Action string

const (
	ActionAccept        Action = "accept"
	ActionReject        Action = "reject"
	ActionMarkSubmitted Action = "markSubmitted"
	ActionRequestRecall Action = "requestRecall"
	ActionResolveRecall Action = "resolveRecall"
)

var (
	ErrMissingValidityDate     = errors.New("accepting an rfq requires a quotation validity date")
	ErrMissingRejectionComment = errors.New("rejecting an rfq requires a comment")
)

// InvalidTransitionError reports a guard violation with enough context for
// the caller to decide retry vs. abort.
type InvalidTransitionError struct {
	From   string
	Action Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s an rfq in status %q", e.Action, e.From)
}

// allowed lists the source statuses each action may fire from. markSubmitted
// also fires from Draft so a proposal reopened by an approved recall can be
// submitted again.
var allowed = map[Action][]string{
	ActionAccept:        {common.New},
	ActionReject:        {common.New},
	ActionMarkSubmitted: {common.Accepted, common.Draft},
	ActionRequestRecall: {common.Submitted},
	ActionResolveRecall: {common.RecallPending},
}

func guard(rfq *entity.RFQ, action Action) error {
	for _, status := range allowed[action] {
		if rfq.Status == status {
			return nil
		}
	}

	return &InvalidTransitionError{From: rfq.Status, Action: action}
}

// Accept moves New → Accepted and records the validity date the seller's
// eventual proposal will carry. This is what unlocks proposal creation.
func Accept(rfq *entity.RFQ, quotationValidityDate string) error {
	if err := guard(rfq, ActionAccept); err != nil {
		return err
	}
	if quotationValidityDate == "" {
		return ErrMissingValidityDate
	}

	rfq.Status = common.Accepted
	rfq.QuotationValidityDate = quotationValidityDate

	return nil
}

// Reject moves New → Rejected, storing the comment. Terminal: no transition
// leads out of Rejected.
func Reject(rfq *entity.RFQ, comment string) error {
	if err := guard(rfq, ActionReject); err != nil {
		return err
	}
	if comment == "" {
		return ErrMissingRejectionComment
	}

	rfq.Status = common.Rejected
	rfq.RejectionComment = comment

	return nil
}

// MarkSubmitted moves Accepted → Submitted. Callers must only invoke it once
// the submission gate has approved the associated proposal; the two status
// changes are committed together at the repo layer.
func MarkSubmitted(rfq *entity.RFQ) error {
	if err := guard(rfq, ActionMarkSubmitted); err != nil {
		return err
	}

	rfq.Status = common.Submitted

	return nil
}

// RequestRecall moves Submitted → RecallPending. The recall is decided by the
// buyer, not here: the request is recorded and the engine waits for a
// separately delivered ResolveRecall.
func RequestRecall(rfq *entity.RFQ) error {
	if err := guard(rfq, ActionRequestRecall); err != nil {
		return err
	}

	rfq.Status = common.RecallPending

	return nil
}

// ResolveRecall applies the buyer's decision: approved reopens the RFQ as
// Draft, denied returns it to Submitted.
func ResolveRecall(rfq *entity.RFQ, approved bool) error {
	if err := guard(rfq, ActionResolveRecall); err != nil {
		return err
	}

	if approved {
		rfq.Status = common.Draft
	} else {
		rfq.Status = common.Submitted
	}

	return nil
}
