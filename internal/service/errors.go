package service

import "errors"

var (
	ErrRFQNotFound      = errors.New("rfq not found")
	ErrProposalNotFound = errors.New("proposal not found")
	ErrLineItemNotFound = errors.New("no proposal line item quotes the given rfq item")

	ErrRFQNotAccepted      = errors.New("rfq must be accepted before quoting can begin")
	ErrProposalNotEditable = errors.New("proposal can't be edited in its current status")

	ErrNoActiveQuotingSession = errors.New("no active quoting session for the proposal")
	ErrStaleQuotingSession    = errors.New("quoting session is stale, reopen the proposal to continue")

	ErrInvalidNumber = errors.New("numeric field is missing, malformed or negative")
)
