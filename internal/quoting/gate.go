package quoting

import (
	"errors"
	"time"

	"quotation-management-api/internal/common"
	"quotation-management-api/internal/entity"
)

var (
	ErrNoItemsQuoted       = errors.New("no line items have been priced")
	ErrInvalidValidityDate = errors.New("quotation validity date is missing or in the past")
)

// Submit checks the submission preconditions and, on success, marks the
// proposal Submitted and stamps the submission time (first submission only).
// A guard failure leaves the proposal untouched. Partial proposals pass the
// gate; fully unpriced ones don't.
func Submit(p *entity.Proposal, now time.Time) error {
	quoted := false
	for i := range p.Items {
		if p.Items[i].Quoted() {
			quoted = true
			break
		}
	}
	if !quoted {
		return ErrNoItemsQuoted
	}

	validUntil, dateOnly, err := parseValidityDate(p.QuotationValidityDate)
	if err != nil {
		return ErrInvalidValidityDate
	}
	if dateOnly {
		// a date without a time of day stays valid through that whole day
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if validUntil.Before(today) {
			return ErrInvalidValidityDate
		}
	} else if validUntil.Before(now) {
		return ErrInvalidValidityDate
	}

	p.Status = common.Submitted
	if p.SubmittedAt == "" {
		p.SubmittedAt = now.Format(time.RFC3339)
	}

	return nil
}

func parseValidityDate(value string) (time.Time, bool, error) {
	if value == "" {
		return time.Time{}, false, ErrInvalidValidityDate
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false, err
	}

	return t, true, nil
}
